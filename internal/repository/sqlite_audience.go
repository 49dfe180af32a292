package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/brandvoice/internal/db"
	"github.com/alexanderramin/brandvoice/internal/domain"
)

// SQLiteAudienceRepo implements AudienceRepo using a SQLite database.
type SQLiteAudienceRepo struct {
	db db.DBTX
}

// NewSQLiteAudienceRepo creates a new SQLiteAudienceRepo.
func NewSQLiteAudienceRepo(conn db.DBTX) *SQLiteAudienceRepo {
	return &SQLiteAudienceRepo{db: conn}
}

const audienceColumns = `id, brief_id, position, title, description, insights, messaging_angle, tone,
	support_points, persona_profile, created_at`

func (r *SQLiteAudienceRepo) ReplaceForBrief(ctx context.Context, briefID string, segs []*domain.AudienceSegment) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM audiences WHERE brief_id = ?`, briefID); err != nil {
		return fmt.Errorf("clearing audiences: %w", err)
	}
	query := `INSERT INTO audiences (` + audienceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, s := range segs {
		s.BriefID = briefID
		s.Position = i
		_, err := r.db.ExecContext(ctx, query,
			s.ID,
			s.BriefID,
			s.Position,
			s.Title,
			s.Description,
			s.Insights,
			s.MessagingAngle,
			s.Tone,
			s.SupportPoints,
			s.PersonaProfile,
			formatTime(s.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting audience %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteAudienceRepo) ListByBrief(ctx context.Context, briefID string) ([]*domain.AudienceSegment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+audienceColumns+` FROM audiences WHERE brief_id = ? ORDER BY position`, briefID)
	if err != nil {
		return nil, fmt.Errorf("listing audiences: %w", err)
	}
	defer rows.Close()

	var segs []*domain.AudienceSegment
	for rows.Next() {
		var s domain.AudienceSegment
		var createdAt string
		err := rows.Scan(
			&s.ID,
			&s.BriefID,
			&s.Position,
			&s.Title,
			&s.Description,
			&s.Insights,
			&s.MessagingAngle,
			&s.Tone,
			&s.SupportPoints,
			&s.PersonaProfile,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning audience: %w", err)
		}
		s.CreatedAt = parseTime(createdAt)
		segs = append(segs, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audiences: %w", err)
	}
	return segs, nil
}
