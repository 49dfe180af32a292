package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/brandvoice/internal/db"
	"github.com/alexanderramin/brandvoice/internal/domain"
)

// SQLiteBriefRepo implements BriefRepo using a SQLite database.
type SQLiteBriefRepo struct {
	db db.DBTX
}

// NewSQLiteBriefRepo creates a new SQLiteBriefRepo.
func NewSQLiteBriefRepo(conn db.DBTX) *SQLiteBriefRepo {
	return &SQLiteBriefRepo{db: conn}
}

const briefColumns = `id, project_id, purpose, main_message, special_features, beneficiaries, benefits,
	call_to_action, importance, additional_info, created_at, updated_at`

func (r *SQLiteBriefRepo) Create(ctx context.Context, b *domain.Brief) error {
	query := `INSERT INTO briefs (` + briefColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.ProjectID,
		b.Purpose,
		b.MainMessage,
		b.SpecialFeatures,
		b.Beneficiaries,
		b.Benefits,
		b.CallToAction,
		b.Importance,
		b.AdditionalInfo,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting brief: %w", err)
	}
	return nil
}

func (r *SQLiteBriefRepo) GetByID(ctx context.Context, id string) (*domain.Brief, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+briefColumns+` FROM briefs WHERE id = ?`, id)
	b, err := scanBrief(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("brief %s: %w", id, ErrNotFound)
	}
	return b, err
}

func (r *SQLiteBriefRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Brief, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+briefColumns+` FROM briefs WHERE project_id = ? ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing briefs: %w", err)
	}
	defer rows.Close()

	var briefs []*domain.Brief
	for rows.Next() {
		b, err := scanBrief(rows)
		if err != nil {
			return nil, err
		}
		briefs = append(briefs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating briefs: %w", err)
	}
	return briefs, nil
}

func (r *SQLiteBriefRepo) Update(ctx context.Context, b *domain.Brief) error {
	query := `UPDATE briefs SET purpose = ?, main_message = ?, special_features = ?, beneficiaries = ?,
		benefits = ?, call_to_action = ?, importance = ?, additional_info = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		b.Purpose,
		b.MainMessage,
		b.SpecialFeatures,
		b.Beneficiaries,
		b.Benefits,
		b.CallToAction,
		b.Importance,
		b.AdditionalInfo,
		formatTime(b.UpdatedAt),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating brief: %w", err)
	}
	return requireAffected(res, "brief", b.ID)
}

func scanBrief(s rowScanner) (*domain.Brief, error) {
	var b domain.Brief
	var createdAt, updatedAt string
	err := s.Scan(
		&b.ID,
		&b.ProjectID,
		&b.Purpose,
		&b.MainMessage,
		&b.SpecialFeatures,
		&b.Beneficiaries,
		&b.Benefits,
		&b.CallToAction,
		&b.Importance,
		&b.AdditionalInfo,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning brief: %w", err)
	}
	b.CreatedAt = parseTime(createdAt)
	b.UpdatedAt = parseTime(updatedAt)
	return &b, nil
}
