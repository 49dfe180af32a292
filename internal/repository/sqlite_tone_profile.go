package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/brandvoice/internal/db"
	"github.com/alexanderramin/brandvoice/internal/domain"
)

// SQLiteToneProfileRepo implements ToneProfileRepo using a SQLite database.
// Archetypes are stored as a JSON array.
type SQLiteToneProfileRepo struct {
	db db.DBTX
}

// NewSQLiteToneProfileRepo creates a new SQLiteToneProfileRepo.
func NewSQLiteToneProfileRepo(conn db.DBTX) *SQLiteToneProfileRepo {
	return &SQLiteToneProfileRepo{db: conn}
}

func (r *SQLiteToneProfileRepo) Get(ctx context.Context, brandID string) (*domain.ToneProfile, error) {
	query := `SELECT brand_id, archetypes, key_traits, communication_style, examples, guidelines, source, updated_at
		FROM tone_profiles WHERE brand_id = ?`
	var p domain.ToneProfile
	var archetypes, updatedAt string
	err := r.db.QueryRowContext(ctx, query, brandID).Scan(
		&p.BrandID,
		&archetypes,
		&p.Tone.KeyTraits,
		&p.Tone.CommunicationStyle,
		&p.Tone.Examples,
		&p.Tone.Guidelines,
		&p.Source,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tone profile %s: %w", brandID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning tone profile: %w", err)
	}
	if err := json.Unmarshal([]byte(archetypes), &p.Archetypes); err != nil {
		return nil, fmt.Errorf("decoding archetypes: %w", err)
	}
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func (r *SQLiteToneProfileRepo) Upsert(ctx context.Context, p *domain.ToneProfile) error {
	archetypes := p.Archetypes
	if archetypes == nil {
		archetypes = []domain.Archetype{}
	}
	encoded, err := json.Marshal(archetypes)
	if err != nil {
		return fmt.Errorf("encoding archetypes: %w", err)
	}
	query := `INSERT INTO tone_profiles (brand_id, archetypes, key_traits, communication_style, examples, guidelines, source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(brand_id) DO UPDATE SET
			archetypes = excluded.archetypes,
			key_traits = excluded.key_traits,
			communication_style = excluded.communication_style,
			examples = excluded.examples,
			guidelines = excluded.guidelines,
			source = excluded.source,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		p.BrandID,
		string(encoded),
		p.Tone.KeyTraits,
		p.Tone.CommunicationStyle,
		p.Tone.Examples,
		p.Tone.Guidelines,
		p.Source,
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting tone profile: %w", err)
	}
	return nil
}
