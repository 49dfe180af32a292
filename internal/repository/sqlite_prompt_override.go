package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/brandvoice/internal/db"
	"github.com/alexanderramin/brandvoice/internal/domain"
)

// SQLitePromptOverrideRepo implements PromptOverrideRepo using a SQLite
// database. It also serves as the prompt catalog's override source.
type SQLitePromptOverrideRepo struct {
	db db.DBTX
}

// NewSQLitePromptOverrideRepo creates a new SQLitePromptOverrideRepo.
func NewSQLitePromptOverrideRepo(conn db.DBTX) *SQLitePromptOverrideRepo {
	return &SQLitePromptOverrideRepo{db: conn}
}

func (r *SQLitePromptOverrideRepo) Get(ctx context.Context, name string) (*domain.PromptOverride, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT name, text, updated_by, updated_at FROM prompt_overrides WHERE name = ?`, name)
	o, err := scanPromptOverride(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prompt override %s: %w", name, ErrNotFound)
	}
	return o, err
}

func (r *SQLitePromptOverrideRepo) List(ctx context.Context) ([]*domain.PromptOverride, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, text, updated_by, updated_at FROM prompt_overrides ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing prompt overrides: %w", err)
	}
	defer rows.Close()

	var out []*domain.PromptOverride
	for rows.Next() {
		o, err := scanPromptOverride(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prompt overrides: %w", err)
	}
	return out, nil
}

func (r *SQLitePromptOverrideRepo) Upsert(ctx context.Context, o *domain.PromptOverride) error {
	query := `INSERT INTO prompt_overrides (name, text, updated_by, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET text = excluded.text, updated_by = excluded.updated_by, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, o.Name, o.Text, o.UpdatedBy, formatTime(o.UpdatedAt)); err != nil {
		return fmt.Errorf("upserting prompt override: %w", err)
	}
	return nil
}

func (r *SQLitePromptOverrideRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prompt_overrides WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting prompt override: %w", err)
	}
	return requireAffected(res, "prompt override", name)
}

// PromptOverride satisfies prompt.OverrideSource.
func (r *SQLitePromptOverrideRepo) PromptOverride(ctx context.Context, name string) (string, bool, error) {
	o, err := r.Get(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return o.Text, true, nil
}

func scanPromptOverride(s rowScanner) (*domain.PromptOverride, error) {
	var o domain.PromptOverride
	var updatedAt string
	if err := s.Scan(&o.Name, &o.Text, &o.UpdatedBy, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning prompt override: %w", err)
	}
	o.UpdatedAt = parseTime(updatedAt)
	return &o, nil
}
