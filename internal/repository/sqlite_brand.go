package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/brandvoice/internal/db"
	"github.com/alexanderramin/brandvoice/internal/domain"
)

// SQLiteBrandRepo implements BrandRepo using a SQLite database.
type SQLiteBrandRepo struct {
	db db.DBTX
}

// NewSQLiteBrandRepo creates a new SQLiteBrandRepo.
func NewSQLiteBrandRepo(conn db.DBTX) *SQLiteBrandRepo {
	return &SQLiteBrandRepo{db: conn}
}

const brandColumns = `id, owner_id, name, industry, description, website, target_market, created_at, updated_at`

func (r *SQLiteBrandRepo) Create(ctx context.Context, b *domain.Brand) error {
	query := `INSERT INTO brands (` + brandColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.OwnerID,
		b.Name,
		b.Industry,
		b.Description,
		b.Website,
		b.TargetMarket,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting brand: %w", err)
	}
	return nil
}

func (r *SQLiteBrandRepo) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+brandColumns+` FROM brands WHERE id = ?`, id)
	b, err := scanBrand(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("brand %s: %w", id, ErrNotFound)
	}
	return b, err
}

func (r *SQLiteBrandRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Brand, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+brandColumns+` FROM brands WHERE owner_id = ? ORDER BY created_at, name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing brands: %w", err)
	}
	defer rows.Close()

	var brands []*domain.Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating brands: %w", err)
	}
	return brands, nil
}

func (r *SQLiteBrandRepo) Update(ctx context.Context, b *domain.Brand) error {
	query := `UPDATE brands SET name = ?, industry = ?, description = ?, website = ?, target_market = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		b.Name,
		b.Industry,
		b.Description,
		b.Website,
		b.TargetMarket,
		formatTime(b.UpdatedAt),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating brand: %w", err)
	}
	return requireAffected(res, "brand", b.ID)
}

func (r *SQLiteBrandRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting brand: %w", err)
	}
	return requireAffected(res, "brand", id)
}

func scanBrand(s rowScanner) (*domain.Brand, error) {
	var b domain.Brand
	var createdAt, updatedAt string
	err := s.Scan(
		&b.ID,
		&b.OwnerID,
		&b.Name,
		&b.Industry,
		&b.Description,
		&b.Website,
		&b.TargetMarket,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning brand: %w", err)
	}
	b.CreatedAt = parseTime(createdAt)
	b.UpdatedAt = parseTime(updatedAt)
	return &b, nil
}

// requireAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}
