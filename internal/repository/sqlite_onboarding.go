package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/brandvoice/internal/db"
	"github.com/alexanderramin/brandvoice/internal/domain"
)

// SQLiteOnboardingRepo implements OnboardingRepo using a SQLite database.
type SQLiteOnboardingRepo struct {
	db db.DBTX
}

// NewSQLiteOnboardingRepo creates a new SQLiteOnboardingRepo.
func NewSQLiteOnboardingRepo(conn db.DBTX) *SQLiteOnboardingRepo {
	return &SQLiteOnboardingRepo{db: conn}
}

func (r *SQLiteOnboardingRepo) Get(ctx context.Context, userID string) (*domain.Onboarding, error) {
	query := `SELECT user_id, business_name, industry, description, product_service, target_audience,
		goals, core_message, updated_at
		FROM onboarding WHERE user_id = ?`
	var o domain.Onboarding
	var updatedAt string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&o.UserID,
		&o.BusinessName,
		&o.Industry,
		&o.Description,
		&o.ProductService,
		&o.TargetAudience,
		&o.Goals,
		&o.CoreMessage,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("onboarding %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning onboarding: %w", err)
	}
	o.UpdatedAt = parseTime(updatedAt)
	return &o, nil
}

func (r *SQLiteOnboardingRepo) Upsert(ctx context.Context, o *domain.Onboarding) error {
	query := `INSERT INTO onboarding (user_id, business_name, industry, description, product_service,
		target_audience, goals, core_message, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			business_name = excluded.business_name,
			industry = excluded.industry,
			description = excluded.description,
			product_service = excluded.product_service,
			target_audience = excluded.target_audience,
			goals = excluded.goals,
			core_message = excluded.core_message,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		o.UserID,
		o.BusinessName,
		o.Industry,
		o.Description,
		o.ProductService,
		o.TargetAudience,
		o.Goals,
		o.CoreMessage,
		formatTime(o.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting onboarding: %w", err)
	}
	return nil
}

func (r *SQLiteOnboardingRepo) SetCoreMessage(ctx context.Context, userID, message string) error {
	query := `INSERT INTO onboarding (user_id, core_message, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET core_message = excluded.core_message, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, userID, message, nowUTC()); err != nil {
		return fmt.Errorf("updating core message: %w", err)
	}
	return nil
}
