package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS brands (
		id            TEXT PRIMARY KEY,
		owner_id      TEXT NOT NULL,
		name          TEXT NOT NULL,
		industry      TEXT NOT NULL DEFAULT '',
		description   TEXT NOT NULL DEFAULT '',
		website       TEXT NOT NULL DEFAULT '',
		target_market TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_brands_owner ON brands(owner_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		brand_id   TEXT REFERENCES brands(id) ON DELETE SET NULL,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id)`,

	`CREATE TABLE IF NOT EXISTS briefs (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		purpose          TEXT NOT NULL,
		main_message     TEXT NOT NULL,
		special_features TEXT NOT NULL DEFAULT '',
		beneficiaries    TEXT NOT NULL DEFAULT '',
		benefits         TEXT NOT NULL DEFAULT '',
		call_to_action   TEXT NOT NULL DEFAULT '',
		importance       TEXT NOT NULL DEFAULT '',
		additional_info  TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_briefs_project ON briefs(project_id)`,

	`CREATE TABLE IF NOT EXISTS audiences (
		id              TEXT PRIMARY KEY,
		brief_id        TEXT NOT NULL REFERENCES briefs(id) ON DELETE CASCADE,
		position        INTEGER NOT NULL DEFAULT 0,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		insights        TEXT NOT NULL DEFAULT '',
		messaging_angle TEXT NOT NULL DEFAULT '',
		tone            TEXT NOT NULL DEFAULT '',
		support_points  TEXT NOT NULL DEFAULT '',
		persona_profile TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audiences_brief ON audiences(brief_id, position)`,

	`CREATE TABLE IF NOT EXISTS tone_profiles (
		brand_id            TEXT PRIMARY KEY REFERENCES brands(id) ON DELETE CASCADE,
		archetypes          TEXT NOT NULL DEFAULT '[]',
		key_traits          TEXT NOT NULL DEFAULT '',
		communication_style TEXT NOT NULL DEFAULT '',
		examples            TEXT NOT NULL DEFAULT '',
		guidelines          TEXT NOT NULL DEFAULT '',
		source              TEXT NOT NULL DEFAULT '',
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS onboarding (
		user_id         TEXT PRIMARY KEY,
		business_name   TEXT NOT NULL DEFAULT '',
		industry        TEXT NOT NULL DEFAULT '',
		description     TEXT NOT NULL DEFAULT '',
		product_service TEXT NOT NULL DEFAULT '',
		target_audience TEXT NOT NULL DEFAULT '',
		goals           TEXT NOT NULL DEFAULT '',
		core_message    TEXT NOT NULL DEFAULT '',
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS prompt_overrides (
		name       TEXT PRIMARY KEY,
		text       TEXT NOT NULL,
		updated_by TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	)`,
}
