package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/plx/internal/models"
)

// SettingsRepository stores [models.SecuritySettings] one row per key.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the given database connection
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get loads the security settings. Missing keys are empty.
func (r *SettingsRepository) Get() (models.SecuritySettings, error) {
	var settings models.SecuritySettings

	rows, err := r.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return settings, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings, _ = settings.With(key, value)
	}

	if err := rows.Err(); err != nil {
		return settings, fmt.Errorf("row iteration error: %w", err)
	}

	return settings, nil
}

// Save replaces every key in one transaction.
func (r *SettingsRepository) Save(settings models.SecuritySettings) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, f := range settings.Fields() {
		_, err := tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			f.Key, f.Value,
		)
		if err != nil {
			return fmt.Errorf("failed to save setting %s: %w", f.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}
