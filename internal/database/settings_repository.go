package database

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// SettingsRepository gère le stockage clé → valeur des réglages
type SettingsRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewSettingsRepository crée une nouvelle instance du repository
func NewSettingsRepository(db *DB, logger *logrus.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll obtient toutes les paires clé → valeur brute
func (r *SettingsRepository) GetAll() (map[string]string, error) {
	rows, err := r.db.QueryWithTimeout(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("error querying settings: %w", err)
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("error scanning setting: %w", err)
		}
		settings[key] = value.String
	}

	return settings, rows.Err()
}

// UpsertMany remplace les valeurs de toutes les clés fournies dans une
// seule transaction
func (r *SettingsRepository) UpsertMany(values map[string]string) error {
	return r.db.WithTransaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
		`)
		if err != nil {
			return fmt.Errorf("error preparing settings upsert: %w", err)
		}
		defer stmt.Close()

		for key, value := range values {
			if _, err := stmt.Exec(key, value); err != nil {
				return fmt.Errorf("error upserting setting %q: %w", key, err)
			}
		}

		return nil
	})
}
