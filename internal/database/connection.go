package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/facturio/compta-service/internal/config"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// DB représente la connexion à la base de données
type DB struct {
	*sql.DB
}

// Connect établit la connexion à PostgreSQL
func Connect(cfg *config.Config) (*DB, error) {
	dsn := cfg.GetDSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Pool de connexions
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// Vérifier la connexion
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return &DB{db}, nil
}

// Close ferme la connexion à la base de données
func (db *DB) Close() error {
	return db.DB.Close()
}

// HealthCheck vérifie la santé de la base de données
func (db *DB) HealthCheck() error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "SELECT 1"); err != nil {
		return fmt.Errorf("database query test failed: %w", err)
	}

	return nil
}

// queryTimeout borne la durée d'une requête, consommation des lignes comprise
const queryTimeout = 30 * time.Second

// ExecWithTimeout exécute une requête d'écriture avec timeout
func (db *DB) ExecWithTimeout(query string, args ...interface{}) (sql.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return db.ExecContext(ctx, query, args...)
}

// Rows enveloppe sql.Rows en gardant le contexte de timeout vivant jusqu'à
// la fermeture. Annuler le contexte avant la consommation fermerait les
// lignes en plein parcours.
type Rows struct {
	*sql.Rows
	cancel context.CancelFunc
}

// Close ferme les lignes et libère le contexte de timeout
func (r *Rows) Close() error {
	defer r.cancel()
	return r.Rows.Close()
}

// QueryWithTimeout exécute une requête de lecture avec timeout. L'appelant
// doit fermer les lignes retournées.
func (db *DB) QueryWithTimeout(query string, args ...interface{}) (*Rows, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		cancel()
		return nil, err
	}

	return &Rows{Rows: rows, cancel: cancel}, nil
}

// Row enveloppe sql.Row en gardant le contexte de timeout vivant jusqu'au Scan
type Row struct {
	row    *sql.Row
	cancel context.CancelFunc
}

// Scan lit la ligne puis libère le contexte de timeout
func (r *Row) Scan(dest ...interface{}) error {
	defer r.cancel()
	return r.row.Scan(dest...)
}

// QueryRowWithTimeout exécute une requête d'une seule ligne avec timeout
func (db *DB) QueryRowWithTimeout(query string, args ...interface{}) *Row {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)

	return &Row{row: db.QueryRowContext(ctx, query, args...), cancel: cancel}
}

// WithTransaction exécute une fonction dans une transaction.
// Chaque opération de cycle de vie touchant plusieurs effets logiques
// (ligne + référence arrière + événement d'audit) passe par ici.
func (db *DB) WithTransaction(fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %w, original error: %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// LogStats journalise les statistiques du pool de connexions
func (db *DB) LogStats(logger *logrus.Logger) {
	stats := db.Stats()
	logger.WithFields(logrus.Fields{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
	}).Info("Database pool statistics")
}
