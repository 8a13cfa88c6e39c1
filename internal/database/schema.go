package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// schemaStatements contient le DDL de base. Les tables quotes et invoices se
// référencent mutuellement : la colonne quotes.invoice_id est ajoutée après
// coup dans les migrations additives.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		address TEXT,
		siret TEXT,
		typology TEXT NOT NULL DEFAULT 'particulier',
		tva_intracom TEXT,
		country TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS prestations (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		type TEXT NOT NULL DEFAULT 'service',
		tva_rate DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id UUID PRIMARY KEY,
		number TEXT UNIQUE NOT NULL,
		client_id UUID REFERENCES clients(id),
		object TEXT NOT NULL,
		date TEXT,
		expiry_date TEXT,
		status TEXT NOT NULL DEFAULT 'Brouillon',
		items JSONB NOT NULL DEFAULT '[]',
		total_ht DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_tva DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_ttc DOUBLE PRECISION NOT NULL DEFAULT 0,
		sent_at TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY,
		number TEXT UNIQUE NOT NULL,
		quote_id UUID UNIQUE REFERENCES quotes(id),
		client_id UUID REFERENCES clients(id),
		object TEXT NOT NULL,
		date TEXT,
		status TEXT NOT NULL DEFAULT 'Brouillon',
		items JSONB NOT NULL DEFAULT '[]',
		total_ht DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_tva DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_ttc DOUBLE PRECISION NOT NULL DEFAULT 0,
		sent_at TEXT,
		paid_at TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id UUID PRIMARY KEY,
		date TEXT,
		description TEXT,
		amount_ht DOUBLE PRECISION NOT NULL DEFAULT 0,
		amount_tva DOUBLE PRECISION NOT NULL DEFAULT 0,
		category TEXT,
		receipt_path TEXT,
		client_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_events (
		id UUID PRIMARY KEY,
		invoice_id UUID REFERENCES invoices(id) ON DELETE CASCADE,
		action TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL DEFAULT now(),
		user_name TEXT NOT NULL DEFAULT 'system'
	)`,
}

// migrationStatements contient les migrations additives : colonnes apparues
// au fil des versions du schéma, idempotentes grâce à IF NOT EXISTS.
var migrationStatements = []string{
	`ALTER TABLE quotes ADD COLUMN IF NOT EXISTS accepted_at TEXT`,
	`ALTER TABLE quotes ADD COLUMN IF NOT EXISTS refused_at TEXT`,
	`ALTER TABLE quotes ADD COLUMN IF NOT EXISTS invoice_id UUID REFERENCES invoices(id) ON DELETE SET NULL`,
	`ALTER TABLE invoices ADD COLUMN IF NOT EXISTS payment_method TEXT`,
	`ALTER TABLE invoices ADD COLUMN IF NOT EXISTS type_operation TEXT`,
	`ALTER TABLE invoices ADD COLUMN IF NOT EXISTS nature_operation TEXT`,
	`ALTER TABLE invoices ADD COLUMN IF NOT EXISTS pays_client TEXT`,
	`ALTER TABLE invoices ADD COLUMN IF NOT EXISTS date_encaissement TEXT`,
	`ALTER TABLE invoices ADD COLUMN IF NOT EXISTS statut_transmission TEXT NOT NULL DEFAULT 'Non transmis'`,
	`ALTER TABLE invoices ADD COLUMN IF NOT EXISTS date_transmission TEXT`,
	`ALTER TABLE invoices ADD COLUMN IF NOT EXISTS reference_pdp TEXT`,
	`ALTER TABLE expenses ADD COLUMN IF NOT EXISTS supplier_name TEXT`,
	`ALTER TABLE expenses ADD COLUMN IF NOT EXISTS invoice_number TEXT`,
	`ALTER TABLE expenses ADD COLUMN IF NOT EXISTS payment_method TEXT`,
	`ALTER TABLE expenses ADD COLUMN IF NOT EXISTS type TEXT NOT NULL DEFAULT 'frais'`,
	`CREATE INDEX IF NOT EXISTS ix_invoice_events_invoice_id ON invoice_events(invoice_id, date)`,
}

// InitSchema crée les tables et applique les migrations additives.
// La contrainte UNIQUE sur invoices.quote_id est le garde-fou faisant
// autorité pour l'invariant une-facture-par-devis.
func InitSchema(db *DB, logger *logrus.Logger) error {
	logger.Info("Initializing database schema")

	for _, stmt := range schemaStatements {
		if _, err := db.ExecWithTimeout(stmt); err != nil {
			return fmt.Errorf("error creating schema: %w", err)
		}
	}

	for _, stmt := range migrationStatements {
		if _, err := db.ExecWithTimeout(stmt); err != nil {
			return fmt.Errorf("error applying migration: %w", err)
		}
	}

	logger.Info("Database schema initialized")
	return nil
}
