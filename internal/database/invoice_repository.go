package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// InvoiceRepository gère les opérations de base de données pour les factures
// et leur journal d'audit. Toute mutation à effets multiples (ligne +
// référence arrière du devis + événement) est exécutée dans une seule
// transaction : tout est validé ensemble ou rien ne l'est.
type InvoiceRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewInvoiceRepository crée une nouvelle instance du repository
func NewInvoiceRepository(db *DB, logger *logrus.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

const invoiceSelect = `
	SELECT i.id, i.number, i.quote_id, i.client_id, i.object, i.date,
		   i.status, i.items, i.total_ht, i.total_tva, i.total_ttc,
		   i.sent_at, i.paid_at, i.payment_method,
		   i.type_operation, i.nature_operation, i.pays_client, i.date_encaissement,
		   i.statut_transmission, i.date_transmission, i.reference_pdp,
		   i.created_at, i.updated_at,
		   c.name AS client_name
	FROM invoices i
	LEFT JOIN clients c ON i.client_id = c.id
`

func scanInvoice(row interface{ Scan(...interface{}) error }) (*models.Invoice, error) {
	var invoice models.Invoice
	err := row.Scan(
		&invoice.ID, &invoice.Number, &invoice.QuoteID, &invoice.ClientID,
		&invoice.Object, &invoice.Date, &invoice.Status, &invoice.Items,
		&invoice.TotalHT, &invoice.TotalTVA, &invoice.TotalTTC,
		&invoice.SentAt, &invoice.PaidAt, &invoice.PaymentMethod,
		&invoice.TypeOperation, &invoice.NatureOperation, &invoice.PaysClient,
		&invoice.DateEncaissement, &invoice.StatutTransmission,
		&invoice.DateTransmission, &invoice.ReferencePDP,
		&invoice.CreatedAt, &invoice.UpdatedAt, &invoice.ClientName,
	)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Create insère une facture, pose la référence arrière sur le devis source
// et journalise l'événement creation, le tout atomiquement.
//
// La pré-vérification d'existence d'une facture pour le devis n'est qu'un
// rejet rapide : la contrainte UNIQUE sur invoices.quote_id reste le
// garde-fou faisant autorité contre deux créations concurrentes.
func (r *InvoiceRepository) Create(invoice *models.Invoice, user string) error {
	return r.db.WithTransaction(func(tx *sql.Tx) error {
		if invoice.QuoteID != nil {
			var existing uuid.UUID
			err := tx.QueryRow(`SELECT id FROM invoices WHERE quote_id = $1`, *invoice.QuoteID).Scan(&existing)
			if err == nil {
				return models.NewConflictError("Une facture existe déjà pour ce devis.")
			}
			if err != sql.ErrNoRows {
				return fmt.Errorf("error checking quote reference: %w", err)
			}
		}

		query := `
			INSERT INTO invoices (
				id, number, quote_id, client_id, object, date, status, items,
				total_ht, total_tva, total_ttc,
				type_operation, nature_operation, pays_client, date_encaissement,
				statut_transmission, date_transmission, reference_pdp,
				created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
				$12, $13, $14, $15, $16, $17, $18, $19, $20
			)
		`

		_, err := tx.Exec(query,
			invoice.ID, invoice.Number, invoice.QuoteID, invoice.ClientID,
			invoice.Object, invoice.Date, invoice.Status, invoice.Items,
			invoice.TotalHT, invoice.TotalTVA, invoice.TotalTTC,
			invoice.TypeOperation, invoice.NatureOperation, invoice.PaysClient,
			invoice.DateEncaissement, invoice.StatutTransmission,
			invoice.DateTransmission, invoice.ReferencePDP,
			invoice.CreatedAt, invoice.UpdatedAt,
		)
		if err != nil {
			if mapped := mapConstraintViolation(err); mapped != err {
				return mapped
			}
			return fmt.Errorf("error inserting invoice: %w", err)
		}

		if invoice.QuoteID != nil {
			result, err := tx.Exec(`UPDATE quotes SET invoice_id = $1 WHERE id = $2`,
				invoice.ID, *invoice.QuoteID)
			if err != nil {
				return fmt.Errorf("error updating quote back-reference: %w", err)
			}
			rowsAffected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("error getting rows affected: %w", err)
			}
			if rowsAffected == 0 {
				return models.NewNotFoundError("Devis non trouvé.")
			}
		}

		return insertEvent(tx, invoice.ID, models.EventActionCreation, user)
	})
}

// GetByID obtient une facture par ID
func (r *InvoiceRepository) GetByID(id uuid.UUID) (*models.Invoice, error) {
	invoice, err := scanInvoice(r.db.QueryRowWithTimeout(invoiceSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("Facture non trouvée.")
		}
		return nil, fmt.Errorf("error querying invoice: %w", err)
	}
	return invoice, nil
}

// List obtient toutes les factures, les plus récentes en premier
func (r *InvoiceRepository) List() ([]models.Invoice, error) {
	rows, err := r.db.QueryWithTimeout(invoiceSelect + ` ORDER BY i.number DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying invoices: %w", err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning invoice: %w", err)
		}
		invoices = append(invoices, *invoice)
	}

	return invoices, rows.Err()
}

// Update applique une mise à jour partielle sous verrou de ligne.
//
// Le statut courant est relu dans la transaction : dès qu'une facture a
// quitté le statut Brouillon, ses données fiscales (lignes, totaux, client,
// numéro) sont gelées et toute tentative est rejetée en Forbidden. Les
// champs de statut, de paiement et de transmission restent modifiables.
// Chaque mise à jour acceptée journalise exactement un événement ; une mise
// à jour sans champ reconnu n'écrit rien.
func (r *InvoiceRepository) Update(id uuid.UUID, req *models.UpdateInvoiceRequest, user string) error {
	return r.db.WithTransaction(func(tx *sql.Tx) error {
		var currentStatus models.InvoiceStatus
		var currentNumber string
		err := tx.QueryRow(`SELECT status, number FROM invoices WHERE id = $1 FOR UPDATE`, id).
			Scan(&currentStatus, &currentNumber)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.NewNotFoundError("Facture non trouvée.")
			}
			return fmt.Errorf("error querying invoice: %w", err)
		}

		if currentStatus != models.InvoiceStatusDraft && req.TouchesFiscalFields(currentNumber) {
			return models.NewForbiddenError("Impossible de modifier une facture émise. Veuillez créer un avoir.")
		}

		if req.Empty() {
			return nil
		}

		fields := []string{}
		values := []interface{}{}
		argIndex := 1

		addField := func(column string, value interface{}) {
			fields = append(fields, fmt.Sprintf("%s = $%d", column, argIndex))
			values = append(values, value)
			argIndex++
		}

		if req.Status != nil {
			addField("status", *req.Status)
		}
		if req.SentAt != nil {
			addField("sent_at", *req.SentAt)
		}
		if req.PaidAt != nil {
			addField("paid_at", *req.PaidAt)
		}
		if req.PaymentMethod != nil {
			addField("payment_method", *req.PaymentMethod)
		}
		if req.Object != nil {
			addField("object", *req.Object)
		}
		if req.Items != nil {
			addField("items", *req.Items)
		}
		if req.TotalHT != nil {
			addField("total_ht", *req.TotalHT)
		}
		if req.TotalTVA != nil {
			addField("total_tva", *req.TotalTVA)
		}
		if req.TotalTTC != nil {
			addField("total_ttc", *req.TotalTTC)
		}
		if req.Date != nil {
			addField("date", *req.Date)
		}
		if req.ClientID != nil {
			addField("client_id", *req.ClientID)
		}
		if req.Number != nil {
			addField("number", *req.Number)
		}
		if req.TypeOperation != nil {
			addField("type_operation", *req.TypeOperation)
		}
		if req.NatureOperation != nil {
			addField("nature_operation", *req.NatureOperation)
		}
		if req.PaysClient != nil {
			addField("pays_client", *req.PaysClient)
		}
		if req.DateEncaissement != nil {
			addField("date_encaissement", *req.DateEncaissement)
		}
		if req.StatutTransmission != nil {
			addField("statut_transmission", *req.StatutTransmission)
		}
		if req.DateTransmission != nil {
			addField("date_transmission", *req.DateTransmission)
		}
		if req.ReferencePDP != nil {
			addField("reference_pdp", *req.ReferencePDP)
		}

		addField("updated_at", time.Now())

		values = append(values, id)
		query := fmt.Sprintf("UPDATE invoices SET %s WHERE id = $%d",
			strings.Join(fields, ", "), argIndex)

		if _, err := tx.Exec(query, values...); err != nil {
			if mapped := mapConstraintViolation(err); mapped != err {
				return mapped
			}
			return fmt.Errorf("error updating invoice: %w", err)
		}

		action := models.ResolveEventAction(currentStatus, req)
		return insertEvent(tx, id, action, user)
	})
}

// Delete supprime une facture, uniquement tant qu'elle est au statut
// Brouillon. Aucun événement n'est journalisé pour la suppression ; les
// événements existants suivent la facture (ON DELETE CASCADE).
func (r *InvoiceRepository) Delete(id uuid.UUID) error {
	return r.db.WithTransaction(func(tx *sql.Tx) error {
		var currentStatus models.InvoiceStatus
		err := tx.QueryRow(`SELECT status FROM invoices WHERE id = $1 FOR UPDATE`, id).Scan(&currentStatus)
		if err != nil {
			if err == sql.ErrNoRows {
				return models.NewNotFoundError("Facture non trouvée.")
			}
			return fmt.Errorf("error querying invoice: %w", err)
		}

		if currentStatus != models.InvoiceStatusDraft {
			return models.NewForbiddenError("Impossible de supprimer une facture émise.")
		}

		if _, err := tx.Exec(`DELETE FROM invoices WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting invoice: %w", err)
		}

		return nil
	})
}

// GetEvents obtient le journal d'audit d'une facture, ordonné par date
func (r *InvoiceRepository) GetEvents(invoiceID uuid.UUID) ([]models.InvoiceEvent, error) {
	var one int
	err := r.db.QueryRowWithTimeout(`SELECT 1 FROM invoices WHERE id = $1`, invoiceID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("Facture non trouvée.")
		}
		return nil, fmt.Errorf("error querying invoice: %w", err)
	}

	rows, err := r.db.QueryWithTimeout(`
		SELECT id, invoice_id, action, date, user_name
		FROM invoice_events
		WHERE invoice_id = $1
		ORDER BY date
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("error querying invoice events: %w", err)
	}
	defer rows.Close()

	events := []models.InvoiceEvent{}
	for rows.Next() {
		var event models.InvoiceEvent
		err := rows.Scan(&event.ID, &event.InvoiceID, &event.Action, &event.Date, &event.User)
		if err != nil {
			return nil, fmt.Errorf("error scanning invoice event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// insertEvent ajoute une entrée au journal d'audit dans la transaction de la
// mutation qu'elle documente. Jamais écrit hors transaction.
func insertEvent(tx *sql.Tx, invoiceID uuid.UUID, action models.EventAction, user string) error {
	_, err := tx.Exec(`
		INSERT INTO invoice_events (id, invoice_id, action, date, user_name)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), invoiceID, action, time.Now(), user)
	if err != nil {
		return fmt.Errorf("error inserting invoice event: %w", err)
	}
	return nil
}
