package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*InvoiceRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewInvoiceRepository(&DB{sqlDB}, logger), mock
}

func draftInvoice(quoteID *uuid.UUID) *models.Invoice {
	return &models.Invoice{
		ID:                 uuid.New(),
		Number:             "FAC-2025-001",
		QuoteID:            quoteID,
		Object:             "Développement site web",
		Status:             models.InvoiceStatusDraft,
		Items:              models.LineItems{{Description: "Développement", Quantity: 5, UnitPrice: 400, TVARate: 20, Amount: 2000}},
		TotalHT:            2000,
		TotalTVA:           400,
		TotalTTC:           2400,
		StatutTransmission: models.TransmissionStatusNotTransmitted,
	}
}

func TestInvoiceCreateFromQuoteCommitsAtomically(t *testing.T) {
	repo, mock := newMockRepo(t)

	quoteID := uuid.New()
	invoice := draftInvoice(&quoteID)

	// Insertion, référence arrière du devis et événement creation
	// dans la même transaction, dans cet ordre
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM invoices WHERE quote_id").
		WithArgs(quoteID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO invoices").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE quotes SET invoice_id").
		WithArgs(invoice.ID, quoteID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO invoice_events").
		WithArgs(sqlmock.AnyArg(), invoice.ID, "creation", sqlmock.AnyArg(), "system").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(invoice, "system"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceCreateRejectsSecondInvoiceForQuote(t *testing.T) {
	repo, mock := newMockRepo(t)

	quoteID := uuid.New()
	invoice := draftInvoice(&quoteID)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM invoices WHERE quote_id").
		WithArgs(quoteID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectRollback()

	err := repo.Create(invoice, "system")
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeConflict, models.CodeOf(err))
	assert.Equal(t, "Une facture existe déjà pour ce devis.", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceCreateConcurrentLoserGetsConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	quoteID := uuid.New()
	invoice := draftInvoice(&quoteID)

	// La pré-vérification passe mais la contrainte d'unicité tranche
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM invoices WHERE quote_id").
		WithArgs(quoteID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO invoices").
		WillReturnError(&pq.Error{Code: pq.ErrorCode(pgUniqueViolation), Constraint: constraintInvoiceQuoteID})
	mock.ExpectRollback()

	err := repo.Create(invoice, "system")
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeConflict, models.CodeOf(err))
	assert.Equal(t, "Une facture existe déjà pour ce devis.", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceCreateMissingQuoteGetsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	quoteID := uuid.New()
	invoice := draftInvoice(&quoteID)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM invoices WHERE quote_id").
		WithArgs(quoteID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO invoices").
		WillReturnError(&pq.Error{Code: pq.ErrorCode(pgForeignKeyViolation), Constraint: fkInvoiceQuote})
	mock.ExpectRollback()

	err := repo.Create(invoice, "system")
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeNotFound, models.CodeOf(err))
	assert.Equal(t, "Devis non trouvé.", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func expectStatusRow(mock sqlmock.Sqlmock, id uuid.UUID, status models.InvoiceStatus, number string) {
	mock.ExpectQuery("SELECT status, number FROM invoices").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status", "number"}).AddRow(string(status), number))
}

func TestInvoiceUpdateFrozenOnceIssued(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	expectStatusRow(mock, id, models.InvoiceStatusSent, "FAC-2025-001")
	mock.ExpectRollback()

	total := 999.99
	err := repo.Update(id, &models.UpdateInvoiceRequest{TotalTTC: &total}, "system")
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeForbidden, models.CodeOf(err))
	assert.Equal(t, "Impossible de modifier une facture émise. Veuillez créer un avoir.", err.Error())

	// Ni UPDATE ni événement : la ligne reste intacte
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceUpdateEmptyWritesNothing(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	expectStatusRow(mock, id, models.InvoiceStatusDraft, "FAC-2025-001")
	mock.ExpectCommit()

	require.NoError(t, repo.Update(id, &models.UpdateInvoiceRequest{}, "system"))

	// Aucune écriture, aucun événement journalisé
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceUpdateLogsEmission(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	expectStatusRow(mock, id, models.InvoiceStatusDraft, "FAC-2025-001")
	mock.ExpectExec("UPDATE invoices SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO invoice_events").
		WithArgs(sqlmock.AnyArg(), id, "emission", sqlmock.AnyArg(), "system").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	status := models.InvoiceStatusSent
	sentAt := "2025-09-01"
	req := &models.UpdateInvoiceRequest{Status: &status, SentAt: &sentAt}
	require.NoError(t, repo.Update(id, req, "system"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceUpdateLogsPaiement(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	expectStatusRow(mock, id, models.InvoiceStatusSent, "FAC-2025-001")
	mock.ExpectExec("UPDATE invoices SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO invoice_events").
		WithArgs(sqlmock.AnyArg(), id, "paiement", sqlmock.AnyArg(), "system").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	status := models.InvoiceStatusPaid
	paidAt := "2025-09-15"
	req := &models.UpdateInvoiceRequest{Status: &status, PaidAt: &paidAt}
	require.NoError(t, repo.Update(id, req, "system"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceUpdateRollsBackWhenEventFails(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	// Si le journal ne peut pas être écrit, la mise à jour ne survit pas
	mock.ExpectBegin()
	expectStatusRow(mock, id, models.InvoiceStatusDraft, "FAC-2025-001")
	mock.ExpectExec("UPDATE invoices SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO invoice_events").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	status := models.InvoiceStatusSent
	err := repo.Update(id, &models.UpdateInvoiceRequest{Status: &status}, "system")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceUpdateNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status, number FROM invoices").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	status := models.InvoiceStatusSent
	err := repo.Update(id, &models.UpdateInvoiceRequest{Status: &status}, "system")
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeNotFound, models.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceDeleteDraftSucceeds(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM invoices").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Brouillon"))
	mock.ExpectExec("DELETE FROM invoices").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceDeleteIssuedForbidden(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM invoices").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Envoyée"))
	mock.ExpectRollback()

	err := repo.Delete(id)
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeForbidden, models.CodeOf(err))
	assert.Equal(t, "Impossible de supprimer une facture émise.", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceGetByIDRoundTripsItems(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	columns := []string{
		"id", "number", "quote_id", "client_id", "object", "date",
		"status", "items", "total_ht", "total_tva", "total_ttc",
		"sent_at", "paid_at", "payment_method",
		"type_operation", "nature_operation", "pays_client", "date_encaissement",
		"statut_transmission", "date_transmission", "reference_pdp",
		"created_at", "updated_at", "client_name",
	}
	items := `[{"description":"Audit","quantity":1,"unit_price":800,"tva_rate":20,"amount":800},` +
		`{"description":"Formation","quantity":3,"unit_price":400,"tva_rate":20,"amount":1200}]`

	mock.ExpectQuery("SELECT i.id, i.number").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			id.String(), "FAC-2025-001", nil, nil, "Audit et formation", "2025-09-01",
			"Brouillon", []byte(items), 2000.0, 400.0, 2400.0,
			nil, nil, nil,
			nil, nil, nil, nil,
			"Non transmis", nil, nil,
			time.Now(), time.Now(), nil,
		))

	invoice, err := repo.GetByID(id)
	require.NoError(t, err)

	// Les lignes reviennent dans l'ordre où elles ont été stockées
	require.Len(t, invoice.Items, 2)
	assert.Equal(t, "Audit", invoice.Items[0].Description)
	assert.Equal(t, "Formation", invoice.Items[1].Description)
	assert.Equal(t, models.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, models.TransmissionStatusNotTransmitted, invoice.StatutTransmission)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceGetEventsOrdered(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT 1 FROM invoices").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectQuery("SELECT id, invoice_id, action, date, user_name").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_id", "action", "date", "user_name"}).
			AddRow(uuid.NewString(), id.String(), "creation", time.Now(), "system").
			AddRow(uuid.NewString(), id.String(), "emission", time.Now(), "system"))

	events, err := repo.GetEvents(id)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventActionCreation, events[0].Action)
	assert.Equal(t, models.EventActionEmission, events[1].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}
