package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/facturio/compta-service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockQuoteRepo(t *testing.T) (*QuoteRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewQuoteRepository(&DB{sqlDB}, logger), mock
}

func TestQuoteDeleteConvertedForbidden(t *testing.T) {
	repo, mock := newMockQuoteRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT invoice_id FROM quotes").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"invoice_id"}).AddRow(uuid.NewString()))
	mock.ExpectRollback()

	err := repo.Delete(id)
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeForbidden, models.CodeOf(err))
	assert.Equal(t, "Impossible de supprimer un devis converti en facture.", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteDeleteUnconvertedSucceeds(t *testing.T) {
	repo, mock := newMockQuoteRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT invoice_id FROM quotes").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"invoice_id"}).AddRow(nil))
	mock.ExpectExec("DELETE FROM quotes").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteCreateMissingClientGetsNotFound(t *testing.T) {
	repo, mock := newMockQuoteRepo(t)

	clientID := uuid.New()
	quote := &models.Quote{
		ID:       uuid.New(),
		Number:   "DEV-2025-001",
		ClientID: &clientID,
		Object:   "Refonte du site",
		Status:   models.QuoteStatusDraft,
	}

	mock.ExpectExec("INSERT INTO quotes").
		WillReturnError(foreignKeyViolation(fkQuoteClient))

	err := repo.Create(quote)
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeNotFound, models.CodeOf(err))
	assert.Equal(t, "Client non trouvé.", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
