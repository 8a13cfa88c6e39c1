package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/facturio/compta-service/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuoteService struct {
	createFn func(req *models.CreateQuoteRequest) (*models.Quote, error)
	getFn    func(id uuid.UUID) (*models.Quote, error)
	listFn   func() ([]models.Quote, error)
	updateFn func(id uuid.UUID, req *models.UpdateQuoteRequest) error
	deleteFn func(id uuid.UUID) error
}

func (f *fakeQuoteService) Create(req *models.CreateQuoteRequest) (*models.Quote, error) {
	return f.createFn(req)
}

func (f *fakeQuoteService) Get(id uuid.UUID) (*models.Quote, error) {
	return f.getFn(id)
}

func (f *fakeQuoteService) List() ([]models.Quote, error) {
	return f.listFn()
}

func (f *fakeQuoteService) Update(id uuid.UUID, req *models.UpdateQuoteRequest) error {
	return f.updateFn(id, req)
}

func (f *fakeQuoteService) Delete(id uuid.UUID) error {
	return f.deleteFn(id)
}

func TestCreateQuote(t *testing.T) {
	quoteID := uuid.New()
	quotes := &fakeQuoteService{
		createFn: func(req *models.CreateQuoteRequest) (*models.Quote, error) {
			assert.Equal(t, "DEV-2025-001", req.Number)
			assert.Len(t, req.Items, 1)
			return &models.Quote{ID: quoteID, Number: req.Number}, nil
		},
	}
	router := newTestRouter(t, nil, quotes)

	w := performJSON(router, http.MethodPost, "/api/quotes", gin.H{
		"number": "DEV-2025-001",
		"object": "Refonte du site",
		"items": []map[string]interface{}{
			{"description": "Développement", "quantity": 5, "unit_price": 400, "tva_rate": 20, "amount": 2000},
		},
		"total_ht":  2000,
		"total_tva": 400,
		"total_ttc": 2400,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, quoteID.String(), resp["id"])
}

func TestCreateQuoteDuplicateNumber(t *testing.T) {
	quotes := &fakeQuoteService{
		createFn: func(req *models.CreateQuoteRequest) (*models.Quote, error) {
			return nil, models.NewConflictError("Un devis avec ce numéro existe déjà.")
		},
	}
	router := newTestRouter(t, nil, quotes)

	w := performJSON(router, http.MethodPost, "/api/quotes", gin.H{
		"number": "DEV-2025-001",
		"object": "Refonte du site",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(models.ErrorCodeConflict), errorCodeOf(t, w))
}

func TestGetQuoteNotFound(t *testing.T) {
	quotes := &fakeQuoteService{
		getFn: func(id uuid.UUID) (*models.Quote, error) {
			return nil, models.NewNotFoundError("Devis non trouvé.")
		},
	}
	router := newTestRouter(t, nil, quotes)

	w := performJSON(router, http.MethodGet, "/api/quotes/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(models.ErrorCodeNotFound), errorCodeOf(t, w))
}

func TestUpdateQuoteInvalidStatus(t *testing.T) {
	quotes := &fakeQuoteService{
		updateFn: func(id uuid.UUID, req *models.UpdateQuoteRequest) error {
			return models.NewInvalidInputError("Statut de devis inconnu : Facturé")
		},
	}
	router := newTestRouter(t, nil, quotes)

	w := performJSON(router, http.MethodPut, "/api/quotes/"+uuid.NewString(), gin.H{
		"status": "Facturé",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(models.ErrorCodeInvalidRequest), errorCodeOf(t, w))
}

func TestDeleteConvertedQuote(t *testing.T) {
	quotes := &fakeQuoteService{
		deleteFn: func(id uuid.UUID) error {
			return models.NewForbiddenError("Impossible de supprimer un devis converti en facture.")
		},
	}
	router := newTestRouter(t, nil, quotes)

	w := performJSON(router, http.MethodDelete, "/api/quotes/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, string(models.ErrorCodeForbidden), errorCodeOf(t, w))
}

func TestListQuotes(t *testing.T) {
	quotes := &fakeQuoteService{
		listFn: func() ([]models.Quote, error) {
			return []models.Quote{
				{ID: uuid.New(), Number: "DEV-2025-002", Status: models.QuoteStatusSent},
				{ID: uuid.New(), Number: "DEV-2025-001", Status: models.QuoteStatusAccepted},
			}, nil
		},
	}
	router := newTestRouter(t, nil, quotes)

	w := performJSON(router, http.MethodGet, "/api/quotes", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var listed []models.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "DEV-2025-002", listed[0].Number)
}
