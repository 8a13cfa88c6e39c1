package api

import (
	"net/http"

	"github.com/facturio/compta-service/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// QuoteService expose les opérations sur les devis
type QuoteService interface {
	Create(req *models.CreateQuoteRequest) (*models.Quote, error)
	Get(id uuid.UUID) (*models.Quote, error)
	List() ([]models.Quote, error)
	Update(id uuid.UUID, req *models.UpdateQuoteRequest) error
	Delete(id uuid.UUID) error
}

// InvoiceService expose les opérations sur les factures et leur journal
type InvoiceService interface {
	Create(req *models.CreateInvoiceRequest) (*models.Invoice, error)
	Get(id uuid.UUID) (*models.Invoice, error)
	List() ([]models.Invoice, error)
	Update(id uuid.UUID, req *models.UpdateInvoiceRequest) error
	Delete(id uuid.UUID) error
	GetEvents(id uuid.UUID) ([]models.InvoiceEvent, error)
}

// ClientService expose les opérations sur les clients
type ClientService interface {
	Create(req *models.CreateClientRequest) (*models.Client, error)
	Get(id uuid.UUID) (*models.Client, error)
	List() ([]models.Client, error)
	Update(id uuid.UUID, req *models.UpdateClientRequest) error
	Delete(id uuid.UUID) error
}

// PrestationService expose les opérations sur le catalogue
type PrestationService interface {
	Create(req *models.CreatePrestationRequest) (*models.Prestation, error)
	List() ([]models.Prestation, error)
}

// ExpenseService expose les opérations sur les dépenses
type ExpenseService interface {
	Create(req *models.CreateExpenseRequest) (*models.Expense, error)
	Get(id uuid.UUID) (*models.Expense, error)
	List() ([]models.Expense, error)
	Update(id uuid.UUID, req *models.UpdateExpenseRequest) error
	Delete(id uuid.UUID) error
}

// SettingsService expose les opérations sur les réglages
type SettingsService interface {
	GetAll() (models.Settings, error)
	Update(settings models.Settings) error
}

// API gère tous les endpoints de l'API
type API struct {
	quoteService      QuoteService
	invoiceService    InvoiceService
	clientService     ClientService
	prestationService PrestationService
	expenseService    ExpenseService
	settingsService   SettingsService
	logger            *logrus.Logger
}

// NewAPI crée une nouvelle instance de l'API
func NewAPI(
	quoteService QuoteService,
	invoiceService InvoiceService,
	clientService ClientService,
	prestationService PrestationService,
	expenseService ExpenseService,
	settingsService SettingsService,
	logger *logrus.Logger,
) *API {
	return &API{
		quoteService:      quoteService,
		invoiceService:    invoiceService,
		clientService:     clientService,
		prestationService: prestationService,
		expenseService:    expenseService,
		settingsService:   settingsService,
		logger:            logger,
	}
}

// RegisterRoutes enregistre toutes les routes de l'API sur le groupe donné
func (api *API) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes", api.ListQuotes)
	rg.GET("/quotes/:id", api.GetQuote)
	rg.POST("/quotes", api.CreateQuote)
	rg.PUT("/quotes/:id", api.UpdateQuote)
	rg.DELETE("/quotes/:id", api.DeleteQuote)

	rg.GET("/invoices", api.ListInvoices)
	rg.GET("/invoices/:id", api.GetInvoice)
	rg.GET("/invoices/:id/events", api.GetInvoiceEvents)
	rg.POST("/invoices", api.CreateInvoice)
	rg.PUT("/invoices/:id", api.UpdateInvoice)
	rg.DELETE("/invoices/:id", api.DeleteInvoice)

	rg.GET("/clients", api.ListClients)
	rg.GET("/clients/:id", api.GetClient)
	rg.POST("/clients", api.CreateClient)
	rg.PUT("/clients/:id", api.UpdateClient)
	rg.DELETE("/clients/:id", api.DeleteClient)

	rg.GET("/prestations", api.ListPrestations)
	rg.POST("/prestations", api.CreatePrestation)

	rg.GET("/expenses", api.ListExpenses)
	rg.GET("/expenses/:id", api.GetExpense)
	rg.POST("/expenses", api.CreateExpense)
	rg.PUT("/expenses/:id", api.UpdateExpense)
	rg.DELETE("/expenses/:id", api.DeleteExpense)

	rg.GET("/settings", api.GetSettings)
	rg.POST("/settings", api.UpdateSettings)
}

// parseID extrait et valide le paramètre :id. Renvoie false si la réponse
// d'erreur a déjà été écrite.
func (api *API) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationErrorResponse("Identifiant invalide", []models.ErrorDetail{
			{Field: "id", Issue: "Doit être un UUID valide"},
		}))
		return uuid.Nil, false
	}
	return id, true
}

// handleError traduit une erreur métier en réponse HTTP
func (api *API) handleError(c *gin.Context, err error, logMessage string) {
	code := models.CodeOf(err)

	var status int
	switch code {
	case models.ErrorCodeInvalidRequest:
		status = http.StatusBadRequest
	case models.ErrorCodeNotFound:
		status = http.StatusNotFound
	case models.ErrorCodeConflict:
		status = http.StatusConflict
	case models.ErrorCodeForbidden:
		status = http.StatusForbidden
	default:
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		api.logger.WithError(err).Error(logMessage)
		c.JSON(status, models.NewErrorResponse(models.ErrorCodeInternal, "Erreur interne du serveur"))
		return
	}

	c.JSON(status, models.NewErrorResponse(code, err.Error()))
}
