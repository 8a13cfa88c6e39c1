package api

import (
	"net/http"

	"github.com/facturio/compta-service/internal/models"
	"github.com/gin-gonic/gin"
)

// ListQuotes obtient tous les devis
func (api *API) ListQuotes(c *gin.Context) {
	quotes, err := api.quoteService.List()
	if err != nil {
		api.handleError(c, err, "Error listing quotes")
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// GetQuote obtient un devis par ID
func (api *API) GetQuote(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	quote, err := api.quoteService.Get(id)
	if err != nil {
		api.handleError(c, err, "Error getting quote")
		return
	}

	c.JSON(http.StatusOK, quote)
}

// CreateQuote crée un devis
func (api *API) CreateQuote(c *gin.Context) {
	var req models.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationErrorResponse("Format de requête invalide", []models.ErrorDetail{
			{Field: "body", Issue: err.Error()},
		}))
		return
	}

	quote, err := api.quoteService.Create(&req)
	if err != nil {
		api.handleError(c, err, "Error creating quote")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": quote.ID})
}

// UpdateQuote applique une mise à jour partielle d'un devis
func (api *API) UpdateQuote(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	var req models.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationErrorResponse("Format de requête invalide", []models.ErrorDetail{
			{Field: "body", Issue: err.Error()},
		}))
		return
	}

	if err := api.quoteService.Update(id, &req); err != nil {
		api.handleError(c, err, "Error updating quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteQuote supprime un devis non converti
func (api *API) DeleteQuote(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	if err := api.quoteService.Delete(id); err != nil {
		api.handleError(c, err, "Error deleting quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
