package api

import (
	"net/http"

	"github.com/facturio/compta-service/internal/models"
	"github.com/gin-gonic/gin"
)

// ListExpenses obtient toutes les dépenses
func (api *API) ListExpenses(c *gin.Context) {
	expenses, err := api.expenseService.List()
	if err != nil {
		api.handleError(c, err, "Error listing expenses")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpense obtient une dépense par ID
func (api *API) GetExpense(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	expense, err := api.expenseService.Get(id)
	if err != nil {
		api.handleError(c, err, "Error getting expense")
		return
	}

	c.JSON(http.StatusOK, expense)
}

// CreateExpense crée une dépense, justificatif data URI inclus
func (api *API) CreateExpense(c *gin.Context) {
	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationErrorResponse("Format de requête invalide", []models.ErrorDetail{
			{Field: "body", Issue: err.Error()},
		}))
		return
	}

	expense, err := api.expenseService.Create(&req)
	if err != nil {
		api.handleError(c, err, "Error creating expense")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": expense.ID})
}

// UpdateExpense applique une mise à jour partielle d'une dépense
func (api *API) UpdateExpense(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	var req models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationErrorResponse("Format de requête invalide", []models.ErrorDetail{
			{Field: "body", Issue: err.Error()},
		}))
		return
	}

	if err := api.expenseService.Update(id, &req); err != nil {
		api.handleError(c, err, "Error updating expense")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteExpense supprime une dépense
func (api *API) DeleteExpense(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	if err := api.expenseService.Delete(id); err != nil {
		api.handleError(c, err, "Error deleting expense")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
