package api

import (
	"net/http"

	"github.com/facturio/compta-service/internal/models"
	"github.com/gin-gonic/gin"
)

// ListInvoices obtient toutes les factures
func (api *API) ListInvoices(c *gin.Context) {
	invoices, err := api.invoiceService.List()
	if err != nil {
		api.handleError(c, err, "Error listing invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice obtient une facture par ID
func (api *API) GetInvoice(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	invoice, err := api.invoiceService.Get(id)
	if err != nil {
		api.handleError(c, err, "Error getting invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetInvoiceEvents obtient le journal d'audit d'une facture
func (api *API) GetInvoiceEvents(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	events, err := api.invoiceService.GetEvents(id)
	if err != nil {
		api.handleError(c, err, "Error getting invoice events")
		return
	}

	c.JSON(http.StatusOK, events)
}

// CreateInvoice crée une facture, éventuellement à partir d'un devis
func (api *API) CreateInvoice(c *gin.Context) {
	var req models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationErrorResponse("Format de requête invalide", []models.ErrorDetail{
			{Field: "body", Issue: err.Error()},
		}))
		return
	}

	invoice, err := api.invoiceService.Create(&req)
	if err != nil {
		api.handleError(c, err, "Error creating invoice")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": invoice.ID})
}

// UpdateInvoice applique une mise à jour partielle d'une facture
func (api *API) UpdateInvoice(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	var req models.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationErrorResponse("Format de requête invalide", []models.ErrorDetail{
			{Field: "body", Issue: err.Error()},
		}))
		return
	}

	if err := api.invoiceService.Update(id, &req); err != nil {
		api.handleError(c, err, "Error updating invoice")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteInvoice supprime une facture encore en Brouillon
func (api *API) DeleteInvoice(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	if err := api.invoiceService.Delete(id); err != nil {
		api.handleError(c, err, "Error deleting invoice")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
