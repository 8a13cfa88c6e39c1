package api

import (
	"net/http"

	"github.com/facturio/compta-service/internal/models"
	"github.com/gin-gonic/gin"
)

// ListClients obtient tous les clients
func (api *API) ListClients(c *gin.Context) {
	clients, err := api.clientService.List()
	if err != nil {
		api.handleError(c, err, "Error listing clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient obtient un client par ID
func (api *API) GetClient(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	client, err := api.clientService.Get(id)
	if err != nil {
		api.handleError(c, err, "Error getting client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// CreateClient crée un client
func (api *API) CreateClient(c *gin.Context) {
	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationErrorResponse("Format de requête invalide", []models.ErrorDetail{
			{Field: "body", Issue: err.Error()},
		}))
		return
	}

	client, err := api.clientService.Create(&req)
	if err != nil {
		api.handleError(c, err, "Error creating client")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": client.ID})
}

// UpdateClient applique une mise à jour partielle d'un client
func (api *API) UpdateClient(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	var req models.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationErrorResponse("Format de requête invalide", []models.ErrorDetail{
			{Field: "body", Issue: err.Error()},
		}))
		return
	}

	if err := api.clientService.Update(id, &req); err != nil {
		api.handleError(c, err, "Error updating client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteClient supprime un client
func (api *API) DeleteClient(c *gin.Context) {
	id, ok := api.parseID(c)
	if !ok {
		return
	}

	if err := api.clientService.Delete(id); err != nil {
		api.handleError(c, err, "Error deleting client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
