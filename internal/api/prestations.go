package api

import (
	"net/http"

	"github.com/facturio/compta-service/internal/models"
	"github.com/gin-gonic/gin"
)

// ListPrestations obtient tout le catalogue
func (api *API) ListPrestations(c *gin.Context) {
	prestations, err := api.prestationService.List()
	if err != nil {
		api.handleError(c, err, "Error listing prestations")
		return
	}

	c.JSON(http.StatusOK, prestations)
}

// CreatePrestation crée une prestation du catalogue
func (api *API) CreatePrestation(c *gin.Context) {
	var req models.CreatePrestationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationErrorResponse("Format de requête invalide", []models.ErrorDetail{
			{Field: "body", Issue: err.Error()},
		}))
		return
	}

	prestation, err := api.prestationService.Create(&req)
	if err != nil {
		api.handleError(c, err, "Error creating prestation")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": prestation.ID})
}
