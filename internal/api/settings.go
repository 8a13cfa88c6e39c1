package api

import (
	"net/http"

	"github.com/facturio/compta-service/internal/models"
	"github.com/gin-gonic/gin"
)

// GetSettings obtient tous les réglages, valeurs décodées
func (api *API) GetSettings(c *gin.Context) {
	settings, err := api.settingsService.GetAll()
	if err != nil {
		api.handleError(c, err, "Error getting settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings remplace les valeurs des clés fournies
func (api *API) UpdateSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationErrorResponse("Format de requête invalide", []models.ErrorDetail{
			{Field: "body", Issue: err.Error()},
		}))
		return
	}

	if err := api.settingsService.Update(settings); err != nil {
		api.handleError(c, err, "Error updating settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
