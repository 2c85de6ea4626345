package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hypernova-labs/purchase-service/internal/models"
)

// ListLots lista todos los lotes
func (api *API) ListLots(c *gin.Context) {
	lots, err := api.lotService.FindAll(c.Request.Context())
	if err != nil {
		api.logger.WithError(err).Error("Error listing lots")
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("Error retrieving lots"))
		return
	}

	c.JSON(http.StatusOK, lots)
}

// SearchLots busca lotes por nombre, cliente y moneda
func (api *API) SearchLots(c *gin.Context) {
	filter := models.LotFilter{
		LotName:      c.Query("lotName"),
		CustomerCode: c.Query("customerCode"),
		CurrencyCode: c.Query("currencyCode"),
	}

	lots, err := api.lotService.Search(c.Request.Context(), filter)
	if err != nil {
		api.logger.WithError(err).Error("Error searching lots")
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("Error searching lots"))
		return
	}

	c.JSON(http.StatusOK, lots)
}

// GetLot obtiene un lote por ID
func (api *API) GetLot(c *gin.Context) {
	id, ok := api.parseLotID(c)
	if !ok {
		return
	}

	lot, err := api.lotService.FindByID(c.Request.Context(), id)
	if err != nil {
		api.logger.WithError(err).Error("Error getting lot")
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("Error retrieving lot"))
		return
	}
	if lot == nil {
		c.JSON(http.StatusNotFound, models.NewErrorResponse(fmt.Sprintf("lot %d not found", id)))
		return
	}

	c.JSON(http.StatusOK, lot)
}

// CreateLot crea un nuevo lote
func (api *API) CreateLot(c *gin.Context) {
	var req models.LotRequest
	if !api.bindJSON(c, &req) || !api.validate(c, req.Validate()) {
		return
	}

	lot, err := api.lotService.Create(c.Request.Context(), &req)
	if err != nil {
		api.logger.WithError(err).Warn("Error creating lot")
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, lot)
}

// UpdateLot actualiza un lote existente
func (api *API) UpdateLot(c *gin.Context) {
	id, ok := api.parseLotID(c)
	if !ok {
		return
	}

	var req models.LotRequest
	if !api.bindJSON(c, &req) || !api.validate(c, req.Validate()) {
		return
	}

	lot, err := api.lotService.Update(c.Request.Context(), id, &req)
	if err != nil {
		api.logger.WithError(err).WithField("lot_id", id).Warn("Error updating lot")
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, lot)
}

// DeleteLot elimina un lote
func (api *API) DeleteLot(c *gin.Context) {
	id, ok := api.parseLotID(c)
	if !ok {
		return
	}

	if err := api.lotService.Delete(c.Request.Context(), id); err != nil {
		api.respondDeleteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (api *API) parseLotID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewValidationError("Invalid lot ID", []models.ErrorDetail{
			{Field: "id", Issue: "Must be an integer"},
		}))
		return 0, false
	}
	return id, true
}
