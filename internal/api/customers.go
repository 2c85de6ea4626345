package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hypernova-labs/purchase-service/internal/models"
)

// ListCustomers lista todos los clientes
func (api *API) ListCustomers(c *gin.Context) {
	customers, err := api.customerService.FindAll(c.Request.Context())
	if err != nil {
		api.logger.WithError(err).Error("Error listing customers")
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("Error retrieving customers"))
		return
	}

	c.JSON(http.StatusOK, customers)
}

// SearchCustomers busca clientes por nombre, INN y tipo
func (api *API) SearchCustomers(c *gin.Context) {
	filter := models.CustomerFilter{
		Name: c.Query("name"),
		Inn:  c.Query("inn"),
	}

	if raw := c.Query("isOrganization"); raw != "" {
		isOrganization, ok := parseFlag(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, models.NewValidationError("Invalid query parameter", []models.ErrorDetail{
				{Field: "isOrganization", Issue: "Must be true/false, yes/no, on/off or 1/0"},
			}))
			return
		}
		filter.IsOrganization = &isOrganization
	}

	customers, err := api.customerService.Search(c.Request.Context(), filter)
	if err != nil {
		api.logger.WithError(err).Error("Error searching customers")
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("Error searching customers"))
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer obtiene un cliente por código
func (api *API) GetCustomer(c *gin.Context) {
	code := c.Param("code")

	customer, err := api.customerService.FindByCode(c.Request.Context(), code)
	if err != nil {
		api.logger.WithError(err).Error("Error getting customer")
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("Error retrieving customer"))
		return
	}
	if customer == nil {
		c.JSON(http.StatusNotFound, models.NewErrorResponse(fmt.Sprintf("customer %s not found", code)))
		return
	}

	c.JSON(http.StatusOK, customer)
}

// CreateCustomer crea un nuevo cliente
func (api *API) CreateCustomer(c *gin.Context) {
	var req models.CustomerRequest
	if !api.bindJSON(c, &req) || !api.validate(c, req.Validate()) {
		return
	}

	customer, err := api.customerService.Create(c.Request.Context(), &req)
	if err != nil {
		api.logger.WithError(err).WithField("customer_code", req.CustomerCode).Warn("Error creating customer")
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer actualiza un cliente existente.
// Un cliente inexistente responde 400, igual que cualquier otro fallo de escritura.
func (api *API) UpdateCustomer(c *gin.Context) {
	code := c.Param("code")

	var req models.CustomerRequest
	if !api.bindJSON(c, &req) || !api.validate(c, req.Validate()) {
		return
	}

	customer, err := api.customerService.Update(c.Request.Context(), code, &req)
	if err != nil {
		api.logger.WithError(err).WithField("customer_code", code).Warn("Error updating customer")
		c.JSON(http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer elimina un cliente
func (api *API) DeleteCustomer(c *gin.Context) {
	code := c.Param("code")

	if err := api.customerService.Delete(c.Request.Context(), code); err != nil {
		api.respondDeleteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseFlag acepta true/false, yes/no, on/off y 1/0 sin distinguir mayúsculas
func parseFlag(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}

// respondDeleteError mapea los errores de borrado a HTTP
func (api *API) respondDeleteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.NewErrorResponse(err.Error()))
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, models.NewErrorResponse(err.Error()))
	default:
		api.logger.WithError(err).Error("Error deleting record")
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("Error deleting record"))
	}
}
