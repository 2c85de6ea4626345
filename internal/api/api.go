package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hypernova-labs/purchase-service/internal/models"
	"github.com/sirupsen/logrus"
)

// CustomerService es lo que la API necesita del servicio de clientes
type CustomerService interface {
	FindAll(ctx context.Context) ([]models.Customer, error)
	FindByCode(ctx context.Context, code string) (*models.Customer, error)
	Search(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error)
	Create(ctx context.Context, req *models.CustomerRequest) (*models.Customer, error)
	Update(ctx context.Context, code string, req *models.CustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, code string) error
}

// LotService es lo que la API necesita del servicio de lotes
type LotService interface {
	FindAll(ctx context.Context) ([]models.Lot, error)
	FindByID(ctx context.Context, id int64) (*models.Lot, error)
	Search(ctx context.Context, filter models.LotFilter) ([]models.Lot, error)
	Create(ctx context.Context, req *models.LotRequest) (*models.Lot, error)
	Update(ctx context.Context, id int64, req *models.LotRequest) (*models.Lot, error)
	Delete(ctx context.Context, id int64) error
}

// HealthChecker verifica una dependencia externa
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// API maneja todos los endpoints de la API
type API struct {
	customerService CustomerService
	lotService      LotService
	health          HealthChecker
	rateLimitStore  HealthChecker
	logger          *logrus.Logger
}

// NewAPI crea una nueva instancia de la API
func NewAPI(
	customerService CustomerService,
	lotService LotService,
	health HealthChecker,
	logger *logrus.Logger,
) *API {
	return &API{
		customerService: customerService,
		lotService:      lotService,
		health:          health,
		logger:          logger,
	}
}

// SetRateLimitStore agrega el store del rate limit al health check.
// Si falla, el servicio se reporta degradado pero sigue respondiendo 200.
func (api *API) SetRateLimitStore(store HealthChecker) {
	api.rateLimitStore = store
}

// RegisterRoutes registra los endpoints en el router
func (api *API) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", api.Health)

	apiGroup := router.Group("/api")
	{
		customers := apiGroup.Group("/customers")
		{
			customers.GET("", api.ListCustomers)
			customers.GET("/search", api.SearchCustomers)
			customers.GET("/:code", api.GetCustomer)
			customers.POST("", api.CreateCustomer)
			customers.PUT("/:code", api.UpdateCustomer)
			customers.DELETE("/:code", api.DeleteCustomer)
		}

		lots := apiGroup.Group("/lots")
		{
			lots.GET("", api.ListLots)
			lots.GET("/search", api.SearchLots)
			lots.GET("/:id", api.GetLot)
			lots.POST("", api.CreateLot)
			lots.PUT("/:id", api.UpdateLot)
			lots.DELETE("/:id", api.DeleteLot)
		}
	}
}

// Health verifica el estado del servicio y de la base de datos
func (api *API) Health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"service":   "purchase-service",
	}

	if api.health != nil {
		if err := api.health.HealthCheck(c.Request.Context()); err != nil {
			api.logger.WithError(err).Error("Health check failed")
			status = http.StatusServiceUnavailable
			body["status"] = "unavailable"
		}
	}

	if status == http.StatusOK && api.rateLimitStore != nil {
		if err := api.rateLimitStore.HealthCheck(c.Request.Context()); err != nil {
			api.logger.WithError(err).Warn("Rate limit store health check failed")
			body["status"] = "degraded"
		}
	}

	c.JSON(status, body)
}

// bindJSON parsea el body y responde 400 si no es válido
func (api *API) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		api.logger.WithError(err).Warn("Error binding request body")
		c.JSON(http.StatusBadRequest, models.NewValidationError("Invalid request format", []models.ErrorDetail{
			{Field: "body", Issue: err.Error()},
		}))
		return false
	}
	return true
}

// validate responde 400 con el detalle por campo si hay errores
func (api *API) validate(c *gin.Context, details []models.ErrorDetail) bool {
	if len(details) > 0 {
		c.JSON(http.StatusBadRequest, models.NewValidationError("Validation failed", details))
		return false
	}
	return true
}
