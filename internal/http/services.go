package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mrlokans/telecom/internal/entities"
	"github.com/mrlokans/telecom/internal/logger"
)

type ServicesController struct {
	services ServiceStore
	log      *logger.Logger
}

func NewServicesController(svcs ServiceStore, log *logger.Logger) *ServicesController {
	return &ServicesController{services: svcs, log: log}
}

type CreateServiceRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// List handles GET /api/services
func (s *ServicesController) List(c *gin.Context) {
	svcs, err := s.services.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, s.log, err)
		return
	}
	c.JSON(http.StatusOK, svcs)
}

// Create handles POST /api/services
func (s *ServicesController) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if isBlank(req.Name) {
		respondBadRequest(c, "name is required")
		return
	}
	if req.Price.IsNegative() {
		respondBadRequest(c, "price must not be negative")
		return
	}

	svc, err := s.services.Add(c.Request.Context(), entities.NewService(req.Name, req.Price))
	if err != nil {
		respondStoreError(c, s.log, err)
		return
	}
	respondCreated(c, svc)
}
