package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mrlokans/telecom/internal/entities"
	"github.com/mrlokans/telecom/internal/logger"
)

type SubscribersController struct {
	subscribers SubscriberStore
	services    ServiceStore
	invoices    InvoiceStore
	log         *logger.Logger
}

func NewSubscribersController(subs SubscriberStore, svcs ServiceStore, invs InvoiceStore, log *logger.Logger) *SubscribersController {
	return &SubscribersController{subscribers: subs, services: svcs, invoices: invs, log: log}
}

type CreateSubscriberRequest struct {
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Balance decimal.Decimal `json:"balance"`
	Blocked bool            `json:"blocked"`
}

type LinkServiceRequest struct {
	ServiceID uint `json:"service_id"`
}

// SubscriberDetails is a subscriber with its services and invoices, plus the
// catalog so a client can offer services to link.
type SubscriberDetails struct {
	Subscriber  *entities.Subscriber `json:"subscriber"`
	Services    []entities.Service   `json:"services"`
	Invoices    []entities.Invoice   `json:"invoices"`
	AllServices []entities.Service   `json:"all_services"`
}

// List handles GET /api/subscribers
func (s *SubscribersController) List(c *gin.Context) {
	subs, err := s.subscribers.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, s.log, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// Details handles GET /api/subscribers/:id
func (s *SubscribersController) Details(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	sub, err := s.subscribers.FindByID(ctx, id)
	if err != nil {
		respondStoreError(c, s.log, err)
		return
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "subscriber not found", Code: "not_found"})
		return
	}

	linked, err := s.services.FindBySubscriberID(ctx, id)
	if err != nil {
		respondStoreError(c, s.log, err)
		return
	}
	invs, err := s.invoices.FindBySubscriberID(ctx, id)
	if err != nil {
		respondStoreError(c, s.log, err)
		return
	}
	all, err := s.services.FindAll(ctx)
	if err != nil {
		respondStoreError(c, s.log, err)
		return
	}

	c.JSON(http.StatusOK, SubscriberDetails{Subscriber: sub, Services: linked, Invoices: invs, AllServices: all})
}

// Create handles POST /api/subscribers
func (s *SubscribersController) Create(c *gin.Context) {
	var req CreateSubscriberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if isBlank(req.Name) || isBlank(req.Phone) {
		respondBadRequest(c, "name and phone are required")
		return
	}

	sub, err := s.subscribers.Add(c.Request.Context(), entities.NewSubscriber(req.Name, req.Phone, req.Balance, req.Blocked))
	if err != nil {
		respondStoreError(c, s.log, err)
		return
	}
	respondCreated(c, sub)
}

// Block handles POST /api/subscribers/:id/block
func (s *SubscribersController) Block(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.subscribers.Block(c.Request.Context(), id); err != nil {
		respondStoreError(c, s.log, err)
		return
	}
	respondSuccess(c, "subscriber blocked")
}

// LinkService handles POST /api/subscribers/:id/services
func (s *SubscribersController) LinkService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req LinkServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ServiceID == 0 {
		respondBadRequest(c, "service_id is required")
		return
	}

	if err := s.services.LinkServiceToSubscriber(c.Request.Context(), id, req.ServiceID); err != nil {
		respondStoreError(c, s.log, err)
		return
	}
	respondSuccess(c, "service linked")
}
