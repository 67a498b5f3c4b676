package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mrlokans/telecom/internal/entities"
	"github.com/mrlokans/telecom/internal/logger"
)

const issueDateLayout = "2006-01-02"

type InvoicesController struct {
	invoices InvoiceStore
	log      *logger.Logger
}

func NewInvoicesController(invs InvoiceStore, log *logger.Logger) *InvoicesController {
	return &InvoicesController{invoices: invs, log: log}
}

type CreateInvoiceRequest struct {
	SubscriberID uint            `json:"subscriber_id"`
	Amount       decimal.Decimal `json:"amount"`
	IssueDate    string          `json:"issue_date"` // YYYY-MM-DD, today when empty
	Paid         bool            `json:"paid"`
}

type PayResponse struct {
	ID   uint `json:"id"`
	Paid bool `json:"paid"`
}

// ListUnpaid handles GET /api/invoices/unpaid
func (h *InvoicesController) ListUnpaid(c *gin.Context) {
	invs, err := h.invoices.FindUnpaid(c.Request.Context())
	if err != nil {
		respondStoreError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, invs)
}

// Create handles POST /api/invoices
func (h *InvoicesController) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.SubscriberID == 0 {
		respondBadRequest(c, "subscriber_id is required")
		return
	}

	issued := time.Now().UTC().Truncate(24 * time.Hour)
	if req.IssueDate != "" {
		parsed, err := time.Parse(issueDateLayout, req.IssueDate)
		if err != nil {
			respondBadRequest(c, "issue_date must be YYYY-MM-DD")
			return
		}
		issued = parsed
	}

	inv := &entities.Invoice{Amount: req.Amount, IssueDate: issued, Paid: req.Paid, SubscriberID: req.SubscriberID}
	created, err := h.invoices.Add(c.Request.Context(), inv)
	if err != nil {
		respondStoreError(c, h.log, err)
		return
	}
	respondCreated(c, created)
}

// Pay handles POST /api/invoices/:id/pay
func (h *InvoicesController) Pay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	paid, err := h.invoices.Pay(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, PayResponse{ID: id, Paid: paid})
}
