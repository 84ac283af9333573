package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tutorium/tutorium-backend/internal/model"
	"github.com/tutorium/tutorium-backend/internal/reporting"
	"github.com/tutorium/tutorium-backend/internal/repository"
	"github.com/tutorium/tutorium-backend/internal/response"
	"github.com/tutorium/tutorium-backend/internal/service"
	"github.com/tutorium/tutorium-backend/internal/validator"
)

const defaultInvoiceListLimit = 50

// BillingHandler exposes billing endpoints: run generation, invoices,
// payments and revenue reports.
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// RunBilling godoc
// POST /api/v1/admin/billing/runs
// Enqueues invoice generation for one month. The worker picks it up
// asynchronously; 202 means accepted, not completed.
func (h *BillingHandler) RunBilling(c *gin.Context) {
	var req model.BillingRunRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.billingService.EnqueueRun(c.Request.Context(), req.Month); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMonth):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidMonth)
		case errors.Is(err, service.ErrBillingRunActive):
			response.Fail(c, http.StatusConflict, response.ErrBillingRunActive)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"month": req.Month, "queued": true})
}

// ListInvoices godoc
// GET /api/v1/admin/invoices?status=PENDING&limit=50
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	status := model.InvoiceStatus(c.Query("status"))
	switch status {
	case "", model.InvoiceStatusPending, model.InvoiceStatusPaid,
		model.InvoiceStatusOverdue, model.InvoiceStatusVoid:
	default:
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	limit := defaultInvoiceListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		limit = n
	}

	invoices, err := h.billingService.ListInvoices(c.Request.Context(), status, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invoices": invoices})
}

// GetInvoice godoc
// GET /api/v1/admin/invoices/:id
// Returns the invoice with its line items and payments.
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	invoice, items, payments, err := h.billingService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"invoice":  invoice,
		"items":    items,
		"payments": payments,
	})
}

// RecordPayment godoc
// POST /api/v1/admin/invoices/:id/payments
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RecordPaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	payment := &model.Payment{
		InvoiceID:   id,
		AmountCents: req.AmountCents,
		Method:      req.Method,
	}
	if err := h.billingService.RecordPayment(c.Request.Context(), payment); err != nil {
		if errors.Is(err, repository.ErrNothingDue) {
			response.Fail(c, http.StatusConflict, response.ErrInvoiceNotOpen)
			return
		}
		if isNotFound(err) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": payment})
}

// MonthlyTrend godoc
// GET /api/v1/admin/billing/trend?months=6
// Returns invoiced/paid totals per month, oldest first, zero-filled.
func (h *BillingHandler) MonthlyTrend(c *gin.Context) {
	months := reporting.TrendMonths
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		months = n
	}

	buckets, err := h.billingService.MonthlyTrend(c.Request.Context(), months)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"trend": buckets})
}

// OverdueSummary godoc
// GET /api/v1/admin/billing/overdue
func (h *BillingHandler) OverdueSummary(c *gin.Context) {
	summary, invoices, err := h.billingService.OverdueSummary(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"summary":  summary,
		"invoices": invoices,
	})
}
