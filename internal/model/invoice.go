package model

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
	InvoiceStatusVoid    InvoiceStatus = "VOID"
)

// Invoice bills one student for one calendar month. SubtotalCents is the
// sum of its line items; PaidCents accumulates recorded payments.
type Invoice struct {
	ID            uuid.UUID     `json:"id"`
	StudentID     int           `json:"student_id"`
	Status        InvoiceStatus `json:"status"`
	BilledMonth   time.Time     `json:"billed_month"`
	DueDate       time.Time     `json:"due_date"`
	SubtotalCents int64         `json:"subtotal_cents"`
	PaidCents     int64         `json:"paid_cents"`
	IssuedAt      time.Time     `json:"issued_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// InvoiceLineItem is one charge on an invoice, attributed to a billed
// month independently of when the invoice was issued or paid.
type InvoiceLineItem struct {
	ID             uuid.UUID `json:"id"`
	InvoiceID      uuid.UUID `json:"invoice_id"`
	ClassID        int       `json:"class_id"`
	Description    string    `json:"description"`
	BilledMonth    time.Time `json:"billed_month"`
	LineTotalCents int64     `json:"line_total_cents"`
	PaidCents      int64     `json:"paid_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

// Payment records money received against an invoice.
type Payment struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	StudentID   int       `json:"student_id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	PaidAt      time.Time `json:"paid_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordPaymentRequest is the payload for recording a payment.
type RecordPaymentRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Method      string `json:"method" binding:"omitempty,max=50"`
}

// BillingRunRequest is the payload for enqueueing a monthly billing run.
// Month is "YYYY-MM".
type BillingRunRequest struct {
	Month string `json:"month" binding:"required,len=7"`
}
