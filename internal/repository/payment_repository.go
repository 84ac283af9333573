package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorium/tutorium-backend/internal/model"
)

// PaymentRepository handles read access to recorded payments.
// Writes happen through InvoiceRepository.RecordPayment so the invoice
// totals stay consistent.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// ListByInvoice retrieves the payments recorded against one invoice.
func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, invoice_id, student_id, amount_cents, method, paid_at, created_at
		 FROM payments WHERE invoice_id = $1 ORDER BY paid_at DESC`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.StudentID, &p.AmountCents, &p.Method, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return payments, rows.Err()
}
