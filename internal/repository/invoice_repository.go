package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorium/tutorium-backend/internal/model"
)

// ErrNothingDue is returned when a payment targets an invoice that is
// already fully covered.
var ErrNothingDue = errors.New("invoice has no outstanding amount")

// InvoiceRepository handles invoice, line-item and payment data access.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

const invoiceColumns = `id, student_id, status, billed_month, due_date,
	subtotal_cents, paid_cents, issued_at, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }, inv *model.Invoice) error {
	return row.Scan(&inv.ID, &inv.StudentID, &inv.Status, &inv.BilledMonth, &inv.DueDate,
		&inv.SubtotalCents, &inv.PaidCents, &inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt)
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv := &model.Invoice{}
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	if err := scanInvoice(row, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// List retrieves invoices, optionally filtered by status, newest first.
func (r *InvoiceRepository) List(ctx context.Context, status model.InvoiceStatus, limit int) ([]model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY issued_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	return invoices, rows.Err()
}

// ListLineItems retrieves the line items of one invoice in creation order.
func (r *InvoiceRepository) ListLineItems(ctx context.Context, invoiceID uuid.UUID) ([]model.InvoiceLineItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, invoice_id, class_id, description, billed_month,
			line_total_cents, paid_cents, created_at
		 FROM invoice_line_items WHERE invoice_id = $1 ORDER BY created_at, id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLineItems(rows)
}

// ListLineItemsBilledSince retrieves every line item whose billed month is
// on or after the given date. Feeds the month-bucketed revenue trend.
func (r *InvoiceRepository) ListLineItemsBilledSince(ctx context.Context, from time.Time) ([]model.InvoiceLineItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, invoice_id, class_id, description, billed_month,
			line_total_cents, paid_cents, created_at
		 FROM invoice_line_items WHERE billed_month >= $1`, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLineItems(rows)
}

func collectLineItems(rows pgx.Rows) ([]model.InvoiceLineItem, error) {
	var items []model.InvoiceLineItem
	for rows.Next() {
		var it model.InvoiceLineItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ClassID, &it.Description,
			&it.BilledMonth, &it.LineTotalCents, &it.PaidCents, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if items == nil {
		items = []model.InvoiceLineItem{}
	}
	return items, rows.Err()
}

// CreateWithItems inserts an invoice and its line items atomically.
// The invoice subtotal is taken as the sum of the items. Returns false
// without error when the student already has an invoice for the month.
func (r *InvoiceRepository) CreateWithItems(ctx context.Context, inv *model.Invoice, items []model.InvoiceLineItem) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var subtotal int64
	for _, it := range items {
		subtotal += it.LineTotalCents
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO invoices (student_id, status, billed_month, due_date, subtotal_cents)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (student_id, billed_month) DO NOTHING
		 RETURNING id, issued_at, created_at, updated_at`,
		inv.StudentID, model.InvoiceStatusPending, inv.BilledMonth, inv.DueDate, subtotal,
	).Scan(&inv.ID, &inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil // Already billed for this month.
	}
	if err != nil {
		return false, fmt.Errorf("insert invoice: %w", err)
	}
	inv.Status = model.InvoiceStatusPending
	inv.SubtotalCents = subtotal

	for i := range items {
		items[i].InvoiceID = inv.ID
		if _, err := tx.Exec(ctx,
			`INSERT INTO invoice_line_items (invoice_id, class_id, description, billed_month, line_total_cents)
			 VALUES ($1, $2, $3, $4, $5)`,
			inv.ID, items[i].ClassID, items[i].Description, items[i].BilledMonth, items[i].LineTotalCents,
		); err != nil {
			return false, fmt.Errorf("insert line item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// RecordPayment inserts a payment and applies it to the invoice
// atomically: the invoice's paid total grows, the amount is allocated to
// line items oldest first, and the status flips to PAID once covered.
func (r *InvoiceRepository) RecordPayment(ctx context.Context, p *model.Payment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	inv := &model.Invoice{}
	row := tx.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, p.InvoiceID)
	if err := scanInvoice(row, inv); err != nil {
		return fmt.Errorf("lock invoice: %w", err)
	}
	if inv.Status == model.InvoiceStatusPaid || inv.Status == model.InvoiceStatusVoid {
		return ErrNothingDue
	}

	p.StudentID = inv.StudentID
	err = tx.QueryRow(ctx,
		`INSERT INTO payments (invoice_id, student_id, amount_cents, method, paid_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		p.InvoiceID, p.StudentID, p.AmountCents, p.Method, p.PaidAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	newPaid := inv.PaidCents + p.AmountCents
	status := inv.Status
	if newPaid >= inv.SubtotalCents {
		status = model.InvoiceStatusPaid
	}
	if _, err := tx.Exec(ctx,
		`UPDATE invoices SET paid_cents = $1, status = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		newPaid, status, inv.ID,
	); err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}

	if err := r.allocateToLineItems(ctx, tx, inv.ID, p.AmountCents); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// allocateToLineItems spreads a payment across an invoice's unpaid line
// items in creation order until the amount is exhausted.
func (r *InvoiceRepository) allocateToLineItems(ctx context.Context, tx pgx.Tx, invoiceID uuid.UUID, amount int64) error {
	rows, err := tx.Query(ctx,
		`SELECT id, line_total_cents, paid_cents
		 FROM invoice_line_items
		 WHERE invoice_id = $1 AND paid_cents < line_total_cents
		 ORDER BY created_at, id
		 FOR UPDATE`, invoiceID)
	if err != nil {
		return fmt.Errorf("lock line items: %w", err)
	}

	type allocation struct {
		id   uuid.UUID
		paid int64
	}
	var allocations []allocation
	for rows.Next() {
		var id uuid.UUID
		var total, paid int64
		if err := rows.Scan(&id, &total, &paid); err != nil {
			rows.Close()
			return err
		}
		if amount <= 0 {
			break
		}
		applied := total - paid
		if applied > amount {
			applied = amount
		}
		allocations = append(allocations, allocation{id: id, paid: paid + applied})
		amount -= applied
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, a := range allocations {
		if _, err := tx.Exec(ctx,
			`UPDATE invoice_line_items SET paid_cents = $1 WHERE id = $2`, a.paid, a.id); err != nil {
			return fmt.Errorf("update line item: %w", err)
		}
	}
	return nil
}

// MarkOverdueBefore transitions unpaid PENDING invoices whose due date has
// passed to OVERDUE. Returns how many invoices transitioned.
func (r *InvoiceRepository) MarkOverdueBefore(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET status = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE status = $2 AND due_date < $3 AND paid_cents < subtotal_cents`,
		model.InvoiceStatusOverdue, model.InvoiceStatusPending, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListOverdue retrieves all invoices currently flagged OVERDUE.
func (r *InvoiceRepository) ListOverdue(ctx context.Context) ([]model.Invoice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE status = $1`,
		model.InvoiceStatusOverdue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	return invoices, rows.Err()
}
