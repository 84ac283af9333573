package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tutorium/tutorium-backend/internal/config"
	"github.com/tutorium/tutorium-backend/internal/model"
	"github.com/tutorium/tutorium-backend/internal/reporting"
	"github.com/tutorium/tutorium-backend/internal/repository"
)

// Billing errors surfaced to handlers.
var (
	ErrInvalidMonth     = errors.New("month must be formatted as YYYY-MM")
	ErrBillingRunActive = errors.New("billing run already in progress for this month")
)

// billingRunLockTTL guards against double-enqueueing a month while a run
// is still being consumed.
const billingRunLockTTL = 10 * time.Minute

// BillingService owns invoice generation, payments and billing reports.
type BillingService struct {
	cfg         *config.Config
	invoiceRepo *repository.InvoiceRepository
	classRepo   *repository.ClassRepository
	paymentRepo *repository.PaymentRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewBillingService creates a new BillingService.
func NewBillingService(
	cfg *config.Config,
	invoiceRepo *repository.InvoiceRepository,
	classRepo *repository.ClassRepository,
	paymentRepo *repository.PaymentRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *BillingService {
	return &BillingService{
		cfg:         cfg,
		invoiceRepo: invoiceRepo,
		classRepo:   classRepo,
		paymentRepo: paymentRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "billing_service").Logger(),
	}
}

// ParseMonth parses a "YYYY-MM" string into the UTC first-of-month date.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return t, nil
}

// EnqueueRun pushes a billing run for one month onto the worker queue.
// A short-lived Redis lock rejects duplicate enqueues for the same month.
func (s *BillingService) EnqueueRun(ctx context.Context, month string) error {
	if _, err := ParseMonth(month); err != nil {
		return err
	}

	lockKey := config.CacheKey.BillingRunLockKey(month)
	ok, err := s.rdb.SetNX(ctx, lockKey, "1", billingRunLockTTL).Result()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return ErrBillingRunActive
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.BillingRunQueue, month).Err(); err != nil {
		// Release the lock so the month can be retried.
		s.rdb.Del(ctx, lockKey)
		return fmt.Errorf("enqueue run: %w", err)
	}
	return nil
}

// GenerateMonthlyInvoices creates one invoice per enrolled student for the
// billed month, with one line item per class the student attends. The
// per-student charge is the class override when present, otherwise the
// class's effective per-student price. Students already invoiced for the
// month are skipped. Returns how many invoices were created.
func (s *BillingService) GenerateMonthlyInvoices(ctx context.Context, billedMonth time.Time) (int, error) {
	classes, err := s.classRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list classes: %w", err)
	}

	// Collect each student's charges across all their classes.
	itemsByStudent := make(map[int][]model.InvoiceLineItem)
	for _, class := range classes {
		studentIDs, err := s.classRepo.ListEnrolledStudentIDs(ctx, class.ID)
		if err != nil {
			return 0, fmt.Errorf("list roster of class %d: %w", class.ID, err)
		}
		if len(studentIDs) == 0 {
			continue
		}

		overrides, err := s.classRepo.ListOverrides(ctx, class.ID)
		if err != nil {
			return 0, fmt.Errorf("list overrides of class %d: %w", class.ID, err)
		}
		overrideByStudent := make(map[int]int64, len(overrides))
		for _, o := range overrides {
			overrideByStudent[o.StudentID] = o.OverrideCents
		}

		for _, studentID := range studentIDs {
			charge := reporting.EffectivePerStudentCents(class)
			if cents, ok := overrideByStudent[studentID]; ok {
				charge = cents
			}
			itemsByStudent[studentID] = append(itemsByStudent[studentID], model.InvoiceLineItem{
				ClassID:        class.ID,
				Description:    fmt.Sprintf("%s - %s", class.Name, billedMonth.Format("January 2006")),
				BilledMonth:    billedMonth,
				LineTotalCents: charge,
			})
		}
	}

	dueDate := time.Now().UTC().AddDate(0, 0, s.cfg.InvoiceDueDays)
	created := 0
	for studentID, items := range itemsByStudent {
		inv := &model.Invoice{
			StudentID:   studentID,
			BilledMonth: billedMonth,
			DueDate:     dueDate,
		}
		inserted, err := s.invoiceRepo.CreateWithItems(ctx, inv, items)
		if err != nil {
			return created, fmt.Errorf("invoice student %d: %w", studentID, err)
		}
		if inserted {
			created++
		}
	}

	s.log.Info().
		Str("billed_month", reporting.MonthKey(billedMonth)).
		Int("created", created).
		Int("students", len(itemsByStudent)).
		Msg("Billing run completed")

	return created, nil
}

// ListInvoices retrieves invoices, optionally filtered by status.
func (s *BillingService) ListInvoices(ctx context.Context, status model.InvoiceStatus, limit int) ([]model.Invoice, error) {
	return s.invoiceRepo.List(ctx, status, limit)
}

// GetInvoice retrieves one invoice with its line items and payments.
func (s *BillingService) GetInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, []model.InvoiceLineItem, []model.Payment, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	items, err := s.invoiceRepo.ListLineItems(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	payments, err := s.paymentRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	return inv, items, payments, nil
}

// RecordPayment applies a payment to an invoice.
func (s *BillingService) RecordPayment(ctx context.Context, p *model.Payment) error {
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now().UTC()
	}
	return s.invoiceRepo.RecordPayment(ctx, p)
}

// MonthlyTrend aggregates invoiced/paid totals into month buckets for the
// monthsBack months ending at the current month.
func (s *BillingService) MonthlyTrend(ctx context.Context, monthsBack int) ([]reporting.MonthBucket, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthsBack - 1), 0)
	items, err := s.invoiceRepo.ListLineItemsBilledSince(ctx, from)
	if err != nil {
		return nil, err
	}
	return reporting.AggregateByMonth(items, monthsBack, now), nil
}

// OverdueSummary totals the outstanding amount across overdue invoices.
func (s *BillingService) OverdueSummary(ctx context.Context) (reporting.OverdueSummary, []model.Invoice, error) {
	invoices, err := s.invoiceRepo.ListOverdue(ctx)
	if err != nil {
		return reporting.OverdueSummary{}, nil, err
	}
	return reporting.OverdueTotal(invoices), invoices, nil
}
