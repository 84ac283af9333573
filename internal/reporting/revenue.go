package reporting

import (
	"fmt"
	"time"

	"github.com/tutorium/tutorium-backend/internal/model"
)

// MonthBucket accumulates invoiced and paid totals for one calendar month.
// Month is the UTC year-month key, e.g. "2025-03".
type MonthBucket struct {
	Month         string `json:"month"`
	InvoicedCents int64  `json:"invoiced_cents"`
	PaidCents     int64  `json:"paid_cents"`
}

// RangeSummary totals line items whose billed month falls in a half-open
// range. RemainingCents may be negative when overpaid; PaymentRate is
// exactly 0 when nothing was invoiced.
type RangeSummary struct {
	InvoicedCents  int64   `json:"invoiced_cents"`
	PaidCents      int64   `json:"paid_cents"`
	RemainingCents int64   `json:"remaining_cents"`
	PaymentRate    float64 `json:"payment_rate"`
}

// OverdueSummary totals the outstanding amount across overdue invoices.
type OverdueSummary struct {
	InvoiceCount     int   `json:"invoice_count"`
	OutstandingCents int64 `json:"outstanding_cents"`
}

// MonthKey derives the UTC "YYYY-MM" bucket key of an instant.
func MonthKey(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%04d-%02d", u.Year(), int(u.Month()))
}

// AggregateByMonth folds line items into month buckets for the monthsBack
// months ending at (and including) the anchor's month, oldest first.
// Months with no matching items appear as zero buckets; items billed
// outside the window are ignored. Every item contributes to the bucket of
// its own billed month regardless of its invoice's overall status.
func AggregateByMonth(items []model.InvoiceLineItem, monthsBack int, anchor time.Time) []MonthBucket {
	buckets := []MonthBucket{}
	if monthsBack <= 0 {
		return buckets
	}

	a := anchor.UTC()
	anchorMonth := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, time.UTC)

	index := make(map[string]int, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		key := MonthKey(anchorMonth.AddDate(0, -i, 0))
		index[key] = len(buckets)
		buckets = append(buckets, MonthBucket{Month: key})
	}

	for _, item := range items {
		i, ok := index[MonthKey(item.BilledMonth)]
		if !ok {
			continue
		}
		buckets[i].InvoicedCents += item.LineTotalCents
		buckets[i].PaidCents += item.PaidCents
	}

	return buckets
}

// SummarizeRange totals line items whose billed month falls in [start, end).
func SummarizeRange(items []model.InvoiceLineItem, start, end time.Time) RangeSummary {
	var s RangeSummary
	for _, item := range items {
		billed := item.BilledMonth.UTC()
		if billed.Before(start) || !billed.Before(end) {
			continue
		}
		s.InvoicedCents += item.LineTotalCents
		s.PaidCents += item.PaidCents
	}
	s.RemainingCents = s.InvoicedCents - s.PaidCents
	if s.InvoicedCents > 0 {
		s.PaymentRate = float64(s.PaidCents) / float64(s.InvoicedCents)
	}
	return s
}

// OverdueTotal sums the outstanding remainder of invoices already flagged
// overdue by the invoice lifecycle. Each invoice contributes
// max(0, subtotal - paid): a fully- or over-paid invoice owes nothing even
// if its status has not transitioned yet.
func OverdueTotal(invoices []model.Invoice) OverdueSummary {
	s := OverdueSummary{InvoiceCount: len(invoices)}
	for _, inv := range invoices {
		if remaining := inv.SubtotalCents - inv.PaidCents; remaining > 0 {
			s.OutstandingCents += remaining
		}
	}
	return s
}
