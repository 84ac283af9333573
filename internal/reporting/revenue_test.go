package reporting

import (
	"testing"
	"time"

	"github.com/tutorium/tutorium-backend/internal/model"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestAggregateByMonthEmptyInputZeroFills(t *testing.T) {
	buckets := AggregateByMonth(nil, 6, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))

	if len(buckets) != 6 {
		t.Fatalf("got %d buckets, want 6", len(buckets))
	}
	wantKeys := []string{"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06"}
	for i, b := range buckets {
		if b.Month != wantKeys[i] {
			t.Errorf("bucket %d: got key %q, want %q", i, b.Month, wantKeys[i])
		}
		if b.InvoicedCents != 0 || b.PaidCents != 0 {
			t.Errorf("bucket %s: got %d/%d, want 0/0", b.Month, b.InvoicedCents, b.PaidCents)
		}
	}
}

func TestAggregateByMonthSumsItemsIntoOwnMonth(t *testing.T) {
	items := []model.InvoiceLineItem{
		{BilledMonth: month(2025, time.March), LineTotalCents: 1000, PaidCents: 400},
		{BilledMonth: month(2025, time.March), LineTotalCents: 500, PaidCents: 500},
		{BilledMonth: month(2025, time.April), LineTotalCents: 700},
		{BilledMonth: month(2024, time.December), LineTotalCents: 9999}, // outside window
	}

	buckets := AggregateByMonth(items, 3, month(2025, time.April))
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}

	march := buckets[1]
	if march.Month != "2025-03" || march.InvoicedCents != 1500 || march.PaidCents != 900 {
		t.Errorf("march: got %+v, want 2025-03 invoiced=1500 paid=900", march)
	}
	april := buckets[2]
	if april.InvoicedCents != 700 || april.PaidCents != 0 {
		t.Errorf("april: got %+v, want invoiced=700 paid=0", april)
	}
	feb := buckets[0]
	if feb.Month != "2025-02" || feb.InvoicedCents != 0 {
		t.Errorf("february: got %+v, want zero bucket 2025-02", feb)
	}
}

func TestAggregateByMonthYearBoundary(t *testing.T) {
	buckets := AggregateByMonth(nil, 4, month(2025, time.February))
	wantKeys := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
	for i, b := range buckets {
		if b.Month != wantKeys[i] {
			t.Errorf("bucket %d: got %q, want %q", i, b.Month, wantKeys[i])
		}
	}
}

func TestSummarizeRangeZeroInvoicedHasZeroRate(t *testing.T) {
	s := SummarizeRange(nil, month(2025, time.January), month(2025, time.February))
	if s.PaymentRate != 0 {
		t.Errorf("got rate %f, want exactly 0", s.PaymentRate)
	}
	if s.InvoicedCents != 0 || s.PaidCents != 0 || s.RemainingCents != 0 {
		t.Errorf("got %+v, want all-zero summary", s)
	}
}

func TestSummarizeRangeHalfOpenBounds(t *testing.T) {
	items := []model.InvoiceLineItem{
		{BilledMonth: month(2025, time.January), LineTotalCents: 100, PaidCents: 60},
		{BilledMonth: month(2025, time.February), LineTotalCents: 200, PaidCents: 200},
		{BilledMonth: month(2025, time.March), LineTotalCents: 400}, // == end, excluded
	}

	s := SummarizeRange(items, month(2025, time.January), month(2025, time.March))
	if s.InvoicedCents != 300 || s.PaidCents != 260 || s.RemainingCents != 40 {
		t.Errorf("got %+v, want invoiced=300 paid=260 remaining=40", s)
	}
	if want := 260.0 / 300.0; s.PaymentRate != want {
		t.Errorf("got rate %f, want %f", s.PaymentRate, want)
	}
}

func TestSummarizeRangeOverpaymentGoesNegative(t *testing.T) {
	items := []model.InvoiceLineItem{
		{BilledMonth: month(2025, time.May), LineTotalCents: 100, PaidCents: 150},
	}
	s := SummarizeRange(items, month(2025, time.May), month(2025, time.June))
	if s.RemainingCents != -50 {
		t.Errorf("got remaining %d, want -50 (not clamped)", s.RemainingCents)
	}
}

func TestOverdueTotalClampsPerInvoice(t *testing.T) {
	invoices := []model.Invoice{
		{SubtotalCents: 1000, PaidCents: 300},  // owes 700
		{SubtotalCents: 500, PaidCents: 500},   // fully paid, owes 0
		{SubtotalCents: 200, PaidCents: 900},   // overpaid, owes 0 not -700
		{SubtotalCents: 4000, PaidCents: 1000}, // owes 3000
	}

	s := OverdueTotal(invoices)
	if s.InvoiceCount != 4 {
		t.Errorf("got count %d, want 4", s.InvoiceCount)
	}
	if s.OutstandingCents != 3700 {
		t.Errorf("got outstanding %d, want 3700", s.OutstandingCents)
	}
}

func TestMonthKeyZeroPadsAndUsesUTC(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	// 01:00 WIB on April 1st is still March 31st in UTC.
	key := MonthKey(time.Date(2025, 4, 1, 1, 0, 0, 0, jakarta))
	if key != "2025-03" {
		t.Errorf("got %q, want %q", key, "2025-03")
	}
}
