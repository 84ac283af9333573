package reporting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tutorium/tutorium-backend/internal/model"
)

func TestComposeTopClassesRanking(t *testing.T) {
	snap := Snapshot{
		Now: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		Classes: []ClassSnapshot{
			{
				Class: model.Class{
					ID: 1, Name: "Algebra",
					PricingMode:     model.PricingPerStudent,
					PerStudentCents: 5000,
				},
				EnrolledCount: 3,
			},
			{
				Class: model.Class{
					ID: 2, Name: "Chemistry",
					PricingMode:     model.PricingFixedTotal,
					FixedTotalCents: 20000,
				},
				EnrolledCount: 10,
			},
		},
	}

	top := Compose(snap).Academics.TopClasses
	if len(top) != 2 {
		t.Fatalf("got %d top classes, want 2", len(top))
	}
	if top[0].ClassID != 2 {
		t.Errorf("got class %d first, want the 10-student class", top[0].ClassID)
	}
	if top[0].EstimatedRevenueCents != 20000 {
		t.Errorf("fixed-total revenue: got %d, want 20000", top[0].EstimatedRevenueCents)
	}
	if top[1].EstimatedRevenueCents != 15000 {
		t.Errorf("per-student revenue: got %d, want 15000", top[1].EstimatedRevenueCents)
	}
}

func TestComposeTopClassesStableOnTiesAndLimited(t *testing.T) {
	classes := make([]ClassSnapshot, 7)
	for i := range classes {
		classes[i] = ClassSnapshot{
			Class:         model.Class{ID: i + 1, PricingMode: model.PricingPerStudent},
			EnrolledCount: 4, // all tied
		}
	}

	top := Compose(Snapshot{Now: time.Now().UTC(), Classes: classes}).Academics.TopClasses
	if len(top) != 5 {
		t.Fatalf("got %d top classes, want 5", len(top))
	}
	for i, tc := range top {
		if tc.ClassID != i+1 {
			t.Errorf("position %d: got class %d, want snapshot order preserved", i, tc.ClassID)
		}
	}
}

func TestStudentsByLevelMultiMembership(t *testing.T) {
	rows := []StudentLevelRow{
		// Student 1 reaches two distinct levels through two classes.
		{StudentID: 1, LevelName: "Primary"},
		{StudentID: 1, LevelName: "Secondary"},
		// Student 2 reaches the same level twice; counted once.
		{StudentID: 2, LevelName: "Primary"},
		{StudentID: 2, LevelName: "Primary"},
		// Student 3 has no level path at all.
		{StudentID: 3, LevelName: ""},
	}

	hist := studentsByLevel(rows)
	if hist["Primary"] != 2 {
		t.Errorf("Primary: got %d, want 2", hist["Primary"])
	}
	if hist["Secondary"] != 1 {
		t.Errorf("Secondary: got %d, want 1", hist["Secondary"])
	}
	if hist[UnassignedLevel] != 1 {
		t.Errorf("Unassigned: got %d, want 1", hist[UnassignedLevel])
	}
}

func TestStudentsByLevelAssignedStudentNeverUnassigned(t *testing.T) {
	rows := []StudentLevelRow{
		// An enrollment row with a level and another without, same student.
		{StudentID: 1, LevelName: "Primary"},
		{StudentID: 1, LevelName: ""},
	}

	hist := studentsByLevel(rows)
	if hist[UnassignedLevel] != 0 {
		t.Errorf("Unassigned: got %d, want 0", hist[UnassignedLevel])
	}
	if hist["Primary"] != 1 {
		t.Errorf("Primary: got %d, want 1", hist["Primary"])
	}
}

func TestComposeUpcomingSessionsHorizonAndLimit(t *testing.T) {
	// 20 daily pairs of slots would exceed the display cap.
	slots := make([]ScheduleSlot, 0, 14)
	for day := 0; day < 7; day++ {
		slots = append(slots,
			ScheduleSlot{SlotID: day*2 + 1, ClassID: 1, DayOfWeek: day, StartMinutes: 540, EndMinutes: 600},
			ScheduleSlot{SlotID: day*2 + 2, ClassID: 2, DayOfWeek: day, StartMinutes: 600, EndMinutes: 660},
		)
	}

	report := Compose(Snapshot{Now: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Slots: slots})
	sessions := report.Schedule.UpcomingSessions
	if len(sessions) != 15 {
		t.Fatalf("got %d sessions, want the 15-item cap", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartsAt.Before(sessions[i-1].StartsAt) {
			t.Fatalf("sessions out of order at %d", i)
		}
	}
}

func TestComposeCurrentMonthAndTrend(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	items := []model.InvoiceLineItem{
		{BilledMonth: month(2025, time.March), LineTotalCents: 1000, PaidCents: 400},
		{BilledMonth: month(2025, time.March), LineTotalCents: 500, PaidCents: 500},
		{BilledMonth: month(2025, time.February), LineTotalCents: 800, PaidCents: 800},
	}

	report := Compose(Snapshot{Now: now, LineItems: items})

	cur := report.Payments.CurrentMonth
	if cur.InvoicedCents != 1500 || cur.PaidCents != 900 || cur.RemainingCents != 600 {
		t.Errorf("current month: got %+v, want invoiced=1500 paid=900 remaining=600", cur)
	}

	trend := report.Payments.MonthlyTrend
	if len(trend) != TrendMonths {
		t.Fatalf("got %d trend buckets, want %d", len(trend), TrendMonths)
	}
	if trend[0].Month != "2024-10" || trend[TrendMonths-1].Month != "2025-03" {
		t.Errorf("trend window: got %s..%s, want 2024-10..2025-03",
			trend[0].Month, trend[TrendMonths-1].Month)
	}
}

func TestComposeRecentDisplayNames(t *testing.T) {
	paidAt := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Now: paidAt,
		RecentInvoices: []RecentInvoiceRow{
			{Invoice: model.Invoice{ID: uuid.New(), Status: model.InvoiceStatusPending}, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
			{Invoice: model.Invoice{ID: uuid.New(), Status: model.InvoiceStatusPaid}, FirstName: " ", LastName: "", Email: "anon@example.com"},
		},
		RecentPayments: []RecentPaymentRow{
			{Payment: model.Payment{ID: uuid.New(), AmountCents: 5000, PaidAt: paidAt}, FirstName: "Grace", LastName: "", Email: "grace@example.com"},
		},
	}

	report := Compose(snap)
	if got := report.Payments.RecentInvoices[0].StudentName; got != "Ada Lovelace" {
		t.Errorf("got %q, want %q", got, "Ada Lovelace")
	}
	if got := report.Payments.RecentInvoices[1].StudentName; got != "anon@example.com" {
		t.Errorf("blank name: got %q, want email fallback", got)
	}
	if got := report.Payments.RecentPayments[0].StudentName; got != "Grace" {
		t.Errorf("single name part: got %q, want %q", got, "Grace")
	}
}

func TestComposeEmptySnapshotIsTotal(t *testing.T) {
	report := Compose(Snapshot{Now: time.Now().UTC()})

	if report.Payments.StatusCounts == nil {
		t.Error("status counts should be an empty map, not nil")
	}
	if report.Payments.RecentInvoices == nil || report.Payments.RecentPayments == nil {
		t.Error("recent lists should be empty slices, not nil")
	}
	if report.Schedule.UpcomingSessions == nil {
		t.Error("upcoming sessions should be an empty slice, not nil")
	}
	if len(report.Payments.MonthlyTrend) != TrendMonths {
		t.Errorf("got %d trend buckets, want %d", len(report.Payments.MonthlyTrend), TrendMonths)
	}
}
