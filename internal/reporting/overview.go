package reporting

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tutorium/tutorium-backend/internal/model"
)

const (
	// DefaultHorizonDays bounds schedule expansion for the overview.
	DefaultHorizonDays = 7
	// TrendMonths is the depth of the month-bucketed revenue trend.
	TrendMonths = 6

	topClassLimit        = 5
	upcomingSessionLimit = 15

	// UnassignedLevel buckets students with no class→subject→track→level path.
	UnassignedLevel = "Unassigned"
)

// ClassSnapshot is one class row with the joined fields the overview needs.
type ClassSnapshot struct {
	Class         model.Class
	EnrolledCount int
	OverrideCount int
	LevelName     string
}

// StudentLevelRow links a student to one level name reachable through an
// enrollment. LevelName is empty when the student has no such path; a
// student appears once per (student, class) link, duplicates included.
type StudentLevelRow struct {
	StudentID int
	LevelName string
}

// RecentInvoiceRow is an invoice joined with its student's name parts.
type RecentInvoiceRow struct {
	Invoice   model.Invoice
	FirstName string
	LastName  string
	Email     string
}

// RecentPaymentRow is a payment joined with its payer's name parts.
type RecentPaymentRow struct {
	Payment   model.Payment
	FirstName string
	LastName  string
	Email     string
}

// Snapshot is the read-only input to Compose. All slices are fetched by
// external collaborators before composition begins; Compose never performs
// I/O and never mutates the snapshot.
type Snapshot struct {
	Now             time.Time
	TotalStudents   int
	TotalClasses    int
	TotalLevels     int
	TotalSubjects   int
	StatusCounts    map[model.InvoiceStatus]int
	Classes         []ClassSnapshot
	StudentLevels   []StudentLevelRow
	LineItems       []model.InvoiceLineItem
	OverdueInvoices []model.Invoice
	RecentInvoices  []RecentInvoiceRow
	RecentPayments  []RecentPaymentRow
	Slots           []ScheduleSlot
}

// CountsReport is the headline entity counts group.
type CountsReport struct {
	Students int `json:"students"`
	Classes  int `json:"classes"`
	Levels   int `json:"levels"`
	Subjects int `json:"subjects"`
}

// TopClass is one entry of the top-classes ranking.
type TopClass struct {
	ClassID               int               `json:"class_id"`
	Name                  string            `json:"name"`
	LevelName             string            `json:"level_name,omitempty"`
	PricingMode           model.PricingMode `json:"pricing_mode"`
	StudentCount          int               `json:"student_count"`
	OverrideCount         int               `json:"override_count"`
	EstimatedRevenueCents int64             `json:"estimated_revenue_cents"`
	PerStudentCents       int64             `json:"per_student_cents"`
}

// InvoiceDisplay is a recent invoice with its computed student name.
type InvoiceDisplay struct {
	ID            uuid.UUID           `json:"id"`
	StudentName   string              `json:"student_name"`
	Status        model.InvoiceStatus `json:"status"`
	SubtotalCents int64               `json:"subtotal_cents"`
	PaidCents     int64               `json:"paid_cents"`
	IssuedAt      time.Time           `json:"issued_at"`
}

// PaymentDisplay is a recent payment with its computed payer name.
type PaymentDisplay struct {
	ID          uuid.UUID `json:"id"`
	StudentName string    `json:"student_name"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method,omitempty"`
	PaidAt      time.Time `json:"paid_at"`
}

// PaymentsReport groups everything money-related on the overview.
type PaymentsReport struct {
	StatusCounts   map[model.InvoiceStatus]int `json:"status_counts"`
	CurrentMonth   RangeSummary                `json:"current_month"`
	Overdue        OverdueSummary              `json:"overdue"`
	RecentInvoices []InvoiceDisplay            `json:"recent_invoices"`
	RecentPayments []PaymentDisplay            `json:"recent_payments"`
	MonthlyTrend   []MonthBucket               `json:"monthly_trend"`
}

// AcademicsReport groups the academic-side aggregations.
type AcademicsReport struct {
	StudentsByLevel map[string]int `json:"students_by_level"`
	TopClasses      []TopClass     `json:"top_classes"`
}

// ScheduleReport carries the upcoming session list.
type ScheduleReport struct {
	UpcomingSessions []SessionInstance `json:"upcoming_sessions"`
}

// OverviewReport is the full dashboard payload. Monetary values are
// integer cents throughout; timestamps are UTC instants.
type OverviewReport struct {
	Counts    CountsReport    `json:"counts"`
	Payments  PaymentsReport  `json:"payments"`
	Academics AcademicsReport `json:"academics"`
	Schedule  ScheduleReport  `json:"schedule"`
}

// DisplayName joins trimmed name parts, falling back to the email when the
// result is empty.
func DisplayName(firstName, lastName, email string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		return email
	}
	return name
}

// Compose assembles the overview report from an already-fetched snapshot.
// It is a pure projection: deterministic, side-effect free and total over
// well-typed input.
func Compose(snap Snapshot) OverviewReport {
	now := snap.Now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	statusCounts := snap.StatusCounts
	if statusCounts == nil {
		statusCounts = map[model.InvoiceStatus]int{}
	}

	return OverviewReport{
		Counts: CountsReport{
			Students: snap.TotalStudents,
			Classes:  snap.TotalClasses,
			Levels:   snap.TotalLevels,
			Subjects: snap.TotalSubjects,
		},
		Payments: PaymentsReport{
			StatusCounts:   statusCounts,
			CurrentMonth:   SummarizeRange(snap.LineItems, monthStart, monthEnd),
			Overdue:        OverdueTotal(snap.OverdueInvoices),
			RecentInvoices: recentInvoices(snap.RecentInvoices),
			RecentPayments: recentPayments(snap.RecentPayments),
			MonthlyTrend:   AggregateByMonth(snap.LineItems, TrendMonths, now),
		},
		Academics: AcademicsReport{
			StudentsByLevel: studentsByLevel(snap.StudentLevels),
			TopClasses:      topClasses(snap.Classes),
		},
		Schedule: ScheduleReport{
			UpcomingSessions: upcomingSessions(snap.Slots, now),
		},
	}
}

// topClasses ranks classes by enrollment, descending, keeping snapshot
// order on ties, and returns the first five.
func topClasses(classes []ClassSnapshot) []TopClass {
	ranked := make([]TopClass, 0, len(classes))
	for _, cs := range classes {
		ranked = append(ranked, TopClass{
			ClassID:               cs.Class.ID,
			Name:                  cs.Class.Name,
			LevelName:             cs.LevelName,
			PricingMode:           cs.Class.PricingMode,
			StudentCount:          cs.EnrolledCount,
			OverrideCount:         cs.OverrideCount,
			EstimatedRevenueCents: MonthlyRevenueCents(cs.Class, cs.EnrolledCount),
			PerStudentCents:       EffectivePerStudentCents(cs.Class),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].StudentCount > ranked[j].StudentCount
	})

	if len(ranked) > topClassLimit {
		ranked = ranked[:topClassLimit]
	}
	return ranked
}

// studentsByLevel counts students per distinct reachable level. A student
// spanning several levels increments each of them once; a student with no
// level at all lands in the Unassigned bucket.
func studentsByLevel(rows []StudentLevelRow) map[string]int {
	levelsByStudent := make(map[int]map[string]struct{})
	for _, row := range rows {
		set, ok := levelsByStudent[row.StudentID]
		if !ok {
			set = make(map[string]struct{})
			levelsByStudent[row.StudentID] = set
		}
		if row.LevelName != "" {
			set[row.LevelName] = struct{}{}
		}
	}

	histogram := make(map[string]int)
	for _, set := range levelsByStudent {
		if len(set) == 0 {
			histogram[UnassignedLevel]++
			continue
		}
		for level := range set {
			histogram[level]++
		}
	}
	return histogram
}

func upcomingSessions(slots []ScheduleSlot, now time.Time) []SessionInstance {
	sessions := ExpandSchedule(slots, now, DefaultHorizonDays)
	if len(sessions) > upcomingSessionLimit {
		sessions = sessions[:upcomingSessionLimit]
	}
	return sessions
}

func recentInvoices(rows []RecentInvoiceRow) []InvoiceDisplay {
	out := make([]InvoiceDisplay, 0, len(rows))
	for _, row := range rows {
		out = append(out, InvoiceDisplay{
			ID:            row.Invoice.ID,
			StudentName:   DisplayName(row.FirstName, row.LastName, row.Email),
			Status:        row.Invoice.Status,
			SubtotalCents: row.Invoice.SubtotalCents,
			PaidCents:     row.Invoice.PaidCents,
			IssuedAt:      row.Invoice.IssuedAt,
		})
	}
	return out
}

func recentPayments(rows []RecentPaymentRow) []PaymentDisplay {
	out := make([]PaymentDisplay, 0, len(rows))
	for _, row := range rows {
		out = append(out, PaymentDisplay{
			ID:          row.Payment.ID,
			StudentName: DisplayName(row.FirstName, row.LastName, row.Email),
			AmountCents: row.Payment.AmountCents,
			Method:      row.Payment.Method,
			PaidAt:      row.Payment.PaidAt,
		})
	}
	return out
}
