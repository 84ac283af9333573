package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorium/tutorium-backend/internal/model"
	"github.com/tutorium/tutorium-backend/internal/reporting"
)

// OverviewRepository supplies the read-only snapshot slices the overview
// composer consumes. Every method is an independent read; the service
// layer fans them out concurrently.
type OverviewRepository struct {
	pool *pgxpool.Pool
}

// NewOverviewRepository creates a new OverviewRepository.
func NewOverviewRepository(pool *pgxpool.Pool) *OverviewRepository {
	return &OverviewRepository{pool: pool}
}

// GetSummaryCounts retrieves the headline entity counts.
func (r *OverviewRepository) GetSummaryCounts(ctx context.Context) (students, classes, levels, subjects int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM levels),
			(SELECT COUNT(*) FROM subjects)`,
	).Scan(&students, &classes, &levels, &subjects)
	return
}

// GetInvoiceStatusCounts retrieves the distribution of invoices by status.
func (r *OverviewRepository) GetInvoiceStatusCounts(ctx context.Context) (map[model.InvoiceStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM invoices GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.InvoiceStatus]int)
	for rows.Next() {
		var status model.InvoiceStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// ListClassSnapshots retrieves every class with its enrollment count,
// override count and level name, preserving a stable name order.
func (r *OverviewRepository) ListClassSnapshots(ctx context.Context) ([]reporting.ClassSnapshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name, c.subject_id, c.teacher_name, c.pricing_mode,
			c.per_student_cents, c.fixed_total_cents, c.teacher_fixed_pay_cents,
			c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM enrollments e WHERE e.class_id = c.id),
			(SELECT COUNT(*) FROM price_overrides o WHERE o.class_id = c.id),
			COALESCE(l.name, '')
		 FROM classes c
		 LEFT JOIN subjects s ON c.subject_id = s.id
		 LEFT JOIN tracks t ON s.track_id = t.id
		 LEFT JOIN levels l ON t.level_id = l.id
		 ORDER BY c.name, c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []reporting.ClassSnapshot{}
	for rows.Next() {
		var cs reporting.ClassSnapshot
		c := &cs.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.SubjectID, &c.TeacherName, &c.PricingMode,
			&c.PerStudentCents, &c.FixedTotalCents, &c.TeacherFixedPayCents,
			&c.CreatedAt, &c.UpdatedAt,
			&cs.EnrolledCount, &cs.OverrideCount, &cs.LevelName); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, cs)
	}
	return snapshots, rows.Err()
}

// ListStudentLevelRows retrieves one row per student-enrollment link with
// the level name reachable through it. Students with no enrollments still
// appear, with an empty level name, so the composer can bucket them as
// unassigned.
func (r *OverviewRepository) ListStudentLevelRows(ctx context.Context) ([]reporting.StudentLevelRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT st.id, COALESCE(l.name, '')
		 FROM students st
		 LEFT JOIN enrollments e ON e.student_id = st.id
		 LEFT JOIN classes c ON e.class_id = c.id
		 LEFT JOIN subjects s ON c.subject_id = s.id
		 LEFT JOIN tracks t ON s.track_id = t.id
		 LEFT JOIN levels l ON t.level_id = l.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []reporting.StudentLevelRow{}
	for rows.Next() {
		var row reporting.StudentLevelRow
		if err := rows.Scan(&row.StudentID, &row.LevelName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListScheduleSlots retrieves every weekly slot joined with its class name
// and teacher for schedule expansion.
func (r *OverviewRepository) ListScheduleSlots(ctx context.Context) ([]reporting.ScheduleSlot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ct.id, ct.class_id, c.name, c.teacher_name,
			ct.day_of_week, ct.start_minutes, ct.end_minutes
		 FROM class_times ct
		 JOIN classes c ON ct.class_id = c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := []reporting.ScheduleSlot{}
	for rows.Next() {
		var s reporting.ScheduleSlot
		if err := rows.Scan(&s.SlotID, &s.ClassID, &s.ClassName, &s.TeacherName,
			&s.DayOfWeek, &s.StartMinutes, &s.EndMinutes); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// ListRecentInvoices retrieves the last N issued invoices with their
// student's name parts.
func (r *OverviewRepository) ListRecentInvoices(ctx context.Context, limit int) ([]reporting.RecentInvoiceRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT i.id, i.student_id, i.status, i.billed_month, i.due_date,
			i.subtotal_cents, i.paid_cents, i.issued_at, i.created_at, i.updated_at,
			st.first_name, st.last_name, st.email
		 FROM invoices i
		 JOIN students st ON i.student_id = st.id
		 ORDER BY i.issued_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []reporting.RecentInvoiceRow{}
	for rows.Next() {
		var row reporting.RecentInvoiceRow
		inv := &row.Invoice
		if err := rows.Scan(&inv.ID, &inv.StudentID, &inv.Status, &inv.BilledMonth, &inv.DueDate,
			&inv.SubtotalCents, &inv.PaidCents, &inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt,
			&row.FirstName, &row.LastName, &row.Email); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListRecentPayments retrieves the last N payments with their payer's
// name parts.
func (r *OverviewRepository) ListRecentPayments(ctx context.Context, limit int) ([]reporting.RecentPaymentRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.invoice_id, p.student_id, p.amount_cents, p.method, p.paid_at, p.created_at,
			st.first_name, st.last_name, st.email
		 FROM payments p
		 JOIN students st ON p.student_id = st.id
		 ORDER BY p.paid_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []reporting.RecentPaymentRow{}
	for rows.Next() {
		var row reporting.RecentPaymentRow
		p := &row.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.StudentID, &p.AmountCents, &p.Method, &p.PaidAt, &p.CreatedAt,
			&row.FirstName, &row.LastName, &row.Email); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
