package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorium/tutorium-backend/internal/model"
)

// ClassRepository handles class, enrollment, schedule-slot and
// price-override data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

const classColumns = `id, name, subject_id, teacher_name, pricing_mode,
	per_student_cents, fixed_total_cents, teacher_fixed_pay_cents,
	created_at, updated_at`

func scanClass(row interface{ Scan(...any) error }, c *model.Class) error {
	return row.Scan(&c.ID, &c.Name, &c.SubjectID, &c.TeacherName, &c.PricingMode,
		&c.PerStudentCents, &c.FixedTotalCents, &c.TeacherFixedPayCents,
		&c.CreatedAt, &c.UpdatedAt)
}

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c := &model.Class{}
	row := r.pool.QueryRow(ctx, `SELECT `+classColumns+` FROM classes WHERE id = $1`, id)
	if err := scanClass(row, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all classes ordered by name.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+classColumns+` FROM classes ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := scanClass(rows, &c); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (name, subject_id, teacher_name, pricing_mode,
			per_student_cents, fixed_total_cents, teacher_fixed_pay_cents)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.SubjectID, c.TeacherName, c.PricingMode,
		c.PerStudentCents, c.FixedTotalCents, c.TeacherFixedPayCents,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing class.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE classes SET name = $1, subject_id = $2, teacher_name = $3,
			pricing_mode = $4, per_student_cents = $5, fixed_total_cents = $6,
			teacher_fixed_pay_cents = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		c.Name, c.SubjectID, c.TeacherName, c.PricingMode,
		c.PerStudentCents, c.FixedTotalCents, c.TeacherFixedPayCents, c.ID,
	)
	return err
}

// Delete removes a class by its ID. Enrollments, slots and overrides
// cascade; invoices with line items referencing it do not.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return err
}

// ─── Enrollment ─────────────────────────────────────────────────────

// ListEnrolledStudentIDs retrieves the IDs of students enrolled in a class.
func (r *ClassRepository) ListEnrolledStudentIDs(ctx context.Context, classID int) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id FROM enrollments WHERE class_id = $1 ORDER BY student_id`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Enroll links a student to a class. Enrolling twice violates the primary
// key and surfaces as a unique violation.
func (r *ClassRepository) Enroll(ctx context.Context, classID, studentID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO enrollments (class_id, student_id) VALUES ($1, $2)`,
		classID, studentID)
	return err
}

// Unenroll removes a student from a class. Returns the number of rows
// removed so callers can distinguish "was not enrolled".
func (r *ClassRepository) Unenroll(ctx context.Context, classID, studentID int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM enrollments WHERE class_id = $1 AND student_id = $2`,
		classID, studentID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ─── Weekly time slots ──────────────────────────────────────────────

// ListTimes retrieves the weekly slots of a class ordered by day and start.
func (r *ClassRepository) ListTimes(ctx context.Context, classID int) ([]model.ClassTime, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, class_id, day_of_week, start_minutes, end_minutes, created_at, updated_at
		 FROM class_times WHERE class_id = $1 ORDER BY day_of_week, start_minutes`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []model.ClassTime
	for rows.Next() {
		var t model.ClassTime
		if err := rows.Scan(&t.ID, &t.ClassID, &t.DayOfWeek, &t.StartMinutes, &t.EndMinutes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// CreateTime inserts a weekly slot for a class.
func (r *ClassRepository) CreateTime(ctx context.Context, t *model.ClassTime) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO class_times (class_id, day_of_week, start_minutes, end_minutes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		t.ClassID, t.DayOfWeek, t.StartMinutes, t.EndMinutes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// UpdateTime modifies an existing weekly slot.
func (r *ClassRepository) UpdateTime(ctx context.Context, t *model.ClassTime) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE class_times SET day_of_week = $1, start_minutes = $2, end_minutes = $3,
			updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4 AND class_id = $5`,
		t.DayOfWeek, t.StartMinutes, t.EndMinutes, t.ID, t.ClassID,
	)
	return err
}

// DeleteTime removes a weekly slot.
func (r *ClassRepository) DeleteTime(ctx context.Context, classID, timeID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM class_times WHERE id = $1 AND class_id = $2`, timeID, classID)
	return err
}

// ─── Price overrides ────────────────────────────────────────────────

// ListOverrides retrieves the per-student price overrides of a class.
func (r *ClassRepository) ListOverrides(ctx context.Context, classID int) ([]model.PriceOverride, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, class_id, student_id, override_cents, created_at, updated_at
		 FROM price_overrides WHERE class_id = $1 ORDER BY student_id`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []model.PriceOverride
	for rows.Next() {
		var o model.PriceOverride
		if err := rows.Scan(&o.ID, &o.ClassID, &o.StudentID, &o.OverrideCents, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

// SetOverride upserts the override for one student in one class.
func (r *ClassRepository) SetOverride(ctx context.Context, o *model.PriceOverride) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO price_overrides (class_id, student_id, override_cents)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (class_id, student_id)
		 DO UPDATE SET override_cents = EXCLUDED.override_cents, updated_at = CURRENT_TIMESTAMP
		 RETURNING id, created_at, updated_at`,
		o.ClassID, o.StudentID, o.OverrideCents,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

// DeleteOverride removes one student's override in a class.
func (r *ClassRepository) DeleteOverride(ctx context.Context, classID, studentID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM price_overrides WHERE class_id = $1 AND student_id = $2`,
		classID, studentID)
	return err
}
