package model

import "time"

// PricingMode selects how a class's monthly charge is derived.
type PricingMode string

const (
	// PricingPerStudent charges every enrolled student the per-student price.
	PricingPerStudent PricingMode = "PER_STUDENT"
	// PricingFixedTotal charges one fixed total regardless of enrollment.
	PricingFixedTotal PricingMode = "FIXED_TOTAL"
)

// Class is a taught group: a subject, a teacher, a pricing policy and a
// roster of enrolled students. All monetary fields are integer cents.
// Exactly one of PerStudentCents/FixedTotalCents is meaningful per Mode;
// the other is ignored, not required to be zero.
type Class struct {
	ID                   int         `json:"id"`
	Name                 string      `json:"name"`
	SubjectID            int         `json:"subject_id"`
	TeacherName          string      `json:"teacher_name"`
	PricingMode          PricingMode `json:"pricing_mode"`
	PerStudentCents      int64       `json:"per_student_cents"`
	FixedTotalCents      int64       `json:"fixed_total_cents"`
	TeacherFixedPayCents int64       `json:"teacher_fixed_pay_cents"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// ClassTime is a weekly-repeating meeting window for a class.
// DayOfWeek follows time.Weekday numbering (0 = Sunday), minutes are
// minute-of-day in UTC. EndMinutes > StartMinutes is enforced at the
// API boundary, never by the reporting core.
type ClassTime struct {
	ID           int       `json:"id"`
	ClassID      int       `json:"class_id"`
	DayOfWeek    int       `json:"day_of_week"`
	StartMinutes int       `json:"start_minutes"`
	EndMinutes   int       `json:"end_minutes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PriceOverride replaces the per-student charge for one student in one class.
type PriceOverride struct {
	ID            int       `json:"id"`
	ClassID       int       `json:"class_id"`
	StudentID     int       `json:"student_id"`
	OverrideCents int64     `json:"override_cents"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateClassRequest is the payload for creating or updating a class.
type CreateClassRequest struct {
	Name                 string      `json:"name" binding:"required,min=1,max=150"`
	SubjectID            int         `json:"subject_id" binding:"required"`
	TeacherName          string      `json:"teacher_name" binding:"omitempty,max=150"`
	PricingMode          PricingMode `json:"pricing_mode" binding:"required,oneof=PER_STUDENT FIXED_TOTAL"`
	PerStudentCents      int64       `json:"per_student_cents" binding:"omitempty,min=0"`
	FixedTotalCents      int64       `json:"fixed_total_cents" binding:"omitempty,min=0"`
	TeacherFixedPayCents int64       `json:"teacher_fixed_pay_cents" binding:"omitempty,min=0"`
}

// CreateClassTimeRequest is the payload for adding or updating a weekly slot.
type CreateClassTimeRequest struct {
	DayOfWeek    int `json:"day_of_week" binding:"min=0,max=6"`
	StartMinutes int `json:"start_minutes" binding:"min=0,max=1439"`
	EndMinutes   int `json:"end_minutes" binding:"min=1,max=1439"`
}

// SetPriceOverrideRequest is the payload for overriding one student's charge.
type SetPriceOverrideRequest struct {
	StudentID     int   `json:"student_id" binding:"required"`
	OverrideCents int64 `json:"override_cents" binding:"min=0"`
}

// EnrollStudentRequest is the payload for enrolling a student in a class.
type EnrollStudentRequest struct {
	StudentID int `json:"student_id" binding:"required"`
}
