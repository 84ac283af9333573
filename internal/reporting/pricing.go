package reporting

import "github.com/tutorium/tutorium-backend/internal/model"

// MonthlyRevenueCents computes the expected monthly revenue of a class.
// FIXED_TOTAL classes yield the fixed total regardless of enrollment;
// PER_STUDENT classes yield price × enrolled count. Missing monetary
// fields are zero-valued, so absent prices resolve to zero revenue.
func MonthlyRevenueCents(class model.Class, enrolledCount int) int64 {
	if class.PricingMode == model.PricingFixedTotal {
		return class.FixedTotalCents
	}
	return class.PerStudentCents * int64(enrolledCount)
}

// EffectivePerStudentCents returns the per-student display price of a class.
// For FIXED_TOTAL classes this is the fixed total itself, not divided by
// enrollment. Callers must not treat it as a divisible share.
func EffectivePerStudentCents(class model.Class) int64 {
	if class.PricingMode == model.PricingFixedTotal {
		return class.FixedTotalCents
	}
	return class.PerStudentCents
}
