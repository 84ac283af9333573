package reporting

import (
	"testing"

	"github.com/tutorium/tutorium-backend/internal/model"
)

func TestMonthlyRevenueCentsFixedTotalIgnoresEnrollment(t *testing.T) {
	class := model.Class{
		PricingMode:     model.PricingFixedTotal,
		FixedTotalCents: 20000,
		PerStudentCents: 9999, // must be ignored under FIXED_TOTAL
	}

	for _, enrolled := range []int{0, 1, 3, 10, 250} {
		if got := MonthlyRevenueCents(class, enrolled); got != 20000 {
			t.Errorf("enrolled=%d: got %d, want 20000", enrolled, got)
		}
	}
}

func TestMonthlyRevenueCentsPerStudentScalesLinearly(t *testing.T) {
	class := model.Class{
		PricingMode:     model.PricingPerStudent,
		PerStudentCents: 5000,
	}

	unit := MonthlyRevenueCents(class, 1)
	for _, enrolled := range []int{0, 1, 2, 7, 40} {
		want := int64(enrolled) * unit
		if got := MonthlyRevenueCents(class, enrolled); got != want {
			t.Errorf("enrolled=%d: got %d, want %d", enrolled, got, want)
		}
	}
}

func TestMonthlyRevenueCentsMissingPricesDefaultToZero(t *testing.T) {
	if got := MonthlyRevenueCents(model.Class{PricingMode: model.PricingPerStudent}, 12); got != 0 {
		t.Errorf("per-student with no price: got %d, want 0", got)
	}
	if got := MonthlyRevenueCents(model.Class{PricingMode: model.PricingFixedTotal}, 12); got != 0 {
		t.Errorf("fixed-total with no price: got %d, want 0", got)
	}
}

// The fixed total is reused verbatim as the per-student display price, not
// divided by enrollment. That mirrors the historical dashboard behavior;
// change this test only alongside a deliberate product decision.
func TestEffectivePerStudentCentsFixedTotalIsVerbatim(t *testing.T) {
	class := model.Class{
		PricingMode:     model.PricingFixedTotal,
		FixedTotalCents: 30000,
	}
	if got := EffectivePerStudentCents(class); got != 30000 {
		t.Errorf("got %d, want the undivided fixed total 30000", got)
	}
}

func TestEffectivePerStudentCentsPerStudent(t *testing.T) {
	class := model.Class{
		PricingMode:     model.PricingPerStudent,
		PerStudentCents: 4500,
	}
	if got := EffectivePerStudentCents(class); got != 4500 {
		t.Errorf("got %d, want 4500", got)
	}
}
