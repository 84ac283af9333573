package service

import (
	"context"
	"errors"

	"github.com/tutorium/tutorium-backend/internal/model"
	"github.com/tutorium/tutorium-backend/internal/repository"
)

// ErrInvalidTimeRange is returned when a weekly slot would end at or
// before its start. The reporting core tolerates such rows; this boundary
// is where they are supposed to be stopped.
var ErrInvalidTimeRange = errors.New("end minutes must be after start minutes")

// ClassService handles class business logic: CRUD, enrollment, weekly
// slots and per-student price overrides.
type ClassService struct {
	classRepo *repository.ClassRepository
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository) *ClassService {
	return &ClassService{classRepo: classRepo}
}

// GetByID retrieves a class by its ID.
func (s *ClassService) GetByID(ctx context.Context, id int) (*model.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

// List retrieves all classes.
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	return s.classRepo.List(ctx)
}

// Create creates a new class.
func (s *ClassService) Create(ctx context.Context, class *model.Class) error {
	return s.classRepo.Create(ctx, class)
}

// Update modifies an existing class.
func (s *ClassService) Update(ctx context.Context, class *model.Class) error {
	return s.classRepo.Update(ctx, class)
}

// Delete removes a class. Invoiced classes are protected by a RESTRICT
// foreign key on line items; the handler maps that to a dependency error.
func (s *ClassService) Delete(ctx context.Context, id int) error {
	return s.classRepo.Delete(ctx, id)
}

// ListEnrolledStudentIDs retrieves the roster of a class.
func (s *ClassService) ListEnrolledStudentIDs(ctx context.Context, classID int) ([]int, error) {
	return s.classRepo.ListEnrolledStudentIDs(ctx, classID)
}

// Enroll adds a student to a class roster.
func (s *ClassService) Enroll(ctx context.Context, classID, studentID int) error {
	return s.classRepo.Enroll(ctx, classID, studentID)
}

// Unenroll removes a student from a class roster.
func (s *ClassService) Unenroll(ctx context.Context, classID, studentID int) (int64, error) {
	return s.classRepo.Unenroll(ctx, classID, studentID)
}

// ListTimes retrieves the weekly slots of a class.
func (s *ClassService) ListTimes(ctx context.Context, classID int) ([]model.ClassTime, error) {
	return s.classRepo.ListTimes(ctx, classID)
}

// CreateTime adds a weekly slot after validating its minute range.
func (s *ClassService) CreateTime(ctx context.Context, t *model.ClassTime) error {
	if t.EndMinutes <= t.StartMinutes {
		return ErrInvalidTimeRange
	}
	return s.classRepo.CreateTime(ctx, t)
}

// UpdateTime modifies a weekly slot after validating its minute range.
func (s *ClassService) UpdateTime(ctx context.Context, t *model.ClassTime) error {
	if t.EndMinutes <= t.StartMinutes {
		return ErrInvalidTimeRange
	}
	return s.classRepo.UpdateTime(ctx, t)
}

// DeleteTime removes a weekly slot.
func (s *ClassService) DeleteTime(ctx context.Context, classID, timeID int) error {
	return s.classRepo.DeleteTime(ctx, classID, timeID)
}

// ListOverrides retrieves the price overrides of a class.
func (s *ClassService) ListOverrides(ctx context.Context, classID int) ([]model.PriceOverride, error) {
	return s.classRepo.ListOverrides(ctx, classID)
}

// SetOverride upserts one student's price override in a class.
func (s *ClassService) SetOverride(ctx context.Context, o *model.PriceOverride) error {
	return s.classRepo.SetOverride(ctx, o)
}

// DeleteOverride removes one student's price override in a class.
func (s *ClassService) DeleteOverride(ctx context.Context, classID, studentID int) error {
	return s.classRepo.DeleteOverride(ctx, classID, studentID)
}
