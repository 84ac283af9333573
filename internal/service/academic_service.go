package service

import (
	"context"
	"errors"

	"github.com/tutorium/tutorium-backend/internal/model"
	"github.com/tutorium/tutorium-backend/internal/repository"
)

// ErrNodeInUse is returned when deleting a hierarchy node that classes
// still reference, directly or through descendants.
var ErrNodeInUse = errors.New("academic node is referenced by classes")

// AcademicService handles the level → track → subject hierarchy.
type AcademicService struct {
	repo *repository.AcademicRepository
}

// NewAcademicService creates a new AcademicService.
func NewAcademicService(repo *repository.AcademicRepository) *AcademicService {
	return &AcademicService{repo: repo}
}

// ListLevels retrieves all levels.
func (s *AcademicService) ListLevels(ctx context.Context) ([]model.Level, error) {
	return s.repo.ListLevels(ctx)
}

// CreateLevel creates a new level.
func (s *AcademicService) CreateLevel(ctx context.Context, l *model.Level) error {
	return s.repo.CreateLevel(ctx, l)
}

// UpdateLevel modifies an existing level.
func (s *AcademicService) UpdateLevel(ctx context.Context, l *model.Level) error {
	return s.repo.UpdateLevel(ctx, l)
}

// DeleteLevel removes a level unless any class is reachable from it.
func (s *AcademicService) DeleteLevel(ctx context.Context, id int) error {
	n, err := s.repo.CountClassesUnderLevel(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrNodeInUse
	}
	return s.repo.DeleteLevel(ctx, id)
}

// ListTracks retrieves all tracks.
func (s *AcademicService) ListTracks(ctx context.Context) ([]model.Track, error) {
	return s.repo.ListTracks(ctx)
}

// CreateTrack creates a new track.
func (s *AcademicService) CreateTrack(ctx context.Context, t *model.Track) error {
	return s.repo.CreateTrack(ctx, t)
}

// UpdateTrack modifies an existing track.
func (s *AcademicService) UpdateTrack(ctx context.Context, t *model.Track) error {
	return s.repo.UpdateTrack(ctx, t)
}

// DeleteTrack removes a track unless any class is reachable from it.
func (s *AcademicService) DeleteTrack(ctx context.Context, id int) error {
	n, err := s.repo.CountClassesUnderTrack(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrNodeInUse
	}
	return s.repo.DeleteTrack(ctx, id)
}

// ListSubjects retrieves all subjects.
func (s *AcademicService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.repo.ListSubjects(ctx)
}

// CreateSubject creates a new subject.
func (s *AcademicService) CreateSubject(ctx context.Context, sub *model.Subject) error {
	return s.repo.CreateSubject(ctx, sub)
}

// UpdateSubject modifies an existing subject.
func (s *AcademicService) UpdateSubject(ctx context.Context, sub *model.Subject) error {
	return s.repo.UpdateSubject(ctx, sub)
}

// DeleteSubject removes a subject unless any class references it.
func (s *AcademicService) DeleteSubject(ctx context.Context, id int) error {
	n, err := s.repo.CountClassesUnderSubject(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrNodeInUse
	}
	return s.repo.DeleteSubject(ctx, id)
}
