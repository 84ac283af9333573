package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorium/tutorium-backend/internal/model"
)

// AcademicRepository handles the level → track → subject hierarchy.
type AcademicRepository struct {
	pool *pgxpool.Pool
}

// NewAcademicRepository creates a new AcademicRepository.
func NewAcademicRepository(pool *pgxpool.Pool) *AcademicRepository {
	return &AcademicRepository{pool: pool}
}

// ─── Levels ─────────────────────────────────────────────────────────

// ListLevels retrieves all levels ordered by sort order, then name.
func (r *AcademicRepository) ListLevels(ctx context.Context) ([]model.Level, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, sort_order, created_at, updated_at
		 FROM levels ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []model.Level
	for rows.Next() {
		var l model.Level
		if err := rows.Scan(&l.ID, &l.Name, &l.SortOrder, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

// CreateLevel inserts a new level.
func (r *AcademicRepository) CreateLevel(ctx context.Context, l *model.Level) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO levels (name, sort_order) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		l.Name, l.SortOrder,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// UpdateLevel modifies an existing level.
func (r *AcademicRepository) UpdateLevel(ctx context.Context, l *model.Level) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE levels SET name = $1, sort_order = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		l.Name, l.SortOrder, l.ID,
	)
	return err
}

// DeleteLevel removes a level by ID.
func (r *AcademicRepository) DeleteLevel(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM levels WHERE id = $1`, id)
	return err
}

// CountClassesUnderLevel counts classes reachable from a level through its
// tracks and subjects. Used as the delete guard.
func (r *AcademicRepository) CountClassesUnderLevel(ctx context.Context, levelID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM classes c
		 JOIN subjects s ON c.subject_id = s.id
		 JOIN tracks t ON s.track_id = t.id
		 WHERE t.level_id = $1`, levelID,
	).Scan(&n)
	return n, err
}

// ─── Tracks ─────────────────────────────────────────────────────────

// ListTracks retrieves all tracks ordered by level, then name.
func (r *AcademicRepository) ListTracks(ctx context.Context) ([]model.Track, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, level_id, name, created_at, updated_at
		 FROM tracks ORDER BY level_id, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []model.Track
	for rows.Next() {
		var t model.Track
		if err := rows.Scan(&t.ID, &t.LevelID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// CreateTrack inserts a new track.
func (r *AcademicRepository) CreateTrack(ctx context.Context, t *model.Track) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO tracks (level_id, name) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		t.LevelID, t.Name,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// UpdateTrack modifies an existing track.
func (r *AcademicRepository) UpdateTrack(ctx context.Context, t *model.Track) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE tracks SET level_id = $1, name = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		t.LevelID, t.Name, t.ID,
	)
	return err
}

// DeleteTrack removes a track by ID.
func (r *AcademicRepository) DeleteTrack(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tracks WHERE id = $1`, id)
	return err
}

// CountClassesUnderTrack counts classes reachable from a track.
func (r *AcademicRepository) CountClassesUnderTrack(ctx context.Context, trackID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM classes c
		 JOIN subjects s ON c.subject_id = s.id
		 WHERE s.track_id = $1`, trackID,
	).Scan(&n)
	return n, err
}

// ─── Subjects ───────────────────────────────────────────────────────

// ListSubjects retrieves all subjects ordered by track, then name.
func (r *AcademicRepository) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, track_id, name, created_at, updated_at
		 FROM subjects ORDER BY track_id, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.TrackID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// CreateSubject inserts a new subject.
func (r *AcademicRepository) CreateSubject(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (track_id, name) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		s.TrackID, s.Name,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// UpdateSubject modifies an existing subject.
func (r *AcademicRepository) UpdateSubject(ctx context.Context, s *model.Subject) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE subjects SET track_id = $1, name = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		s.TrackID, s.Name, s.ID,
	)
	return err
}

// DeleteSubject removes a subject by ID.
func (r *AcademicRepository) DeleteSubject(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	return err
}

// CountClassesUnderSubject counts classes referencing a subject.
func (r *AcademicRepository) CountClassesUnderSubject(ctx context.Context, subjectID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM classes WHERE subject_id = $1`, subjectID,
	).Scan(&n)
	return n, err
}
