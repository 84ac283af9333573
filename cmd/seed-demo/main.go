package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorium/tutorium-backend/internal/config"
	"github.com/tutorium/tutorium-backend/internal/database"
	"github.com/tutorium/tutorium-backend/internal/logger"
	"github.com/tutorium/tutorium-backend/internal/model"
	"github.com/tutorium/tutorium-backend/internal/repository"
	"github.com/tutorium/tutorium-backend/internal/service"
)

// Seeds a small but complete demo school: one level/track/subject chain
// per branch, a handful of classes with weekly slots and rosters, and
// enough students that the dashboard has something to show.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	academicRepo := repository.NewAcademicRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)

	academicService := service.NewAcademicService(academicRepo)
	classService := service.NewClassService(classRepo)
	studentService := service.NewStudentService(studentRepo)

	fmt.Println("=== Seeding Demo Data ===")

	// ─── Academic hierarchy ────────────────────────────────────────────
	type subjectSeed struct {
		level   string
		track   string
		subject string
	}
	subjectSeeds := []subjectSeed{
		{"Primary", "General", "Mathematics"},
		{"Primary", "General", "English"},
		{"Secondary", "Science", "Physics"},
		{"Secondary", "Science", "Chemistry"},
		{"Secondary", "Humanities", "History"},
	}

	levelIDs := map[string]int{}
	trackIDs := map[string]int{}
	subjectIDs := map[string]int{}

	sortOrder := 1
	for _, seed := range subjectSeeds {
		if _, ok := levelIDs[seed.level]; !ok {
			id, err := findOrCreateLevel(ctx, pool, academicService, seed.level, sortOrder)
			if err != nil {
				log.Fatal().Err(err).Str("level", seed.level).Msg("Failed to seed level")
			}
			levelIDs[seed.level] = id
			sortOrder++
		}

		trackKey := seed.level + "/" + seed.track
		if _, ok := trackIDs[trackKey]; !ok {
			id, err := findOrCreateTrack(ctx, pool, academicService, levelIDs[seed.level], seed.track)
			if err != nil {
				log.Fatal().Err(err).Str("track", trackKey).Msg("Failed to seed track")
			}
			trackIDs[trackKey] = id
		}

		subjectKey := trackKey + "/" + seed.subject
		id, err := findOrCreateSubject(ctx, pool, academicService, trackIDs[trackKey], seed.subject)
		if err != nil {
			log.Fatal().Err(err).Str("subject", subjectKey).Msg("Failed to seed subject")
		}
		subjectIDs[seed.subject] = id
	}
	fmt.Printf("Seeded %d levels, %d tracks, %d subjects\n", len(levelIDs), len(trackIDs), len(subjectIDs))

	// ─── Students ──────────────────────────────────────────────────────
	names := []string{
		"Alice Morgan", "Ben Carter", "Chloe Davis", "Daniel Evans", "Emma Foster",
		"Felix Graham", "Grace Hughes", "Henry Irving", "Isla Jenkins", "Jack Kelly",
		"Katie Lewis", "Liam Mitchell", "Mia Nolan", "Noah Owens", "Olivia Parker",
		"Peter Quinn", "Ruby Roberts", "Samuel Turner", "Tara Walsh", "Victor Young",
	}

	studentIDs := make([]int, 0, len(names))
	for i, fullName := range names {
		parts := strings.SplitN(fullName, " ", 2)
		student := &model.Student{
			FirstName: parts[0],
			LastName:  parts[1],
			Email:     fmt.Sprintf("student%02d@tutorium.example", i+1),
			Phone:     fmt.Sprintf("+1555%07d", i+1),
		}
		if err := studentService.Create(ctx, student); err != nil {
			// Unique email violation means the student already exists.
			var existingID int
			lookupErr := pool.QueryRow(ctx,
				"SELECT id FROM students WHERE email = $1", student.Email).Scan(&existingID)
			if lookupErr != nil {
				log.Fatal().Err(err).Str("email", student.Email).Msg("Failed to seed student")
			}
			student.ID = existingID
		}
		studentIDs = append(studentIDs, student.ID)
	}
	fmt.Printf("Seeded %d students\n", len(studentIDs))

	// ─── Classes with slots and rosters ────────────────────────────────
	type classSeed struct {
		name        string
		subject     string
		teacher     string
		mode        model.PricingMode
		perStudent  int64
		fixedTotal  int64
		slots       []model.ClassTime
		rosterStart int
		rosterSize  int
	}
	classSeeds := []classSeed{
		{
			name: "Math Foundations", subject: "Mathematics", teacher: "D. Kim",
			mode: model.PricingPerStudent, perStudent: 12000,
			slots: []model.ClassTime{
				{DayOfWeek: 1, StartMinutes: 16 * 60, EndMinutes: 17 * 60},
				{DayOfWeek: 3, StartMinutes: 16 * 60, EndMinutes: 17 * 60},
			},
			rosterStart: 0, rosterSize: 8,
		},
		{
			name: "English Club", subject: "English", teacher: "S. Novak",
			mode: model.PricingFixedTotal, fixedTotal: 90000,
			slots: []model.ClassTime{
				{DayOfWeek: 2, StartMinutes: 17 * 60, EndMinutes: 18*60 + 30},
			},
			rosterStart: 4, rosterSize: 10,
		},
		{
			name: "Physics Intensive", subject: "Physics", teacher: "R. Iyer",
			mode: model.PricingPerStudent, perStudent: 18000,
			slots: []model.ClassTime{
				{DayOfWeek: 4, StartMinutes: 18 * 60, EndMinutes: 19*60 + 30},
				{DayOfWeek: 6, StartMinutes: 10 * 60, EndMinutes: 11*60 + 30},
			},
			rosterStart: 10, rosterSize: 6,
		},
		{
			name: "History Seminar", subject: "History", teacher: "M. Oduya",
			mode: model.PricingFixedTotal, fixedTotal: 60000,
			slots: []model.ClassTime{
				{DayOfWeek: 5, StartMinutes: 15 * 60, EndMinutes: 16 * 60},
			},
			rosterStart: 14, rosterSize: 6,
		},
	}

	for _, seed := range classSeeds {
		class := &model.Class{
			Name:            seed.name,
			SubjectID:       subjectIDs[seed.subject],
			TeacherName:     seed.teacher,
			PricingMode:     seed.mode,
			PerStudentCents: seed.perStudent,
			FixedTotalCents: seed.fixedTotal,
		}

		var existingID int
		err := pool.QueryRow(ctx, "SELECT id FROM classes WHERE name = $1", class.Name).Scan(&existingID)
		switch {
		case err == pgx.ErrNoRows:
			if err := classService.Create(ctx, class); err != nil {
				log.Fatal().Err(err).Str("class", class.Name).Msg("Failed to seed class")
			}
		case err != nil:
			log.Fatal().Err(err).Str("class", class.Name).Msg("Failed to check existing class")
		default:
			class.ID = existingID
		}

		for _, slot := range seed.slots {
			t := slot
			t.ClassID = class.ID
			if err := classService.CreateTime(ctx, &t); err != nil {
				fmt.Printf("Skipping slot for %s: %v\n", class.Name, err)
			}
		}

		for i := 0; i < seed.rosterSize; i++ {
			studentID := studentIDs[(seed.rosterStart+i)%len(studentIDs)]
			if err := classService.Enroll(ctx, class.ID, studentID); err != nil {
				// Re-running the seed hits the enrollment primary key.
				continue
			}
		}

		fmt.Printf("Seeded class %q with %d slots and %d students\n",
			class.Name, len(seed.slots), seed.rosterSize)
	}

	fmt.Println("\nSeed completed!")
}

func findOrCreateLevel(ctx context.Context, pool *pgxpool.Pool, svc *service.AcademicService, name string, sortOrder int) (int, error) {
	var id int
	err := pool.QueryRow(ctx, "SELECT id FROM levels WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, err
	}
	level := &model.Level{Name: name, SortOrder: sortOrder}
	if err := svc.CreateLevel(ctx, level); err != nil {
		return 0, err
	}
	return level.ID, nil
}

func findOrCreateTrack(ctx context.Context, pool *pgxpool.Pool, svc *service.AcademicService, levelID int, name string) (int, error) {
	var id int
	err := pool.QueryRow(ctx, "SELECT id FROM tracks WHERE level_id = $1 AND name = $2", levelID, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, err
	}
	track := &model.Track{LevelID: levelID, Name: name}
	if err := svc.CreateTrack(ctx, track); err != nil {
		return 0, err
	}
	return track.ID, nil
}

func findOrCreateSubject(ctx context.Context, pool *pgxpool.Pool, svc *service.AcademicService, trackID int, name string) (int, error) {
	var id int
	err := pool.QueryRow(ctx, "SELECT id FROM subjects WHERE track_id = $1 AND name = $2", trackID, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, err
	}
	subject := &model.Subject{TrackID: trackID, Name: name}
	if err := svc.CreateSubject(ctx, subject); err != nil {
		return 0, err
	}
	return subject.ID, nil
}
