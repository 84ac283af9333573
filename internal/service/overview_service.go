package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tutorium/tutorium-backend/internal/config"
	"github.com/tutorium/tutorium-backend/internal/reporting"
	"github.com/tutorium/tutorium-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

const recentListLimit = 5

// OverviewService assembles the dashboard report: it fans out the
// independent snapshot reads concurrently, hands the snapshot to the
// reporting composer, and caches the result briefly in Redis.
type OverviewService struct {
	cfg  *config.Config
	repo *repository.OverviewRepository
	inv  *repository.InvoiceRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewOverviewService creates a new OverviewService.
func NewOverviewService(
	cfg *config.Config,
	repo *repository.OverviewRepository,
	inv *repository.InvoiceRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *OverviewService {
	return &OverviewService{
		cfg:  cfg,
		repo: repo,
		inv:  inv,
		rdb:  rdb,
		log:  log.With().Str("component", "overview_service").Logger(),
	}
}

// GetOverview returns the composed report, serving a cached copy when one
// is fresh enough. Cache failures degrade to recomputation, never to an
// error.
func (s *OverviewService) GetOverview(ctx context.Context) (*reporting.OverviewReport, error) {
	cacheKey := config.CacheKey.OverviewReportKey()

	if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var report reporting.OverviewReport
		if err := json.Unmarshal(cached, &report); err == nil {
			return &report, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Overview cache read failed")
	}

	report, err := s.ComputeOverview(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(report); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, payload, s.cfg.OverviewCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Overview cache write failed")
		}
	}

	return report, nil
}

// ComputeOverview fetches a fresh snapshot and composes the report,
// bypassing the cache. The snapshot reads are independent of each other
// and run concurrently; composition itself is pure and synchronous.
func (s *OverviewService) ComputeOverview(ctx context.Context) (*reporting.OverviewReport, error) {
	now := time.Now().UTC()
	snap := reporting.Snapshot{Now: now}

	trendStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(reporting.TrendMonths - 1), 0)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.TotalStudents, snap.TotalClasses, snap.TotalLevels, snap.TotalSubjects, err =
			s.repo.GetSummaryCounts(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.StatusCounts, err = s.repo.GetInvoiceStatusCounts(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.Classes, err = s.repo.ListClassSnapshots(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.StudentLevels, err = s.repo.ListStudentLevelRows(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.LineItems, err = s.inv.ListLineItemsBilledSince(gctx, trendStart)
		return
	})
	g.Go(func() (err error) {
		snap.OverdueInvoices, err = s.inv.ListOverdue(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.RecentInvoices, err = s.repo.ListRecentInvoices(gctx, recentListLimit)
		return
	})
	g.Go(func() (err error) {
		snap.RecentPayments, err = s.repo.ListRecentPayments(gctx, recentListLimit)
		return
	})
	g.Go(func() (err error) {
		snap.Slots, err = s.repo.ListScheduleSlots(gctx)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := reporting.Compose(snap)
	return &report, nil
}

// UpcomingSessions expands the full weekly schedule over a caller-chosen
// horizon, independent of the overview's display cap.
func (s *OverviewService) UpcomingSessions(ctx context.Context, horizonDays int) ([]reporting.SessionInstance, error) {
	slots, err := s.repo.ListScheduleSlots(ctx)
	if err != nil {
		return nil, err
	}
	return reporting.ExpandSchedule(slots, time.Now().UTC(), horizonDays), nil
}
