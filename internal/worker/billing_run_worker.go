package worker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tutorium/tutorium-backend/internal/config"
	"github.com/tutorium/tutorium-backend/internal/service"
)

const billingPollTimeout = 1 * time.Second

// BillingRunWorker consumes billing-run jobs from the Redis queue and
// generates the month's invoices. Jobs are plain "YYYY-MM" strings.
type BillingRunWorker struct {
	billing *service.BillingService
	rdb     *redis.Client
	log     zerolog.Logger
}

// NewBillingRunWorker creates a new BillingRunWorker.
func NewBillingRunWorker(billing *service.BillingService, rdb *redis.Client, log zerolog.Logger) *BillingRunWorker {
	return &BillingRunWorker{
		billing: billing,
		rdb:     rdb,
		log:     log.With().Str("component", "billing_run_worker").Logger(),
	}
}

// Start runs the consume loop until the context is cancelled.
func (w *BillingRunWorker) Start(ctx context.Context) {
	w.log.Info().Msg("BillingRunWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("BillingRunWorker stopped")
			return
		default:
			item, err := w.rdb.BLPop(ctx, billingPollTimeout, config.WorkerKey.BillingRunQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}
			if len(item) < 2 {
				continue
			}

			w.runSafe(ctx, item[1])
		}
	}
}

// runSafe executes one billing run and always releases the month lock,
// so a failed run can be retried.
func (w *BillingRunWorker) runSafe(ctx context.Context, month string) {
	defer func() {
		if err := w.rdb.Del(context.Background(), config.CacheKey.BillingRunLockKey(month)).Err(); err != nil {
			w.log.Error().Err(err).Str("month", month).Msg("Failed to release run lock")
		}
	}()

	billedMonth, err := service.ParseMonth(month)
	if err != nil {
		w.log.Error().Str("month", month).Msg("Invalid month on billing queue")
		return
	}

	created, err := w.billing.GenerateMonthlyInvoices(ctx, billedMonth)
	if err != nil {
		w.log.Error().Err(err).Str("month", month).Int("created", created).Msg("Billing run failed")
		return
	}
}
