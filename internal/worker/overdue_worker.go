package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorium/tutorium-backend/internal/repository"
)

// OverdueWorker periodically flips unpaid invoices past their due date
// from PENDING to OVERDUE. The reporting side only reads the resulting
// status; the transition itself lives here.
type OverdueWorker struct {
	invoiceRepo *repository.InvoiceRepository
	interval    time.Duration
	log         zerolog.Logger
}

// NewOverdueWorker creates a new OverdueWorker.
func NewOverdueWorker(invoiceRepo *repository.InvoiceRepository, interval time.Duration, log zerolog.Logger) *OverdueWorker {
	return &OverdueWorker{
		invoiceRepo: invoiceRepo,
		interval:    interval,
		log:         log.With().Str("component", "overdue_worker").Logger(),
	}
}

// Start runs the sweep loop until the context is cancelled. One sweep
// happens immediately on startup so restarts don't delay transitions.
func (w *OverdueWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("OverdueWorker started")

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("OverdueWorker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OverdueWorker) sweep(ctx context.Context) {
	n, err := w.invoiceRepo.MarkOverdueBefore(ctx, time.Now().UTC())
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Overdue sweep failed")
		}
		return
	}
	if n > 0 {
		w.log.Info().Int64("transitioned", n).Msg("Invoices marked overdue")
	}
}
