package worker

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SylvanB/meme.crabenjoyer.xyz/metrics"
	"github.com/SylvanB/meme.crabenjoyer.xyz/model"
	"github.com/SylvanB/meme.crabenjoyer.xyz/publisher"
)

// MemeGetter is satisfied by *fetcher.Fetcher.
type MemeGetter interface {
	GetRecentMemes(ctx context.Context) (any, bool)
}

type Worker struct {
	fetcher   MemeGetter
	publisher publisher.Publisher
	interval  time.Duration
	source    string
	version   string
	logger    *log.Logger
}

func NewWorker(f MemeGetter, p publisher.Publisher, interval time.Duration, version string, logger *log.Logger) *Worker {
	return &Worker{
		fetcher:   f,
		publisher: p,
		interval:  interval,
		source:    "memes-client",
		version:   version,
		logger:    logger,
	}
}

// Start polls immediately and then once per interval until ctx is done.
// Polls never overlap.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting recent memes poller", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run immediately on startup
	w.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Poller stopped")
			return ctx.Err()
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Worker) poll(ctx context.Context) {
	data, ok := w.fetcher.GetRecentMemes(ctx)
	if !ok {
		// already logged by the fetcher
		return
	}

	result := model.NewFetchResult(data, w.source, w.version)
	if err := w.publisher.Publish(ctx, result); err != nil {
		w.logger.Error("Failed to publish fetch result", "err", err)
		metrics.MemeResultsPublished.WithLabelValues("error").Inc()
		return
	}
	metrics.MemeResultsPublished.WithLabelValues("success").Inc()
}
