package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

// OutboxFacade exposes the subset of application functionality required by the relay.
type OutboxFacade interface {
	PendingEvents(ctx context.Context, limit int) ([]model.OrderEvent, error)
	PublishEvent(ctx context.Context, event model.OrderEvent) error
	MarkEventPublished(ctx context.Context, id string) error
	MarkEventFailed(ctx context.Context, id string, reason string, final bool) error
}

// RelayOptions configures OutboxRelay.
type RelayOptions struct {
	PollInterval time.Duration
	BatchSize    int
	Workers      int
	MaxAttempts  int
}

// OutboxRelay polls the order event outbox and publishes claimed events concurrently.
type OutboxRelay struct {
	facade       OutboxFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	maxAttempts  int
	logger       *slog.Logger

	jobs   chan model.OrderEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOutboxRelay constructs the relay worker pool.
func NewOutboxRelay(facade OutboxFacade, opts RelayOptions, logger *slog.Logger) *OutboxRelay {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	return &OutboxRelay{
		facade:       facade,
		pollInterval: opts.PollInterval,
		batchSize:    opts.BatchSize,
		workers:      opts.Workers,
		maxAttempts:  opts.MaxAttempts,
		logger:       logger,
		jobs:         make(chan model.OrderEvent, opts.BatchSize*opts.Workers),
	}
}

// Start launches background publishing. The relay runs until Stop is called.
func (r *OutboxRelay) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop cancels polling and waits for in-flight events. Claimed events that were
// not handled become pending again once their lease expires.
func (r *OutboxRelay) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *OutboxRelay) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.claimAndDispatch(ctx)
		}
	}
}

func (r *OutboxRelay) claimAndDispatch(ctx context.Context) {
	events, err := r.facade.PendingEvents(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("claim outbox events failed", slog.String("error", err.Error()))
		return
	}
	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- event:
		}
	}
}

func (r *OutboxRelay) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleEvent(ctx, event)
		}
	}
}

func (r *OutboxRelay) handleEvent(ctx context.Context, event model.OrderEvent) {
	log := r.logger.With(
		slog.String("event_id", event.ID),
		slog.String("order_id", event.OrderID),
		slog.String("type", string(event.Type)),
	)

	if err := r.facade.PublishEvent(ctx, event); err != nil {
		if ctx.Err() != nil {
			return
		}
		final := event.Attempts >= r.maxAttempts
		if final {
			log.Error("order event dropped", slog.Int("attempts", event.Attempts), slog.String("error", err.Error()))
		} else {
			log.Warn("order event publish failed", slog.Int("attempts", event.Attempts), slog.String("error", err.Error()))
		}
		if err := r.facade.MarkEventFailed(ctx, event.ID, err.Error(), final); err != nil {
			log.Error("mark order event failed", slog.String("error", err.Error()))
		}
		return
	}

	if err := r.facade.MarkEventPublished(ctx, event.ID); err != nil {
		log.Error("mark order event published", slog.String("error", err.Error()))
		return
	}
	log.Debug("order event published")
}
