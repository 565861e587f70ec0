// Package feed implements the live history store: a persistent record
// repository combined with a change notifier that drives subscriptions.
package feed

import (
	"context"
	"fmt"
	"sync"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

// LiveHistoryStore implements ports.HistoryStore
type LiveHistoryStore struct {
	repo     ports.HistoryRepository
	notifier ports.ChangeNotifier
	logger   ports.Logger
	metrics  ports.MetricsCollector
}

type LiveHistoryStoreDependencies struct {
	Repository ports.HistoryRepository
	Notifier   ports.ChangeNotifier
	Logger     ports.Logger
	Metrics    ports.MetricsCollector
}

func NewLiveHistoryStore(deps LiveHistoryStoreDependencies) (*LiveHistoryStore, error) {
	if deps.Repository == nil {
		return nil, errors.NewValidationError("history repository is required")
	}
	if deps.Notifier == nil {
		return nil, errors.NewValidationError("change notifier is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &LiveHistoryStore{
		repo:     deps.Repository,
		notifier: deps.Notifier,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}, nil
}

// Append writes the record and then notifies subscribers. A failed
// notification is logged; the record stays written.
func (s *LiveHistoryStore) Append(ctx context.Context, record *ports.HistoryRecordData) error {
	if err := s.repo.Append(ctx, record); err != nil {
		return err
	}

	if err := s.notifier.Publish(ctx); err != nil {
		s.logger.Warn("Failed to publish history change",
			ports.F("record_id", record.ID),
			ports.F("error", err))
	}
	return nil
}

// Latest returns up to limit records, newest first
func (s *LiveHistoryStore) Latest(ctx context.Context, limit int) ([]ports.HistoryRecordData, error) {
	return s.repo.FindLatest(ctx, limit)
}

// Subscribe opens a live window over the most recent limit records. The
// current window is delivered immediately.
func (s *LiveHistoryStore) Subscribe(ctx context.Context, limit int) (ports.HistorySubscription, error) {
	if limit <= 0 {
		return nil, errors.NewValidationError("limit must be positive")
	}

	changes, err := s.notifier.Subscribe(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribe to history changes: %w", err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &liveSubscription{
		store:   s,
		limit:   limit,
		changes: changes,
		updates: make(chan []ports.HistoryRecordData, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	s.metrics.SubscriptionOpened()
	go sub.run(subCtx)

	return sub, nil
}

type liveSubscription struct {
	store   *LiveHistoryStore
	limit   int
	changes ports.ChangeSubscription
	updates chan []ports.HistoryRecordData
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

func (l *liveSubscription) run(ctx context.Context) {
	defer close(l.done)
	defer close(l.updates)
	defer l.store.metrics.SubscriptionClosed()
	defer func() {
		if err := l.changes.Close(); err != nil {
			l.store.logger.Warn("Failed to close change subscription", ports.F("error", err))
		}
	}()

	if !l.refresh(ctx) {
		return
	}
	signals := l.changes.Changes()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signals:
			if !ok {
				return
			}
			if !l.refresh(ctx) {
				return
			}
		}
	}
}

// refresh reloads and delivers the window, falling back to an empty window
// when the query fails. It returns false once the subscription is cancelled.
func (l *liveSubscription) refresh(ctx context.Context) bool {
	window, err := l.store.repo.FindLatest(ctx, l.limit)
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		l.store.logger.Error("Failed to reload history window",
			ports.F("limit", l.limit),
			ports.F("error", err))
		window = []ports.HistoryRecordData{}
	}
	l.deliver(window)
	return true
}

// deliver replaces any window the consumer has not picked up yet
func (l *liveSubscription) deliver(window []ports.HistoryRecordData) {
	select {
	case <-l.updates:
	default:
	}
	l.updates <- window
}

func (l *liveSubscription) Updates() <-chan []ports.HistoryRecordData {
	return l.updates
}

// Cancel stops delivery, releases the change subscription and closes Updates
func (l *liveSubscription) Cancel() {
	l.once.Do(func() {
		l.cancel()
		<-l.done
	})
}
