package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const persistFailedMessage = "failed to save weather to history"

type UseCase struct {
	store   ports.HistoryStore
	config  ports.ConfigProvider
	logger  ports.Logger
	metrics ports.MetricsCollector
}

type UseCaseDependencies struct {
	Store   ports.HistoryStore
	Config  ports.ConfigProvider
	Logger  ports.Logger
	Metrics ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Store == nil {
		return nil, errors.NewValidationError("history store is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		store:   deps.Store,
		config:  deps.Config,
		logger:  deps.Logger,
		metrics: deps.Metrics,
	}, nil
}

// NewRecord builds a record ready to be appended
func (uc *UseCase) NewRecord(city string, temperature float64, condition string, timestamp time.Time) Record {
	return NewRecord(city, temperature, condition, timestamp)
}

// Record appends one record to the history. Duplicates are stored as separate
// records. Store failures are reported as a PersistenceFailure.
func (uc *UseCase) Record(ctx context.Context, record Record) error {
	if err := record.IsValid(); err != nil {
		return errors.NewValidationError("invalid history record: " + err.Error())
	}

	if err := uc.store.Append(ctx, toPortsRecord(record)); err != nil {
		uc.metrics.RecordHistoryAppend(ports.OutcomeFailure)
		uc.logger.Error("Failed to append history record",
			ports.F("city", record.City),
			ports.F("record_id", record.ID),
			ports.F("error", err))
		return errors.NewPersistenceFailure(persistFailedMessage, err)
	}

	uc.metrics.RecordHistoryAppend(ports.OutcomeSuccess)
	uc.logger.Info("History record appended",
		ports.F("city", record.City),
		ports.F("record_id", record.ID))
	return nil
}

// Recent returns the most recent records, newest first
func (uc *UseCase) Recent(ctx context.Context, limit int) ([]Record, error) {
	limit = uc.resolveLimit(limit)

	data, err := uc.store.Latest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load recent history: %w", err)
	}
	return fromPortsRecords(data), nil
}

// Watch opens a live feed over the most recent records. The feed delivers the
// current window immediately and the full window again after every change.
func (uc *UseCase) Watch(ctx context.Context, limit int) (*Feed, error) {
	limit = uc.resolveLimit(limit)

	sub, err := uc.store.Subscribe(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("subscribe to history: %w", err)
	}

	uc.logger.Debug("History feed opened", ports.F("limit", limit))
	return newFeed(sub), nil
}

func (uc *UseCase) resolveLimit(limit int) int {
	cfg := uc.config.GetHistoryConfig()
	if limit <= 0 {
		return cfg.RecentLimit
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		return cfg.MaxLimit
	}
	return limit
}

// Feed is a live, domain-typed view of a history subscription
type Feed struct {
	sub     ports.HistorySubscription
	updates chan []Record
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newFeed(sub ports.HistorySubscription) *Feed {
	f := &Feed{
		sub:     sub,
		updates: make(chan []Record),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go f.forward()
	return f
}

func (f *Feed) forward() {
	defer close(f.stopped)
	defer close(f.updates)

	in := f.sub.Updates()
	for {
		select {
		case window, ok := <-in:
			if !ok {
				return
			}
			select {
			case f.updates <- fromPortsRecords(window):
			case <-f.done:
				return
			}
		case <-f.done:
			return
		}
	}
}

// Updates delivers full record windows, newest first. The channel is closed
// once the feed is cancelled or the underlying subscription ends.
func (f *Feed) Updates() <-chan []Record {
	return f.updates
}

// Cancel stops delivery and releases the subscription. Safe to call more than once.
func (f *Feed) Cancel() {
	f.once.Do(func() {
		close(f.done)
		f.sub.Cancel()
		<-f.stopped
	})
}
