package ports

import (
	"context"
	"time"
)

// HistoryRecordData represents a history record for persistence
type HistoryRecordData struct {
	ID          string
	City        string
	Temperature float64
	Condition   string
	Timestamp   time.Time
}

// HistoryRepository defines the contract for history record persistence
type HistoryRepository interface {
	Append(ctx context.Context, record *HistoryRecordData) error
	FindLatest(ctx context.Context, limit int) ([]HistoryRecordData, error)
	Count(ctx context.Context) (int64, error)
}

// ChangeSubscription delivers a signal each time the history changes
type ChangeSubscription interface {
	Changes() <-chan struct{}
	Close() error
}

// ChangeNotifier fans out "history changed" signals to every subscriber,
// including subscribers in other processes when backed by a broker
type ChangeNotifier interface {
	Publish(ctx context.Context) error
	Subscribe(ctx context.Context) (ChangeSubscription, error)
	Ping(ctx context.Context) error
	Close() error
}

// HistorySubscription delivers the full window of the most recent records,
// newest first, after every change. Updates is closed after Cancel.
type HistorySubscription interface {
	Updates() <-chan []HistoryRecordData
	Cancel()
}

// HistoryStore defines the contract for the live history store
type HistoryStore interface {
	Append(ctx context.Context, record *HistoryRecordData) error
	Latest(ctx context.Context, limit int) ([]HistoryRecordData, error)
	Subscribe(ctx context.Context, limit int) (HistorySubscription, error)
}
