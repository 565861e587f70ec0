package feed

import (
	"context"
	"sync"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

// MemoryChangeNotifier fans out change signals to subscribers in this process
type MemoryChangeNotifier struct {
	mutex  sync.Mutex
	subs   map[*memoryChangeSubscription]struct{}
	closed bool
}

type memoryChangeSubscription struct {
	notifier *MemoryChangeNotifier
	changes  chan struct{}
	once     sync.Once
}

func NewMemoryChangeNotifier() *MemoryChangeNotifier {
	return &MemoryChangeNotifier{
		subs: make(map[*memoryChangeSubscription]struct{}),
	}
}

// Publish signals every subscriber. A subscriber with a pending signal is
// not signalled twice.
func (n *MemoryChangeNotifier) Publish(ctx context.Context) error {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return errors.NewValidationError("notifier is closed")
	}
	for sub := range n.subs {
		select {
		case sub.changes <- struct{}{}:
		default:
		}
	}
	return nil
}

func (n *MemoryChangeNotifier) Subscribe(ctx context.Context) (ports.ChangeSubscription, error) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return nil, errors.NewValidationError("notifier is closed")
	}
	sub := &memoryChangeSubscription{
		notifier: n,
		changes:  make(chan struct{}, 1),
	}
	n.subs[sub] = struct{}{}
	return sub, nil
}

func (n *MemoryChangeNotifier) Ping(ctx context.Context) error {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return errors.NewValidationError("notifier is closed")
	}
	return nil
}

// Close ends every open subscription
func (n *MemoryChangeNotifier) Close() error {
	n.mutex.Lock()
	subs := n.subs
	n.subs = make(map[*memoryChangeSubscription]struct{})
	n.closed = true
	n.mutex.Unlock()

	for sub := range subs {
		sub.closeChannel()
	}
	return nil
}

// SubscriberCount returns the number of open subscriptions
func (n *MemoryChangeNotifier) SubscriberCount() int {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return len(n.subs)
}

func (s *memoryChangeSubscription) Changes() <-chan struct{} {
	return s.changes
}

func (s *memoryChangeSubscription) Close() error {
	s.notifier.mutex.Lock()
	delete(s.notifier.subs, s)
	s.notifier.mutex.Unlock()

	s.closeChannel()
	return nil
}

func (s *memoryChangeSubscription) closeChannel() {
	s.once.Do(func() { close(s.changes) })
}
