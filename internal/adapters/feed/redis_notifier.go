package feed

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"weatherhistory.app/internal/config"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const changeMessage = "changed"

// RedisChangeNotifier implements ChangeNotifier over Redis PUBLISH/SUBSCRIBE so
// that every process sharing the database sees every append
type RedisChangeNotifier struct {
	client  *redis.Client
	channel string
}

type redisChangeSubscription struct {
	pubsub  *redis.PubSub
	changes chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewRedisChangeNotifier connects to Redis and verifies the connection
func NewRedisChangeNotifier(cfg *config.RedisConfig, channel string) (*RedisChangeNotifier, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}
	if channel == "" {
		return nil, errors.NewConfigurationError("notifier channel cannot be empty", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewExternalAPIError("failed to connect to Redis", err)
	}

	return &RedisChangeNotifier{
		client:  client,
		channel: channel,
	}, nil
}

func (n *RedisChangeNotifier) Publish(ctx context.Context) error {
	if err := n.client.Publish(ctx, n.channel, changeMessage).Err(); err != nil {
		return errors.NewExternalAPIError("redis publish failed", err)
	}
	return nil
}

// Subscribe returns once Redis has confirmed the subscription, so no change
// published afterwards is missed
func (n *RedisChangeNotifier) Subscribe(ctx context.Context) (ports.ChangeSubscription, error) {
	pubsub := n.client.Subscribe(ctx, n.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, errors.NewExternalAPIError("redis subscribe failed", err)
	}

	sub := &redisChangeSubscription{
		pubsub:  pubsub,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go sub.forward()
	return sub, nil
}

func (n *RedisChangeNotifier) Ping(ctx context.Context) error {
	if err := n.client.Ping(ctx).Err(); err != nil {
		return errors.NewExternalAPIError("redis ping failed", err)
	}
	return nil
}

func (n *RedisChangeNotifier) Close() error {
	return n.client.Close()
}

func (s *redisChangeSubscription) forward() {
	defer close(s.done)
	defer close(s.changes)

	for range s.pubsub.Channel() {
		select {
		case s.changes <- struct{}{}:
		default:
		}
	}
}

func (s *redisChangeSubscription) Changes() <-chan struct{} {
	return s.changes
}

func (s *redisChangeSubscription) Close() error {
	var err error
	s.once.Do(func() {
		err = s.pubsub.Close()
		<-s.done
	})
	return err
}
