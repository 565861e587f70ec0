package feed

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"weatherhistory.app/internal/adapters/database"
	mocks "weatherhistory.app/internal/mocks"
	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func allowLogging(l *mocks.Logger) {
	args := []interface{}{mock.Anything}
	for i := 0; i < 4; i++ {
		l.EXPECT().Debug(args[0], args[1:]...).Maybe()
		l.EXPECT().Info(args[0], args[1:]...).Maybe()
		l.EXPECT().Warn(args[0], args[1:]...).Maybe()
		l.EXPECT().Error(args[0], args[1:]...).Maybe()
		args = append(args, mock.Anything)
	}
}

type storeFixture struct {
	store    *LiveHistoryStore
	repo     ports.HistoryRepository
	notifier ports.ChangeNotifier
	logger   *mocks.Logger
	metrics  *mocks.MetricsCollector
}

func newStoreFixture(t *testing.T, repo ports.HistoryRepository, notifier ports.ChangeNotifier) *storeFixture {
	t.Helper()

	logger := mocks.NewLogger(t)
	metrics := mocks.NewMetricsCollector(t)
	metrics.EXPECT().SubscriptionOpened().Maybe()
	metrics.EXPECT().SubscriptionClosed().Maybe()

	store, err := NewLiveHistoryStore(LiveHistoryStoreDependencies{
		Repository: repo,
		Notifier:   notifier,
		Logger:     logger,
		Metrics:    metrics,
	})
	require.NoError(t, err)

	return &storeFixture{store: store, repo: repo, notifier: notifier, logger: logger, metrics: metrics}
}

func newSQLiteFixture(t *testing.T) *storeFixture {
	f := newStoreFixture(t, database.NewHistoryRepositoryAdapter(setupTestDB(t)), NewMemoryChangeNotifier())
	allowLogging(f.logger)
	return f
}

var baseTime = time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

func rec(id, city string, temp float64, minute int) *ports.HistoryRecordData {
	return &ports.HistoryRecordData{
		ID:          id,
		City:        city,
		Temperature: temp,
		Condition:   "clear sky",
		Timestamp:   baseTime.Add(time.Duration(minute) * time.Minute),
	}
}

func ids(window []ports.HistoryRecordData) []string {
	out := make([]string, 0, len(window))
	for _, r := range window {
		out = append(out, r.ID)
	}
	return out
}

// waitForWindow reads windows until one matches want
func waitForWindow(t *testing.T, sub ports.HistorySubscription, want []string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case window, ok := <-sub.Updates():
			require.True(t, ok, "updates closed before window %v arrived", want)
			if assert.ObjectsAreEqual(want, ids(window)) {
				return
			}
		case <-deadline:
			t.Fatalf("window %v never delivered", want)
		}
	}
}

func expectClosed(t *testing.T, sub ports.HistorySubscription) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-sub.Updates():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("updates channel was not closed")
		}
	}
}

func TestLiveHistoryStore_AppendAndLatest(t *testing.T) {
	f := newSQLiteFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Append(ctx, rec("a", "Paris", 10, 1)))
	require.NoError(t, f.store.Append(ctx, rec("b", "Cairo", 35, 2)))
	require.NoError(t, f.store.Append(ctx, rec("c", "Paris", 20, 3)))

	latest, err := f.store.Latest(ctx, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, ids(latest))
}

func TestLiveHistoryStore_Subscribe_InitialWindow(t *testing.T) {
	f := newSQLiteFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Append(ctx, rec("a", "Paris", 10, 1)))

	sub, err := f.store.Subscribe(ctx, 50)
	require.NoError(t, err)
	defer sub.Cancel()

	waitForWindow(t, sub, []string{"a"})
}

func TestLiveHistoryStore_Subscribe_EmptyStore(t *testing.T) {
	f := newSQLiteFixture(t)

	sub, err := f.store.Subscribe(context.Background(), 50)
	require.NoError(t, err)
	defer sub.Cancel()

	select {
	case window := <-sub.Updates():
		assert.NotNil(t, window)
		assert.Empty(t, window)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial window")
	}
}

func TestLiveHistoryStore_Subscribe_DeliversFullWindowAfterAppend(t *testing.T) {
	f := newSQLiteFixture(t)
	ctx := context.Background()

	sub, err := f.store.Subscribe(ctx, 2)
	require.NoError(t, err)
	defer sub.Cancel()
	waitForWindow(t, sub, []string{})

	require.NoError(t, f.store.Append(ctx, rec("a", "Paris", 10, 1)))
	waitForWindow(t, sub, []string{"a"})

	require.NoError(t, f.store.Append(ctx, rec("b", "Cairo", 35, 2)))
	require.NoError(t, f.store.Append(ctx, rec("c", "Lima", 22, 3)))
	waitForWindow(t, sub, []string{"c", "b"})
}

func TestLiveHistoryStore_Subscribe_CoalescesForSlowConsumer(t *testing.T) {
	f := newSQLiteFixture(t)
	ctx := context.Background()

	sub, err := f.store.Subscribe(ctx, 50)
	require.NoError(t, err)
	defer sub.Cancel()

	var want []string
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("r%02d", i)
		require.NoError(t, f.store.Append(ctx, rec(id, "Oslo", float64(i), i)))
		want = append([]string{id}, want...)
	}

	// intermediate windows may be dropped, the final one never is
	waitForWindow(t, sub, want)
}

func TestLiveHistoryStore_Subscribe_MultipleSubscribers(t *testing.T) {
	f := newSQLiteFixture(t)
	ctx := context.Background()

	first, err := f.store.Subscribe(ctx, 50)
	require.NoError(t, err)
	defer first.Cancel()
	second, err := f.store.Subscribe(ctx, 1)
	require.NoError(t, err)
	defer second.Cancel()

	require.NoError(t, f.store.Append(ctx, rec("a", "Paris", 10, 1)))
	require.NoError(t, f.store.Append(ctx, rec("b", "Rome", 25, 2)))

	waitForWindow(t, first, []string{"b", "a"})
	waitForWindow(t, second, []string{"b"})
}

func TestLiveHistoryStore_Cancel(t *testing.T) {
	f := newSQLiteFixture(t)
	notifier := f.notifier.(*MemoryChangeNotifier)

	sub, err := f.store.Subscribe(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.SubscriberCount())

	sub.Cancel()
	sub.Cancel()

	expectClosed(t, sub)
	assert.Equal(t, 0, notifier.SubscriberCount())
	require.NoError(t, f.store.Append(context.Background(), rec("a", "Paris", 10, 1)))
}

func TestLiveHistoryStore_ContextCancellation(t *testing.T) {
	f := newSQLiteFixture(t)
	notifier := f.notifier.(*MemoryChangeNotifier)
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := f.store.Subscribe(ctx, 50)
	require.NoError(t, err)

	cancel()

	expectClosed(t, sub)
	require.Eventually(t, func() bool { return notifier.SubscriberCount() == 0 }, time.Second, 10*time.Millisecond)
	sub.Cancel()
}

func TestLiveHistoryStore_Subscribe_InvalidLimit(t *testing.T) {
	f := newSQLiteFixture(t)

	sub, err := f.store.Subscribe(context.Background(), 0)

	assert.Nil(t, sub)
	assert.True(t, errors.IsValidationError(err))
}

type failingRepository struct {
	ports.HistoryRepository
	findErr error
}

func (r *failingRepository) FindLatest(ctx context.Context, limit int) ([]ports.HistoryRecordData, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.HistoryRepository.FindLatest(ctx, limit)
}

func TestLiveHistoryStore_ReloadFailureDeliversEmptyWindow(t *testing.T) {
	repo := &failingRepository{
		HistoryRepository: database.NewHistoryRepositoryAdapter(setupTestDB(t)),
		findErr:           errors.NewDatabaseError("query failed", stderrors.New("timeout")),
	}
	f := newStoreFixture(t, repo, NewMemoryChangeNotifier())
	f.logger.EXPECT().Error("Failed to reload history window", mock.Anything, mock.Anything).Return().Once()
	allowLogging(f.logger)

	sub, err := f.store.Subscribe(context.Background(), 50)
	require.NoError(t, err)
	defer sub.Cancel()

	select {
	case window := <-sub.Updates():
		assert.NotNil(t, window)
		assert.Empty(t, window)
	case <-time.After(2 * time.Second):
		t.Fatal("no window delivered")
	}
}

type failingNotifier struct {
	*MemoryChangeNotifier
}

func (n *failingNotifier) Publish(ctx context.Context) error {
	return errors.NewExternalAPIError("redis publish failed", stderrors.New("broken pipe"))
}

func TestLiveHistoryStore_PublishFailureDoesNotFailAppend(t *testing.T) {
	f := newStoreFixture(t, database.NewHistoryRepositoryAdapter(setupTestDB(t)), &failingNotifier{NewMemoryChangeNotifier()})
	f.logger.EXPECT().Warn("Failed to publish history change", mock.Anything, mock.Anything).Return().Once()
	ctx := context.Background()

	require.NoError(t, f.store.Append(ctx, rec("a", "Paris", 10, 1)))

	latest, err := f.store.Latest(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(latest))
}

func TestLiveHistoryStore_AppendFailureSkipsPublish(t *testing.T) {
	f := newSQLiteFixture(t)
	notifier := f.notifier.(*MemoryChangeNotifier)
	changes, err := notifier.Subscribe(context.Background())
	require.NoError(t, err)
	defer changes.Close()

	err = f.store.Append(context.Background(), rec("", "Paris", 10, 1))

	assert.True(t, errors.IsValidationError(err))
	expectNoSignal(t, changes.Changes())
}

func TestLiveHistoryStore_SharedRedisNotifier(t *testing.T) {
	db := setupTestDB(t)
	_, redisCfg := setupMockRedis(t)

	writer := newStoreFixture(t, database.NewHistoryRepositoryAdapter(db), newRedisNotifier(t, redisCfg))
	reader := newStoreFixture(t, database.NewHistoryRepositoryAdapter(db), newRedisNotifier(t, redisCfg))
	allowLogging(writer.logger)
	allowLogging(reader.logger)
	ctx := context.Background()

	sub, err := reader.store.Subscribe(ctx, 50)
	require.NoError(t, err)
	defer sub.Cancel()
	waitForWindow(t, sub, []string{})

	require.NoError(t, writer.store.Append(ctx, rec("remote", "Tokyo", 18, 1)))

	waitForWindow(t, sub, []string{"remote"})
}

func TestLiveHistoryStore_Metrics(t *testing.T) {
	repo := database.NewHistoryRepositoryAdapter(setupTestDB(t))
	logger := mocks.NewLogger(t)
	allowLogging(logger)
	metrics := mocks.NewMetricsCollector(t)
	metrics.EXPECT().SubscriptionOpened().Return().Once()
	metrics.EXPECT().SubscriptionClosed().Return().Once()

	store, err := NewLiveHistoryStore(LiveHistoryStoreDependencies{
		Repository: repo,
		Notifier:   NewMemoryChangeNotifier(),
		Logger:     logger,
		Metrics:    metrics,
	})
	require.NoError(t, err)

	sub, err := store.Subscribe(context.Background(), 5)
	require.NoError(t, err)
	sub.Cancel()
}

func TestNewLiveHistoryStore_Validation(t *testing.T) {
	_, err := NewLiveHistoryStore(LiveHistoryStoreDependencies{})
	assert.True(t, errors.IsValidationError(err))
}
