package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	mu      sync.Mutex
	queries []string
	errs    []error
	pools   chan [3]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{pools: make(chan [3]int, 64)}
}

func (r *fakeRecorder) ObserveDBQuery(operation string, d time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, operation)
	r.errs = append(r.errs, err)
}

func (r *fakeRecorder) SetDBPoolStats(open, inUse, idle int) {
	select {
	case r.pools <- [3]int{open, inUse, idle}:
	default:
	}
}

// openLazy открывает пул без установки соединения
func openLazy(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", "host=127.0.0.1 port=1 dbname=none sslmode=disable")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCollectPoolStats_StopsOnStopChannel(t *testing.T) {
	rec := newFakeRecorder()
	d := Wrap(openLazy(t), rec)

	stopCh := make(chan struct{})
	done := make(chan struct{})
	go func() {
		d.collectPoolStats(time.Millisecond, stopCh)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case stats := <-rec.pools:
			assert.Equal(t, [3]int{0, 0, 0}, stats)
		case <-time.After(time.Second):
			t.Fatal("pool stats were not published")
		}
	}

	close(stopCh)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector did not stop after stopCh was closed")
	}
}

func TestCollectPoolStats_NilRecorderReturnsImmediately(t *testing.T) {
	d := Wrap(openLazy(t), nil)

	done := make(chan struct{})
	go func() {
		d.collectPoolStats(time.Millisecond, make(chan struct{}))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector without recorder should not run")
	}
}

func TestObserve_NoRowsIsNotAnError(t *testing.T) {
	rec := newFakeRecorder()
	d := Wrap(openLazy(t), rec)

	d.observe("query_row", time.Now(), sql.ErrNoRows)
	d.observe("exec", time.Now(), errors.New("boom"))

	assert.Equal(t, []string{"query_row", "exec"}, rec.queries)
	assert.NoError(t, rec.errs[0])
	assert.EqualError(t, rec.errs[1], "boom")
}

func TestGetExecutor_PrefersTransactionFromContext(t *testing.T) {
	d := Wrap(openLazy(t), nil)
	tx := &Tx{db: d}

	assert.Same(t, d, GetExecutor(context.Background(), d))

	ctx := WithTx(context.Background(), tx)
	assert.True(t, IsInTransaction(ctx))
	assert.Same(t, tx, GetExecutor(ctx, d))
}
