package async

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	jobs []Job
}

func (r *recorder) Handle(_ context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
	if job.Path == "panic.pdf" {
		panic("bad document")
	}
	if job.Path == "fail.pdf" {
		return errors.New("extract failed")
	}
	return nil
}

func (r *recorder) paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j.Path)
	}
	sort.Strings(out)
	return out
}

func TestWorkerQueue_ProcessesAllJobs(t *testing.T) {
	rec := &recorder{}
	q := NewWorkerQueue(rec, nil, WithWorkers(3), WithQueueSize(1))

	for _, p := range []string{"a.pdf", "fail.pdf", "panic.pdf", "b.pdf"} {
		require.NoError(t, q.Enqueue(context.Background(), Job{Path: p}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	assert.Equal(t, []string{"a.pdf", "b.pdf", "fail.pdf", "panic.pdf"}, rec.paths())
	for _, j := range rec.jobs {
		assert.NotEmpty(t, j.TraceID)
		assert.False(t, j.SubmittedAt.IsZero())
	}
}

func TestWorkerQueue_EnqueueAfterShutdown(t *testing.T) {
	q := NewWorkerQueue(HandlerFunc(func(context.Context, Job) error { return nil }), nil)
	q.Shutdown(context.Background())
	q.Shutdown(context.Background())

	err := q.Enqueue(context.Background(), Job{Path: "late.pdf"})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestWorkerQueue_ProcessTimeout(t *testing.T) {
	got := make(chan error, 1)
	q := NewWorkerQueue(HandlerFunc(func(ctx context.Context, _ Job) error {
		<-ctx.Done()
		got <- ctx.Err()
		return ctx.Err()
	}), nil, WithWorkers(1), WithProcessTimeout(20*time.Millisecond))

	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "slow.pdf", TraceID: "t-1"}))
	q.Shutdown(context.Background())

	assert.ErrorIs(t, <-got, context.DeadlineExceeded)
}

func TestWorkerQueue_EnqueueHonorsContextUnderBackpressure(t *testing.T) {
	release := make(chan struct{})
	q := NewWorkerQueue(HandlerFunc(func(context.Context, Job) error {
		<-release
		return nil
	}), nil, WithWorkers(1), WithQueueSize(1))
	defer func() {
		close(release)
		q.Shutdown(context.Background())
	}()

	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "1.pdf"}))
	// 2.pdf waits for the worker to take 1.pdf, then fills the buffer
	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "2.pdf"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Enqueue(ctx, Job{Path: "3.pdf"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
