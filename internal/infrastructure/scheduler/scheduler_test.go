package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kitcha/docrender/internal/domain/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testConfig() QueueConfig {
	return QueueConfig{Workers: 2, QueueSize: 4, JobTimeout: time.Second}
}

func TestQueueConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultQueueConfig().Validate())

	tests := []struct {
		name   string
		config QueueConfig
	}{
		{"no workers", QueueConfig{Workers: 0, QueueSize: 1, JobTimeout: time.Second}},
		{"no queue", QueueConfig{Workers: 1, QueueSize: 0, JobTimeout: time.Second}},
		{"no timeout", QueueConfig{Workers: 1, QueueSize: 1, JobTimeout: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.config.Validate(), ErrInvalidConfig)
		})
	}
}

func TestNewRenderQueue_RequiresExecutor(t *testing.T) {
	_, err := NewRenderQueue(testConfig(), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRenderQueue_SubmitBeforeStart(t *testing.T) {
	q, err := NewRenderQueue(testConfig(), JobExecutorFunc(func(context.Context, *document.RenderJob) error {
		return nil
	}), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.ErrorIs(t, q.Submit(document.NewRenderJob(1)), ErrSchedulerNotRunning)
}

func TestRenderQueue_RunsJobs(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[int64]bool)
	var wg sync.WaitGroup

	q, err := NewRenderQueue(testConfig(), JobExecutorFunc(func(ctx context.Context, job *document.RenderJob) error {
		defer wg.Done()
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		mu.Lock()
		seen[job.OwnerID] = true
		mu.Unlock()
		return nil
	}), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, q.Start(context.Background()))

	for id := int64(1); id <= 3; id++ {
		wg.Add(1)
		require.NoError(t, q.Submit(document.NewRenderJob(id)))
	}
	wg.Wait()

	require.NoError(t, q.Stop(context.Background()))
	assert.Equal(t, map[int64]bool{1: true, 2: true, 3: true}, seen)
}

func TestRenderQueue_FullQueue(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)

	q, err := NewRenderQueue(QueueConfig{Workers: 1, QueueSize: 1, JobTimeout: time.Second},
		JobExecutorFunc(func(context.Context, *document.RenderJob) error {
			started <- struct{}{}
			<-release
			return nil
		}), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, q.Start(context.Background()))

	// First job occupies the worker, second fills the buffer
	require.NoError(t, q.Submit(document.NewRenderJob(1)))
	<-started
	require.NoError(t, q.Submit(document.NewRenderJob(2)))

	assert.ErrorIs(t, q.Submit(document.NewRenderJob(3)), ErrJobQueueFull)
	assert.Equal(t, 1, q.Pending())

	close(release)
	<-started
	require.NoError(t, q.Stop(context.Background()))
}

func TestRenderQueue_FailuresAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{})

	q, err := NewRenderQueue(testConfig(), JobExecutorFunc(func(context.Context, *document.RenderJob) error {
		calls.Add(1)
		close(done)
		return errors.New("render failed")
	}), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, q.Start(context.Background()))

	require.NoError(t, q.Submit(document.NewRenderJob(1)))
	<-done
	require.NoError(t, q.Stop(context.Background()))

	assert.Equal(t, int32(1), calls.Load())
}

func TestRenderQueue_PanicDoesNotKillWorker(t *testing.T) {
	var wg sync.WaitGroup
	var completed atomic.Int32

	q, err := NewRenderQueue(QueueConfig{Workers: 1, QueueSize: 2, JobTimeout: time.Second},
		JobExecutorFunc(func(_ context.Context, job *document.RenderJob) error {
			defer wg.Done()
			if job.OwnerID == 1 {
				panic("boom")
			}
			completed.Add(1)
			return nil
		}), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, q.Start(context.Background()))

	wg.Add(2)
	require.NoError(t, q.Submit(document.NewRenderJob(1)))
	require.NoError(t, q.Submit(document.NewRenderJob(2)))
	wg.Wait()

	require.NoError(t, q.Stop(context.Background()))
	assert.Equal(t, int32(1), completed.Load())
}

func TestRenderQueue_PanickedJobIsFailed(t *testing.T) {
	q, err := NewRenderQueue(QueueConfig{Workers: 1, QueueSize: 1, JobTimeout: time.Second},
		JobExecutorFunc(func(_ context.Context, job *document.RenderJob) error {
			job.Start()
			panic("glyph table corrupt")
		}), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, q.Start(context.Background()))

	job := document.NewRenderJob(7)
	require.NoError(t, q.Submit(job))
	require.NoError(t, q.Stop(context.Background()))

	assert.Equal(t, document.JobStatusFailed, job.Status)
	assert.Equal(t, document.CodeRenderFailed, job.ErrorCode)
	assert.Contains(t, job.Error, "glyph table corrupt")
	assert.NotNil(t, job.CompletedAt)
}

func TestRenderQueue_StopDrainsQueuedJobs(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	q, err := NewRenderQueue(QueueConfig{Workers: 1, QueueSize: 3, JobTimeout: time.Second},
		JobExecutorFunc(func(context.Context, *document.RenderJob) error {
			<-release
			calls.Add(1)
			return nil
		}), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, q.Start(context.Background()))

	for id := int64(1); id <= 3; id++ {
		require.NoError(t, q.Submit(document.NewRenderJob(id)))
	}
	close(release)

	require.NoError(t, q.Stop(context.Background()))
	assert.Equal(t, int32(3), calls.Load())
	assert.ErrorIs(t, q.Submit(document.NewRenderJob(4)), ErrSchedulerNotRunning)
	assert.ErrorIs(t, q.Start(context.Background()), ErrSchedulerNotRunning)
}

func TestRenderQueue_StopTimeout(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	q, err := NewRenderQueue(QueueConfig{Workers: 1, QueueSize: 1, JobTimeout: time.Minute},
		JobExecutorFunc(func(context.Context, *document.RenderJob) error {
			close(started)
			<-release
			return nil
		}), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, q.Start(context.Background()))
	require.NoError(t, q.Submit(document.NewRenderJob(1)))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Stop(ctx), context.DeadlineExceeded)

	close(release)
}

func TestRenderQueue_JobOutlivesStartContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)

	q, err := NewRenderQueue(testConfig(), JobExecutorFunc(func(jobCtx context.Context, _ *document.RenderJob) error {
		result <- jobCtx.Err()
		return nil
	}), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, q.Start(ctx))
	cancel()

	require.NoError(t, q.Submit(document.NewRenderJob(1)))
	assert.NoError(t, <-result)
	require.NoError(t, q.Stop(context.Background()))
}
