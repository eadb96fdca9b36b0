package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kitcha/docrender/internal/domain/document"
	"go.uber.org/zap"
)

// JobExecutor runs a single render job
type JobExecutor interface {
	Execute(ctx context.Context, job *document.RenderJob) error
}

// JobExecutorFunc adapts a function to JobExecutor
type JobExecutorFunc func(ctx context.Context, job *document.RenderJob) error

// Execute calls f(ctx, job)
func (f JobExecutorFunc) Execute(ctx context.Context, job *document.RenderJob) error {
	return f(ctx, job)
}

// QueueConfig holds render queue configuration
type QueueConfig struct {
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
}

// DefaultQueueConfig returns default render queue configuration
func DefaultQueueConfig() QueueConfig {
	return QueueConfig{
		Workers:    4,
		QueueSize:  100,
		JobTimeout: 2 * time.Minute,
	}
}

// Validate checks the configuration
func (c QueueConfig) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue size must be positive", ErrInvalidConfig)
	}
	if c.JobTimeout <= 0 {
		return fmt.Errorf("%w: job timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// RenderQueue is a bounded job queue drained by a fixed worker pool.
// Jobs are never retried; failures are logged by the worker.
type RenderQueue struct {
	config   QueueConfig
	executor JobExecutor
	logger   *zap.Logger

	jobs      chan *document.RenderJob
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	stopped   bool
}

// NewRenderQueue creates a new render queue instance
func NewRenderQueue(config QueueConfig, executor JobExecutor, logger *zap.Logger) (*RenderQueue, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if executor == nil {
		return nil, fmt.Errorf("%w: executor is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderQueue{
		config:   config,
		executor: executor,
		logger:   logger,
		jobs:     make(chan *document.RenderJob, config.QueueSize),
	}, nil
}

// Start starts the worker pool. A queue cannot be restarted after Stop.
// Values of ctx are passed on to every job; its cancellation is not.
func (q *RenderQueue) Start(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.isRunning {
		return nil
	}
	if q.stopped {
		return ErrSchedulerNotRunning
	}
	q.isRunning = true

	runCtx := context.WithoutCancel(ctx)
	for i := 0; i < q.config.Workers; i++ {
		q.wg.Add(1)
		go q.worker(runCtx, i)
	}

	q.logger.Info("Render queue started",
		zap.Int("workers", q.config.Workers),
		zap.Int("queue_size", q.config.QueueSize),
		zap.Duration("job_timeout", q.config.JobTimeout),
	)

	return nil
}

// Stop closes the queue and waits for queued and in-flight jobs until ctx expires
func (q *RenderQueue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.isRunning {
		q.mu.Unlock()
		return nil
	}
	q.isRunning = false
	q.stopped = true
	close(q.jobs)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.logger.Info("Render queue stopped gracefully")
		return nil
	case <-ctx.Done():
		q.logger.Warn("Render queue stop timed out")
		return ctx.Err()
	}
}

// Submit enqueues a job without blocking
func (q *RenderQueue) Submit(job *document.RenderJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.isRunning {
		return ErrSchedulerNotRunning
	}

	select {
	case q.jobs <- job:
		q.logger.Debug("Job submitted",
			zap.String("job_id", job.ID.String()),
			zap.Int64("owner_id", job.OwnerID),
		)
		return nil
	default:
		return ErrJobQueueFull
	}
}

// Pending returns the number of queued jobs not yet picked up by a worker
func (q *RenderQueue) Pending() int {
	return len(q.jobs)
}

// worker processes jobs until the queue is closed and drained
func (q *RenderQueue) worker(ctx context.Context, workerID int) {
	defer q.wg.Done()

	q.logger.Debug("Worker started", zap.Int("worker_id", workerID))
	for job := range q.jobs {
		q.processJob(ctx, job, workerID)
	}
	q.logger.Debug("Job channel closed", zap.Int("worker_id", workerID))
}

// processJob executes a single job
func (q *RenderQueue) processJob(ctx context.Context, job *document.RenderJob, workerID int) {
	q.logger.Info("Processing job",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.Int64("owner_id", job.OwnerID),
	)

	jobCtx, cancel := context.WithTimeout(ctx, q.config.JobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Job panicked",
				zap.Int("worker_id", workerID),
				zap.String("job_id", job.ID.String()),
				zap.Int64("owner_id", job.OwnerID),
				zap.Any("panic", r),
			)
			if !job.IsTerminal() {
				if err := job.Fail(document.CodeRenderFailed, fmt.Sprintf("job panicked: %v", r)); err != nil {
					q.logger.Warn("Failed to mark panicked job as failed", zap.Error(err))
				}
			}
		}
	}()

	if err := q.executor.Execute(jobCtx, job); err != nil {
		q.logger.Error("Job failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.Int64("owner_id", job.OwnerID),
			zap.String("error_code", job.ErrorCode),
			zap.Error(err),
		)
		return
	}

	q.logger.Info("Job completed successfully",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.Int64("owner_id", job.OwnerID),
	)
}
