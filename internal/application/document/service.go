package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/kitcha/docrender/internal/domain/document"
	"github.com/kitcha/docrender/internal/domain/shared"
	"github.com/kitcha/docrender/internal/infrastructure/logger"
	infra "github.com/kitcha/docrender/internal/infrastructure/printing"
	"github.com/kitcha/docrender/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DocumentStore persists and retrieves rendered documents
type DocumentStore interface {
	Put(ctx context.Context, ownerID int64, displayName string, content []byte) (string, error)
	Get(ctx context.Context, ownerID int64) (*domain.RenderedDocument, error)
}

// JobQueue accepts render jobs for asynchronous execution
type JobQueue interface {
	Submit(job *domain.RenderJob) error
}

// Option configures a Service
type Option func(*Service)

// WithMetrics records pipeline metrics on m
func WithMetrics(m *telemetry.RenderMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithQueue dispatches Render requests to q
func WithQueue(q JobQueue) Option {
	return func(s *Service) {
		s.queue = q
	}
}

// Service renders records into documents and serves the stored results
type Service struct {
	records  domain.RecordRepository
	composer infra.DocumentComposer
	store    DocumentStore
	queue    JobQueue
	metrics  *telemetry.RenderMetrics
	logger   *zap.Logger
}

// NewService creates a new Service
func NewService(
	records domain.RecordRepository,
	composer infra.DocumentComposer,
	store DocumentStore,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		records:  records,
		composer: composer,
		store:    store,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// =============================================================================
// Render Operations
// =============================================================================

// Render validates the record and queues a render job for it.
// It returns as soon as the job is accepted.
func (s *Service) Render(ctx context.Context, ownerID int64) (*RenderTicket, error) {
	if _, err := s.loadRecord(ctx, ownerID); err != nil {
		return nil, err
	}

	if s.queue == nil {
		return nil, domain.ErrQueueUnavailable
	}

	job := domain.NewRenderJob(ownerID)
	if err := s.queue.Submit(job); err != nil {
		s.logger.Warn("Render job rejected",
			zap.Int64("owner_id", ownerID),
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrQueueUnavailable, err)
	}

	s.logger.Info("Render job queued",
		zap.Int64("owner_id", ownerID),
		zap.String("job_id", job.ID.String()))

	return ToRenderTicket(job), nil
}

// RenderSync renders the record inline and returns the finished job
func (s *Service) RenderSync(ctx context.Context, ownerID int64) (*RenderJobResponse, error) {
	job := domain.NewRenderJob(ownerID)
	if err := s.Execute(ctx, job); err != nil {
		return ToRenderJobResponse(job), err
	}
	return ToRenderJobResponse(job), nil
}

// Execute runs a render job: reload the record, compose it, then store the
// bytes and the metadata row. A failed job is never retried.
func (s *Service) Execute(ctx context.Context, job *domain.RenderJob) error {
	if job == nil {
		return shared.NewDomainError("INVALID_INPUT", "Render job is required")
	}
	if job.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Render job has already finished")
	}

	ctx = logger.WithOwnerID(ctx, job.OwnerID)
	ctx = logger.WithJobID(ctx, job.ID.String())
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanRender,
		telemetry.AttrOwnerID.Int64(job.OwnerID),
		telemetry.AttrJobID.String(job.ID.String()))
	defer span.End()

	log := logger.WithLogger(ctx, s.logger)
	job.Start()

	if err := s.runGuarded(ctx, job); err != nil {
		code, mapped := classifyError(err)
		if failErr := job.Fail(code, err.Error()); failErr != nil {
			log.Warn("Failed to mark render job as failed", zap.Error(failErr))
		}
		log.Error("Render job failed",
			zap.String("error_code", code),
			zap.Error(err))
		telemetry.RecordError(span, err, telemetry.AttrErrorCode.String(code))
		s.metrics.RecordRender(ctx, code)
		return mapped
	}

	log.Info("Render job completed",
		zap.String("storage_key", job.StorageKey),
		zap.Duration("duration", job.CompletedAt.Sub(*job.StartedAt)))
	telemetry.SetOK(span)
	s.metrics.RecordRender(ctx, "")
	return nil
}

// runGuarded turns a panic in the pipeline into an ordinary render failure
func (s *Service) runGuarded(ctx context.Context, job *domain.RenderJob) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panicked: %v", r)
		}
	}()
	return s.run(ctx, job)
}

func (s *Service) run(ctx context.Context, job *domain.RenderJob) error {
	record, err := s.loadRecord(ctx, job.OwnerID)
	if err != nil {
		return err
	}

	result, err := s.compose(ctx, record)
	if err != nil {
		return err
	}
	if err := job.MarkComposed(); err != nil {
		return err
	}

	key, err := s.put(ctx, record, result.PDFData)
	if err != nil {
		return err
	}
	if err := job.MarkStored(key); err != nil {
		return err
	}
	return job.Complete()
}

func (s *Service) compose(ctx context.Context, record *domain.Record) (*infra.ComposeResult, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanCompose, telemetry.AttrOwnerID.Int64(record.ID))
	defer span.End()

	start := time.Now()
	result, err := s.composer.Compose(ctx, &infra.ComposeRequest{
		Title: record.Title,
		Body:  record.Body,
	})
	s.metrics.RecordStage(ctx, "compose", time.Since(start))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(telemetry.AttrSizeBytes.Int(len(result.PDFData)))
	s.metrics.RecordDocumentSize(ctx, len(result.PDFData))
	telemetry.SetOK(span)
	return result, nil
}

func (s *Service) put(ctx context.Context, record *domain.Record, content []byte) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanStore, telemetry.AttrOwnerID.Int64(record.ID))
	defer span.End()

	start := time.Now()
	key, err := s.store.Put(ctx, record.ID, record.Title, content)
	s.metrics.RecordStage(ctx, "store", time.Since(start))
	if err != nil {
		telemetry.RecordError(span, err)
		return "", err
	}

	span.SetAttributes(telemetry.AttrStorageKey.String(key))
	telemetry.SetOK(span)
	return key, nil
}

// =============================================================================
// Fetch Operations
// =============================================================================

// Fetch returns the stored document for a record.
// A deleted record yields NotFound even if a document was rendered earlier.
func (s *Service) Fetch(ctx context.Context, ownerID int64) (*domain.DownloadedDocument, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanFetch, telemetry.AttrOwnerID.Int64(ownerID))
	defer span.End()

	if _, err := s.loadRecord(ctx, ownerID); err != nil {
		s.recordFetchFailure(ctx, err)
		telemetry.RecordError(span, err)
		return nil, err
	}

	doc, err := s.store.Get(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			_, err = classifyError(err)
		}
		s.recordFetchFailure(ctx, err)
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		telemetry.AttrStorageKey.String(doc.StorageKey),
		telemetry.AttrSizeBytes.Int(len(doc.Content)))
	telemetry.SetOK(span)
	s.metrics.RecordFetch(ctx, telemetry.OutcomeSuccess)

	return &domain.DownloadedDocument{
		DisplayName: doc.DisplayName,
		Content:     doc.Content,
	}, nil
}

func (s *Service) recordFetchFailure(ctx context.Context, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		s.metrics.RecordFetch(ctx, telemetry.OutcomeNotFound)
		return
	}
	s.metrics.RecordFetch(ctx, telemetry.OutcomeFailure)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Service) loadRecord(ctx context.Context, ownerID int64) (*domain.Record, error) {
	record, err := s.records.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: failed to load record: %w", domain.ErrRecordUnavailable, err)
	}
	if !record.IsAvailable() {
		return nil, domain.ErrRecordNotFound
	}
	return record, nil
}

// classifyError returns the job error code for err and err wrapped in the
// matching domain sentinel.
func classifyError(err error) (string, error) {
	var renderErr *infra.RenderError
	if errors.As(err, &renderErr) {
		switch renderErr.Code {
		case infra.ErrCodeResourceLoadFailed:
			return renderErr.Code, fmt.Errorf("%w: %w", domain.ErrResourceLoad, err)
		case infra.ErrCodeStorageFailed:
			return renderErr.Code, fmt.Errorf("%w: %w", domain.ErrStorage, err)
		case infra.ErrCodeRenderTimeout:
			return renderErr.Code, fmt.Errorf("%w: %w", domain.ErrRenderTimeout, err)
		default:
			return renderErr.Code, fmt.Errorf("%w: %w", domain.ErrRender, err)
		}
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code, err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.CodeRenderTimeout, fmt.Errorf("%w: %w", domain.ErrRenderTimeout, err)
	}
	return domain.CodeRenderFailed, fmt.Errorf("%w: %w", domain.ErrRender, err)
}
