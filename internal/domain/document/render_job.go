package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitcha/docrender/internal/domain/shared"
)

// RenderJob tracks a single render attempt for a record.
// A job is owned by exactly one worker and is never retried.
type RenderJob struct {
	ID          uuid.UUID
	OwnerID     int64
	Status      JobStatus
	StorageKey  string     // Set once the bytes are stored
	ErrorCode   string     // Code of the failure, if any
	Error       string     // Failure message, if any
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// NewRenderJob creates a pending job for ownerID
func NewRenderJob(ownerID int64) *RenderJob {
	return &RenderJob{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Status:    JobStatusPending,
		CreatedAt: time.Now(),
	}
}

// Start records when a worker picked the job up
func (j *RenderJob) Start() {
	now := time.Now()
	j.StartedAt = &now
}

// MarkComposed moves the job past composition
func (j *RenderJob) MarkComposed() error {
	return j.transition(JobStatusComposed)
}

// MarkStored records the storage key of the uploaded bytes
func (j *RenderJob) MarkStored(storageKey string) error {
	if storageKey == "" {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if err := j.transition(JobStatusStored); err != nil {
		return err
	}
	j.StorageKey = storageKey
	return nil
}

// Complete marks the job as done
func (j *RenderJob) Complete() error {
	if err := j.transition(JobStatusDone); err != nil {
		return err
	}
	now := time.Now()
	j.CompletedAt = &now
	return nil
}

// Fail marks the job as failed with an error code and message
func (j *RenderJob) Fail(code, message string) error {
	if err := j.transition(JobStatusFailed); err != nil {
		return err
	}
	j.ErrorCode = code
	j.Error = message
	now := time.Now()
	j.CompletedAt = &now
	return nil
}

// IsTerminal returns true if the job is in a terminal state
func (j *RenderJob) IsTerminal() bool {
	return j.Status.IsTerminal()
}

func (j *RenderJob) transition(target JobStatus) error {
	if !j.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot move render job from "+j.Status.String()+" to "+target.String())
	}
	j.Status = target
	return nil
}
