package document

import (
	"time"

	"github.com/google/uuid"
	domain "github.com/kitcha/docrender/internal/domain/document"
)

// RenderTicket is returned when a render job has been accepted
type RenderTicket struct {
	JobID     uuid.UUID `json:"job_id"`
	OwnerID   int64     `json:"owner_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToRenderTicket converts a queued job to its ticket
func ToRenderTicket(job *domain.RenderJob) *RenderTicket {
	return &RenderTicket{
		JobID:     job.ID,
		OwnerID:   job.OwnerID,
		Status:    job.Status.String(),
		CreatedAt: job.CreatedAt,
	}
}

// RenderJobResponse reports the outcome of a synchronous render
type RenderJobResponse struct {
	JobID       uuid.UUID  `json:"job_id"`
	OwnerID     int64      `json:"owner_id"`
	Status      string     `json:"status"`
	StorageKey  string     `json:"storage_key,omitempty"`
	ErrorCode   string     `json:"error_code,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ToRenderJobResponse converts a job to its response DTO
func ToRenderJobResponse(job *domain.RenderJob) *RenderJobResponse {
	return &RenderJobResponse{
		JobID:       job.ID,
		OwnerID:     job.OwnerID,
		Status:      job.Status.String(),
		StorageKey:  job.StorageKey,
		ErrorCode:   job.ErrorCode,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
	}
}
