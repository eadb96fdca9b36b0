package document

import "github.com/kitcha/docrender/internal/domain/shared"

// Error codes for the render pipeline
const (
	CodeNotFound           = "NOT_FOUND"
	CodeResourceLoadFailed = "RESOURCE_LOAD_FAILED"
	CodeRenderFailed       = "RENDER_FAILED"
	CodeRenderTimeout      = "RENDER_TIMEOUT"
	CodeRecordUnavailable  = "RECORD_UNAVAILABLE"
	CodeStorageFailed      = "STORAGE_FAILED"
	CodeInconsistentState  = "INCONSISTENT_STATE"
	CodeQueueUnavailable   = "QUEUE_UNAVAILABLE"
)

var (
	// ErrRecordNotFound is returned when the record is absent or logically deleted
	ErrRecordNotFound = shared.NewDomainError(CodeNotFound, "Record not found")

	// ErrDocumentNotFound is returned when no rendered document exists for a record
	ErrDocumentNotFound = shared.NewDomainError(CodeNotFound, "Rendered document not found")

	// ErrResourceLoad is returned when fonts or the background image cannot be loaded
	ErrResourceLoad = shared.NewDomainError(CodeResourceLoadFailed, "Render resources could not be loaded")

	// ErrRender is returned when layout or serialization fails
	ErrRender = shared.NewDomainError(CodeRenderFailed, "Document rendering failed")

	// ErrRenderTimeout is returned when a render runs past its deadline or is cancelled
	ErrRenderTimeout = shared.NewDomainError(CodeRenderTimeout, "Document rendering timed out")

	// ErrRecordUnavailable is returned when the record source fails for a reason other than absence
	ErrRecordUnavailable = shared.NewDomainError(CodeRecordUnavailable, "Record source is unavailable")

	// ErrStorage is returned when the object store fails on put or get
	ErrStorage = shared.NewDomainError(CodeStorageFailed, "Document storage is unavailable")

	// ErrInconsistentState is returned when metadata references an object that does not exist
	ErrInconsistentState = shared.NewDomainError(CodeInconsistentState, "Document metadata references a missing object")

	// ErrQueueUnavailable is returned when a render job cannot be dispatched
	ErrQueueUnavailable = shared.NewDomainError(CodeQueueUnavailable, "Render queue is unavailable")
)
