package printing

import (
	"context"
	"image"
	"time"
)

// ComposeRequest contains the content and page geometry for one document
type ComposeRequest struct {
	// Title is wrapped and drawn in the title font
	Title string
	// Body is wrapped and drawn in the body font; newlines are hard breaks
	Body string
	// Background overrides the pooled background image when set
	Background image.Image
	// PageWidth and PageHeight are in points; zero uses the composer default
	PageWidth  float64
	PageHeight float64
}

// ComposeResult contains the output of a composition
type ComposeResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// PageCount is the number of pages in the PDF
	PageCount int
	// Layout is the line placement that was drawn
	Layout PageLayout
	// RenderDuration is how long the composition took
	RenderDuration time.Duration
}

// DocumentComposer turns a title and body into a single-page PDF
type DocumentComposer interface {
	Compose(ctx context.Context, req *ComposeRequest) (*ComposeResult, error)
}

// RenderError represents an error while composing or storing a document
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeResourceLoadFailed = "RESOURCE_LOAD_FAILED"
	ErrCodeRenderFailed       = "RENDER_FAILED"
	ErrCodeRenderTimeout      = "RENDER_TIMEOUT"
	ErrCodeStorageFailed      = "STORAGE_FAILED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
