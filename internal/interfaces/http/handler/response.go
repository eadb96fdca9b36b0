package handler

import (
	appdoc "github.com/kitcha/docrender/internal/application/document"
	"github.com/kitcha/docrender/internal/interfaces/http/dto"
)

// APIResponse is the typed form of dto.Response used in API docs and tests
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON reply
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// RenderTicketResponse is the 202 body of a queued render
type RenderTicketResponse = APIResponse[appdoc.RenderTicket]

// RenderJobResultResponse is the 200 body of a render run with wait=true
type RenderJobResultResponse = APIResponse[appdoc.RenderJobResponse]
