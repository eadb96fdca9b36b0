package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a record or its document does not exist
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Render pipeline error codes
const (
	// ErrCodeRenderFailed is used when layout or serialization fails
	ErrCodeRenderFailed = "ERR_RENDER_FAILED"
	// ErrCodeRenderTimeout is used when a render exceeds its deadline
	ErrCodeRenderTimeout = "ERR_RENDER_TIMEOUT"
	// ErrCodeResourceLoad is used when fonts or the background cannot be loaded
	ErrCodeResourceLoad = "ERR_RESOURCE_LOAD"
	// ErrCodeStorageUnavailable is used when the object store fails
	ErrCodeStorageUnavailable = "ERR_STORAGE_UNAVAILABLE"
	// ErrCodeQueueUnavailable is used when a render job cannot be queued
	ErrCodeQueueUnavailable = "ERR_QUEUE_UNAVAILABLE"
	// ErrCodeRecordUnavailable is used when the record source cannot be read
	ErrCodeRecordUnavailable = "ERR_RECORD_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	ErrCodeRenderFailed:       http.StatusInternalServerError,
	ErrCodeRenderTimeout:      http.StatusGatewayTimeout,
	ErrCodeResourceLoad:       http.StatusInternalServerError,
	ErrCodeStorageUnavailable: http.StatusBadGateway,
	ErrCodeQueueUnavailable:   http.StatusServiceUnavailable,
	ErrCodeRecordUnavailable:  http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,
	"RENDER_FAILED":        ErrCodeRenderFailed,
	"RENDER_TIMEOUT":       ErrCodeRenderTimeout,
	"RESOURCE_LOAD_FAILED": ErrCodeResourceLoad,
	"STORAGE_FAILED":       ErrCodeStorageUnavailable,
	"QUEUE_UNAVAILABLE":    ErrCodeQueueUnavailable,
	"RECORD_UNAVAILABLE":   ErrCodeRecordUnavailable,
	// Missing objects behind a metadata row are reported as not found
	"INCONSISTENT_STATE": ErrCodeNotFound,
}

// NormalizeErrorCode converts a domain error code to the API format
// If the code is already in the API format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
