package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/usestring/roadmap-mcp/internal/repo"
	"github.com/usestring/roadmap-mcp/internal/search"
	"github.com/usestring/roadmap-mcp/pkg/roadmap"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeUpstream     = "UPSTREAM_ERROR"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeInternal     = "INTERNAL"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapEngineError maps repository and query-engine errors onto coded errors.
func WrapEngineError(err error) error {
	if err == nil {
		return nil
	}

	coded := classify(err)

	slog.Warn("roadmap tool error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

func classify(err error) *CodedError {
	var notFound *search.NotFoundError
	if errors.As(err, &notFound) {
		return &CodedError{Code: ErrCodeNotFound, Message: notFound.Error(), Cause: err}
	}

	var invalid *search.InvalidArgumentError
	if errors.As(err, &invalid) {
		return &CodedError{Code: ErrCodeInvalidInput, Message: invalid.Reason, Cause: err}
	}

	if errors.Is(err, repo.ErrUpstreamUnavailable) {
		return &CodedError{Code: ErrCodeUpstream, Message: "roadmap feed unavailable and no cached snapshot exists", Cause: err}
	}

	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		return &CodedError{Code: ErrCodeTimeout, Message: "roadmap feed request timed out", Cause: err}
	}

	var apiErr *roadmap.APIError
	if errors.As(err, &apiErr) {
		return &CodedError{Code: ErrCodeUpstream, Message: apiErr.Error(), Cause: err}
	}

	return &CodedError{Code: ErrCodeInternal, Message: err.Error(), Cause: err}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
