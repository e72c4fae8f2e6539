package services

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindConfiguration  ErrorKind = "configuration_error"
	KindValidation     ErrorKind = "validation_error"
	KindExtraction     ErrorKind = "extraction_error"
	KindUpstream       ErrorKind = "upstream_error"
	KindUpstreamFormat ErrorKind = "upstream_format_error"
	KindModelOutput    ErrorKind = "model_output_error"
)

// ReviewError is returned by every step of the review pipeline. None of the
// kinds are retried; the request fails with the mapped status.
type ReviewError struct {
	Kind    ErrorKind
	Message string
	Details string
	// Status is the upstream HTTP status, set only for non-success replies.
	Status int
	// Raw carries the upstream envelope or model text for diagnosis.
	Raw   string
	Cause error
}

func (e *ReviewError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ReviewError) Unwrap() error {
	return e.Cause
}

func (e *ReviewError) HTTPStatus() int {
	if e.Kind == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// AsReviewError reports whether err is (or wraps) a *ReviewError.
func AsReviewError(err error) (*ReviewError, bool) {
	var re *ReviewError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

func IsKind(err error, kind ErrorKind) bool {
	re, ok := AsReviewError(err)
	return ok && re.Kind == kind
}

func newConfigurationError(message, details string) *ReviewError {
	return &ReviewError{Kind: KindConfiguration, Message: message, Details: details}
}

func newValidationError(message, details string) *ReviewError {
	return &ReviewError{Kind: KindValidation, Message: message, Details: details}
}

func newExtractionError(message string, cause error) *ReviewError {
	re := &ReviewError{Kind: KindExtraction, Message: message, Cause: cause}
	if cause != nil {
		re.Details = cause.Error()
	}
	return re
}

func newUpstreamError(message string, cause error) *ReviewError {
	re := &ReviewError{Kind: KindUpstream, Message: message, Cause: cause}
	if cause != nil {
		re.Details = cause.Error()
	}
	return re
}

func newUpstreamStatusError(status int, body string) *ReviewError {
	return &ReviewError{
		Kind:    KindUpstream,
		Message: "Completion API returned a non-200 status.",
		Details: body,
		Status:  status,
	}
}

func newUpstreamFormatError(details, raw string) *ReviewError {
	return &ReviewError{
		Kind:    KindUpstreamFormat,
		Message: "Unexpected completion API response format.",
		Details: details,
		Raw:     raw,
	}
}

func newModelOutputError(message, details, raw string) *ReviewError {
	return &ReviewError{
		Kind:    KindModelOutput,
		Message: message,
		Details: details,
		Raw:     raw,
	}
}
