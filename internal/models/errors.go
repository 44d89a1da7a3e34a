package models

import (
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	ErrUnsupportedFileType ErrorKind = "UnsupportedFileType"
	ErrEmptyExtraction     ErrorKind = "EmptyExtraction"
	ErrProcessing          ErrorKind = "ProcessingError"
	ErrTransport           ErrorKind = "TransportError"
	ErrUpstream            ErrorKind = "UpstreamError"
	ErrEmptyResponse       ErrorKind = "EmptyResponse"
	ErrMalformedResponse   ErrorKind = "MalformedResponse"
	ErrJSONParse           ErrorKind = "JsonParseError"
	ErrConfigMissing       ErrorKind = "ConfigMissing"
	ErrMissingPlaceholder  ErrorKind = "MissingPlaceholder"
)

// PipelineError is the terminal failure of one pipeline run. Detail carries
// the raw diagnostic (upstream body, parser message) shown to the user as-is.
type PipelineError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Detail     string
	Err        error
}

func (e *PipelineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches any *PipelineError of the same kind, so callers can write
// errors.Is(err, models.KindError(models.ErrUpstream)).
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindError returns a sentinel usable with errors.Is.
func KindError(kind ErrorKind) *PipelineError {
	return &PipelineError{Kind: kind}
}

func NewPipelineError(kind ErrorKind, message string, err error) *PipelineError {
	pe := &PipelineError{
		Kind:       kind,
		StatusCode: defaultStatus(kind),
		Message:    message,
		Err:        err,
	}
	if err != nil {
		pe.Detail = err.Error()
	}
	return pe
}

func NewUpstreamError(status int, body string) *PipelineError {
	return &PipelineError{
		Kind:       ErrUpstream,
		StatusCode: status,
		Message:    "Error calling completion API",
		Detail:     body,
	}
}

func defaultStatus(kind ErrorKind) int {
	switch kind {
	case ErrUnsupportedFileType, ErrEmptyExtraction, ErrMissingPlaceholder:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
