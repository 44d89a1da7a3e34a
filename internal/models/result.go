package models

import "net/http"

// CompletionResult is the tagged outcome of one run: either Data or Err is set.
type CompletionResult struct {
	StatusCode int
	Data       any
	Err        *PipelineError
}

func Ok(data any) CompletionResult {
	return CompletionResult{StatusCode: http.StatusOK, Data: data}
}

func Fail(err *PipelineError) CompletionResult {
	return CompletionResult{StatusCode: err.StatusCode, Err: err}
}

func (r CompletionResult) IsOK() bool {
	return r.Err == nil
}

// Response renders the result the way clients receive it.
func (r CompletionResult) Response() GenerateResponse {
	if r.Err == nil {
		return GenerateResponse{StatusCode: r.StatusCode, Data: r.Data}
	}
	return GenerateResponse{
		StatusCode: r.StatusCode,
		Message:    r.Err.Message,
		Kind:       string(r.Err.Kind),
		Error:      r.Err.Detail,
	}
}

type GenerateResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Error      string `json:"error,omitempty"`
}

type PromptPreset struct {
	Name     string       `json:"name"`
	Title    string       `json:"title"`
	Mode     ResponseMode `json:"mode"`
	Template string       `json:"template"`
}
