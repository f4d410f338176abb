package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
)

const (
	MsgNetworkError       = "Network error. Please try again."
	MsgRequestFailed      = "Request failed"
	MsgUnexpectedResponse = "Unexpected response from server."
	MsgValidationFailed   = "Validation failed"
	MsgResponseTooLarge   = "Response too large."
)

// FieldError is a field-level validation error, from the backend or from
// client-side request validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Response is the uniform result of every API call.
type Response[T any] struct {
	Success bool
	Message string
	Data    *T
	Token   string
	Errors  []FieldError
}

// Err converts a failed response into an *Error, and a successful one into nil.
func (r Response[T]) Err() error {
	if r.Success {
		return nil
	}
	return &Error{Message: r.Message, Fields: r.Errors}
}

// Error is a failed Response seen as a Go error.
type Error struct {
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

type envelopeMeta struct {
	Token string `json:"token"`
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Content json.RawMessage `json:"content"`
	Meta    *envelopeMeta   `json:"meta"`
	Errors  json.RawMessage `json:"errors"`
}

// fieldErrors decodes the errors array leniently: anything that is not a list
// of {field, message, code} objects is dropped.
func (e envelope) fieldErrors() []FieldError {
	out := []FieldError{}
	if len(e.Errors) == 0 {
		return out
	}
	if err := json.Unmarshal(e.Errors, &out); err != nil || out == nil {
		return []FieldError{}
	}
	return out
}

func failure[T any](msg string, errs []FieldError) Response[T] {
	if msg == "" {
		msg = MsgRequestFailed
	}
	if errs == nil {
		errs = []FieldError{}
	}
	return Response[T]{Success: false, Message: msg, Errors: errs}
}

func networkFailure[T any]() Response[T] {
	return failure[T](MsgNetworkError, nil)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decode turns a status code and a raw body into a Response.
func decode[T any](status int, body []byte) Response[T] {
	if status == http.StatusNoContent {
		return Response[T]{Success: true, Errors: []FieldError{}}
	}
	if !json.Valid(body) {
		return networkFailure[T]()
	}

	var env envelope
	shapeErr := json.Unmarshal(body, &env)
	errs := env.fieldErrors()

	if status < 200 || status > 299 {
		return failure[T](env.Message, errs)
	}
	if shapeErr != nil || env.Success == nil {
		return failure[T](MsgUnexpectedResponse, errs)
	}

	out := Response[T]{Success: *env.Success, Message: env.Message, Errors: errs}
	if env.Meta != nil {
		out.Token = env.Meta.Token
	}
	if !isNull(env.Content) {
		var data T
		if err := json.Unmarshal(env.Content, &data); err != nil {
			return failure[T](MsgUnexpectedResponse, errs)
		}
		out.Data = &data
	}
	if !out.Success && out.Message == "" {
		out.Message = MsgRequestFailed
	}
	return out
}
