package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// NetworkError is a transport failure: the request never produced an HTTP
// response (connection refused, DNS failure, broken pipe, ...).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is a 401: missing, expired or invalid credentials.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("unauthorized: %s", e.Detail)
	}
	return "unauthorized"
}

// NotFoundError is a 404 for a specific resource.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "not found"
}

// ConflictError reports a uniqueness violation (duplicate email or username).
type ConflictError struct {
	Status int
	Detail string
}

func (e *ConflictError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "conflict"
}

// ValidationError is a 400/422 rejection. Fields maps a field name to its
// message when the server reported field-level detail.
type ValidationError struct {
	Status int
	Detail string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("validation failed: %s", e.Detail)
	}
	return "validation failed"
}

// HTTPError covers any remaining non-2xx status.
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// errorBody is the upstream error envelope. Detail is either a plain string
// or, for 422 responses, a list of per-field entries.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldDetail struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// errorFromResponse maps a non-2xx response onto the error taxonomy.
//
// The upstream server reports duplicate email/username as 400 with a
// "... already ..." detail string; those map to ConflictError alongside
// genuine 409s. Any other 400 is treated as a validation rejection.
func errorFromResponse(status int, body []byte) error {
	detail, fields := parseDetail(body)

	switch status {
	case http.StatusUnauthorized:
		return &AuthError{Detail: detail}
	case http.StatusNotFound:
		return &NotFoundError{Detail: detail}
	case http.StatusConflict:
		return &ConflictError{Status: status, Detail: detail}
	case http.StatusBadRequest:
		if strings.Contains(strings.ToLower(detail), "already") {
			return &ConflictError{Status: status, Detail: detail}
		}
		return &ValidationError{Status: status, Detail: detail, Fields: fields}
	case http.StatusUnprocessableEntity:
		return &ValidationError{Status: status, Detail: detail, Fields: fields}
	default:
		return &HTTPError{Status: status, Detail: detail}
	}
}

// parseDetail extracts the detail string and, when present, field-level
// messages from an error body. Unparseable bodies yield an empty detail.
func parseDetail(body []byte) (string, map[string]string) {
	if len(body) == 0 {
		return "", nil
	}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s, nil
	}

	var items []fieldDetail
	if err := json.Unmarshal(envelope.Detail, &items); err != nil {
		return "", nil
	}

	fields := make(map[string]string, len(items))
	var msgs []string
	for _, it := range items {
		name := ""
		if len(it.Loc) > 0 {
			// last loc element is the field name
			_ = json.Unmarshal(it.Loc[len(it.Loc)-1], &name)
		}
		if name != "" {
			fields[name] = it.Msg
			msgs = append(msgs, name+": "+it.Msg)
		} else if it.Msg != "" {
			msgs = append(msgs, it.Msg)
		}
	}
	if len(fields) == 0 {
		fields = nil
	}
	return strings.Join(msgs, "; "), fields
}
