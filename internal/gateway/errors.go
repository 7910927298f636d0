package gateway

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// RequestError carries a non-2xx backend response: the HTTP status, a
// flattened human message, and the per-field error details when the
// backend provides them. FieldErrors are always folded into Message as
// well so a single string is renderable.
type RequestError struct {
	Status      int
	Message     string
	FieldErrors map[string][]string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// errorEnvelope is the backend error body. The errors object maps field
// names to either a single message or a list of messages.
type errorEnvelope struct {
	Message string                     `json:"message"`
	Error   string                     `json:"error"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

// newRequestError decodes a backend error body into a RequestError,
// tolerating an unparseable body by falling back to its raw text.
func newRequestError(status int, body []byte) *RequestError {
	reqErr := &RequestError{Status: status}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		reqErr.Message = strings.TrimSpace(string(body))
		if reqErr.Message == "" {
			reqErr.Message = "request failed"
		}
		return reqErr
	}

	message := envelope.Message
	if message == "" {
		message = envelope.Error
	}
	if message == "" {
		message = "request failed"
	}

	if len(envelope.Errors) > 0 {
		reqErr.FieldErrors = make(map[string][]string, len(envelope.Errors))
		fields := make([]string, 0, len(envelope.Errors))
		for field, raw := range envelope.Errors {
			reqErr.FieldErrors[field] = decodeFieldMessages(raw)
			fields = append(fields, field)
		}
		sort.Strings(fields)

		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(reqErr.FieldErrors[field], "; ")))
		}
		message = message + " (" + strings.Join(parts, ", ") + ")"
	}

	reqErr.Message = message
	return reqErr
}

func decodeFieldMessages(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	return []string{strings.TrimSpace(string(raw))}
}
