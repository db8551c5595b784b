package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingSession indicates an operation that requires an authenticated
// session was attempted without one. No request is sent in that case.
var ErrMissingSession = errors.New("supabase: no active session")

// ErrCorruptPayload indicates a 2xx response whose body could not be decoded
// into the expected payload type.
var ErrCorruptPayload = errors.New("supabase: corrupt response payload")

// ErrorResponse is the structured error body returned by the API on any
// non-2xx status. Bodies that do not match the structured shape are carried
// verbatim in RawBody. HTTPStatus is always set from the response.
type ErrorResponse struct {
	Message          string `json:"message"`
	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Status           int    `json:"status"`

	HTTPStatus int    `json:"-"`
	RawBody    string `json:"-"`
}

// newErrorResponse classifies a non-2xx response body. Structured fields are
// used when the body decodes and carries at least one of them; otherwise the
// error is synthesized from the raw text and the HTTP status.
func newErrorResponse(httpStatus int, body []byte) *ErrorResponse {
	er := &ErrorResponse{}
	if err := json.Unmarshal(body, er); err != nil || er.isEmpty() {
		*er = ErrorResponse{}
	}
	er.HTTPStatus = httpStatus
	er.RawBody = strings.TrimSpace(string(body))
	return er
}

func (e *ErrorResponse) isEmpty() bool {
	return e.Message == "" && e.ErrorCode == "" && e.ErrorDescription == "" && e.Status == 0
}

// BestMessage returns the most specific description available, in priority
// order: message, error_description, error, raw body text.
func (e *ErrorResponse) BestMessage() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.ErrorCode != "":
		return e.ErrorCode
	default:
		return e.RawBody
	}
}

// StatusHint returns the body's status field when present, else the HTTP
// status. Zero when neither is known.
func (e *ErrorResponse) StatusHint() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.HTTPStatus
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	msg := e.BestMessage()
	if msg == "" {
		msg = "request failed"
	}
	if status := e.StatusHint(); status != 0 {
		return fmt.Sprintf("supabase: %s (status: %d)", msg, status)
	}
	return fmt.Sprintf("supabase: %s", msg)
}
