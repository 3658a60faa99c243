// Package bizerror classifies store outcomes and shapes the uniform result
// envelope every service operation returns. Conflict is always synthesized
// locally; the stores never report it themselves.
package bizerror

import "net/http"

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeConflict
	OutcomeInternal
)

// Response is the envelope handed to the transport layer. Result carries the
// requested payload on success and a human readable message otherwise.
type Response struct {
	ID         string      `json:"id,omitempty"`
	TotalCount int         `json:"totalCount,omitempty"`
	Result     interface{} `json:"result"`
	StatusCode int         `json:"statusCode"`
}

// ClassifyStoreStatus maps a store reported status onto a domain outcome.
// Stores only ever report success, not-found or internal-error.
func ClassifyStoreStatus(status int) Outcome {
	switch {
	case status == http.StatusInternalServerError:
		return OutcomeInternal
	case status == http.StatusNotFound:
		return OutcomeNotFound
	default:
		return OutcomeOK
	}
}

func Respond(result interface{}, statusCode int) *Response {
	return &Response{Result: result, StatusCode: statusCode}
}

func RespondPage(result interface{}, totalCount, statusCode int) *Response {
	return &Response{Result: result, TotalCount: totalCount, StatusCode: statusCode}
}

// ErrorResponse wraps a failure message. A zero statusCode collapses to
// internal-error, mirroring how unexpected exceptions lose their origin.
func ErrorResponse(message string, statusCode int) *Response {
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	return &Response{Result: message, StatusCode: statusCode}
}

func Conflict(message string) *Response {
	return &Response{Result: message, StatusCode: http.StatusConflict}
}

func NotFound() *Response {
	return &Response{Result: nil, StatusCode: http.StatusNotFound}
}
