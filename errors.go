package sdk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bloomify/bloomify/sdk/go/headers"
)

// APIError is a non-2xx response from the storefront backend, with whatever
// error detail the body carried.
type APIError struct {
	Status    int
	Detail    string
	Fields    map[string][]string
	RequestID string
}

// Error implements the error interface.
func (e APIError) Error() string {
	detail := e.Detail
	if detail == "" && len(e.Fields) > 0 {
		detail = "validation failed"
	}
	if detail == "" {
		detail = "request rejected"
	}
	return fmt.Sprintf("storefront api: %s (status %d)", detail, e.Status)
}

// TransportError is a request that never completed: DNS failure, refused
// connection, canceled context.
type TransportError struct {
	Op    string
	Cause error
}

// Error implements the error interface.
func (e TransportError) Error() string {
	return fmt.Sprintf("storefront %s: request failed: %v", e.Op, e.Cause)
}

// Unwrap exposes the underlying transport failure.
func (e TransportError) Unwrap() error { return e.Cause }

// AuthError is a rejected login or register round-trip. The flows show users
// a fixed generic notice instead of this error's detail.
type AuthError struct {
	Op    string
	Cause error
}

// Error implements the error interface.
func (e AuthError) Error() string {
	return fmt.Sprintf("storefront %s failed: %v", e.Op, e.Cause)
}

// Unwrap exposes the rejection cause.
func (e AuthError) Unwrap() error { return e.Cause }

// decodeAPIError reads the error body the Django backend produces. The shape
// varies by view: {"detail": ...} from DRF itself, {"error": ...} or
// {"message": ...} from hand-written views, and a field->messages map from
// serializer validation.
func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	apiErr := APIError{
		Status:    resp.StatusCode,
		RequestID: resp.Header.Get(headers.RequestID),
	}
	if len(data) == 0 {
		apiErr.Detail = resp.Status
		return apiErr
	}
	var payload struct {
		Detail  string `json:"detail"`
		Err     string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		apiErr.Detail = string(data)
		return apiErr
	}
	switch {
	case payload.Detail != "":
		apiErr.Detail = payload.Detail
	case payload.Err != "":
		apiErr.Detail = payload.Err
	case payload.Message != "":
		apiErr.Detail = payload.Message
	default:
		var fields map[string][]string
		if err := json.Unmarshal(data, &fields); err == nil && len(fields) > 0 {
			apiErr.Fields = fields
		} else {
			apiErr.Detail = resp.Status
		}
	}
	return apiErr
}
