package errors

import "fmt"

// ErrValidation is returned when required request metadata is missing or invalid
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrConfiguration is returned when a required server-side setting is absent
// (e.g. the webhook shared secret). Operator-visible, not retryable.
type ErrConfiguration struct {
	Setting string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("missing configuration: %s", e.Setting)
}

// ErrRemoteProtocol is returned when an Admin API response has no top-level
// data field. It covers transport failures and GraphQL-level errors
// uniformly; RawErrors carries whatever the upstream sent back.
type ErrRemoteProtocol struct {
	Operation string
	RawErrors string
}

func (e *ErrRemoteProtocol) Error() string {
	if e.RawErrors != "" {
		return fmt.Sprintf("shopify protocol error in %s: %s", e.Operation, e.RawErrors)
	}
	return fmt.Sprintf("shopify protocol error in %s: response has no data", e.Operation)
}
