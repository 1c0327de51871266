package domain

// EventStatus represents the processing state of a webhook event
type EventStatus string

const (
	// PENDING - persisted, waiting to be claimed by a consumer
	EventStatusPending EventStatus = "PENDING"
	// PROCESSING - claimed by a consumer, work in flight
	EventStatusProcessing EventStatus = "PROCESSING"
	// SUCCEEDED - consumer finished successfully
	EventStatusSucceeded EventStatus = "SUCCEEDED"
	// FAILED - consumer gave up after exhausting its attempts
	EventStatusFailed EventStatus = "FAILED"
)

// IsValid checks if the event status is valid
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusPending, EventStatusProcessing, EventStatusSucceeded, EventStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is a final state
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusSucceeded || s == EventStatusFailed
}

// CanTransitionTo checks if a status transition is valid
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	switch s {
	case EventStatusPending:
		return next == EventStatusProcessing
	case EventStatusProcessing:
		return next == EventStatusSucceeded || next == EventStatusFailed
	default:
		return false // terminal states
	}
}
