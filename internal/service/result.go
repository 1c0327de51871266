package service

import "github.com/stockfix/maintapi/internal/shopify"

// Shopify user-error codes with fixed meaning for the bulk engine.
const (
	// CodeItemNotStocked marks an adjustment against a location that does
	// not stock the item. Expected during a store-wide sweep; counted
	// separately, never fails the run.
	CodeItemNotStocked = "ITEM_NOT_STOCKED_AT_LOCATION"
	// CodeInvalidReason marks a rejected adjustment reason enum value.
	// Triggers the reason fallback, nothing else.
	CodeInvalidReason = "INVALID_REASON"
)

const maxSampleErrors = 25

// SampleError is one captured user-error, tagged with the mutation scope
// that produced it.
type SampleError struct {
	Scope   string `json:"scope"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// OperationResult is the structured summary of one bulk operation run.
// Per-entity failures are recorded here and never abort the run; OK is true
// iff zero true failures were recorded across the whole pass.
type OperationResult struct {
	OK           bool          `json:"ok"`
	Scanned      int           `json:"scanned"`
	Succeeded    int           `json:"succeeded"`
	Failed       int           `json:"failed"`
	NotStocked   int           `json:"notStocked"`
	SampleErrors []SampleError `json:"sampleErrors"`
}

// NewOperationResult creates an empty, successful result.
func NewOperationResult() *OperationResult {
	return &OperationResult{OK: true, SampleErrors: []SampleError{}}
}

// RecordUserErrors folds one mutation response's user-errors into the
// result. The not-stocked sentinel is counted as benign; every other error
// increments the failure count, flips OK, and is sampled up to the cap,
// first come first kept.
func (r *OperationResult) RecordUserErrors(scope string, userErrors []shopify.UserError) {
	for _, ue := range userErrors {
		if ue.Code == CodeItemNotStocked {
			r.NotStocked++
			continue
		}
		r.Failed++
		r.OK = false
		if len(r.SampleErrors) < maxSampleErrors {
			r.SampleErrors = append(r.SampleErrors, SampleError{
				Scope:   scope,
				Message: ue.Message,
				Code:    ue.Code,
			})
		}
	}
}
