package service

import (
	"context"

	"github.com/stockfix/maintapi/internal/shopify"
)

// fallbackReasons is the fixed priority order of adjustment reason values.
// Which values a shop accepts is configuration we cannot query cheaply, so
// the mutation is probed with each candidate in turn.
var fallbackReasons = []string{"correction", "cycle_count", "other"}

// reasonMutator issues the adjustment mutation with one candidate reason.
type reasonMutator func(ctx context.Context, reason string) ([]shopify.UserError, error)

// mutateWithReasonFallback tries each candidate reason until a response no
// longer carries the INVALID_REASON code, or the candidates run out; the
// last response is returned either way. Only the invalid-reason signal
// triggers another attempt, every other outcome is final.
func mutateWithReasonFallback(ctx context.Context, mutate reasonMutator) ([]shopify.UserError, error) {
	var userErrors []shopify.UserError
	for _, reason := range fallbackReasons {
		var err error
		userErrors, err = mutate(ctx, reason)
		if err != nil {
			return nil, err
		}
		if !hasCode(userErrors, CodeInvalidReason) {
			return userErrors, nil
		}
	}
	return userErrors, nil
}

func hasCode(userErrors []shopify.UserError, code string) bool {
	for _, ue := range userErrors {
		if ue.Code == code {
			return true
		}
	}
	return false
}
