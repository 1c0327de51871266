package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfix/maintapi/internal/shopify"
)

func TestRecordUserErrorsBenignVsFailure(t *testing.T) {
	result := NewOperationResult()

	var userErrors []shopify.UserError
	for i := 0; i < 30; i++ {
		if i < 5 {
			userErrors = append(userErrors, shopify.UserError{
				Message: "not stocked",
				Code:    CodeItemNotStocked,
			})
			continue
		}
		userErrors = append(userErrors, shopify.UserError{
			Message: fmt.Sprintf("failure %d", i),
			Code:    "INVALID",
		})
	}

	result.RecordUserErrors("inventoryAdjustQuantities", userErrors)

	assert.False(t, result.OK)
	assert.Equal(t, 5, result.NotStocked)
	assert.Equal(t, 25, result.Failed)
	assert.Len(t, result.SampleErrors, 25)
}

func TestRecordUserErrorsSampleCapIsFirstCome(t *testing.T) {
	result := NewOperationResult()

	for i := 0; i < 40; i++ {
		result.RecordUserErrors("scope", []shopify.UserError{
			{Message: fmt.Sprintf("failure %d", i)},
		})
	}

	assert.Equal(t, 40, result.Failed)
	require.Len(t, result.SampleErrors, 25)
	assert.Equal(t, "failure 0", result.SampleErrors[0].Message)
	assert.Equal(t, "failure 24", result.SampleErrors[24].Message)
}

func TestRecordUserErrorsAllBenignKeepsOK(t *testing.T) {
	result := NewOperationResult()

	result.RecordUserErrors("scope", []shopify.UserError{
		{Message: "not stocked", Code: CodeItemNotStocked},
		{Message: "not stocked", Code: CodeItemNotStocked},
	})

	assert.True(t, result.OK)
	assert.Equal(t, 2, result.NotStocked)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.SampleErrors)
}
