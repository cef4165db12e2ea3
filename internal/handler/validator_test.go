package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePaymentMethod(t *testing.T) {
	v := GetValidator()

	for _, method := range []string{"card", "sbp", "manual"} {
		req := CreateIntentRequest{UserID: "u1", Amount: 100, Spins: 1, Method: method}
		assert.NoError(t, v.ValidateStruct(req), method)
	}

	req := CreateIntentRequest{UserID: "u1", Amount: 100, Spins: 1, Method: "paypal"}
	assert.Error(t, v.ValidateStruct(req))
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	err := v.ValidateStruct(CreateIntentRequest{Method: "paypal"})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["userid"])
	assert.Equal(t, "Invalid payment method", fields["method"])
}

func TestFormatValidationError_NonValidatorError(t *testing.T) {
	fields := FormatValidationError(assert.AnError)
	assert.Equal(t, "Invalid request format", fields["error"])
}
