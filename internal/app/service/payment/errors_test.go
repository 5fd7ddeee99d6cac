package payment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/payfacade/pkg/validation"
)

func TestValidationError_JoinsMessages(t *testing.T) {
	err := &ValidationError{Violations: []validation.Violation{
		{Field: "amount", Message: "amount must be greater than 0"},
		{Field: "regulator", Message: "regulator is required"},
	}}
	require.Equal(t, "validation failed: amount must be greater than 0; regulator is required", err.Error())
}

func TestServiceError_KeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", newServiceError("failed to insert payment record", cause))

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "failed to insert payment record", serr.Message)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "failed to insert payment record", (&ServiceError{Message: "failed to insert payment record"}).Error())
}
