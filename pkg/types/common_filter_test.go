package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommonFilter_Validate(t *testing.T) {
	allowed := map[string]bool{"status": true}

	require.NoError(t, (&CommonFilter{Field: "status", Operator: CommonFilterOperatorIn, Values: []any{"Failed", "Error"}}).Validate(allowed))
	require.Error(t, (&CommonFilter{Field: "status", Operator: CommonFilterOperatorRange, Values: []any{1}}).Validate(allowed))
	require.Error(t, (&CommonFilter{Field: "status", Operator: "like", Values: []any{"x"}}).Validate(allowed))
	require.Error(t, (&CommonFilter{Field: "other", Operator: CommonFilterOperatorEq, Values: []any{"x"}}).Validate(allowed))
	require.Error(t, (&CommonFilter{Field: "status", Operator: CommonFilterOperatorEq}).Validate(allowed))
}
