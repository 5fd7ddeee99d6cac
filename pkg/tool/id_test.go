package tool

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUIDV7(t *testing.T) {
	a, b := GenerateUUIDV7(), GenerateUUIDV7()
	require.NotEqual(t, a, b)

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(7), id.Version())
	// v7 ids sort by creation time
	require.Less(t, a, b)
}
