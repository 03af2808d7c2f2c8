package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCapitalize(t *testing.T) {
	require.Equal(t, "Acme", Capitalize("acme"))
	require.Equal(t, "Acme", Capitalize("Acme"))
	require.Equal(t, "", Capitalize(""))
	require.Equal(t, "Éclair", Capitalize("éclair"))
}
