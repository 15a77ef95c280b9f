package warnings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := New()
	c.Record("first")
	c.Recordf("Reference %s not found in components.schemas", "Missing")
	c.Record("first")

	require.Equal(t, 2, c.Len())

	got := c.Drain()
	require.Equal(t, []string{"first", "Reference Missing not found in components.schemas"}, got)
	require.Equal(t, 0, c.Len())
	require.Empty(t, c.Drain())

	c.Record("first")
	require.Equal(t, []string{"first"}, c.Drain())
}

func TestZeroValueCollector(t *testing.T) {
	var c Collector
	c.Record("x")
	require.Equal(t, []string{"x"}, c.Drain())
}
