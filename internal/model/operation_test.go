package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyntheticOperationID(t *testing.T) {
	tests := []struct {
		method   Method
		path     string
		expected string
	}{
		{MethodGet, "/widgets/{id}", "GET__widgets__id_"},
		{MethodPost, "/widgets", "POST__widgets"},
		{MethodDelete, "/a/{b}/{c}", "DELETE__a__b___c_"},
		{Method("patch"), "/x", "PATCH__x"},
		{MethodGet, "/", "GET__"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, SyntheticOperationID(tt.method, tt.path))
		})
	}
}

func TestOperationID(t *testing.T) {
	op := Operation{Method: MethodGet, Path: "/widgets/{id}"}
	require.Equal(t, "GET__widgets__id_", op.ID())

	op.OperationID = "getWidget"
	require.Equal(t, "getWidget", op.ID())
}

func TestOperationTitle(t *testing.T) {
	op := Operation{Method: MethodGet, Path: "/pets"}
	require.Equal(t, "GET /pets", op.Title())

	op.OperationID = "listPets"
	require.Equal(t, "listPets", op.Title())

	op.Summary = "List pets"
	require.Equal(t, "List pets", op.Title())
}

func TestOperationIsDocumented(t *testing.T) {
	require.False(t, (&Operation{}).IsDocumented())
	require.True(t, (&Operation{OperationID: "x"}).IsDocumented())
	require.True(t, (&Operation{HasResponses: true}).IsDocumented())
}

func TestTagsOrDefault(t *testing.T) {
	require.Equal(t, []string{DefaultTag}, (&Operation{}).TagsOrDefault())
	require.Equal(t, []string{"A", "B"}, (&Operation{Tags: []string{"A", "B"}}).TagsOrDefault())
}
