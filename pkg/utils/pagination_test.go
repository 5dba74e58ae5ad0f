package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateTotalPages(t *testing.T) {
	cases := []struct {
		name    string
		total   int64
		perPage int
		want    int
	}{
		{"empty", 0, 10, 0},
		{"exact fit", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"single item", 1, 10, 1},
		{"one per page", 5, 1, 5},
		{"zero per page", 10, 0, 0},
		{"negative total", -1, 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CalculateTotalPages(tc.total, tc.perPage))
		})
	}
}

// Ceiling invariant: (pages-1)*perPage < total <= pages*perPage.
func TestCalculateTotalPagesCeiling(t *testing.T) {
	perPage := 10
	for total := int64(1); total <= 105; total++ {
		pages := CalculateTotalPages(total, perPage)
		require.Greater(t, total, int64(pages-1)*int64(perPage))
		require.LessOrEqual(t, total, int64(pages)*int64(perPage))
	}
}

func TestCalculateOffset(t *testing.T) {
	require.Equal(t, 0, CalculateOffset(1, 10))
	require.Equal(t, 10, CalculateOffset(2, 10))
	require.Equal(t, 90, CalculateOffset(10, 10))
	require.Equal(t, 0, CalculateOffset(0, 10))
	require.Equal(t, 0, CalculateOffset(-3, 10))
}
