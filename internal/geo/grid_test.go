package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	sangotedoLat = 6.4698
	sangotedoLng = 3.6285
)

func TestCellOfDeterministic(t *testing.T) {
	grid := NewGrid(9)

	first, err := grid.CellOf(sangotedoLat, sangotedoLng)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	for range 5 {
		again, err := grid.CellOf(sangotedoLat, sangotedoLng)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestCellOfRejectsOutOfRange(t *testing.T) {
	grid := NewGrid(9)

	cases := []struct {
		name     string
		lat, lng float64
	}{
		{"latitude too high", 90.1, 0},
		{"latitude too low", -91, 0},
		{"longitude too high", 0, 180.5},
		{"longitude too low", 0, -181},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.CellOf(tc.lat, tc.lng)
			require.ErrorIs(t, err, ErrInvalidCoordinate)
		})
	}
}

func TestRingSizes(t *testing.T) {
	grid := NewGrid(9)
	cell, err := grid.CellOf(sangotedoLat, sangotedoLng)
	require.NoError(t, err)

	ring0, err := grid.RingOf(cell, 0)
	require.NoError(t, err)
	require.Equal(t, []string{cell}, ring0)

	ring1, err := grid.RingOf(cell, 1)
	require.NoError(t, err)
	require.Len(t, ring1, 7)
	require.Contains(t, ring1, cell)

	ring2, err := grid.RingOf(cell, 2)
	require.NoError(t, err)
	require.Len(t, ring2, 19)
	require.Contains(t, ring2, cell)
}

func TestRingOfRejectsMalformedCell(t *testing.T) {
	grid := NewGrid(9)

	for _, bad := range []string{"", "not-a-cell", "zzzz"} {
		_, err := grid.RingOf(bad, 1)
		require.ErrorIs(t, err, ErrInvalidCell)
	}
}

func TestCellCenterStableAcrossPointsInCell(t *testing.T) {
	grid := NewGrid(9)

	// Two nearby points land in the same cell; the centroid is the cell's
	// center, not an average of the inputs.
	cellA, err := grid.CellOf(sangotedoLat, sangotedoLng)
	require.NoError(t, err)
	cellB, err := grid.CellOf(sangotedoLat+0.0001, sangotedoLng+0.0001)
	require.NoError(t, err)
	require.Equal(t, cellA, cellB)

	center, err := grid.CellCenter(cellA)
	require.NoError(t, err)
	require.InDelta(t, sangotedoLng, center[0], 0.01)
	require.InDelta(t, sangotedoLat, center[1], 0.01)
}

func TestGridsAtDifferentResolutionsAreIndependent(t *testing.T) {
	coarse := NewGrid(7)
	fine := NewGrid(9)

	coarseCell, err := coarse.CellOf(sangotedoLat, sangotedoLng)
	require.NoError(t, err)
	fineCell, err := fine.CellOf(sangotedoLat, sangotedoLng)
	require.NoError(t, err)
	require.NotEqual(t, coarseCell, fineCell)
}
