// Package geo maps geographic points onto a fixed-resolution hexagonal grid.
// Cell identifiers are H3 index strings; the grid is the primary spatial key
// for bucket assignment and neighborhood search.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	h3 "github.com/uber/h3-go/v4"
)

var (
	// ErrInvalidCoordinate marks latitude/longitude outside the valid range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidCell marks a malformed grid cell identifier.
	ErrInvalidCell = errors.New("invalid cell")
)

// Grid converts points to cell identifiers at one fixed resolution. It holds
// no state beyond the resolution, so any number of grids can coexist.
type Grid struct {
	resolution int
}

// NewGrid returns a grid at the given H3 resolution. Resolution 9 yields
// hexagons of roughly 174m diameter.
func NewGrid(resolution int) *Grid {
	return &Grid{resolution: resolution}
}

// Resolution reports the configured H3 resolution.
func (g *Grid) Resolution() int { return g.resolution }

// CellOf returns the identifier of the cell containing the point.
func (g *Grid) CellOf(lat, lng float64) (string, error) {
	if err := ValidateCoordinate(lat, lng); err != nil {
		return "", err
	}
	cell := h3.LatLngToCell(h3.NewLatLng(lat, lng), g.resolution)
	if !cell.IsValid() {
		return "", fmt.Errorf("%w: no cell for (%f, %f)", ErrInvalidCell, lat, lng)
	}
	return cell.String(), nil
}

// RingOf returns all cells within ring distance k of the given cell, center
// included. k=0 yields 1 cell, k=1 yields 7, k=2 yields 19.
func (g *Grid) RingOf(cellID string, k int) ([]string, error) {
	cell, err := parseCell(cellID)
	if err != nil {
		return nil, err
	}
	disk := h3.GridDisk(cell, k)
	ids := make([]string, 0, len(disk))
	for _, c := range disk {
		ids = append(ids, c.String())
	}
	return ids, nil
}

// CellCenter returns the deterministic center point of a cell as an orb.Point
// in (lng, lat) order.
func (g *Grid) CellCenter(cellID string) (orb.Point, error) {
	cell, err := parseCell(cellID)
	if err != nil {
		return orb.Point{}, err
	}
	center := h3.CellToLatLng(cell)
	return orb.Point{center.Lng, center.Lat}, nil
}

// ValidateCoordinate checks that lat/lng are finite and within range.
func ValidateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("%w: non-finite lat/lng", ErrInvalidCoordinate)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %f out of [-90, 90]", ErrInvalidCoordinate, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %f out of [-180, 180]", ErrInvalidCoordinate, lng)
	}
	return nil
}

func parseCell(cellID string) (h3.Cell, error) {
	if cellID == "" {
		return 0, fmt.Errorf("%w: empty identifier", ErrInvalidCell)
	}
	cell := h3.Cell(h3.IndexFromString(cellID))
	if !cell.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCell, cellID)
	}
	return cell, nil
}
