// Package battlefield provides the fight grid: the live battlefield owned by a
// fight, the copy-on-write proxy used for AI simulation, and map topology loading.
package battlefield

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

var (
	// ErrCellOccupied is returned when placing an occupant on a cell that already holds one.
	ErrCellOccupied = errors.New("cell already occupied")
	// ErrCellNotWalkable is returned when placing an occupant on non-walkable terrain.
	ErrCellNotWalkable = errors.New("cell is not walkable")
	// ErrReadOnlyCell is returned by cells of a Proxy on any direct mutation.
	ErrReadOnlyCell = errors.New("cell is read-only")
	// ErrCellOutOfRange is returned for cell ids outside the grid.
	ErrCellOutOfRange = errors.New("cell id out of range")
)

// Occupant is the weak back-reference a cell holds to the fighter standing on it.
type Occupant interface {
	ID() int
}

// Cell is one square of a battlefield grid.
type Cell interface {
	// ID returns the cell id, in [0, Map().Size()).
	ID() int
	// Map returns the battlefield this cell view belongs to.
	Map() Map
	// Walkable reports whether the terrain is walkable and no fighter stands on the cell.
	Walkable() bool
	// WalkableIgnoreFighter reports whether the terrain alone is walkable.
	WalkableIgnoreFighter() bool
	// LineOfSight reports whether the terrain lets sight through.
	LineOfSight() bool
	// SightBlocking reports whether the terrain blocks sight or a fighter stands on the cell.
	SightBlocking() bool
	// Fighter returns the occupant, if any.
	Fighter() (Occupant, bool)
	// Set places o on the cell.
	Set(o Occupant) error
	// RemoveFighter clears the occupant.
	RemoveFighter() error
}

// Map is a read view over a fixed grid of cells.
type Map interface {
	Size() int
	Dimensions() Dimensions
	// Get returns the cell with the given id; false if id is outside the grid.
	Get(id int) (Cell, bool)
	// All yields every cell in id order.
	All() iter.Seq[Cell]
}

// Dimensions is the width and height of a rectangular grid. Cell ids are
// assigned row by row: id = y*Width + x.
type Dimensions struct {
	Width  int
	Height int
}

// Size returns the number of cells in the grid.
func (d Dimensions) Size() int { return d.Width * d.Height }

// Contains reports whether id is a valid cell id for the grid.
func (d Dimensions) Contains(id int) bool { return id >= 0 && id < d.Size() }

// Coordinates returns the (x, y) position of id.
//
// Precondition: d.Contains(id).
func (d Dimensions) Coordinates(id int) (x, y int) {
	return id % d.Width, id / d.Width
}

// CellID returns the id at (x, y); false when (x, y) is outside the grid.
func (d Dimensions) CellID(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= d.Width || y >= d.Height {
		return 0, false
	}
	return y*d.Width + x, true
}

// Distance returns the Manhattan distance between two cells.
//
// Precondition: both ids are contained in d.
func (d Dimensions) Distance(a, b int) int {
	ax, ay := d.Coordinates(a)
	bx, by := d.Coordinates(b)
	return abs(ax-bx) + abs(ay-by)
}

// Adjacent reports whether a and b share an edge.
func (d Dimensions) Adjacent(a, b int) bool {
	return d.Contains(a) && d.Contains(b) && d.Distance(a, b) == 1
}

// Neighbors returns the ids sharing an edge with id, in north, east, south, west order.
//
// Postcondition: every returned id is contained in d.
func (d Dimensions) Neighbors(id int) []int {
	x, y := d.Coordinates(id)
	out := make([]int, 0, 4)
	for _, off := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		if n, ok := d.CellID(x+off[0], y+off[1]); ok {
			out = append(out, n)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Terrain describes the static properties of one cell.
type Terrain struct {
	Walkable    bool
	LineOfSight bool
}

// Floor is open walkable terrain.
var Floor = Terrain{Walkable: true, LineOfSight: true}

// Topology is the fixed layout of a fight map.
//
// Invariant: len(Terrain) == Dimensions.Size(); every start place is a walkable cell.
type Topology struct {
	ID          string
	Dimensions  Dimensions
	Terrain     []Terrain
	StartPlaces map[int][]int
}

// Validate checks the topology invariants.
//
// Postcondition: Returns nil if valid, or an error describing all violations.
func (t *Topology) Validate() error {
	var errs []string
	if t.ID == "" {
		errs = append(errs, "map id must not be empty")
	}
	if t.Dimensions.Width < 1 || t.Dimensions.Height < 1 {
		errs = append(errs, fmt.Sprintf("map dimensions must be positive, got %dx%d", t.Dimensions.Width, t.Dimensions.Height))
	}
	if len(t.Terrain) != t.Dimensions.Size() {
		errs = append(errs, fmt.Sprintf("map has %d cells, want %d", len(t.Terrain), t.Dimensions.Size()))
	}
	for team, cells := range t.StartPlaces {
		for _, c := range cells {
			switch {
			case c < 0 || c >= len(t.Terrain):
				errs = append(errs, fmt.Sprintf("team %d start place %d is outside the map", team, c))
			case !t.Terrain[c].Walkable:
				errs = append(errs, fmt.Sprintf("team %d start place %d is not walkable", team, c))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid map %q: %s", t.ID, strings.Join(errs, "; "))
	}
	return nil
}
