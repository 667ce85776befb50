package battlefield

import (
	"fmt"
	"iter"
	"sync"
)

// Battlefield is the authoritative grid of one fight.
// All methods, including those of its cells, are safe for concurrent use.
type Battlefield struct {
	topology *Topology

	mu    sync.RWMutex
	cells []*liveCell
}

// New builds an empty battlefield over topology.
//
// Precondition: topology must be valid (see Topology.Validate).
// Postcondition: Size() == topology.Dimensions.Size(); no cell is occupied.
func New(topology *Topology) *Battlefield {
	b := &Battlefield{
		topology: topology,
		cells:    make([]*liveCell, len(topology.Terrain)),
	}
	for i, terrain := range topology.Terrain {
		b.cells[i] = &liveCell{battlefield: b, id: i, terrain: terrain}
	}
	return b
}

// Topology returns the map layout this battlefield was built from.
func (b *Battlefield) Topology() *Topology { return b.topology }

// Size returns the number of cells.
func (b *Battlefield) Size() int { return len(b.cells) }

// Dimensions returns the grid dimensions.
func (b *Battlefield) Dimensions() Dimensions { return b.topology.Dimensions }

// Get returns the live cell with the given id.
func (b *Battlefield) Get(id int) (Cell, bool) {
	if id < 0 || id >= len(b.cells) {
		return nil, false
	}
	return b.cells[id], true
}

// All yields every live cell in id order.
func (b *Battlefield) All() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range b.cells {
			if !yield(c) {
				return
			}
		}
	}
}

// Move relocates o from one cell to another atomically with respect to other
// battlefield readers and writers.
//
// Precondition: from holds o; to is walkable.
// Postcondition: on success from is free and to holds o; on error nothing changed.
func (b *Battlefield) Move(o Occupant, from, to int) error {
	if from < 0 || from >= len(b.cells) || to < 0 || to >= len(b.cells) {
		return fmt.Errorf("moving fighter %d from %d to %d: %w", o.ID(), from, to, ErrCellOutOfRange)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	src, dst := b.cells[from], b.cells[to]
	if src.occupant == nil || src.occupant.ID() != o.ID() {
		return fmt.Errorf("fighter %d is not on cell %d", o.ID(), from)
	}
	if err := dst.placeLocked(o); err != nil {
		return err
	}
	src.occupant = nil
	return nil
}

type liveCell struct {
	battlefield *Battlefield
	id          int
	terrain     Terrain
	occupant    Occupant
}

func (c *liveCell) ID() int  { return c.id }
func (c *liveCell) Map() Map { return c.battlefield }

func (c *liveCell) WalkableIgnoreFighter() bool { return c.terrain.Walkable }
func (c *liveCell) LineOfSight() bool           { return c.terrain.LineOfSight }

func (c *liveCell) Walkable() bool {
	c.battlefield.mu.RLock()
	defer c.battlefield.mu.RUnlock()
	return c.terrain.Walkable && c.occupant == nil
}

func (c *liveCell) SightBlocking() bool {
	c.battlefield.mu.RLock()
	defer c.battlefield.mu.RUnlock()
	return !c.terrain.LineOfSight || c.occupant != nil
}

func (c *liveCell) Fighter() (Occupant, bool) {
	c.battlefield.mu.RLock()
	defer c.battlefield.mu.RUnlock()
	return c.occupant, c.occupant != nil
}

func (c *liveCell) Set(o Occupant) error {
	c.battlefield.mu.Lock()
	defer c.battlefield.mu.Unlock()
	return c.placeLocked(o)
}

func (c *liveCell) placeLocked(o Occupant) error {
	if c.occupant != nil {
		return fmt.Errorf("placing fighter %d on cell %d: %w", o.ID(), c.id, ErrCellOccupied)
	}
	if !c.terrain.Walkable {
		return fmt.Errorf("placing fighter %d on cell %d: %w", o.ID(), c.id, ErrCellNotWalkable)
	}
	c.occupant = o
	return nil
}

func (c *liveCell) RemoveFighter() error {
	c.battlefield.mu.Lock()
	defer c.battlefield.mu.Unlock()
	c.occupant = nil
	return nil
}
