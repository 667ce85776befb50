package battlefield

import (
	"fmt"
	"iter"
	"maps"
)

// Proxy is an immutable what-if view of a live battlefield. It overlays a
// sparse set of hypothetical occupancy changes on top of the base map; cells
// without an override are read through to the base.
//
// A Proxy never mutates the base or any previously built Proxy, so generations
// may be shared between goroutines that only read them.
type Proxy struct {
	base    Map
	overlay map[int]Occupant // nil value: freed cell
	cells   []Cell
}

// NewProxy wraps base without any modification.
//
// Postcondition: every cell reads through to base and rejects mutation.
func NewProxy(base Map) *Proxy {
	return generation(base, nil)
}

// generation builds the read-only cell views of base resolved through overlay.
func generation(base Map, overlay map[int]Occupant) *Proxy {
	p := &Proxy{base: base, overlay: overlay, cells: make([]Cell, base.Size())}
	for c := range base.All() {
		view := &proxyCell{proxy: p, base: c}
		if o, ok := overlay[c.ID()]; ok {
			view.overridden = true
			view.occupant = o
		}
		p.cells[c.ID()] = view
	}
	return p
}

// Size returns the base's cell count.
func (p *Proxy) Size() int { return p.base.Size() }

// Dimensions returns the base's dimensions.
func (p *Proxy) Dimensions() Dimensions { return p.base.Dimensions() }

// Get returns the cell with the given id, resolved through the overlay.
func (p *Proxy) Get(id int) (Cell, bool) {
	if id < 0 || id >= len(p.cells) {
		return nil, false
	}
	return p.cells[id], true
}

// All yields every cell in id order, resolved through the overlay.
func (p *Proxy) All() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range p.cells {
			if !yield(c) {
				return
			}
		}
	}
}

// Overrides returns the number of cells whose occupancy differs from the base.
func (p *Proxy) Overrides() int { return len(p.overlay) }

// Modify returns a new generation combining p's overlay with the changes made by fn.
//
// Precondition: fn must not retain the Modifier.
// Postcondition: p is unchanged; on error no proxy is returned.
func (p *Proxy) Modify(fn func(m *Modifier)) (*Proxy, error) {
	m := &Modifier{size: p.base.Size(), entries: make(map[int]Occupant)}
	fn(m)
	if m.err != nil {
		return nil, m.err
	}

	overlay := make(map[int]Occupant, len(p.overlay)+len(m.entries))
	maps.Copy(overlay, p.overlay)
	maps.Copy(overlay, m.entries)

	return generation(p.base, overlay), nil
}

// Modifier collects the overlay entries of one Modify call.
// The first out-of-range id is kept as a sticky error.
type Modifier struct {
	size    int
	entries map[int]Occupant
	err     error
}

// Free marks the cell as having no occupant.
func (m *Modifier) Free(id int) *Modifier {
	return m.put(id, nil)
}

// SetFighter marks the cell as occupied by o.
//
// Precondition: o must not be nil.
func (m *Modifier) SetFighter(id int, o Occupant) *Modifier {
	return m.put(id, o)
}

func (m *Modifier) put(id int, o Occupant) *Modifier {
	if m.err != nil {
		return m
	}
	if id < 0 || id >= m.size {
		m.err = fmt.Errorf("modifying proxy cell %d: %w", id, ErrCellOutOfRange)
		return m
	}
	m.entries[id] = o
	return m
}

// proxyCell is the read-only view of one cell within a Proxy generation.
type proxyCell struct {
	proxy      *Proxy
	base       Cell
	overridden bool
	occupant   Occupant
}

func (c *proxyCell) ID() int                     { return c.base.ID() }
func (c *proxyCell) Map() Map                    { return c.proxy }
func (c *proxyCell) WalkableIgnoreFighter() bool { return c.base.WalkableIgnoreFighter() }
func (c *proxyCell) LineOfSight() bool           { return c.base.LineOfSight() }

func (c *proxyCell) Walkable() bool {
	if !c.overridden {
		return c.base.Walkable()
	}
	return c.base.WalkableIgnoreFighter() && c.occupant == nil
}

func (c *proxyCell) SightBlocking() bool {
	if !c.overridden {
		return c.base.SightBlocking()
	}
	return !c.base.LineOfSight() || c.occupant != nil
}

func (c *proxyCell) Fighter() (Occupant, bool) {
	if !c.overridden {
		return c.base.Fighter()
	}
	return c.occupant, c.occupant != nil
}

func (c *proxyCell) Set(Occupant) error {
	return fmt.Errorf("setting fighter on proxy cell %d: %w", c.ID(), ErrReadOnlyCell)
}

func (c *proxyCell) RemoveFighter() error {
	return fmt.Errorf("removing fighter from proxy cell %d: %w", c.ID(), ErrReadOnlyCell)
}
