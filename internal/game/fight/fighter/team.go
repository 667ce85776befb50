package fighter

import (
	"slices"
	"sync"
)

// Team is an ordered set of fighters sharing a number and start places.
// All methods are safe for concurrent use.
type Team struct {
	number      int
	startPlaces []int

	mu       sync.RWMutex
	fighters []*Fighter
}

// NewTeam creates a team and makes every given fighter join it, in order.
//
// Postcondition: Fighters() lists members in the given order.
func NewTeam(number int, startPlaces []int, members ...*Fighter) *Team {
	t := &Team{number: number, startPlaces: slices.Clone(startPlaces)}
	for _, f := range members {
		f.Join(t)
	}
	return t
}

// Number returns the team number.
func (t *Team) Number() int { return t.number }

// StartPlaces returns a copy of the legal placement cells.
func (t *Team) StartPlaces() []int { return slices.Clone(t.startPlaces) }

// Fighters returns a snapshot of the members in insertion order.
func (t *Team) Fighters() []*Fighter {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.fighters)
}

// Len returns the number of members.
func (t *Team) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.fighters)
}

// Alive reports whether at least one member is not dead.
func (t *Team) Alive() bool {
	for _, f := range t.Fighters() {
		if !f.Dead() {
			return true
		}
	}
	return false
}

func (t *Team) add(f *Fighter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !slices.Contains(t.fighters, f) {
		t.fighters = append(t.fighters, f)
	}
}

func (t *Team) remove(f *Fighter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fighters = slices.DeleteFunc(t.fighters, func(m *Fighter) bool { return m == f })
}
