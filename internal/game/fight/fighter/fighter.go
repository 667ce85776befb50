// Package fighter holds the fighter and team contracts consumed by the fight core.
package fighter

import (
	"fmt"
	"sync"

	"github.com/cory-johannsen/tactics/internal/game/battlefield"
)

// NoCell is the cell id of a fighter that is not placed on a battlefield.
const NoCell = -1

// Kind distinguishes player-controlled fighters from AI-controlled monsters.
type Kind int

const (
	KindPlayer Kind = iota
	KindMonster
)

// String returns "player" or "monster".
func (k Kind) String() string {
	if k == KindMonster {
		return "monster"
	}
	return "player"
}

// Characteristics are the combat stats of a fighter.
type Characteristics struct {
	Initiative     int
	ActionPoints   int
	MovementPoints int
	// Damage is the life removed by one close combat attack.
	Damage int
}

// Fighter is one combat participant.
// All methods are safe for concurrent use.
type Fighter struct {
	id    int
	name  string
	kind  Kind
	chars Characteristics

	mu      sync.RWMutex
	maxLife int
	life    int
	team    *Team
	cell    int
	ready   bool
}

// New creates an unplaced fighter with full life.
//
// Precondition: maxLife > 0.
// Postcondition: Cell() == NoCell; Team() == nil; Ready() is true for monsters.
func New(id int, name string, kind Kind, chars Characteristics, maxLife int) *Fighter {
	return &Fighter{
		id:      id,
		name:    name,
		kind:    kind,
		chars:   chars,
		maxLife: maxLife,
		life:    maxLife,
		cell:    NoCell,
		ready:   kind == KindMonster,
	}
}

// ID returns the fighter id.
func (f *Fighter) ID() int { return f.id }

// Name returns the display name.
func (f *Fighter) Name() string { return f.name }

// Kind returns who controls the fighter.
func (f *Fighter) Kind() Kind { return f.kind }

// Characteristics returns the combat stats.
func (f *Fighter) Characteristics() Characteristics { return f.chars }

// Initiative returns the turn order stat.
func (f *Fighter) Initiative() int { return f.chars.Initiative }

// String implements fmt.Stringer.
func (f *Fighter) String() string { return fmt.Sprintf("%s#%d", f.name, f.id) }

// Life returns the current and maximum life.
func (f *Fighter) Life() (current, max int) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.life, f.maxLife
}

// Dead reports whether the fighter has no life left.
func (f *Fighter) Dead() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.life <= 0
}

// Damage removes amount life, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: returns true iff this call killed the fighter.
func (f *Fighter) Damage(amount int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.life <= 0 {
		return false
	}
	f.life -= amount
	if f.life < 0 {
		f.life = 0
	}
	return f.life == 0
}

// Ready reports whether the fighter accepted the placement phase.
func (f *Fighter) Ready() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.ready
}

// SetReady updates the placement readiness flag.
func (f *Fighter) SetReady(ready bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ready = ready
}

// Team returns the team the fighter belongs to, or nil.
func (f *Fighter) Team() *Team {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.team
}

// Join moves the fighter into team, removing it from its previous team.
//
// Precondition: team must not be nil.
// Postcondition: f.Team() == team and f is listed exactly once, in team only.
func (f *Fighter) Join(team *Team) {
	f.mu.Lock()
	prev := f.team
	f.team = team
	f.mu.Unlock()

	if prev == team {
		return
	}
	if prev != nil {
		prev.remove(f)
	}
	team.add(f)
}

// Enemy reports whether other belongs to a different team.
func (f *Fighter) Enemy(other *Fighter) bool {
	return f.Team() != other.Team()
}

// Cell returns the id of the cell the fighter stands on, or NoCell.
func (f *Fighter) Cell() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cell
}

// Place puts an unplaced fighter on a cell of the live battlefield.
//
// Precondition: Cell() == NoCell.
// Postcondition: on success Cell() == cellID and the cell holds f.
func (f *Fighter) Place(bf *battlefield.Battlefield, cellID int) error {
	c, ok := bf.Get(cellID)
	if !ok {
		return fmt.Errorf("placing %s on cell %d: %w", f, cellID, battlefield.ErrCellOutOfRange)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cell != NoCell {
		return fmt.Errorf("%s is already placed on cell %d", f, f.cell)
	}
	if err := c.Set(f); err != nil {
		return err
	}
	f.cell = cellID
	return nil
}

// Move relocates the fighter on the live battlefield.
//
// Precondition: the fighter is placed on bf.
// Postcondition: on success Cell() == cellID; on error nothing changed.
func (f *Fighter) Move(bf *battlefield.Battlefield, cellID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := bf.Move(f, f.cell, cellID); err != nil {
		return fmt.Errorf("moving %s: %w", f, err)
	}
	f.cell = cellID
	return nil
}

// Remove takes the fighter off the battlefield. No-op when unplaced.
//
// Postcondition: Cell() == NoCell.
func (f *Fighter) Remove(bf *battlefield.Battlefield) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cell == NoCell {
		return
	}
	if c, ok := bf.Get(f.cell); ok {
		if o, occupied := c.Fighter(); occupied && o.ID() == f.id {
			_ = c.RemoveFighter()
		}
	}
	f.cell = NoCell
}
