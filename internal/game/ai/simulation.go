// Package ai plays the turns of monsters. Candidate positions are explored on
// copy-on-write battlefield proxies, so a decision never touches the live
// battlefield until the chosen action is performed.
package ai

import (
	"fmt"

	"github.com/cory-johannsen/tactics/internal/game/battlefield"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
)

// Simulation is a hypothetical state of the battlefield in which one fighter
// may stand on another cell than its real one.
// A Simulation is immutable and safe for concurrent readers.
type Simulation struct {
	field *battlefield.Proxy
	self  *fighter.Fighter
	cell  int
}

// NewSimulation starts a simulation of self over the live map.
//
// Precondition: self is placed on live.
// Postcondition: Cell() == self.Cell(); the simulated map equals live.
func NewSimulation(live battlefield.Map, self *fighter.Fighter) *Simulation {
	return &Simulation{field: battlefield.NewProxy(live), self: self, cell: self.Cell()}
}

// Battlefield returns the simulated map.
func (s *Simulation) Battlefield() battlefield.Map { return s.field }

// Fighter returns the simulated fighter.
func (s *Simulation) Fighter() *fighter.Fighter { return s.self }

// Cell returns the simulated position of the fighter.
func (s *Simulation) Cell() int { return s.cell }

// MoveTo returns a new simulation where the fighter stands on cell.
//
// Postcondition: s is unchanged; the result frees the previous cell and
// occupies cell with the fighter.
func (s *Simulation) MoveTo(cell int) (*Simulation, error) {
	next, err := s.field.Modify(func(m *battlefield.Modifier) {
		m.Free(s.cell).SetFighter(cell, s.self)
	})
	if err != nil {
		return nil, fmt.Errorf("simulating %s on cell %d: %w", s.self, cell, err)
	}
	return &Simulation{field: next, self: s.self, cell: cell}, nil
}
