package ai

import (
	"math"

	"github.com/cory-johannsen/tactics/internal/game/battlefield"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
)

// Score rates a simulated position. Lower is better.
type Score struct {
	// Distance is the Manhattan distance to the nearest enemy.
	Distance int
	// Sight reports whether that enemy is in line of sight.
	Sight bool
}

// Unreachable is the score of a position with no enemy to reach.
var Unreachable = Score{Distance: math.MaxInt}

// Value folds the score into one comparable number: distance counts double and
// sight on the target is worth one.
func (s Score) Value() int {
	if s.Distance == math.MaxInt {
		return math.MaxInt
	}
	v := 2 * s.Distance
	if s.Sight {
		v--
	}
	return v
}

// Better reports whether s beats other.
func (s Score) Better(other Score) bool { return s.Value() < other.Value() }

// Evaluate scores the simulated position of the fighter against enemies.
// Enemies are read at their real positions.
//
// Postcondition: returns Unreachable when enemies is empty.
func Evaluate(sim *Simulation, enemies []*fighter.Fighter) Score {
	best := Unreachable
	field := sim.Battlefield()
	dims := field.Dimensions()
	for _, e := range enemies {
		cell := e.Cell()
		if !dims.Contains(cell) {
			continue
		}
		s := Score{
			Distance: dims.Distance(sim.Cell(), cell),
			Sight:    battlefield.LineOfSight(field, sim.Cell(), cell),
		}
		if s.Better(best) {
			best = s
		}
	}
	return best
}
