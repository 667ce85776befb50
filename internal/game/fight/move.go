package fight

import (
	"strconv"
	"strings"
	"time"

	"github.com/cory-johannsen/tactics/internal/game/fight/action"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
)

// Move walks the performer along an explicit path of adjacent cells.
// Each cell walked costs one movement point.
type Move struct {
	turn *Turn
	path []int
}

// NewMove creates a move of the turn's fighter along path.
//
// Precondition: path lists the cells to walk, excluding the starting cell.
func NewMove(turn *Turn, path []int) *Move {
	return &Move{turn: turn, path: path}
}

// Path returns the cells walked, excluding the starting cell.
func (m *Move) Path() []int { return m.path }

func (m *Move) Performer() *fighter.Fighter { return m.turn.Fighter() }
func (m *Move) Type() action.Type           { return action.TypeMove }

// Validate checks the turn is active, the movement points cover the path and
// every step reaches an adjacent walkable cell of the live battlefield.
func (m *Move) Validate() bool {
	if !m.turn.Active() || len(m.path) == 0 || len(m.path) > m.turn.MovementPoints() {
		return false
	}
	field := m.turn.Fight().Battlefield()
	dims := field.Dimensions()
	prev := m.Performer().Cell()
	for _, id := range m.path {
		if !dims.Adjacent(prev, id) {
			return false
		}
		c, ok := field.Get(id)
		if !ok || !c.Walkable() {
			return false
		}
		prev = id
	}
	return true
}

// Start spends the movement points and moves the fighter to the last cell.
func (m *Move) Start() action.Result {
	if !m.turn.spend(0, len(m.path)) {
		return failure
	}
	if err := m.Performer().Move(m.turn.Fight().Battlefield(), m.path[len(m.path)-1]); err != nil {
		m.turn.refund(0, len(m.path))
		m.turn.Fight().Logger().Debug("move rejected", zapFighter(m.Performer()))
		return failure
	}
	return success(action.TypeMove, encodePath(m.path))
}

// Duration is the walking time: one step duration per cell.
func (m *Move) Duration() time.Duration {
	return time.Duration(len(m.path)) * m.turn.Fight().Settings().MoveStepDuration
}

// End has nothing to undo: the fighter already stands on its destination.
func (m *Move) End() {}

func encodePath(path []int) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
