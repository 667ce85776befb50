package fight

import (
	"slices"

	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
)

// TurnList walks the fixed turn sequence of a fight, round after round.
// It is not safe for concurrent use; the Fight guards it.
type TurnList struct {
	order []*fighter.Fighter
	index int
	round int
}

// NewTurnList creates a list positioned before the first fighter.
//
// Postcondition: Current() is nil and Round() is 0 until Next is called.
func NewTurnList(order []*fighter.Fighter) *TurnList {
	return &TurnList{order: slices.Clone(order), index: -1}
}

// Order returns a copy of the fixed sequence.
func (l *TurnList) Order() []*fighter.Fighter { return slices.Clone(l.order) }

// Round returns the 1-based round of the current fighter, or 0 before the first turn.
func (l *TurnList) Round() int { return l.round }

// Current returns the fighter whose turn it is, or nil before the first turn.
func (l *TurnList) Current() *fighter.Fighter {
	if l.index < 0 || l.index >= len(l.order) {
		return nil
	}
	return l.order[l.index]
}

// Next advances to the next living fighter, wrapping into a new round after
// the last one.
//
// Postcondition: returns nil when no fighter of the sequence is alive; the
// position is left unchanged in that case.
func (l *TurnList) Next() *fighter.Fighter {
	index, round := l.index, l.round
	for range l.order {
		index = (index + 1) % len(l.order)
		if index == 0 {
			round++
		}
		if f := l.order[index]; !f.Dead() {
			l.index, l.round = index, round
			return f
		}
	}
	return nil
}
