package fight

import (
	"time"

	"github.com/cory-johannsen/tactics/internal/game/fight/action"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
)

// AttackCost is the action points spent by one close combat attack.
const AttackCost = 4

// Attack is a close combat hit on an adjacent enemy.
type Attack struct {
	turn   *Turn
	target *fighter.Fighter
}

// NewAttack creates an attack of the turn's fighter on target.
func NewAttack(turn *Turn, target *fighter.Fighter) *Attack {
	return &Attack{turn: turn, target: target}
}

// Target returns the attacked fighter.
func (a *Attack) Target() *fighter.Fighter { return a.target }

func (a *Attack) Performer() *fighter.Fighter { return a.turn.Fighter() }
func (a *Attack) Type() action.Type           { return action.TypeCloseCombat }

// Validate checks the target is a living enemy standing next to the performer
// and the turn has enough action points.
func (a *Attack) Validate() bool {
	if !a.turn.Active() || a.target == nil || a.target.Dead() || a.turn.ActionPoints() < AttackCost {
		return false
	}
	performer := a.Performer()
	if !performer.Enemy(a.target) {
		return false
	}
	return a.turn.Fight().Battlefield().Dimensions().Adjacent(performer.Cell(), a.target.Cell())
}

// Start spends the action points and applies the performer's damage.
// The result arguments are the target id and the damage dealt.
func (a *Attack) Start() action.Result {
	if !a.turn.spend(AttackCost, 0) {
		return failure
	}
	damage := a.Performer().Characteristics().Damage
	before, _ := a.target.Life()
	a.target.Damage(damage)
	after, _ := a.target.Life()
	return success(action.TypeCloseCombat, a.target.ID(), before-after)
}

// Duration is the configured attack animation time.
func (a *Attack) Duration() time.Duration {
	return a.turn.Fight().Settings().AttackDuration
}

func (a *Attack) End() {}
