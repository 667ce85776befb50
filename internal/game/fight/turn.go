package fight

import (
	"sync"
	"time"

	"github.com/cory-johannsen/tactics/internal/game/clock"
	"github.com/cory-johannsen/tactics/internal/game/fight/action"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
)

// Turn is the period during which one fighter may act.
// All methods are safe for concurrent use.
type Turn struct {
	fight    *Fight
	fighter  *fighter.Fighter
	round    int
	duration time.Duration

	mu       sync.Mutex
	ap       int
	mp       int
	active   bool
	stopping bool
	timer    *clock.Timer
}

func newTurn(f *Fight, ft *fighter.Fighter, round int, duration time.Duration) *Turn {
	chars := ft.Characteristics()
	return &Turn{
		fight:    f,
		fighter:  ft,
		round:    round,
		duration: duration,
		ap:       chars.ActionPoints,
		mp:       chars.MovementPoints,
		active:   true,
	}
}

// Fight returns the fight the turn belongs to.
func (t *Turn) Fight() *Fight { return t.fight }

// Fighter returns the fighter playing the turn.
func (t *Turn) Fighter() *fighter.Fighter { return t.fighter }

// Round returns the 1-based round number.
func (t *Turn) Round() int { return t.round }

// Duration returns the time limit of the turn.
func (t *Turn) Duration() time.Duration { return t.duration }

// ActionPoints returns the action points left.
func (t *Turn) ActionPoints() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ap
}

// MovementPoints returns the movement points left.
func (t *Turn) MovementPoints() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mp
}

// Active reports whether the turn still accepts actions.
func (t *Turn) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active && !t.stopping
}

// Perform hands a to the fight's action handler.
//
// Precondition: a.Performer() is the turn's fighter.
// Postcondition: returns false without starting a when the turn is no longer
// active, a belongs to another fighter, or the handler refused it.
func (t *Turn) Perform(a action.Action) bool {
	if !t.Active() || a.Performer() != t.fighter {
		return false
	}
	return t.fight.handler.Start(a)
}

// Stop ends the turn once the pending action, if any, has ended.
// Calling Stop more than once has no further effect.
func (t *Turn) Stop() {
	t.mu.Lock()
	if !t.active || t.stopping {
		t.mu.Unlock()
		return
	}
	t.stopping = true
	t.mu.Unlock()

	t.fight.handler.Terminated(func() { t.fight.endTurn(t) })
}

// spend removes ap action points and mp movement points.
//
// Postcondition: returns false and leaves the budget untouched when the turn
// is inactive or either budget is insufficient.
func (t *Turn) spend(ap, mp int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active || ap > t.ap || mp > t.mp {
		return false
	}
	t.ap -= ap
	t.mp -= mp
	return true
}

// refund gives back points spent by an action that could not take effect.
func (t *Turn) refund(ap, mp int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ap += ap
	t.mp += mp
}

// arm starts the turn timer. No-op once the turn is closed.
func (t *Turn) arm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active || t.timer != nil {
		return
	}
	t.timer = clock.AfterFunc(t.duration, t.timeout)
}

// timeout closes the turn before terminating the pending action, so a fire
// racing the end of the turn never reaches the action of the next one.
func (t *Turn) timeout() {
	defer t.fight.recoverFault()

	if !t.fight.closeTurn(t) {
		return
	}
	t.fight.logger.Debug("turn time limit reached", zapFighter(t.fighter))
	t.fight.handler.Terminate()
	t.fight.advance(t)
}

// close deactivates the turn and cancels its timer.
//
// Postcondition: returns true iff this call closed the turn.
func (t *Turn) close() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return false
	}
	t.active = false
	t.timer.Stop()
	t.timer = nil
	return true
}
