// Package action runs gameplay actions one at a time for a fight.
package action

import (
	"time"

	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
)

//go:generate go tool mockgen -destination=./mocks/action_mock.go -package=mocks . Action,Result

// Type identifies the kind of an action on the wire.
type Type int

const (
	TypeNone        Type = 0
	TypeMove        Type = 1
	TypeCloseCombat Type = 303
)

// String returns the human-readable name of the Type.
func (t Type) String() string {
	switch t {
	case TypeMove:
		return "move"
	case TypeCloseCombat:
		return "close_combat"
	default:
		return "none"
	}
}

// Action is one gameplay intent of a fighter.
//
// Lifecycle: Validate, then Start; a successful start is later ended exactly
// once with End, after Duration or by an explicit termination.
type Action interface {
	// Performer returns the fighter doing the action.
	Performer() *fighter.Fighter
	// Type returns the action kind.
	Type() Type
	// Validate reports whether the action may start. It must not mutate anything.
	Validate() bool
	// Start applies the action and reports the outcome.
	Start() Result
	// Duration is how long a successfully started action stays pending.
	Duration() time.Duration
	// End completes the action. It must not call back into the Handler.
	End()
}

// Result is the outcome of Action.Start.
type Result interface {
	// Success reports whether the action took effect.
	Success() bool
	// Type is the action kind broadcast to clients; TypeNone for failures.
	Type() Type
	// Arguments is the side-effect payload broadcast to clients.
	Arguments() []any
}

// Started is published after every Action.Start, successful or not.
type Started struct {
	Action Action
	Result Result
}

// Terminated is published when a pending action is ended.
type Terminated struct {
	Action Action
}
