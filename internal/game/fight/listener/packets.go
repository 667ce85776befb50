// Package listener turns fight events into side effects: client packets and logs.
package listener

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/tactics/internal/game/fight/action"
)

// Sender delivers a packet to every client watching a fight.
type Sender interface {
	Send(packet string)
}

// SenderFunc adapts a function into a Sender.
type SenderFunc func(packet string)

// Send calls fn(packet).
func (fn SenderFunc) Send(packet string) { fn(packet) }

// StartFightAction announces that the performer of a begins an action.
func StartFightAction(a action.Action) string {
	return fmt.Sprintf("GAS%d", a.Performer().ID())
}

// FightAction describes the effect of a started action.
// A failed result is sent as "GA;0".
func FightAction(a action.Action, r action.Result) string {
	if !r.Success() {
		return "GA;0"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "GA;%d;%d", int(r.Type()), a.Performer().ID())
	for _, arg := range r.Arguments() {
		fmt.Fprintf(&b, ";%v", arg)
	}
	return b.String()
}

// FinishFightAction announces that the pending action of the performer ended.
func FinishFightAction(a action.Action) string {
	return fmt.Sprintf("GAF%d", a.Performer().ID())
}
