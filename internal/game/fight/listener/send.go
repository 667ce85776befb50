package listener

import (
	"github.com/cory-johannsen/tactics/internal/game/event"
	"github.com/cory-johannsen/tactics/internal/game/fight"
	"github.com/cory-johannsen/tactics/internal/game/fight/action"
)

// SendFightAction forwards the action lifecycle of f to sender.
//
// Postcondition: every action.Started sends StartFightAction then FightAction;
// every action.Terminated sends FinishFightAction. Cancel the returned
// subscriptions to stop forwarding.
func SendFightAction(f *fight.Fight, sender Sender) []event.Subscription {
	return []event.Subscription{
		event.Subscribe(f.Bus(), func(e action.Started) {
			sender.Send(StartFightAction(e.Action))
			sender.Send(FightAction(e.Action, e.Result))
		}),
		event.Subscribe(f.Bus(), func(e action.Terminated) {
			sender.Send(FinishFightAction(e.Action))
		}),
	}
}
