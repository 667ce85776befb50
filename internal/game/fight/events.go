package fight

import "github.com/cory-johannsen/tactics/internal/game/fight/fighter"

// Started is published once the placement phase is over and the turn order is fixed.
type Started struct {
	Fight *Fight
}

// TurnStarted is published when a fighter's turn begins.
type TurnStarted struct {
	Fight *Fight
	Turn  *Turn
}

// TurnStopped is published when a fighter's turn ends, whatever the reason.
type TurnStopped struct {
	Fight *Fight
	Turn  *Turn
}

// FighterDied is published once per fighter, after it was removed from the battlefield.
type FighterDied struct {
	Fight   *Fight
	Fighter *fighter.Fighter
}

// Stopped is published when the fight reaches the Finished state.
// Winner is nil when the fight was stopped explicitly or every team fell.
type Stopped struct {
	Fight  *Fight
	Winner *fighter.Team
}
