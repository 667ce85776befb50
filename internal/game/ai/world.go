package ai

import (
	"github.com/cory-johannsen/tactics/internal/game/fight"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
)

// EnemiesOf returns the living, placed fighters of other teams than self.
//
// Postcondition: returned slice contains no dead or unplaced fighter and no teammate.
func EnemiesOf(f *fight.Fight, self *fighter.Fighter) []*fighter.Fighter {
	var out []*fighter.Fighter
	for _, o := range f.Fighters() {
		if o.Dead() || o.Cell() == fighter.NoCell || !self.Enemy(o) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// WeakestEnemy returns the enemy with the lowest life, or nil.
//
// Postcondition: ties are broken by order in enemies.
func WeakestEnemy(enemies []*fighter.Fighter) *fighter.Fighter {
	var weakest *fighter.Fighter
	lowest := 0
	for _, e := range enemies {
		life, _ := e.Life()
		if weakest == nil || life < lowest {
			weakest, lowest = e, life
		}
	}
	return weakest
}
