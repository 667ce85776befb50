// Package order computes the fixed turn sequence of a fight.
package order

import (
	"cmp"
	"slices"

	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
)

// Strategy turns the teams of a fight into its turn sequence.
//
// Implementations must be pure: no side effects and the same output for the same input.
type Strategy interface {
	Compute(teams []*fighter.Team) []*fighter.Fighter
}

// AlternateTeam alternates teams, each team yielding its fighters by
// descending initiative.
//
// Teams are cycled by the initiative of their best fighter, equal teams keeping
// the given order. A team with no fighter left is skipped, so the leftover
// fighters of larger teams form the tail of the sequence. Initiative ties
// inside a team keep the team's insertion order.
type AlternateTeam struct{}

// Compute implements Strategy.
//
// Postcondition: every fighter of every team appears exactly once; teams and
// their fighter lists are not modified.
func (AlternateTeam) Compute(teams []*fighter.Team) []*fighter.Fighter {
	queues := make([][]*fighter.Fighter, 0, len(teams))
	total := 0
	for _, t := range teams {
		fs := t.Fighters()
		if len(fs) == 0 {
			continue
		}
		slices.SortStableFunc(fs, func(a, b *fighter.Fighter) int {
			return cmp.Compare(b.Initiative(), a.Initiative())
		})
		queues = append(queues, fs)
		total += len(fs)
	}

	// Teams are ranked by their best fighter so the fastest team opens the round.
	slices.SortStableFunc(queues, func(a, b []*fighter.Fighter) int {
		return cmp.Compare(b[0].Initiative(), a[0].Initiative())
	})

	out := make([]*fighter.Fighter, 0, total)
	for len(out) < total {
		for i, q := range queues {
			if len(q) == 0 {
				continue
			}
			out = append(out, q[0])
			queues[i] = q[1:]
		}
	}
	return out
}
