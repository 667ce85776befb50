package fight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tactics/internal/game/fight"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
)

func TestTurnList_CyclesAndCountsRounds(t *testing.T) {
	a, b, c := monster(1, 0), monster(2, 0), monster(3, 0)
	l := fight.NewTurnList([]*fighter.Fighter{a, b, c})
	assert.Nil(t, l.Current())
	assert.Zero(t, l.Round())

	var got []int
	var rounds []int
	for i := 0; i < 7; i++ {
		f := l.Next()
		got = append(got, f.ID())
		rounds = append(rounds, l.Round())
		assert.Same(t, f, l.Current())
	}
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3, 1}, got)
	assert.Equal(t, []int{1, 1, 1, 2, 2, 2, 3}, rounds)
}

func TestTurnList_SkipsDeadFighters(t *testing.T) {
	a, b, c := monster(1, 0), monster(2, 0), monster(3, 0)
	l := fight.NewTurnList([]*fighter.Fighter{a, b, c})

	assert.Same(t, a, l.Next())
	b.Damage(100)
	assert.Same(t, c, l.Next())
	a.Damage(100)
	assert.Same(t, c, l.Next())
	assert.Equal(t, 2, l.Round())
}

func TestTurnList_AllDead(t *testing.T) {
	a, b := monster(1, 0), monster(2, 0)
	l := fight.NewTurnList([]*fighter.Fighter{a, b})
	assert.Same(t, a, l.Next())

	a.Damage(100)
	b.Damage(100)
	assert.Nil(t, l.Next())
	assert.Same(t, a, l.Current(), "position is kept when nobody is left")
	assert.Equal(t, 1, l.Round())

	assert.Nil(t, fight.NewTurnList(nil).Next())
}

func TestTurnList_Property_NeverReturnsDead(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		order := make([]*fighter.Fighter, n)
		for i := range order {
			order[i] = monster(i+1, 0)
			if rapid.Bool().Draw(rt, "dead") {
				order[i].Damage(100)
			}
		}
		l := fight.NewTurnList(order)
		for i := 0; i < 2*n; i++ {
			f := l.Next()
			if f == nil {
				for _, o := range order {
					assert.True(rt, o.Dead())
				}
				return
			}
			assert.False(rt, f.Dead())
		}
	})
}
