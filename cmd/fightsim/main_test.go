package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tactics/internal/game/battlefield"
)

func TestSkirmishOnShippedArena(t *testing.T) {
	topology, err := battlefield.LoadTopologyFromFile("../../content/maps/arena.yaml")
	require.NoError(t, err)

	teams, err := skirmish(topology, 4)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	seen := map[int]bool{}
	for i, team := range teams {
		assert.Equal(t, i, team.Number())
		assert.Equal(t, 4, team.Len())
		for _, f := range team.Fighters() {
			assert.False(t, seen[f.ID()], "fighter ids are unique")
			seen[f.ID()] = true
		}
	}
}

func TestSkirmishRejectsTooManyMonsters(t *testing.T) {
	topology, err := battlefield.LoadTopologyFromFile("../../content/maps/arena.yaml")
	require.NoError(t, err)

	_, err = skirmish(topology, 5)
	assert.ErrorContains(t, err, "needs 5 start places")
}

func TestSkirmishNeedsTwoTeams(t *testing.T) {
	topology := &battlefield.Topology{ID: "solo", StartPlaces: map[int][]int{0: {0}}}
	_, err := skirmish(topology, 1)
	assert.Error(t, err)
}
