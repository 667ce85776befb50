package battlefield_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tactics/internal/game/battlefield"
)

const arenaYAML = `
map:
  id: arena
  layout: |
    .....
    .#.~.
    .....
  start_places:
    - team: 0
      cells: [0, 5]
    - team: 1
      cells: [4, 14]
`

func TestLoadTopologyFromBytes(t *testing.T) {
	top, err := battlefield.LoadTopologyFromBytes([]byte(arenaYAML))
	require.NoError(t, err)

	assert.Equal(t, "arena", top.ID)
	assert.Equal(t, battlefield.Dimensions{Width: 5, Height: 3}, top.Dimensions)
	require.Len(t, top.Terrain, 15)
	assert.Equal(t, battlefield.Floor, top.Terrain[0])
	assert.Equal(t, battlefield.Terrain{}, top.Terrain[6])
	assert.Equal(t, battlefield.Terrain{LineOfSight: true}, top.Terrain[8])
	assert.Equal(t, []int{0, 5}, top.StartPlaces[0])
	assert.Equal(t, []int{4, 14}, top.StartPlaces[1])
}

func TestLoadTopologyFromBytes_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "map: [", "parsing map YAML"},
		{"empty layout", "map:\n  id: x\n  layout: \"\"\n", "empty layout"},
		{"ragged rows", "map:\n  id: x\n  layout: |\n    ...\n    ..\n", "row 1 has width 2"},
		{"unknown symbol", "map:\n  id: x\n  layout: |\n    .X.\n", "unknown symbol"},
		{"missing id", "map:\n  layout: |\n    ...\n", "map id must not be empty"},
		{"start on wall", "map:\n  id: x\n  layout: |\n    .#.\n  start_places:\n    - team: 0\n      cells: [1]\n", "not walkable"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := battlefield.LoadTopologyFromBytes([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadTopologiesFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arena.yaml"), []byte(arenaYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	maps, err := battlefield.LoadTopologiesFromDir(dir)
	require.NoError(t, err)
	require.Len(t, maps, 1)
	assert.Equal(t, "arena", maps["arena"].ID)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "copy.yml"), []byte(arenaYAML), 0o644))
	_, err = battlefield.LoadTopologiesFromDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate map id")

	_, err = battlefield.LoadTopologiesFromDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestLoadTopologyFromFile_Missing(t *testing.T) {
	_, err := battlefield.LoadTopologyFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading map file")
}
