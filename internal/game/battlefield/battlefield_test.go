package battlefield_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tactics/internal/game/battlefield"
)

type stubFighter int

func (s stubFighter) ID() int { return int(s) }

const (
	wallCell = 154
	holeCell = 130
)

// testTopology is a 15x12 open grid with one wall and one hole.
func testTopology() *battlefield.Topology {
	dim := battlefield.Dimensions{Width: 15, Height: 12}
	terrain := make([]battlefield.Terrain, dim.Size())
	for i := range terrain {
		terrain[i] = battlefield.Floor
	}
	terrain[wallCell] = battlefield.Terrain{}
	terrain[holeCell] = battlefield.Terrain{LineOfSight: true}
	return &battlefield.Topology{
		ID:          "test",
		Dimensions:  dim,
		Terrain:     terrain,
		StartPlaces: map[int][]int{0: {152, 166}, 1: {167}},
	}
}

func cell(t testing.TB, m battlefield.Map, id int) battlefield.Cell {
	t.Helper()
	c, ok := m.Get(id)
	require.True(t, ok, "cell %d should exist", id)
	return c
}

func TestDimensions_Coordinates(t *testing.T) {
	d := battlefield.Dimensions{Width: 15, Height: 12}
	x, y := d.Coordinates(152)
	assert.Equal(t, 2, x)
	assert.Equal(t, 10, y)

	id, ok := d.CellID(2, 10)
	assert.True(t, ok)
	assert.Equal(t, 152, id)

	_, ok = d.CellID(15, 0)
	assert.False(t, ok)
	_, ok = d.CellID(0, -1)
	assert.False(t, ok)
}

func TestDimensions_Neighbors(t *testing.T) {
	d := battlefield.Dimensions{Width: 3, Height: 3}
	assert.Equal(t, []int{1, 5, 7, 3}, d.Neighbors(4))
	assert.Equal(t, []int{1, 3}, d.Neighbors(0))
	assert.True(t, d.Adjacent(4, 5))
	assert.False(t, d.Adjacent(2, 3), "row wrap is not adjacency")
}

func TestDimensions_Property_DistanceSymmetric(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(1, 30).Draw(rt, "w")
		h := rapid.IntRange(1, 30).Draw(rt, "h")
		d := battlefield.Dimensions{Width: w, Height: h}
		a := rapid.IntRange(0, d.Size()-1).Draw(rt, "a")
		b := rapid.IntRange(0, d.Size()-1).Draw(rt, "b")
		assert.Equal(rt, d.Distance(a, b), d.Distance(b, a))
		assert.Equal(rt, a == b, d.Distance(a, b) == 0)
		for _, n := range d.Neighbors(a) {
			assert.Equal(rt, 1, d.Distance(a, n))
		}
	})
}

func TestTopology_Validate(t *testing.T) {
	top := testTopology()
	assert.NoError(t, top.Validate())

	top.StartPlaces[2] = []int{wallCell, 9999}
	err := top.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start place 154 is not walkable")
	assert.Contains(t, err.Error(), "start place 9999 is outside the map")

	bad := &battlefield.Topology{Dimensions: battlefield.Dimensions{Width: 2, Height: 2}}
	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map id must not be empty")
	assert.Contains(t, err.Error(), "map has 0 cells, want 4")
}

func TestBattlefield_CellAttributes(t *testing.T) {
	bf := battlefield.New(testTopology())
	assert.Equal(t, 180, bf.Size())

	floor := cell(t, bf, 153)
	assert.True(t, floor.Walkable())
	assert.True(t, floor.WalkableIgnoreFighter())
	assert.False(t, floor.SightBlocking())
	assert.Same(t, bf, floor.Map())

	wall := cell(t, bf, wallCell)
	assert.False(t, wall.Walkable())
	assert.True(t, wall.SightBlocking())

	hole := cell(t, bf, holeCell)
	assert.False(t, hole.Walkable())
	assert.False(t, hole.SightBlocking())

	_, ok := bf.Get(-1)
	assert.False(t, ok)
	_, ok = bf.Get(180)
	assert.False(t, ok)
}

func TestBattlefield_SetAndRemove(t *testing.T) {
	bf := battlefield.New(testTopology())
	c := cell(t, bf, 152)

	require.NoError(t, c.Set(stubFighter(1)))
	o, ok := c.Fighter()
	require.True(t, ok)
	assert.Equal(t, 1, o.ID())
	assert.False(t, c.Walkable())
	assert.True(t, c.WalkableIgnoreFighter())
	assert.True(t, c.SightBlocking())

	err := c.Set(stubFighter(2))
	assert.True(t, errors.Is(err, battlefield.ErrCellOccupied))

	require.NoError(t, c.RemoveFighter())
	_, ok = c.Fighter()
	assert.False(t, ok)
	assert.True(t, c.Walkable())

	err = cell(t, bf, wallCell).Set(stubFighter(3))
	assert.True(t, errors.Is(err, battlefield.ErrCellNotWalkable))
}

func TestBattlefield_Move(t *testing.T) {
	bf := battlefield.New(testTopology())
	f := stubFighter(7)
	require.NoError(t, cell(t, bf, 152).Set(f))

	require.NoError(t, bf.Move(f, 152, 153))
	_, ok := cell(t, bf, 152).Fighter()
	assert.False(t, ok)
	o, ok := cell(t, bf, 153).Fighter()
	require.True(t, ok)
	assert.Equal(t, 7, o.ID())

	require.NoError(t, cell(t, bf, 152).Set(stubFighter(8)))
	err := bf.Move(f, 153, 152)
	assert.True(t, errors.Is(err, battlefield.ErrCellOccupied))
	o, _ = cell(t, bf, 153).Fighter()
	assert.Equal(t, 7, o.ID(), "failed move must leave the fighter in place")

	assert.Error(t, bf.Move(f, 152, 151), "fighter is not on the source cell")
	assert.True(t, errors.Is(bf.Move(f, 153, 500), battlefield.ErrCellOutOfRange))
}

func TestBattlefield_AllInIDOrder(t *testing.T) {
	bf := battlefield.New(testTopology())
	want := 0
	for c := range bf.All() {
		assert.Equal(t, want, c.ID())
		want++
	}
	assert.Equal(t, bf.Size(), want)
}

func TestLineOfSight(t *testing.T) {
	bf := battlefield.New(testTopology())

	// Row 10: 150 151 152 153 [154 wall] 155 ...
	assert.True(t, battlefield.LineOfSight(bf, 150, 153))
	assert.False(t, battlefield.LineOfSight(bf, 150, 156), "wall at 154 blocks")
	assert.True(t, battlefield.LineOfSight(bf, 150, 154), "target cell itself is not checked")

	// Holes let sight through.
	assert.True(t, battlefield.LineOfSight(bf, 129, 131))

	require.NoError(t, cell(t, bf, 151).Set(stubFighter(1)))
	assert.False(t, battlefield.LineOfSight(bf, 150, 153), "occupant blocks")
	assert.True(t, battlefield.LineOfSight(bf, 150, 151), "occupied target is visible")
}

func TestLineOfSight_Property_AdjacentAlwaysVisible(t *testing.T) {
	bf := battlefield.New(testTopology())
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(0, bf.Size()-1).Draw(rt, "a")
		b := rapid.IntRange(0, bf.Size()-1).Draw(rt, "b")
		if bf.Dimensions().Distance(a, b) <= 1 {
			assert.True(rt, battlefield.LineOfSight(bf, a, b))
		}
	})
}
