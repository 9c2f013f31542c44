// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package calc_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zintix-labs/tilelab/errs"
	"github.com/zintix-labs/tilelab/sdk/calc"
	"github.com/zintix-labs/tilelab/sdk/grid"
	"github.com/zintix-labs/tilelab/sdk/tile"
	"github.com/zyedidia/generic/mapset"
)

func TestNeighborOrder(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	})
	got := slices.Collect(calc.Neighbors(g, 1, 1))
	want := []tile.Tile{g[0][1], g[2][1], g[1][0], g[1][2]}
	assert.Equal(t, want, got, "order must be left, right, down, up")

	slots := slices.Collect(calc.NeighborSlots(g, 0, 0))
	assert.Equal(t, []grid.Slot{{X: 1, Y: 0}, {X: 0, Y: 1}}, slots)

	assert.Empty(t, slices.Collect(calc.Neighbors(g, 3, 0)))
	assert.Empty(t, slices.Collect(calc.Neighbors(g, 0, -1)))
}

func TestNeighborsSkipShortColumns(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{
		{0},
		{1, 1, 1},
		{},
	})
	got := slices.Collect(calc.NeighborSlots(g, 1, 2))
	assert.Equal(t, []grid.Slot{{X: 1, Y: 1}}, got)
}

func TestNeighborsStopEarly(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{{0, 0}, {0, 0}})
	n := 0
	for range calc.Neighbors(g, 0, 0) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestConnectedGroupFullBoard(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{
		{2, 2, 2},
		{2, 2, 2},
		{2, 2, 2},
	})
	for x := range g {
		for y := range g[x] {
			group, err := calc.ConnectedGroup(g, g[x][y])
			require.NoError(t, err)
			require.Len(t, group, 9)
			assert.True(t, group[0].Equal(g[x][y]), "origin first")

			seen := mapset.New[uuid.UUID]()
			for _, tl := range group {
				assert.False(t, seen.Has(tl.ID), "tile visited twice")
				seen.Put(tl.ID)
			}
		}
	}
}

func TestConnectedGroupCheckerboard(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{
		{0, 1, 0, 1},
		{1, 0, 1, 0},
		{0, 1, 0, 1},
		{1, 0, 1, 0},
	})
	for x := range g {
		for y := range g[x] {
			group, err := calc.ConnectedGroup(g, g[x][y])
			require.NoError(t, err)
			assert.Len(t, group, 1)
		}
	}
	for _, gp := range calc.FindGroups(g) {
		assert.Equal(t, 1, gp.Size())
	}
}

func TestConnectedGroupVisitOrder(t *testing.T) {
	// 欄優先：x=0 為 [A A B]，x=1 為 [A B B]
	g := grid.FromTypes([][]tile.Type{
		{0, 0, 1},
		{0, 1, 1},
	})
	group, err := calc.ConnectedGroup(g, g[0][0])
	require.NoError(t, err)
	// 起點 (0,0) → 右 (1,0) → 上 (0,1)
	assert.Equal(t, []tile.Tile{g[0][0], g[1][0], g[0][1]}, group)
}

func TestConnectedGroupStaleOrigin(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{{0, 0}})
	_, err := calc.ConnectedGroup(g, tile.New(0))
	assert.True(t, errors.Is(err, errs.ErrTileNotFound))
}

func TestGroupAtInvalidSlot(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{{0}})
	_, err := calc.GroupAt(g, 0, 1)
	assert.True(t, errors.Is(err, errs.ErrEmptySlot))
	_, err = calc.GroupAt(g, -1, 0)
	assert.True(t, errors.Is(err, errs.ErrOutOfBounds))
}

func TestFindGroupsPartitionsBoard(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{
		{0, 0, 1},
		{2, 0, 1},
		{2, 2, 1, 3},
	})
	groups := calc.FindGroups(g)
	total := 0
	sizes := make(map[tile.Type]int)
	for _, gp := range groups {
		total += gp.Size()
		sizes[gp.Type] += gp.Size()
	}
	assert.Equal(t, g.Count(), total)
	assert.Len(t, groups, 4)
	assert.Equal(t, 3, groups[0].Size(), "first group starts at (0,0)")
	assert.Equal(t, tile.Type(0), groups[0].Type)
}
