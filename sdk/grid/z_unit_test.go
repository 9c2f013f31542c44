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

package grid_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zintix-labs/tilelab/errs"
	"github.com/zintix-labs/tilelab/sdk/grid"
	"github.com/zintix-labs/tilelab/sdk/tile"
	"github.com/zyedidia/generic/mapset"
)

func TestAtBounds(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{{0, 1}, {2}})

	tl, err := g.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, tile.Type(2), tl.Type)

	_, err = g.At(2, 0)
	assert.True(t, errors.Is(err, errs.ErrOutOfBounds))
	assert.False(t, errors.Is(err, errs.ErrEmptySlot))

	_, err = g.At(0, -1)
	assert.True(t, errors.Is(err, errs.ErrOutOfBounds))

	_, err = g.At(1, 1)
	assert.True(t, errors.Is(err, errs.ErrEmptySlot))
	assert.True(t, errors.Is(err, errs.ErrOutOfBounds))
}

func TestLocateFollowsLivePosition(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{{0, 1, 2}})
	top := g[0][2]

	ids := mapset.New[uuid.UUID]()
	ids.Put(g[0][0].ID)
	next := g.Without(ids)

	s, err := next.Locate(top)
	require.NoError(t, err)
	assert.Equal(t, grid.Slot{X: 0, Y: 1}, s)

	_, err = next.Locate(g[0][0])
	assert.True(t, errors.Is(err, errs.ErrTileNotFound))
}

func TestWithoutDoesNotAlias(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{{0, 1}, {2, 3}})
	before := g.Clone()

	ids := mapset.New[uuid.UUID]()
	ids.Put(g[1][0].ID)
	next := g.Without(ids)

	assert.Equal(t, 3, next.Count())
	assert.True(t, g.Equal(before), "input grid must be untouched")

	next[0][0] = tile.New(9)
	assert.True(t, g.Equal(before), "output must not alias input")
}

func TestCloneAndEqual(t *testing.T) {
	g := grid.FromTypes([][]tile.Type{{0}, {1, 1}, {}})
	c := g.Clone()
	assert.True(t, g.Equal(c))
	c[1][1] = tile.New(1)
	assert.False(t, g.Equal(c))
	assert.Equal(t, [][]tile.Type{{0}, {1, 1}, {}}, g.Types())
	assert.Equal(t, 3, g.Width())
	assert.True(t, g.Has(1, 1))
	assert.False(t, g.Has(2, 0))
}
