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

package calc

import (
	"github.com/google/uuid"
	"github.com/zintix-labs/tilelab/sdk/grid"
	"github.com/zintix-labs/tilelab/sdk/tile"
	"github.com/zyedidia/generic/mapset"
)

// Group 一個同類型連通塊，Tiles 依 BFS 拜訪順序排列（起點在最前）。
type Group struct {
	Type  tile.Type
	Tiles []tile.Tile
}

// Size 連通塊大小
func (gp Group) Size() int { return len(gp.Tiles) }

// groupBuf BFS 使用的佇列；座標隨佇列攜帶，搜尋期間盤面不會變動，
// 所以與每一步重新掃描盤面取得座標的結果完全相同。
type groupBuf struct {
	q []grid.Slot
}

// ConnectedGroup 從 origin 出發，以 BFS 找出與其同類型、四向相連的所有圖塊。
//
// origin 的位置一律由盤面掃描推導；origin 已不在盤面上時回傳 errs.ErrTileNotFound。
// 單獨一個圖塊（沒有同類型鄰居）是大小為 1 的合法結果。
func ConnectedGroup(g grid.Grid, origin tile.Tile) ([]tile.Tile, error) {
	s, err := g.Locate(origin)
	if err != nil {
		return nil, err
	}
	visited := mapset.New[uuid.UUID]()
	return bfs(g, s, visited, &groupBuf{}), nil
}

// GroupAt 從 (x, y) 的圖塊出發找連通塊。座標無效時回傳 grid.At 的錯誤。
func GroupAt(g grid.Grid, x, y int) ([]tile.Tile, error) {
	if _, err := g.At(x, y); err != nil {
		return nil, err
	}
	visited := mapset.New[uuid.UUID]()
	return bfs(g, grid.Slot{X: x, Y: y}, visited, &groupBuf{}), nil
}

// FindGroups 依欄優先（每欄 y 由小到大）掃描全盤，每個圖塊恰好屬於一個回傳的連通塊。
func FindGroups(g grid.Grid) []Group {
	claimed := mapset.New[uuid.UUID]()
	b := &groupBuf{q: make([]grid.Slot, 0, g.Count())}
	groups := make([]Group, 0, 16)
	for x, col := range g {
		for y, t := range col {
			if claimed.Has(t.ID) {
				continue
			}
			tiles := bfs(g, grid.Slot{X: x, Y: y}, claimed, b)
			groups = append(groups, Group{Type: t.Type, Tiles: tiles})
		}
	}
	return groups
}

// bfs 從 start 展開同類型連通塊，visited 以圖塊 ID 為鍵，在入列時標記。
// 呼叫端可以傳入跨多次搜尋共用的 visited（FindGroups 用它當作全盤已歸屬集合）。
func bfs(g grid.Grid, start grid.Slot, visited mapset.Set[uuid.UUID], b *groupBuf) []tile.Tile {
	first := g[start.X][start.Y]
	sym := first.Type

	b.q = append(b.q[:0], start)
	visited.Put(first.ID)
	hits := make([]tile.Tile, 0, 8)

	for head := 0; head < len(b.q); head++ {
		curr := b.q[head]
		hits = append(hits, g[curr.X][curr.Y])

		for ns := range NeighborSlots(g, curr.X, curr.Y) {
			nt := g[ns.X][ns.Y]
			if nt.Type != sym || visited.Has(nt.ID) {
				continue
			}
			visited.Put(nt.ID)
			b.q = append(b.q, ns)
		}
	}
	return hits
}
