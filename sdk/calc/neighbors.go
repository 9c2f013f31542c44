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
	"iter"

	"github.com/zintix-labs/tilelab/sdk/grid"
	"github.com/zintix-labs/tilelab/sdk/tile"
)

// NeighborSlots 依 左、右、下、上 的固定順序列出 (x, y) 四鄰中目前有圖塊的位置。
//
// 左右兩欄的長度可能不同，所以相鄰欄必須在 y 這個 slot 上真的有圖塊才算鄰居。
// x 超出盤面或 y < 0 時不產生任何位置。
func NeighborSlots(g grid.Grid, x, y int) iter.Seq[grid.Slot] {
	return func(yield func(grid.Slot) bool) {
		if x < 0 || x >= len(g) || y < 0 {
			return
		}
		if x > 0 && y < len(g[x-1]) {
			if !yield(grid.Slot{X: x - 1, Y: y}) {
				return
			}
		}
		if x+1 < len(g) && y < len(g[x+1]) {
			if !yield(grid.Slot{X: x + 1, Y: y}) {
				return
			}
		}
		if y > 0 && y-1 < len(g[x]) {
			if !yield(grid.Slot{X: x, Y: y - 1}) {
				return
			}
		}
		if y+1 < len(g[x]) {
			yield(grid.Slot{X: x, Y: y + 1})
		}
	}
}

// Neighbors 與 NeighborSlots 相同順序，直接產生鄰居圖塊（惰性序列）。
func Neighbors(g grid.Grid, x, y int) iter.Seq[tile.Tile] {
	return func(yield func(tile.Tile) bool) {
		for s := range NeighborSlots(g, x, y) {
			if !yield(g[s.X][s.Y]) {
				return
			}
		}
	}
}
