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

// Package grid 定義盤面資料：由左到右的欄，每欄是一段由下往上、長度可變的圖塊序列。
//
// 座標 (x, y) 中的 y 是「該欄目前序列的第 y 個圖塊」，不是固定的物理列。
// 移除圖塊後欄會變短、上方圖塊的 y 會改變，所以 y 不能跨越任何一次盤面變動保存。
package grid

import (
	"github.com/google/uuid"
	"github.com/zintix-labs/tilelab/errs"
	"github.com/zintix-labs/tilelab/sdk/tile"
	"github.com/zyedidia/generic/mapset"
)

// Grid 盤面，Grid[x] 為第 x 欄，Grid[x][0] 為該欄最底下的圖塊。
//
// Grid 以值語意使用：所有會產生新盤面的函式都回傳結構上獨立的新 Grid，不改動輸入。
type Grid [][]tile.Tile

// Slot 盤面上一個可定址的位置。
type Slot struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Width 欄數
func (g Grid) Width() int { return len(g) }

// Count 目前盤面上的圖塊總數
func (g Grid) Count() int {
	n := 0
	for _, col := range g {
		n += len(col)
	}
	return n
}

// Has 回傳 (x, y) 目前是否有圖塊。
func (g Grid) Has(x, y int) bool {
	return x >= 0 && x < len(g) && y >= 0 && y < len(g[x])
}

// At 取得 (x, y) 的圖塊。
//
//   - x 超出盤面或 y < 0: errs.ErrOutOfBounds
//   - y 超過該欄目前長度: errs.ErrEmptySlot（同時也是 ErrOutOfBounds）
func (g Grid) At(x, y int) (tile.Tile, error) {
	if x < 0 || x >= len(g) || y < 0 {
		return tile.Tile{}, errs.Codedf(errs.ErrOutOfBounds, "x=%d y=%d width=%d", x, y, len(g))
	}
	if y >= len(g[x]) {
		return tile.Tile{}, errs.Codedf(errs.ErrEmptySlot, "x=%d y=%d column_len=%d", x, y, len(g[x]))
	}
	return g[x][y], nil
}

// Locate 掃描全盤找出圖塊目前的位置，找不到回傳 errs.ErrTileNotFound。
func (g Grid) Locate(t tile.Tile) (Slot, error) {
	for x, col := range g {
		for y, c := range col {
			if c.ID == t.ID {
				return Slot{X: x, Y: y}, nil
			}
		}
	}
	return Slot{}, errs.Codedf(errs.ErrTileNotFound, "id=%s", t.ID)
}

// Clone 深拷貝盤面，回傳值與原盤面不共用任何底層陣列。
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for x, col := range g {
		out[x] = make([]tile.Tile, len(col))
		copy(out[x], col)
	}
	return out
}

// Without 回傳移除 ids 內所有圖塊後的新盤面，各欄存活圖塊保持原本順序。
func (g Grid) Without(ids mapset.Set[uuid.UUID]) Grid {
	out := make(Grid, len(g))
	for x, col := range g {
		kept := make([]tile.Tile, 0, len(col))
		for _, t := range col {
			if !ids.Has(t.ID) {
				kept = append(kept, t)
			}
		}
		out[x] = kept
	}
	return out
}

// Equal 逐格比對 ID 與類型。
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for x := range g {
		if len(g[x]) != len(o[x]) {
			return false
		}
		for y := range g[x] {
			if g[x][y] != o[x][y] {
				return false
			}
		}
	}
	return true
}

// Types 回傳只含類型的盤面，方便測試與輸出。
func (g Grid) Types() [][]tile.Type {
	out := make([][]tile.Type, len(g))
	for x, col := range g {
		out[x] = make([]tile.Type, len(col))
		for y, t := range col {
			out[x][y] = t.Type
		}
	}
	return out
}

// FromTypes 以類型矩陣（欄優先）建立盤面，每個圖塊都配發新的 ID。
func FromTypes(cols [][]tile.Type) Grid {
	out := make(Grid, len(cols))
	for x, col := range cols {
		out[x] = make([]tile.Tile, len(col))
		for y, t := range col {
			out[x][y] = tile.New(t)
		}
	}
	return out
}

// Slots 依欄優先列出目前所有有圖塊的位置。
func (g Grid) Slots() []Slot {
	out := make([]Slot, 0, g.Count())
	for x, col := range g {
		for y := range col {
			out = append(out, Slot{X: x, Y: y})
		}
	}
	return out
}
