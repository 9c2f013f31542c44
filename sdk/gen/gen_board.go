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

package gen

import (
	"github.com/zintix-labs/tilelab/errs"
	"github.com/zintix-labs/tilelab/sdk/core"
	"github.com/zintix-labs/tilelab/sdk/grid"
	"github.com/zintix-labs/tilelab/sdk/tile"
)

// BoardGenerator 保存生成初始盤面所需的狀態。
//
// 生成順序：由左到右逐欄，每欄由下往上。每個位置計算兩個危險條件：
//   - 垂直：正下方兩個圖塊同類型
//   - 水平：左方同一列的兩個圖塊同類型
//
// 候選類型 = palette 扣掉觸發危險條件的類型，再以 core 等機率抽一個。
// 因此生成當下不會出現橫向或縱向的三連；斜向與之後的盤面變化不在保證範圍內。
//
// 前置條件：palette 至少 3 種類型。兩個危險條件最多排除 2 種，少於 3 種時候選可能為空，
// 此時 Generate 回傳 errs.ErrEmptyCandidateSet（設定錯誤，不應在執行期重試）。
type BoardGenerator struct {
	core           *core.Core
	Width          int
	StartingHeight int
	Palette        []tile.Type
	candidates     []tile.Type // 重用的候選緩衝
}

// NewBoardGenerator 根據盤面尺寸與 palette 建立生成器。
func NewBoardGenerator(c *core.Core, width int, startingHeight int, palette []tile.Type) *BoardGenerator {
	return &BoardGenerator{
		core:           c,
		Width:          width,
		StartingHeight: startingHeight,
		Palette:        palette,
		candidates:     make([]tile.Type, 0, len(palette)),
	}
}

// Generate 生成 Width 欄、每欄 StartingHeight 個圖塊的新盤面。
// 圖塊 ID 也由 core 產生，同一個 seed 會得到完全相同的盤面。
func (bg *BoardGenerator) Generate() (grid.Grid, error) {
	g := make(grid.Grid, bg.Width)
	for x := range bg.Width {
		col := make([]tile.Tile, 0, bg.StartingHeight)
		for y := range bg.StartingHeight {
			cands := bg.candidatesAt(g, col, x, y)
			t, ok := core.PickFrom(bg.core, cands)
			if !ok {
				return nil, errs.Codedf(errs.ErrEmptyCandidateSet, "x=%d y=%d palette=%d", x, y, len(bg.Palette))
			}
			nt, err := tile.NewFromReader(t, bg.core)
			if err != nil {
				return nil, errs.Wrap(err, "generate tile id failed")
			}
			col = append(col, nt)
		}
		g[x] = col
	}
	return g, nil
}

// candidatesAt 計算 (x, y) 可用的候選類型。col 為第 x 欄目前已生成的部分。
func (bg *BoardGenerator) candidatesAt(g grid.Grid, col []tile.Tile, x int, y int) []tile.Type {
	vertical := y >= 2 && col[y-1].Type == col[y-2].Type
	horizontal := x >= 2 && g[x-1][y].Type == g[x-2][y].Type

	bg.candidates = bg.candidates[:0]
	for _, t := range bg.Palette {
		if vertical && t == col[y-1].Type {
			continue
		}
		if horizontal && t == g[x-1][y].Type {
			continue
		}
		bg.candidates = append(bg.candidates, t)
	}
	return bg.candidates
}
