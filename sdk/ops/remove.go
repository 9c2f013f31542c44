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

package ops

import (
	"github.com/google/uuid"
	"github.com/zintix-labs/tilelab/sdk/calc"
	"github.com/zintix-labs/tilelab/sdk/grid"
	"github.com/zintix-labs/tilelab/sdk/tile"
	"github.com/zyedidia/generic/mapset"
)

// RemoveByCoordinate 玩家點擊消除：找出 (x, y) 圖塊所在的同類型連通塊，
// 回傳移除整個連通塊後的新盤面與被移除的圖塊（依 BFS 拜訪順序）。
//
// 不論連通塊大小都會移除，大小 1 也是合法的消除。
// 座標無效時回傳 errs.ErrOutOfBounds / errs.ErrEmptySlot，輸入盤面不受影響。
func RemoveByCoordinate(g grid.Grid, x, y int) (grid.Grid, []tile.Tile, error) {
	group, err := calc.GroupAt(g, x, y)
	if err != nil {
		return g, nil, err
	}
	return g.Without(idSet(group)), group, nil
}

// Clear 回傳移除指定圖塊後的新盤面，不在盤面上的圖塊直接忽略。
func Clear(g grid.Grid, tiles []tile.Tile) grid.Grid {
	return g.Without(idSet(tiles))
}

func idSet(tiles []tile.Tile) mapset.Set[uuid.UUID] {
	ids := mapset.New[uuid.UUID]()
	for _, t := range tiles {
		ids.Put(t.ID)
	}
	return ids
}
