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
	"github.com/zyedidia/generic/mapset"
)

// MinSweepSize 自動消除的預設門檻：連通塊大小 >= 3 才會被消除。
const MinSweepSize = 3

// Sweep 全盤掃描一次，消除所有大小 >= minSize 的同類型連通塊。
//
// 掃描順序為欄優先（每欄 y 由小到大），每個圖塊只屬於第一個找到它的連通塊。
// 掃描完成後才一次性移除所有標記的圖塊，回傳新盤面與移除數量。
// 沒有任何連通塊達標時，原盤面原封不動回傳，移除數量為 0。
func Sweep(g grid.Grid, minSize int) (grid.Grid, int) {
	marked := mapset.New[uuid.UUID]()
	for _, gp := range calc.FindGroups(g) {
		if gp.Size() < minSize {
			continue
		}
		for _, t := range gp.Tiles {
			marked.Put(t.ID)
		}
	}
	if marked.Size() == 0 {
		return g, 0
	}
	return g.Without(marked), marked.Size()
}

// SweepGroupsOfThreeOrMore 以預設門檻 3 執行一次 Sweep。
func SweepGroupsOfThreeOrMore(g grid.Grid) (grid.Grid, int) {
	return Sweep(g, MinSweepSize)
}

// SweepUntilStable 連鎖模式：重複 Sweep 直到某一輪沒有任何消除。
//
// 回傳最終盤面、總移除數量，以及有實際消除的輪數。
// 因為每一輪至少移除 minSize 個圖塊，輪數上限為 盤面圖塊數 / minSize。
func SweepUntilStable(g grid.Grid, minSize int) (grid.Grid, int, int) {
	total, passes := 0, 0
	for {
		next, n := Sweep(g, minSize)
		if n == 0 {
			return g, total, passes
		}
		g = next
		total += n
		passes++
	}
}
