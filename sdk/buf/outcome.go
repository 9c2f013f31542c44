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

// Package buf 定義盤面動作的結果結構，由 Board 產出、由 recorder 消化。
package buf

import "github.com/zintix-labs/tilelab/sdk/tile"

// Outcome 一次 RemoveTile 的結果。
type Outcome struct {
	X         int         `json:"x"         yaml:"x"`
	Y         int         `json:"y"         yaml:"y"`
	Picked    []tile.Tile `json:"picked"    yaml:"picked"`    // 玩家點擊消除的連通塊（BFS 順序）
	Swept     int         `json:"swept"     yaml:"swept"`     // 自動消除移除的圖塊數
	Passes    int         `json:"passes"    yaml:"passes"`    // 有實際消除的自動消除輪數
	Remaining int         `json:"remaining" yaml:"remaining"` // 提交後盤面剩餘圖塊數
}

// Removed 本次動作總共移除的圖塊數
func (o *Outcome) Removed() int {
	return len(o.Picked) + o.Swept
}

// Cleared 本次動作後盤面是否清空
func (o *Outcome) Cleared() bool {
	return o.Remaining == 0
}
