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

package tilelab

import (
	"log/slog"

	"github.com/zintix-labs/tilelab/sdk/buf"
	"github.com/zintix-labs/tilelab/sdk/calc"
	"github.com/zintix-labs/tilelab/sdk/grid"
	"github.com/zintix-labs/tilelab/sdk/ops"
	"github.com/zintix-labs/tilelab/spec"
)

// Board 一局遊戲的盤面。RemoveTile 是唯一對外的變動入口。
type Board struct {
	Name    string
	setting *spec.BoardSetting
	store   *Store
	log     *slog.Logger
	seed    int64
}

// Outcome 一次 RemoveTile 的結果。
type Outcome = buf.Outcome

// RemoveTile 玩家點擊 (x, y)：
//  1. 移除 (x, y) 所在的同類型連通塊（不論大小）
//  2. 對結果執行自動消除：預設一輪；設定為 fixed_point 時重複到盤面穩定
//  3. 以最終盤面取代目前盤面並通知觀察者
//
// 座標無效時回傳 errs.ErrOutOfBounds / errs.ErrEmptySlot，盤面與觀察者都不受影響。
func (b *Board) RemoveTile(x, y int) (*Outcome, error) {
	out := &Outcome{X: x, Y: y}
	err := b.store.Update(func(g grid.Grid) (grid.Grid, error) {
		next, picked, err := ops.RemoveByCoordinate(g, x, y)
		if err != nil {
			return nil, err
		}
		out.Picked = picked
		next, out.Swept, out.Passes = b.sweep(next)
		out.Remaining = next.Count()
		return next, nil
	})
	if err != nil {
		b.log.Debug("board.remove.rejected", slog.Int("x", x), slog.Int("y", y), slog.Any("err", err))
		return nil, err
	}
	b.log.Debug("board.remove",
		slog.Int("x", x),
		slog.Int("y", y),
		slog.Int("picked", len(out.Picked)),
		slog.Int("swept", out.Swept),
		slog.Int("passes", out.Passes),
		slog.Int("remaining", out.Remaining),
	)
	return out, nil
}

func (b *Board) sweep(g grid.Grid) (grid.Grid, int, int) {
	minSize := b.setting.SweepMinSize
	if b.setting.Cascade == spec.CascadeFixedPoint {
		return ops.SweepUntilStable(g, minSize)
	}
	next, n := ops.Sweep(g, minSize)
	if n == 0 {
		return next, 0, 0
	}
	return next, n, 1
}

// Grid 目前盤面的快照
func (b *Board) Grid() grid.Grid { return b.store.Get() }

// Subscribe 註冊觀察者，見 Store.Subscribe。
func (b *Board) Subscribe(o Observer) func() { return b.store.Subscribe(o) }

// Groups 目前盤面的所有同類型連通塊（欄優先順序）。
func (b *Board) Groups() []calc.Group { return calc.FindGroups(b.store.Get()) }

// TileCount 目前盤面的圖塊數
func (b *Board) TileCount() int { return b.store.Get().Count() }

// IsCleared 盤面是否已清空
func (b *Board) IsCleared() bool { return b.TileCount() == 0 }

// Seed 生成盤面使用的 seed；由 NewFromGrid 建立時為 0。
func (b *Board) Seed() int64 { return b.seed }

// Setting 回傳盤面設定的拷貝，修改它不會影響這個盤面。
func (b *Board) Setting() *spec.BoardSetting { return b.setting.Clone() }
