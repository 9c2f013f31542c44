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

package spec

import (
	"slices"
	"strings"

	"github.com/zintix-labs/tilelab/errs"
	"github.com/zintix-labs/tilelab/sdk/ops"
	"github.com/zintix-labs/tilelab/sdk/tile"
)

// CascadeMode 決定玩家每次消除後自動消除要跑幾輪。
type CascadeMode int

const (
	// CascadeSingle 每次玩家動作只跑一輪自動消除（預設）
	CascadeSingle CascadeMode = iota
	// CascadeFixedPoint 重複自動消除直到盤面穩定（連鎖）
	CascadeFixedPoint
)

var cascadeModeMap = map[string]CascadeMode{
	"":            CascadeSingle,
	"single":      CascadeSingle,
	"fixed_point": CascadeFixedPoint,
}

func ParseCascadeMode(s string) (CascadeMode, bool) {
	m, ok := cascadeModeMap[strings.ToLower(strings.TrimSpace(s))]
	return m, ok
}

func (m CascadeMode) String() string {
	if m == CascadeFixedPoint {
		return "fixed_point"
	}
	return "single"
}

// BoardSetting 描述一個盤面的所有啟動設定，載入後不再變動。
//
// Fields:
//   - Width: 欄數
//   - Height: 每欄最多圖塊數
//   - StartingHeight: 生成時每欄的圖塊數（<= Height，保留給之後遊戲流程補圖）
//   - Palette: 圖塊類型名稱，順序即類型值 0..n-1，至少 3 種
//   - Cascade: single | fixed_point
//   - SweepMinSize: 自動消除門檻，預設 3
//   - Seed: > 0 時固定盤面亂數種子
type BoardSetting struct {
	BoardName      string      `yaml:"board_name"      json:"board_name"`
	Width          int         `yaml:"width"           json:"width"`
	Height         int         `yaml:"height"          json:"height"`
	StartingHeight int         `yaml:"starting_height" json:"starting_height"`
	Palette        []string    `yaml:"palette"         json:"palette"`
	CascadeStr     string      `yaml:"cascade"         json:"cascade"`
	SweepMinSize   int         `yaml:"sweep_min_size"  json:"sweep_min_size"`
	Seed           int64       `yaml:"seed"            json:"seed"`
	Cascade        CascadeMode `yaml:"-"               json:"-"`
	PaletteTypes   []tile.Type `yaml:"-"               json:"-"`
	initFlag       bool
}

// Init 解析列舉、補上預設值並檢查設定。重複呼叫不會重做。
func (bs *BoardSetting) Init() error {
	if bs.initFlag {
		return nil
	}
	cm, ok := ParseCascadeMode(bs.CascadeStr)
	if !ok {
		return errs.Codedf(errs.ErrInvalidSetting, "board %q: unknown cascade %q", bs.BoardName, bs.CascadeStr)
	}
	bs.Cascade = cm
	if bs.SweepMinSize == 0 {
		bs.SweepMinSize = ops.MinSweepSize
	}
	if err := bs.valid(); err != nil {
		return err
	}
	bs.PaletteTypes = make([]tile.Type, len(bs.Palette))
	for i := range bs.Palette {
		bs.PaletteTypes[i] = tile.Type(i)
	}
	bs.initFlag = true
	return nil
}

// valid 基本設定檢查
func (bs *BoardSetting) valid() error {
	name := bs.BoardName
	if bs.Width < 1 || bs.Height < 1 {
		return errs.Codedf(errs.ErrInvalidSetting, "board %q: invalid dimensions width=%d height=%d", name, bs.Width, bs.Height)
	}
	if bs.StartingHeight < 1 || bs.StartingHeight > bs.Height {
		return errs.Codedf(errs.ErrInvalidSetting, "board %q: starting_height=%d must be in [1,%d]", name, bs.StartingHeight, bs.Height)
	}
	// 生成時兩個危險條件最多排除兩種類型，少於 3 種就可能無圖可選
	if len(bs.Palette) < 3 {
		return errs.Codedf(errs.ErrInvalidSetting, "board %q: palette needs at least 3 types, got %d", name, len(bs.Palette))
	}
	if len(bs.Palette) > 1<<15-1 {
		return errs.Codedf(errs.ErrInvalidSetting, "board %q: palette too large", name)
	}
	seen := make(map[string]bool, len(bs.Palette))
	for _, p := range bs.Palette {
		key := strings.TrimSpace(p)
		if key == "" {
			return errs.Codedf(errs.ErrInvalidSetting, "board %q: empty palette name", name)
		}
		if seen[key] {
			return errs.Codedf(errs.ErrInvalidSetting, "board %q: duplicate palette name %q", name, key)
		}
		seen[key] = true
	}
	if bs.SweepMinSize < 2 {
		return errs.Codedf(errs.ErrInvalidSetting, "board %q: sweep_min_size=%d must be >= 2", name, bs.SweepMinSize)
	}
	if bs.Seed < 0 {
		return errs.Codedf(errs.ErrInvalidSetting, "board %q: seed must not be negative", name)
	}
	return nil
}

// TypeName 回傳類型在 palette 中的名稱，超出範圍回傳空字串。
func (bs *BoardSetting) TypeName(t tile.Type) string {
	if !t.Valid(len(bs.Palette)) {
		return ""
	}
	return bs.Palette[t]
}

// PaletteNames 依類型值順序回傳 palette 名稱。
func (bs *BoardSetting) PaletteNames() []string {
	out := make([]string, len(bs.PaletteTypes))
	for i, t := range bs.PaletteTypes {
		out[i] = bs.TypeName(t)
	}
	return out
}

// Clone 回傳深拷貝，修改拷貝不會影響原設定。
func (bs *BoardSetting) Clone() *BoardSetting {
	cp := *bs
	cp.Palette = slices.Clone(bs.Palette)
	cp.PaletteTypes = slices.Clone(bs.PaletteTypes)
	return &cp
}
