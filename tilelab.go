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

// Package tilelab 提供消除類益智遊戲的盤面引擎入口。
//
// 一個 Board 把下列元件組裝在一起：
//  1. spec.BoardSetting：盤面尺寸、palette、連鎖模式等啟動設定（載入後不再變動）。
//  2. core.PRNGFactory：亂數核心工廠，同一個 seed 生成完全相同的盤面（圖塊 ID 也相同）。
//  3. Store：唯一的目前盤面與觀察者名單，所有變動都經過 Store.Update。
//
// 外部（UI、輸入處理、模擬器）只透過 Board.RemoveTile(x, y) 變動盤面，
// 並透過 Board.Subscribe 在每次成功變動後收到完整的新盤面。
//
// 典型使用：
//
//	bs, _ := spec.LoadBoardSetting(configs.FS, configs.Default)
//	b, _ := tilelab.New(bs, core.Default(), logger.NewDefaultLogger(logger.ModeDev))
//	stop := b.Subscribe(func(g grid.Grid) { render(g) })
//	defer stop()
//	out, err := b.RemoveTile(0, 0)
package tilelab

import (
	"crypto/rand"
	"io/fs"
	"log/slog"
	"math"
	"math/big"

	"github.com/google/uuid"
	"github.com/zintix-labs/tilelab/errs"
	"github.com/zintix-labs/tilelab/logger"
	"github.com/zintix-labs/tilelab/sdk/core"
	"github.com/zintix-labs/tilelab/sdk/gen"
	"github.com/zintix-labs/tilelab/sdk/grid"
	"github.com/zintix-labs/tilelab/spec"
	"github.com/zyedidia/generic/mapset"
)

// New 建立新盤面。bs.Seed > 0 時使用固定 seed，否則由 crypto/rand 產生並保存在 Board.Seed()。
func New(bs *spec.BoardSetting, cf core.PRNGFactory, log *slog.Logger) (*Board, error) {
	seed := int64(0)
	if bs != nil {
		seed = bs.Seed
	}
	if seed <= 0 {
		s, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			return nil, errs.Wrap(err, "generate seed failed")
		}
		seed = s.Int64()
	}
	return NewWithSeed(bs, cf, log, seed)
}

// NewWithSeed 以指定 seed 建立新盤面，忽略 bs.Seed。
func NewWithSeed(bs *spec.BoardSetting, cf core.PRNGFactory, log *slog.Logger, seed int64) (*Board, error) {
	if bs == nil {
		return nil, errs.NewFatal("board setting required")
	}
	if cf == nil {
		return nil, errs.NewFatal("core factory required")
	}
	if err := bs.Init(); err != nil {
		return nil, err
	}
	c := core.New(cf.New(seed))
	g, err := gen.NewBoardGenerator(c, bs.Width, bs.StartingHeight, bs.PaletteTypes).Generate()
	if err != nil {
		return nil, errs.Wrap(err, "generate board failed")
	}
	b := newBoard(bs, g, log, seed)
	b.log.Debug("board.generated", slog.Int64("seed", seed), slog.Int("tiles", g.Count()))
	return b, nil
}

// NewFromConfig 從 fsys 讀取設定檔 name 後建立盤面。
func NewFromConfig(fsys fs.FS, name string, cf core.PRNGFactory, log *slog.Logger) (*Board, error) {
	bs, err := spec.LoadBoardSetting(fsys, name)
	if err != nil {
		return nil, err
	}
	return New(bs, cf, log)
}

// NewFromGrid 以既有盤面建立 Board（關卡設計或測試用），不經過生成器。
//
// 盤面必須剛好 bs.Width 欄、每欄不超過 bs.Height、類型都在 palette 內、圖塊 ID 不重複。
func NewFromGrid(bs *spec.BoardSetting, g grid.Grid, log *slog.Logger) (*Board, error) {
	if bs == nil {
		return nil, errs.NewFatal("board setting required")
	}
	if err := bs.Init(); err != nil {
		return nil, err
	}
	if g.Width() != bs.Width {
		return nil, errs.Codedf(errs.ErrInvalidSetting, "grid width=%d, setting width=%d", g.Width(), bs.Width)
	}
	ids := mapset.New[uuid.UUID]()
	for x, col := range g {
		if len(col) > bs.Height {
			return nil, errs.Codedf(errs.ErrInvalidSetting, "column %d has %d tiles, height=%d", x, len(col), bs.Height)
		}
		for y, t := range col {
			if !t.Type.Valid(len(bs.PaletteTypes)) {
				return nil, errs.Codedf(errs.ErrInvalidSetting, "tile (%d,%d) type=%d outside palette", x, y, t.Type)
			}
			if ids.Has(t.ID) {
				return nil, errs.Codedf(errs.ErrInvalidSetting, "tile (%d,%d) duplicate id %s", x, y, t.ID)
			}
			ids.Put(t.ID)
		}
	}
	return newBoard(bs, g, log, 0), nil
}

func newBoard(bs *spec.BoardSetting, g grid.Grid, log *slog.Logger, seed int64) *Board {
	return &Board{
		Name:    bs.BoardName,
		setting: bs,
		store:   NewStore(g),
		log:     logger.OrNop(log).With(slog.String("board", bs.BoardName)),
		seed:    seed,
	}
}
