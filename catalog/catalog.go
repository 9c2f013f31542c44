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

// Package catalog 以盤面名稱索引多個設定來源（go:embed 或磁碟目錄）中的盤面設定。
package catalog

import (
	"io/fs"
	"slices"
	"strings"

	"github.com/zintix-labs/tilelab/errs"
	"github.com/zintix-labs/tilelab/spec"
)

var (
	ErrDupName   = errs.NewFatal("duplicate board name")
	ErrDupConfig = errs.NewFatal("duplicate config name")
)

type Entry struct {
	Name       string
	ConfigName string
}

type Summary struct {
	Name           string   `json:"name"`
	Config         string   `json:"config"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	StartingHeight int      `json:"starting_height"`
	Palette        []string `json:"palette"`
	Cascade        string   `json:"cascade"`
	SweepMinSize   int      `json:"sweep_min_size"`
}

type Catalog struct {
	byName map[string]Entry
	byCfg  map[string]Entry
	names  []string // 用來穩定排序
	config *multiFS
	frozen bool
}

func New(cfg ...fs.FS) (*Catalog, error) {
	multFS, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		byName: map[string]Entry{},
		byCfg:  map[string]Entry{},
		names:  make([]string, 0, 16),
		config: multFS,
	}, nil
}

// NewAuto 建立 Catalog 並自動註冊所有設定檔
func NewAuto(cfg ...fs.FS) (*Catalog, error) {
	c, err := New(cfg...)
	if err != nil {
		return nil, err
	}
	if err := c.RegisterAll(); err != nil {
		return nil, err
	}
	c.Freeze()
	return c, nil
}

// Register 註冊一組盤面，任一筆不合法時整組都不會寫入。
func (c *Catalog) Register(ents ...Entry) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	seenName := map[string]struct{}{}
	seenCfg := map[string]struct{}{}
	for i := range ents {
		ents[i].Name = normalize(ents[i].Name)
		e := ents[i]
		if e.Name == "" {
			return errs.NewFatal("board name required")
		}
		if _, ok := c.config.index[e.ConfigName]; !ok {
			return errs.Fatalf("config file not found: %s", e.ConfigName)
		}
		if _, ok := c.byName[e.Name]; ok {
			return ErrDupName
		}
		if _, ok := seenName[e.Name]; ok {
			return ErrDupName
		}
		if _, ok := c.byCfg[e.ConfigName]; ok {
			return ErrDupConfig
		}
		if _, ok := seenCfg[e.ConfigName]; ok {
			return ErrDupConfig
		}
		seenName[e.Name] = struct{}{}
		seenCfg[e.ConfigName] = struct{}{}
	}
	for _, e := range ents {
		c.byName[e.Name] = e
		c.byCfg[e.ConfigName] = e
		c.names = append(c.names, e.Name)
	}
	slices.Sort(c.names)
	return nil
}

// RegisterAll 讀取所有設定檔，以各自的 board_name 註冊。
func (c *Catalog) RegisterAll() error {
	files := make([]string, 0, len(c.config.index))
	for name := range c.config.index {
		files = append(files, name)
	}
	slices.Sort(files)

	ents := make([]Entry, 0, len(files))
	for _, f := range files {
		bs, err := c.load(f)
		if err != nil {
			return err
		}
		ents = append(ents, Entry{Name: bs.BoardName, ConfigName: f})
	}
	return c.Register(ents...)
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	e, ok := c.byName[normalize(name)]
	return e, ok
}

// Lookup 以盤面名稱或設定檔名查找
func (c *Catalog) Lookup(key string) (Entry, bool) {
	if e, ok := c.GetByName(key); ok {
		return e, true
	}
	e, ok := c.byCfg[key]
	return e, ok
}

func (c *Catalog) Names() []string {
	if len(c.names) == 0 {
		return nil
	}
	return append([]string(nil), c.names...)
}

func (c *Catalog) All() []Entry {
	out := make([]Entry, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.byName[n])
	}
	return out
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

// Setting 以盤面名稱或設定檔名讀取設定。每次呼叫都回傳新的實體。
func (c *Catalog) Setting(key string) (*spec.BoardSetting, error) {
	e, ok := c.Lookup(key)
	if !ok {
		return nil, errs.Warnf("board %q does not exist in catalog", key)
	}
	return c.load(e.ConfigName)
}

// Summary 依名稱排序列出所有盤面的摘要
func (c *Catalog) Summary() ([]Summary, error) {
	out := make([]Summary, 0, len(c.names))
	for _, e := range c.All() {
		bs, err := c.load(e.ConfigName)
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{
			Name:           e.Name,
			Config:         e.ConfigName,
			Width:          bs.Width,
			Height:         bs.Height,
			StartingHeight: bs.StartingHeight,
			Palette:        bs.PaletteNames(),
			Cascade:        bs.Cascade.String(),
			SweepMinSize:   bs.SweepMinSize,
		})
	}
	return out, nil
}

func (c *Catalog) load(file string) (*spec.BoardSetting, error) {
	src, ok := c.config.GetFS(file)
	if !ok {
		return nil, errs.Warnf("config %q does not exist in catalog", file)
	}
	return spec.LoadBoardSetting(src, file)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type multiFS struct {
	src   []fs.FS
	index map[string]int // name -> src index
}

func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	for i, s := range src {
		if s == nil {
			return nil, errs.Fatalf("fs[%d] is nil", i)
		}
	}

	m := &multiFS{
		src:   src,
		index: make(map[string]int, 32),
	}

	for i := range src {
		err := fs.WalkDir(src[i], ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// 設定目錄必須是平的，只允許根目錄
				if path == "." {
					return nil
				}
				return errs.Fatalf("config FS must be flat (no subdirectories): %q", path)
			}
			// 只索引 yaml/json，其他檔案忽略
			lower := strings.ToLower(path)
			if !(strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")) {
				return nil
			}
			if prev, ok := m.index[path]; ok {
				return errs.Fatalf("duplicate config %q in fs[%d] and fs[%d]", path, prev, i)
			}
			m.index[path] = i
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *multiFS) GetFS(name string) (fs.FS, bool) {
	if id, ok := m.index[name]; ok {
		return m.src[id], ok
	}
	return nil, false
}
