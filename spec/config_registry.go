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
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/tilelab/errs"
	"gopkg.in/yaml.v3"
)

// GetBoardSettingByYAML
// 會讀取 YAML 設定、初始化並執行基本檢查後回傳。未知欄位視為錯誤。
func GetBoardSettingByYAML(data []byte) (*BoardSetting, error) {
	bs := &BoardSetting{}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true) // 嚴格檢查：多寫/拼錯欄位就報錯
	if err := dec.Decode(bs); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshall yaml")
	}
	if err := bs.Init(); err != nil {
		return nil, errs.Wrap(err, "board setting initialized err")
	}
	return bs, nil
}

// GetBoardSettingByJSON
// 會讀取 Json 設定、初始化並執行基本檢查後回傳
func GetBoardSettingByJSON(data []byte) (*BoardSetting, error) {
	bs := &BoardSetting{}
	if err := json.Unmarshal(data, bs); err != nil {
		return nil, errs.Wrap(err, "can not unmarshall json byte")
	}
	if err := bs.Init(); err != nil {
		return nil, errs.Wrap(err, "board setting initialized err")
	}
	return bs, nil
}

// LoadBoardSetting 從 fsys 讀取名為 name 的設定檔，依副檔名（.yaml/.yml/.json）選擇解析方式。
//
// 不綁定任何實體路徑：可以傳入 go:embed 的 configs.FS，也可以傳入 os.DirFS。
func LoadBoardSetting(fsys fs.FS, name string) (*BoardSetting, error) {
	if fsys == nil {
		return nil, errs.NewFatal("config fs required")
	}
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errs.Wrap(err, "read config failed: "+name)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return GetBoardSettingByYAML(raw)
	case ".json":
		return GetBoardSettingByJSON(raw)
	default:
		return nil, errs.Fatalf("unsupported config format: %q", name)
	}
}
