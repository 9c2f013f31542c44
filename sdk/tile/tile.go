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

// Package tile 定義盤面上的最小單位：圖塊。
//
// 圖塊只有身分（ID）與類型（Type）。位置永遠由圖塊目前所在的盤面推導，
// 不會快取在圖塊上，避免移除之後位置過期。
package tile

import (
	"io"

	"github.com/google/uuid"
)

// Type 圖塊類型，值為 palette 的索引。
type Type int16

// Valid 回傳類型是否落在大小為 paletteSize 的 palette 內。
func (t Type) Valid(paletteSize int) bool {
	return t >= 0 && int(t) < paletteSize
}

// Tile 一個圖塊。兩個圖塊可以同類型，但 ID 絕不重複。
type Tile struct {
	ID   uuid.UUID `json:"id"   yaml:"id"`
	Type Type      `json:"type" yaml:"type"`
}

// New 以全域唯一的新 ID 建立圖塊。
func New(t Type) Tile {
	return Tile{ID: uuid.New(), Type: t}
}

// NewFromReader 以 r 作為亂數來源產生 ID，傳入固定 seed 的 PRNG 即可得到可重現的 ID。
func NewFromReader(t Type, r io.Reader) (Tile, error) {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return Tile{}, err
	}
	return Tile{ID: id, Type: t}, nil
}

// Equal 只比對 ID，不比對類型。
func (t Tile) Equal(o Tile) bool {
	return t.ID == o.ID
}
