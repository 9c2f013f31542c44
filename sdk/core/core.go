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

package core

import "encoding/binary"

// PRNG 盤面生成與模擬器使用的亂數來源。
type PRNG interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

type PRNGFactory interface {
	// New 以指定 seed 建立新的 PRNG。
	//
	// 合約：在同一個實作與同一個版本下，New(seed) 必須是決定性的，
	// 相同 seed 產生相同的初始狀態與輸出序列。
	//
	// 盤面的圖塊類型與圖塊 ID 都由這顆 PRNG 產生，所以同一個 seed 會得到完全相同的盤面，
	// 模擬器派生的每個 session 也因此可以重播。
	New(int64) PRNG
}

type DefaultPRNG struct{}

func (d *DefaultPRNG) New(seed int64) PRNG {
	return newPCG64WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// Core 包裝 PRNG，提供盤面生成需要的抽樣工具。
type Core struct {
	PRNG
}

func New(rng PRNG) *Core {
	return &Core{rng}
}

// PickFrom 從 src 中等機率取一個元素，src 為空時 ok 為 false。
func PickFrom[T any](c *Core, src []T) (v T, ok bool) {
	if len(src) == 0 {
		return v, false
	}
	return src[c.IntN(len(src))], true
}

// Read 以 PRNG 輸出填滿 p，讓 Core 可以當作 io.Reader 使用（例如產生圖塊 ID）。
// 永遠回傳 len(p), nil。
func (c *Core) Read(p []byte) (int, error) {
	var buf [8]byte
	n := 0
	for n < len(p) {
		binary.LittleEndian.PutUint64(buf[:], c.Uint64())
		n += copy(p[n:], buf[:])
	}
	return n, nil
}
