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

package stats

import "fmt"

// SizeBuckets 連通塊大小分桶：1, 2, 3, 4, 5, [6,10), [10,20), [20,+inf)
//
// 用來快速定位大小 -> 分桶位置 O(1)，請勿修改預設值
var SizeBuckets = newBuckets([]int{1, 2, 3, 4, 5, 6, 10, 20})

// Buckets 整數分桶，bounds 為各桶下界（遞增）。
type Buckets struct {
	bounds []int
	labels []string
	lut    []int // lut[n] = 桶索引，n < bounds[last]
}

func newBuckets(bounds []int) *Buckets {
	last := len(bounds) - 1
	labels := make([]string, len(bounds))
	for i, lo := range bounds {
		switch {
		case i == last:
			labels[i] = fmt.Sprintf("[%d,+inf)", lo)
		case bounds[i+1] == lo+1:
			labels[i] = fmt.Sprintf("%d", lo)
		default:
			labels[i] = fmt.Sprintf("[%d,%d)", lo, bounds[i+1])
		}
	}

	lut := make([]int, bounds[last])
	idx := 0
	for n := range lut {
		for idx < last && n >= bounds[idx+1] {
			idx++
		}
		lut[n] = idx
	}
	return &Buckets{bounds: bounds, labels: labels, lut: lut}
}

// Labels 各桶標籤
func (b *Buckets) Labels() []string { return b.labels }

// Len 桶數
func (b *Buckets) Len() int { return len(b.bounds) }

// Index 回傳 n 所屬的桶，小於第一個下界時歸入第一桶。
func (b *Buckets) Index(n int) int {
	if n < 0 {
		return 0
	}
	if n >= len(b.lut) {
		return len(b.bounds) - 1
	}
	return b.lut[n]
}
