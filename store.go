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
	"sync"

	"github.com/zintix-labs/tilelab/sdk/grid"
)

// Observer 在每次盤面成功更新後收到新盤面的快照。
type Observer func(grid.Grid)

// Store 持有唯一的「目前盤面」，所有變動都必須經過 Update。
//
// Update 的 讀取→計算→替換→通知 整段都在同一把鎖內完成，因此在多 goroutine 下也是原子的。
// 觀察者在鎖內被同步呼叫：觀察者內不可再呼叫 Update（會死結）。
type Store struct {
	mu        sync.Mutex
	current   grid.Grid
	observers map[int]Observer
	order     []int // 依訂閱順序通知
	nextID    int
}

// NewStore 以 g 的深拷貝作為初始盤面。
func NewStore(g grid.Grid) *Store {
	return &Store{
		current:   g.Clone(),
		observers: make(map[int]Observer),
	}
}

// Get 回傳目前盤面的獨立快照，修改快照不會影響 Store。
func (s *Store) Get() grid.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Update 以 fn(目前盤面) 的結果取代目前盤面並通知所有觀察者。
//
// fn 回傳錯誤時盤面維持不變、不通知任何觀察者，錯誤原樣回傳。
// fn 收到的是快照，回傳的盤面會再被深拷貝後保存，所以 fn 不需要擔心別名問題。
func (s *Store) Update(fn func(grid.Grid) (grid.Grid, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current.Clone())
	if err != nil {
		return err
	}
	s.current = next.Clone()
	for _, id := range s.order {
		s.observers[id](s.current.Clone())
	}
	return nil
}

// Subscribe 註冊觀察者，註冊當下會先以目前盤面呼叫一次 o。
// 回傳的函式用來取消訂閱，可重複呼叫。
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = o
	s.order = append(s.order, id)
	o(s.current.Clone())

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.observers[id]; !ok {
			return
		}
		delete(s.observers, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}
