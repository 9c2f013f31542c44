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

package recorder

import (
	"github.com/zintix-labs/tilelab/errs"
	"github.com/zintix-labs/tilelab/sdk/buf"
	"github.com/zintix-labs/tilelab/spec"
	"github.com/zintix-labs/tilelab/stats"
)

// ActionRecorder 模擬紀錄員
//
// ActionRecorder 負責累積每次動作與每局的結果，並透過 Done 輸出統計報表。
// 單一 ActionRecorder 不可併發使用，併發時每個 worker 一個，最後以 MergeActionRecorder 合併。
type ActionRecorder struct {
	setting *spec.BoardSetting
	Basic   *BasicRecord
	Dist    *DistRecord
	Session *SessionRecord
	cur     *sessionState
}

// BasicRecord 動作基本資料紀錄
type BasicRecord struct {
	Actions        int
	PickedSum      int
	PickedSqSum    int // 平方和
	SweptSum       int
	SweptSqSum     int // 平方和
	PassSum        int
	SweepActions   int
	MaxPicked      int
	MaxSwept       int
	MaxPasses      int
	TilesGenerated int
}

// DistRecord 點擊連通塊大小落點統計
type DistRecord struct {
	Bucket        *stats.Buckets
	PickedCollect []int
}

// SessionRecord 每局紀錄
type SessionRecord struct {
	Sessions  int
	Cleared   int
	Actions   []int
	Remaining []int
}

type sessionState struct {
	actions   int
	remaining int
}

func NewActionRecorder(bs *spec.BoardSetting) (*ActionRecorder, error) {
	if bs == nil {
		return nil, errs.NewFatal("board setting required")
	}
	return &ActionRecorder{
		setting: bs,
		Basic:   new(BasicRecord),
		Dist:    newDistRecord(),
		Session: new(SessionRecord),
	}, nil
}

// MergeActionRecorder 合併多個紀錄員（必須是同一個盤面設定），進行中的局不會被合併。
func MergeActionRecorder(r []*ActionRecorder) (*ActionRecorder, error) {
	if len(r) == 0 {
		return nil, errs.NewFatal("merge action record err : empty input")
	}
	r0 := r[0]
	s, err := NewActionRecorder(r0.setting)
	if err != nil {
		return nil, err
	}
	for _, v := range r {
		if v.setting.BoardName != r0.setting.BoardName {
			return nil, errs.NewFatal("merge action record err : different board name")
		}
		b := v.Basic
		s.Basic.Actions += b.Actions
		s.Basic.PickedSum += b.PickedSum
		s.Basic.PickedSqSum += b.PickedSqSum
		s.Basic.SweptSum += b.SweptSum
		s.Basic.SweptSqSum += b.SweptSqSum
		s.Basic.PassSum += b.PassSum
		s.Basic.SweepActions += b.SweepActions
		s.Basic.MaxPicked = max(s.Basic.MaxPicked, b.MaxPicked)
		s.Basic.MaxSwept = max(s.Basic.MaxSwept, b.MaxSwept)
		s.Basic.MaxPasses = max(s.Basic.MaxPasses, b.MaxPasses)
		s.Basic.TilesGenerated += b.TilesGenerated

		for i, c := range v.Dist.PickedCollect {
			s.Dist.PickedCollect[i] += c
		}

		s.Session.Sessions += v.Session.Sessions
		s.Session.Cleared += v.Session.Cleared
		s.Session.Actions = append(s.Session.Actions, v.Session.Actions...)
		s.Session.Remaining = append(s.Session.Remaining, v.Session.Remaining...)
	}
	return s, nil
}

// StartSession 開始一局，tiles 為生成盤面的圖塊數。前一局若尚未結束會先結束。
func (s *ActionRecorder) StartSession(tiles int) {
	if s.cur != nil {
		s.EndSession()
	}
	s.Basic.TilesGenerated += tiles
	s.cur = &sessionState{remaining: tiles}
}

// Record 以單次 Outcome 更新統計
func (s *ActionRecorder) Record(o *buf.Outcome) {
	picked := len(o.Picked)
	b := s.Basic
	b.Actions++
	b.PickedSum += picked
	b.PickedSqSum += picked * picked
	b.SweptSum += o.Swept
	b.SweptSqSum += o.Swept * o.Swept
	b.PassSum += o.Passes
	if o.Swept > 0 {
		b.SweepActions++
	}
	b.MaxPicked = max(b.MaxPicked, picked)
	b.MaxSwept = max(b.MaxSwept, o.Swept)
	b.MaxPasses = max(b.MaxPasses, o.Passes)

	s.Dist.PickedCollect[s.Dist.Bucket.Index(picked)]++

	if s.cur != nil {
		s.cur.actions++
		s.cur.remaining = o.Remaining
	}
}

// EndSession 結束目前這局，沒有進行中的局時不做事。
func (s *ActionRecorder) EndSession() {
	if s.cur == nil {
		return
	}
	ss := s.Session
	ss.Sessions++
	if s.cur.remaining == 0 {
		ss.Cleared++
	}
	ss.Actions = append(ss.Actions, s.cur.actions)
	ss.Remaining = append(ss.Remaining, s.cur.remaining)
	s.cur = nil
}

// Done 結束進行中的局並輸出報表（已呼叫 stats.Report.Done）
func (s *ActionRecorder) Done() *stats.Report {
	s.EndSession()
	bs := s.setting
	b := s.Basic
	report := &stats.Report{
		Summary: &stats.SummaryReport{
			BoardName:      bs.BoardName,
			Width:          bs.Width,
			Height:         bs.Height,
			Palette:        len(bs.Palette),
			Cascade:        bs.Cascade.String(),
			SweepMinSize:   bs.SweepMinSize,
			Sessions:       s.Session.Sessions,
			Cleared:        s.Session.Cleared,
			Actions:        b.Actions,
			TilesGenerated: b.TilesGenerated,
			TilesRemoved:   b.PickedSum + b.SweptSum,
		},
		Action: &stats.ActionReport{
			PickedSum:    b.PickedSum,
			PickedSqSum:  b.PickedSqSum,
			SweptSum:     b.SweptSum,
			SweptSqSum:   b.SweptSqSum,
			PassSum:      b.PassSum,
			SweepActions: b.SweepActions,
			MaxPicked:    b.MaxPicked,
			MaxSwept:     b.MaxSwept,
			MaxPasses:    b.MaxPasses,
		},
		Session: &stats.SessionReport{
			Actions:   append([]int(nil), s.Session.Actions...),
			Remaining: append([]int(nil), s.Session.Remaining...),
		},
		Dist: &stats.DistReport{
			SizeBucket:    s.Dist.Bucket.Labels(),
			PickedCollect: append([]int(nil), s.Dist.PickedCollect...),
		},
	}
	report.Done()
	return report
}

func newDistRecord() *DistRecord {
	return &DistRecord{
		Bucket:        stats.SizeBuckets,
		PickedCollect: make([]int, stats.SizeBuckets.Len()),
	}
}
