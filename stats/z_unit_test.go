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

package stats_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/zintix-labs/tilelab/stats"
)

// buildReport 以每次動作的點擊大小與自動消除數建立報表
func buildReport(picked []int, swept []int, actionsPerSession []int, remaining []int, cleared int) *stats.Report {
	collect := make([]int, stats.SizeBuckets.Len())
	a := &stats.ActionReport{}
	removed := 0
	for i, p := range picked {
		s := swept[i]
		collect[stats.SizeBuckets.Index(p)]++
		a.PickedSum += p
		a.PickedSqSum += p * p
		a.SweptSum += s
		a.SweptSqSum += s * s
		if s > 0 {
			a.SweepActions++
			a.PassSum++
		}
		a.MaxPicked = max(a.MaxPicked, p)
		a.MaxSwept = max(a.MaxSwept, s)
		removed += p + s
	}
	r := &stats.Report{
		Summary: &stats.SummaryReport{
			BoardName:    "TestBoard",
			Width:        3,
			Height:       3,
			Palette:      3,
			Cascade:      "single",
			SweepMinSize: 3,
			Sessions:     len(actionsPerSession),
			Cleared:      cleared,
			Actions:      len(picked),
			TilesRemoved: removed,
		},
		Action:  a,
		Session: &stats.SessionReport{Actions: actionsPerSession, Remaining: remaining},
		Dist: &stats.DistReport{
			SizeBucket:    stats.SizeBuckets.Labels(),
			PickedCollect: collect,
		},
	}
	r.Done()
	return r
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSizeBucketsIndex(t *testing.T) {
	cases := map[int]int{0: 0, 1: 0, 2: 1, 5: 4, 6: 5, 9: 5, 10: 6, 19: 6, 20: 7, 1000: 7}
	for n, want := range cases {
		if got := stats.SizeBuckets.Index(n); got != want {
			t.Fatalf("Index(%d)=%d, want %d", n, got, want)
		}
	}
	labels := stats.SizeBuckets.Labels()
	if len(labels) != stats.SizeBuckets.Len() {
		t.Fatalf("labels len=%d, want %d", len(labels), stats.SizeBuckets.Len())
	}
	if labels[0] != "1" || labels[5] != "[6,10)" || labels[7] != "[20,+inf)" {
		t.Fatalf("unexpected labels: %v", labels)
	}
}

func TestReportDone(t *testing.T) {
	r := buildReport([]int{1, 2, 3}, []int{0, 3, 0}, []int{1, 1, 1}, []int{0, 4, 8}, 1)

	if !approx(r.Action.PickedMean, 2) || !approx(r.Action.PickedStd, 1) {
		t.Fatalf("picked mean/std = %v/%v, want 2/1", r.Action.PickedMean, r.Action.PickedStd)
	}
	if !(r.Action.PickedCI.Lo < 2 && r.Action.PickedCI.Hi > 2) {
		t.Fatalf("picked CI should contain mean: %+v", r.Action.PickedCI)
	}
	if !approx(r.Action.SweptMean, 1) {
		t.Fatalf("swept mean=%v, want 1", r.Action.SweptMean)
	}
	if !approx(r.Action.SweepRate, 1.0/3.0) {
		t.Fatalf("sweep rate=%v, want 1/3", r.Action.SweepRate)
	}
	if !approx(r.Summary.ClearRate, 1.0/3.0) {
		t.Fatalf("clear rate=%v, want 1/3", r.Summary.ClearRate)
	}
	ci := r.Summary.ClearRateCI
	if !(ci.Lo >= 0 && ci.Lo < r.Summary.ClearRate && ci.Hi > r.Summary.ClearRate && ci.Hi <= 1) {
		t.Fatalf("clear rate CI out of range: %+v", ci)
	}
	if !approx(r.Session.RemainingMean, 4) || !approx(r.Session.RemainingStd, 4) || !approx(r.Session.RemainingMedian, 4) {
		t.Fatalf("remaining mean/std/median = %v/%v/%v, want 4/4/4",
			r.Session.RemainingMean, r.Session.RemainingStd, r.Session.RemainingMedian)
	}

	var sum float64
	for _, v := range r.Dist.PickedDist {
		sum += v
	}
	if !approx(sum, 1) {
		t.Fatalf("picked dist sums to %v, want 1", sum)
	}
	if r.Dist.PickedCollect[0] != 1 || r.Dist.PickedCollect[1] != 1 || r.Dist.PickedCollect[2] != 1 {
		t.Fatalf("unexpected collect: %v", r.Dist.PickedCollect)
	}
}

func TestReportDoneEmpty(t *testing.T) {
	r := buildReport(nil, nil, nil, nil, 0)
	if r.Action.PickedMean != 0 || r.Summary.ClearRate != 0 {
		t.Fatalf("empty report should be zero: %+v %+v", r.Action, r.Summary)
	}
	if r.Summary.ClearRateCI != (stats.CI{Lo: 0, Hi: 1}) {
		t.Fatalf("empty CI=%+v, want [0,1]", r.Summary.ClearRateCI)
	}
}

func TestReportSingleSample(t *testing.T) {
	r := buildReport([]int{4}, []int{0}, []int{1}, []int{5}, 0)
	if r.Action.PickedStd != 0 || r.Action.PickedCI != (stats.CI{Lo: 4, Hi: 4}) {
		t.Fatalf("single sample: std=%v ci=%+v", r.Action.PickedStd, r.Action.PickedCI)
	}
	if r.Session.RemainingMean != 5 || r.Session.RemainingMedian != 5 {
		t.Fatalf("single session: %+v", r.Session)
	}
}

func TestReportRenders(t *testing.T) {
	r := buildReport([]int{1, 2, 3}, []int{0, 3, 0}, []int{3}, []int{0}, 1)

	var jb bytes.Buffer
	if err := r.WriteWith(&jb, &stats.JsonReportRender{}); err != nil {
		t.Fatalf("json render: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(jb.Bytes(), &decoded); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	summary, ok := decoded["Summary"].(map[string]any)
	if !ok || summary["BoardName"] != "TestBoard" {
		t.Fatalf("unexpected json summary: %v", decoded["Summary"])
	}

	yr, ok := stats.RenderFor("yaml")
	if !ok {
		t.Fatal("yaml render missing")
	}
	var yb bytes.Buffer
	if err := r.WriteWith(&yb, yr); err != nil {
		t.Fatalf("yaml render: %v", err)
	}
	if !strings.Contains(yb.String(), "[1, 1, 1, 0, 0, 0, 0, 0]") {
		t.Fatalf("yaml should use flow style for collect:\n%s", yb.String())
	}

	if _, ok := stats.RenderFor("xml"); ok {
		t.Fatal("xml should not be supported")
	}
}

func TestReportFprint(t *testing.T) {
	r := buildReport([]int{1, 2, 3}, []int{0, 3, 0}, []int{3}, []int{0}, 1)
	var b bytes.Buffer
	r.Fprint(&b, 1500*time.Millisecond)
	out := b.String()
	for _, want := range []string{"used: 1.50 seconds", "aps : 2 actions/sec", "TestBoard", "Picked Group Size", "Clear Rate 95%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
