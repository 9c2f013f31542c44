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

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// Report 模擬統計報告
type Report struct {
	Summary *SummaryReport `json:"Summary"`
	Action  *ActionReport  `json:"Action"`
	Session *SessionReport `json:"Session"`
	Dist    *DistReport    `json:"Dist"`
	isDone  bool
}

type SummaryReport struct {
	BoardName      string  `json:"BoardName"`
	Width          int     `json:"Width"`
	Height         int     `json:"Height"`
	Palette        int     `json:"Palette"`
	Cascade        string  `json:"Cascade"`
	SweepMinSize   int     `json:"SweepMinSize"`
	Sessions       int     `json:"Sessions"`
	Cleared        int     `json:"Cleared"`
	ClearRate      float64 `json:"ClearRate"`
	ClearRateCI    CI      `json:"ClearRateCI"`
	Actions        int     `json:"Actions"`
	TilesGenerated int     `json:"TilesGenerated"`
	TilesRemoved   int     `json:"TilesRemoved"`
}

// ActionReport 單次動作統計
//
// 紀錄時只累加 int，Done() 再計算平均、標準差與信賴區間
type ActionReport struct {
	PickedSum    int     `json:"PickedSum"`
	PickedSqSum  int     `json:"PickedSqSum"` // 平方和
	SweptSum     int     `json:"SweptSum"`
	SweptSqSum   int     `json:"SweptSqSum"` // 平方和
	PassSum      int     `json:"PassSum"`
	SweepActions int     `json:"SweepActions"` // 觸發自動消除的動作數
	MaxPicked    int     `json:"MaxPicked"`
	MaxSwept     int     `json:"MaxSwept"`
	MaxPasses    int     `json:"MaxPasses"`
	PickedMean   float64 `json:"PickedMean"`
	PickedStd    float64 `json:"PickedStd"`
	PickedCI     CI      `json:"PickedCI"`
	SweptMean    float64 `json:"SweptMean"`
	SweptStd     float64 `json:"SweptStd"`
	SweptCI      CI      `json:"SweptCI"`
	SweepRate    float64 `json:"SweepRate"`
	SweepRateCI  CI      `json:"SweepRateCI"`
}

// SessionReport 每局統計
type SessionReport struct {
	Actions         []int   `json:"-" yaml:"-"` // 每局動作數
	Remaining       []int   `json:"-" yaml:"-"` // 每局結束時剩餘圖塊
	ActionsMean     float64 `json:"ActionsMean"`
	ActionsStd      float64 `json:"ActionsStd"`
	ActionsMedian   float64 `json:"ActionsMedian"`
	RemainingMean   float64 `json:"RemainingMean"`
	RemainingStd    float64 `json:"RemainingStd"`
	RemainingMedian float64 `json:"RemainingMedian"`
	RemainingCI     CI      `json:"RemainingCI"`
}

// DistReport 點擊消除的連通塊大小分布
type DistReport struct {
	SizeBucket    []string  `json:"SizeBucket"`
	PickedCollect []int     `json:"PickedCollect"`
	PickedDist    []float64 `json:"PickedDist"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 將累積計數轉換為最終統計結果並鎖定 isDone 標記。
//
// 紀錄過程因為性能原因只處理 int，紀錄完成後呼叫 Done 一次性計算統計結果
func (r *Report) Done() {
	if r.isDone {
		return
	}
	s := r.Summary
	a := r.Action

	s.ClearRate, s.ClearRateCI = proportionCICP(s.Cleared, s.Sessions, confidence)

	a.PickedMean, a.PickedStd = meanStdFromSums(a.PickedSum, a.PickedSqSum, s.Actions)
	a.PickedCI = meanCI(a.PickedMean, a.PickedStd, s.Actions, confidence)
	a.SweptMean, a.SweptStd = meanStdFromSums(a.SweptSum, a.SweptSqSum, s.Actions)
	a.SweptCI = meanCI(a.SweptMean, a.SweptStd, s.Actions, confidence)
	a.SweepRate, a.SweepRateCI = proportionCICP(a.SweepActions, s.Actions, confidence)

	ss := r.Session
	ss.ActionsMean, ss.ActionsStd, ss.ActionsMedian = describe(ss.Actions)
	ss.RemainingMean, ss.RemainingStd, ss.RemainingMedian = describe(ss.Remaining)
	ss.RemainingCI = meanCI(ss.RemainingMean, ss.RemainingStd, len(ss.Remaining), confidence)

	d := r.Dist
	d.PickedDist = make([]float64, len(d.PickedCollect))
	if s.Actions > 0 {
		af := float64(s.Actions)
		for i, c := range d.PickedCollect {
			d.PickedDist[i] = float64(c) / af
		}
	}

	r.isDone = true
}

// WriteWith 以指定 render 輸出報表
func (r *Report) WriteWith(w io.Writer, rep ReportRender) error {
	r.Done()
	return rep.Write(w, r)
}

// StdOut 將用時與摘要表格輸出到 stdout
func (r *Report) StdOut(ut time.Duration) {
	r.Fprint(os.Stdout, ut)
}

// Fprint 將用時與摘要表格寫入 w
func (r *Report) Fprint(w io.Writer, ut time.Duration) {
	r.Done()
	fmt.Fprint(w, formatDuration(ut, r.Summary.Actions))
	sk, sm := r.fmtBasic()
	fmt.Fprintln(w, fmtTable(r.Summary.BoardName, sk, sm))
	dk, dm := r.fmtDist()
	fmt.Fprintln(w, fmtTable("Picked Group Size", dk, dm))
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, actions int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	aps := int(float64(actions) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\naps : %d actions/sec\n", sec, aps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\naps : %d actions/sec\n", m, s, aps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\naps : %d actions/sec\n", h, m, s, aps)
}

func (r *Report) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	s, a, ss := r.Summary, r.Action, r.Session
	basic := map[string]string{
		"Board":            p.Sprintf("%s (%dx%d, %d types)", s.BoardName, s.Width, s.Height, s.Palette),
		"Cascade":          p.Sprintf("%s, min %d", s.Cascade, s.SweepMinSize),
		"Sessions":         p.Sprintf("%d", s.Sessions),
		"Cleared":          p.Sprintf("%d", s.Cleared),
		"Clear Rate 95%":   fmtHatCIpct01(s.ClearRate, s.ClearRateCI),
		"Actions":          p.Sprintf("%d", s.Actions),
		"Tiles Generated":  p.Sprintf("%d", s.TilesGenerated),
		"Tiles Removed":    p.Sprintf("%d", s.TilesRemoved),
		"Picked Mean 95%":  fmtHatCI(a.PickedMean, a.PickedCI),
		"Picked STD":       p.Sprintf("%.3f", a.PickedStd),
		"Swept Mean 95%":   fmtHatCI(a.SweptMean, a.SweptCI),
		"Sweep Rate 95%":   fmtHatCIpct01(a.SweepRate, a.SweepRateCI),
		"Max Passes":       p.Sprintf("%d", a.MaxPasses),
		"Actions/Session":  p.Sprintf("%.2f (median %.0f)", ss.ActionsMean, ss.ActionsMedian),
		"Remaining 95%":    fmtHatCI(ss.RemainingMean, ss.RemainingCI),
		"Remaining Median": p.Sprintf("%.0f", ss.RemainingMedian),
	}
	keys := []string{"Board", "Cascade", "Sessions", "Cleared", "Clear Rate 95%", "Actions", "Tiles Generated", "Tiles Removed",
		"Picked Mean 95%", "Picked STD", "Swept Mean 95%", "Sweep Rate 95%", "Max Passes", "Actions/Session", "Remaining 95%", "Remaining Median"}
	return keys, basic
}

func (r *Report) fmtDist() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	d := r.Dist
	msg := make(map[string]string, len(d.SizeBucket))
	for i, k := range d.SizeBucket {
		msg[k] = p.Sprintf("%d (%.2f%%)", d.PickedCollect[i], 100.0*d.PickedDist[i])
	}
	return d.SizeBucket, msg
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := runewidth.StringWidth(title)
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}

func fmtHatCI(hat float64, ci CI) string {
	return fmt.Sprintf("%.3f [%.3f, %.3f]", hat, ci.Lo, ci.Hi)
}

func fmtHatCIpct01(hat float64, ci CI) string {
	return fmt.Sprintf("%.2f%% [%.2f%%, %.2f%%]", hat*100, ci.Lo*100, ci.Hi*100)
}
