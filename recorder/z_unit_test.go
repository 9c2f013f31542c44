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

package recorder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zintix-labs/tilelab/recorder"
	"github.com/zintix-labs/tilelab/sdk/buf"
	"github.com/zintix-labs/tilelab/sdk/tile"
	"github.com/zintix-labs/tilelab/spec"
)

func testSetting(t *testing.T) *spec.BoardSetting {
	t.Helper()
	bs := &spec.BoardSetting{
		BoardName:      "rec",
		Width:          3,
		Height:         3,
		StartingHeight: 3,
		Palette:        []string{"a", "b", "c"},
	}
	require.NoError(t, bs.Init())
	return bs
}

func outcome(picked, swept, passes, remaining int) *buf.Outcome {
	o := &buf.Outcome{Swept: swept, Passes: passes, Remaining: remaining}
	for range picked {
		o.Picked = append(o.Picked, tile.New(0))
	}
	return o
}

func TestActionRecorderSessions(t *testing.T) {
	r, err := recorder.NewActionRecorder(testSetting(t))
	require.NoError(t, err)

	r.StartSession(9)
	r.Record(outcome(1, 0, 0, 8))
	r.Record(outcome(2, 6, 1, 0))
	r.EndSession()

	r.StartSession(9)
	r.Record(outcome(3, 0, 0, 6))

	rep := r.Done()
	assert.Equal(t, 2, rep.Summary.Sessions)
	assert.Equal(t, 1, rep.Summary.Cleared)
	assert.Equal(t, 3, rep.Summary.Actions)
	assert.Equal(t, 18, rep.Summary.TilesGenerated)
	assert.Equal(t, 12, rep.Summary.TilesRemoved)
	assert.Equal(t, "single", rep.Summary.Cascade)
	assert.Equal(t, []int{2, 1}, rep.Session.Actions)
	assert.Equal(t, []int{0, 6}, rep.Session.Remaining)
	assert.Equal(t, 1, rep.Action.SweepActions)
	assert.Equal(t, 6, rep.Action.MaxSwept)
	assert.Equal(t, 1, rep.Action.MaxPasses)
	assert.Equal(t, []int{1, 1, 1, 0, 0, 0, 0, 0}, rep.Dist.PickedCollect)
	assert.InDelta(t, 2.0, rep.Action.PickedMean, 1e-9)
	assert.InDelta(t, 0.5, rep.Summary.ClearRate, 1e-9)
}

func TestActionRecorderStartClosesPrevious(t *testing.T) {
	r, err := recorder.NewActionRecorder(testSetting(t))
	require.NoError(t, err)

	r.StartSession(9)
	r.Record(outcome(9, 0, 0, 0))
	r.StartSession(9)
	r.EndSession()
	r.EndSession()

	rep := r.Done()
	assert.Equal(t, 2, rep.Summary.Sessions)
	assert.Equal(t, 1, rep.Summary.Cleared)
	assert.Equal(t, []int{1, 0}, rep.Session.Actions)
	assert.Equal(t, []int{0, 9}, rep.Session.Remaining)
}

func TestMergeActionRecorder(t *testing.T) {
	bs := testSetting(t)
	a, err := recorder.NewActionRecorder(bs)
	require.NoError(t, err)
	b, err := recorder.NewActionRecorder(bs)
	require.NoError(t, err)

	a.StartSession(9)
	a.Record(outcome(4, 3, 1, 2))
	a.EndSession()
	b.StartSession(9)
	b.Record(outcome(1, 0, 0, 8))
	b.Record(outcome(8, 0, 0, 0))
	b.EndSession()

	m, err := recorder.MergeActionRecorder([]*recorder.ActionRecorder{a, b})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Basic.Actions)
	assert.Equal(t, 13, m.Basic.PickedSum)
	assert.Equal(t, 8, m.Basic.MaxPicked)
	assert.Equal(t, 2, m.Session.Sessions)
	assert.Equal(t, 1, m.Session.Cleared)
	assert.Equal(t, []int{1, 2}, m.Session.Actions)

	other := testSetting(t)
	other.BoardName = "other"
	c, err := recorder.NewActionRecorder(other)
	require.NoError(t, err)
	_, err = recorder.MergeActionRecorder([]*recorder.ActionRecorder{a, c})
	assert.Error(t, err)

	_, err = recorder.MergeActionRecorder(nil)
	assert.Error(t, err)
}

func TestNewActionRecorderNilSetting(t *testing.T) {
	_, err := recorder.NewActionRecorder(nil)
	assert.Error(t, err)
}
