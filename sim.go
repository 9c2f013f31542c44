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
	"crypto/rand"
	"io"
	"log/slog"
	"math"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/tilelab/errs"
	"github.com/zintix-labs/tilelab/logger"
	"github.com/zintix-labs/tilelab/recorder"
	"github.com/zintix-labs/tilelab/sdk/core"
	"github.com/zintix-labs/tilelab/spec"
	"github.com/zintix-labs/tilelab/stats"
)

// Simulator 以隨機點擊模擬多局遊戲並統計盤面行為。
//
// 每局使用 seedMaker 產生的獨立 seed 生成盤面，點擊位置由另一條同源亂數決定，
// 因此同一個初始 seed 與相同參數會得到相同的統計結果（與 worker 數無關）。
type Simulator struct {
	BoardName string
	bs        *spec.BoardSetting
	cf        core.PRNGFactory
	log       *slog.Logger
	initSeed  int64
	seedmaker *seedMaker
}

// NewSimulator bs.Seed > 0 時以其作為初始 seed，否則由 crypto/rand 產生。
func NewSimulator(bs *spec.BoardSetting, cf core.PRNGFactory, log *slog.Logger) (*Simulator, error) {
	if bs != nil && bs.Seed > 0 {
		return NewSimulatorWithSeed(bs, cf, log, bs.Seed)
	}
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return nil, errs.Wrap(err, "generate seed failed")
	}
	return NewSimulatorWithSeed(bs, cf, log, seed.Int64())
}

func NewSimulatorWithSeed(bs *spec.BoardSetting, cf core.PRNGFactory, log *slog.Logger, seed int64) (*Simulator, error) {
	if bs == nil {
		return nil, errs.NewFatal("board setting required")
	}
	if cf == nil {
		return nil, errs.NewFatal("core factory required")
	}
	if err := bs.Init(); err != nil {
		return nil, err
	}
	return &Simulator{
		BoardName: bs.BoardName,
		bs:        bs,
		cf:        cf,
		log:       logger.OrNop(log),
		initSeed:  seed,
		seedmaker: newSeedMaker(seed),
	}, nil
}

// Seed 初始 seed
func (s *Simulator) Seed() int64 { return s.initSeed }

// Sim 單線模擬：連續跑 sessions 局，每局最多 maxActions 次點擊，回傳統計結果與用時
func (s *Simulator) Sim(sessions int, maxActions int, showpb bool) (*stats.Report, time.Duration, error) {
	if err := validSimArgs(sessions, maxActions, 1); err != nil {
		return nil, 0, err
	}
	r, err := recorder.NewActionRecorder(s.bs)
	if err != nil {
		return nil, 0, err
	}
	seeds := s.sessionSeeds(sessions)

	bar := pb.StartNew(sessions)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for _, seed := range seeds {
		if err := s.play(seed, maxActions, r); err != nil {
			bar.Finish()
			return nil, 0, err
		}
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()

	return r.Done(), used, nil
}

// SimMP 以 workers 個 goroutine 平行跑 sessions 局，合併統計結果後回傳統計結果與用時
func (s *Simulator) SimMP(sessions int, maxActions int, workers int, showpb bool) (*stats.Report, time.Duration, error) {
	if err := validSimArgs(sessions, maxActions, workers); err != nil {
		return nil, 0, err
	}
	rBuf := make([]*recorder.ActionRecorder, workers)
	for i := range rBuf {
		r, err := recorder.NewActionRecorder(s.bs)
		if err != nil {
			return nil, 0, err
		}
		rBuf[i] = r
	}
	seeds := s.sessionSeeds(sessions)

	// 作一個緩衝 channel 使各局依序被 worker 取走
	jobs := make(chan int64, min(sessions, 2048))
	errCh := make(chan error, workers)

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	bar := pb.StartNew(sessions)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for w := 0; w < workers; w++ {
		go func(r *recorder.ActionRecorder) {
			defer wg.Done()
			for seed := range jobs {
				if err := s.play(seed, maxActions, r); err != nil {
					errCh <- err
					// 繼續取完 jobs，避免送端阻塞
					for range jobs {
					}
					return
				}
				bar.Increment()
			}
		}(rBuf[w])
	}
	for _, seed := range seeds {
		jobs <- seed
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	select {
	case err := <-errCh:
		return nil, 0, err
	default:
	}

	merged, err := recorder.MergeActionRecorder(rBuf)
	if err != nil {
		return nil, 0, err
	}
	return merged.Done(), used, nil
}

// play 跑一局：生成盤面後隨機點擊有圖塊的位置，直到清空或達到 maxActions。
func (s *Simulator) play(seed int64, maxActions int, r *recorder.ActionRecorder) error {
	b, err := NewWithSeed(s.bs, s.cf, s.log, seed)
	if err != nil {
		return err
	}
	picker := core.New(s.cf.New(int64(mix63(uint64(seed) + 1))))

	r.StartSession(b.TileCount())
	for range maxActions {
		sl, ok := core.PickFrom(picker, b.Grid().Slots())
		if !ok {
			break
		}
		out, err := b.RemoveTile(sl.X, sl.Y)
		if err != nil {
			return err
		}
		r.Record(out)
		if out.Cleared() {
			break
		}
	}
	r.EndSession()
	return nil
}

func (s *Simulator) sessionSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = s.seedmaker.next()
	}
	return seeds
}

func validSimArgs(sessions, maxActions, workers int) error {
	if sessions < 1 {
		return errs.NewWarn("sessions must > 0")
	}
	if maxActions < 1 {
		return errs.NewWarn("max actions must > 0")
	}
	if workers < 1 {
		return errs.NewWarn("workers must > 0")
	}
	return nil
}

const mask63 = uint64(1<<63) - 1

type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// next 以全週期 LCG 推進 state，再用可逆 mix63 打散。可併發呼叫。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()
		next := (old*6364136223846793005 + 1442695040888963407) & mask63 // full-period LCG mod 2^63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next)) // 一定非負
		}
	}
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
