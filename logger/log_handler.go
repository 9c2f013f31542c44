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

// Package logger 組裝盤面引擎與模擬器使用的 *slog.Logger。
//
// 引擎本身只依賴 *slog.Logger；要同步還是非同步、文字還是 JSON，都由呼叫端在這裡組裝後注入。
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// enum LogMode
type LogMode uint8

const (
	ModeDev LogMode = iota
	ModeProd
	ModeSilence
)

var logModeMap = map[string]LogMode{
	"dev":     ModeDev,
	"prod":    ModeProd,
	"silence": ModeSilence,
}

// ParseLogMode 解析 CLI / 設定中的模式字串。
func ParseLogMode(s string) (LogMode, bool) {
	m, ok := logModeMap[s]
	return m, ok
}

// NewDefaultLogger returns a *slog.Logger built from LogMode defaults.
func NewDefaultLogger(mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode))
}

// NewLogger wraps a Handler into a *slog.Logger，h 為 nil 時使用 ModeDev。
func NewLogger(h slog.Handler) *slog.Logger {
	if h == nil {
		h = buildHandler(ModeDev)
	}
	return slog.New(h)
}

// Nop 回傳丟棄所有紀錄的 logger。
func Nop() *slog.Logger {
	return slog.New(buildHandler(ModeSilence))
}

// OrNop 在 log 為 nil 時回傳 Nop()，讓元件可以無條件呼叫 log。
func OrNop(log *slog.Logger) *slog.Logger {
	if log == nil {
		return Nop()
	}
	return log
}

// AsyncHandler 把任何 slog.Handler 變成非阻塞：
// - Handle 只做 enqueue，由背景 goroutine 逐筆寫出
// - channel 滿時丟棄並計數，不把 I/O 延遲帶回模擬熱路徑
// - Close 後不再接受新紀錄，並把已排隊的紀錄寫完
type AsyncHandler struct {
	next slog.Handler
	d    *asyncDispatcher
}

type asyncDispatcher struct {
	ch     chan asyncItem
	closed chan struct{}
	once   sync.Once
	wg     sync.WaitGroup

	dropCount atomic.Uint64
}

type asyncItem struct {
	ctx     context.Context
	rec     slog.Record
	handler slog.Handler
}

// NewAsyncHandler wraps next with an async dispatcher. buf <= 0 時使用 1024。
func NewAsyncHandler(next slog.Handler, buf int) *AsyncHandler {
	if next == nil {
		next = buildHandler(ModeDev)
	}
	if buf <= 0 {
		buf = 1024
	}
	d := &asyncDispatcher{
		ch:     make(chan asyncItem, buf),
		closed: make(chan struct{}),
	}
	d.wg.Add(1)
	go d.worker()
	return &AsyncHandler{next: next, d: d}
}

// NewAsync builds a *slog.Logger using LogMode defaults, then wraps its handler with AsyncHandler.
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	ah := NewAsyncHandler(buildHandler(mode), buf)
	return slog.New(ah), ah
}

func (h *AsyncHandler) Ready() bool {
	return h != nil && h.d != nil
}

// Dropped returns number of dropped log records.
func (h *AsyncHandler) Dropped() uint64 {
	if h == nil || h.d == nil {
		return 0
	}
	return h.d.dropCount.Load()
}

// Close stops the dispatcher and drains buffered logs.
func (h *AsyncHandler) Close() {
	if h == nil || h.d == nil {
		return
	}
	h.d.once.Do(func() { close(h.d.closed) })
	h.d.wg.Wait()
}

func (d *asyncDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case it := <-d.ch:
			_ = it.handler.Handle(it.ctx, it.rec)
		case <-d.closed:
			for {
				select {
				case it := <-d.ch:
					_ = it.handler.Handle(it.ctx, it.rec)
				default:
					return
				}
			}
		}
	}
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if h == nil || h.d == nil {
		return nil
	}
	select {
	case <-h.d.closed:
		h.d.dropCount.Add(1)
		return nil
	default:
	}

	// Record 內含可變引用，跨 goroutine 前必須 Clone
	it := asyncItem{ctx: ctx, rec: r.Clone(), handler: h.next}
	select {
	case h.d.ch <- it:
	default:
		h.d.dropCount.Add(1)
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), d: h.d}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), d: h.d}
}

func buildHandler(mode LogMode) slog.Handler {
	switch mode {
	case ModeDev:
		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	case ModeProd:
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	case ModeSilence:
		return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1})
	default:
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}
