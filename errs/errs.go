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

package errs

import (
	"errors"
	"fmt"
)

type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(errlv ErrLevel) string {
	if str, ok := errLvMap[errlv]; ok {
		return str
	}
	return ""
}

// Code 區分錯誤種類，讓呼叫端可以用 errors.Is 判斷而不必比對訊息字串。
type Code uint8

const (
	CodeNone Code = iota
	CodeTileNotFound
	CodeOutOfBounds
	CodeEmptySlot
	CodeEmptyCandidateSet
	CodeInvalidSetting
)

var codeMap = map[Code]string{
	CodeNone:              "",
	CodeTileNotFound:      "tile_not_found",
	CodeOutOfBounds:       "out_of_bounds",
	CodeEmptySlot:         "empty_slot",
	CodeEmptyCandidateSet: "empty_candidate_set",
	CodeInvalidSetting:    "invalid_setting",
}

func (c Code) String() string {
	return codeMap[c]
}

// 盤面引擎對外的錯誤種類。
//
//   - ErrTileNotFound: 以座標或 ID 找不到對應圖塊（例如移除後仍持有舊的圖塊）
//   - ErrOutOfBounds: 欄索引超出盤面或 slot 索引為負
//   - ErrEmptySlot: 欄存在但該 slot 目前沒有圖塊，同時也會被 errors.Is 視為 ErrOutOfBounds
//   - ErrEmptyCandidateSet: 生成盤面時候選類型為空（palette 太小），屬於設定錯誤
//   - ErrInvalidSetting: 設定檔檢查失敗
var (
	ErrTileNotFound      = &E{Message: "tile not found", ErrLv: Warn, Code: CodeTileNotFound}
	ErrOutOfBounds       = &E{Message: "coordinate out of bounds", ErrLv: Warn, Code: CodeOutOfBounds}
	ErrEmptySlot         = &E{Message: "empty slot", ErrLv: Warn, Code: CodeEmptySlot, Cause: ErrOutOfBounds}
	ErrEmptyCandidateSet = &E{Message: "empty candidate set", ErrLv: Fatal, Code: CodeEmptyCandidateSet}
	ErrInvalidSetting    = &E{Message: "invalid setting", ErrLv: Fatal, Code: CodeInvalidSetting}
)

type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
	Code    Code
}

func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", ErrLv(e.ErrLv), e.Message)
	if e.Code != CodeNone {
		base = fmt.Sprintf("errlv=%s code=%s %s", ErrLv(e.ErrLv), e.Code, e.Message)
	}
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

func (e *E) Unwrap() error { return e.Cause }

// Is 以 Code 比對，只有帶 Code 的 target 會命中。
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	if !ok || t.Code == CodeNone {
		return false
	}
	return e.Code == t.Code
}

func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E {
	return &E{Message: msg, ErrLv: Fatal}
}

func NewWarn(msg string) *E {
	return &E{Message: msg, ErrLv: Warn}
}

func NewLog(msg string) *E {
	return &E{Message: msg, ErrLv: Log}
}

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

func Logf(format string, a ...any) *E {
	return NewLog(fmt.Sprintf(format, a...))
}

// Codedf 以 base 的等級與 Code 建立一個帶有細節訊息的新錯誤。
//
// base 的 Cause 會被保留，所以 Codedf(ErrEmptySlot, ...) 依然能被 errors.Is(err, ErrOutOfBounds) 命中。
func Codedf(base *E, format string, a ...any) *E {
	return &E{
		Message: base.Message + ": " + fmt.Sprintf(format, a...),
		ErrLv:   base.ErrLv,
		Code:    base.Code,
		Cause:   base.Cause,
	}
}

func NewWithExtra(errLv ErrLevel, msg string, extra string) *E {
	e := New(errLv, msg)
	e.Extra = extra
	return e
}

func Wrap(cause error, msg string) *E {
	var e *E
	errLv := Fatal
	if errors.As(cause, &e) {
		errLv = e.ErrLv
	}
	r := New(errLv, msg)
	r.Cause = cause
	return r
}

func WrapWithExtra(cause error, msg string, extra string) *E {
	var e *E
	errLv := Fatal
	if errors.As(cause, &e) {
		errLv = e.ErrLv
	}
	r := NewWithExtra(errLv, msg, extra)
	r.Cause = cause
	return r
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}
