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
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// ReportRender 定義輸出行為
type ReportRender interface {
	Write(w io.Writer, r *Report) error
}

// Json渲染
type JsonReportRender struct{}

func (jr *JsonReportRender) Write(w io.Writer, r *Report) error {
	return json.NewEncoder(w).Encode(r)
}

// YAML渲染
type YAMLReportRender struct{}

func (yr *YAMLReportRender) Write(w io.Writer, r *Report) error {
	// 只有「最內層的一維陣列」或「本身就是一維陣列」時才輸出成 flow style：[..., ...]
	return forceReadableList(w, r)
}

// RenderFor 依格式名稱取得 render，未知格式回傳 nil, false
func RenderFor(format string) (ReportRender, bool) {
	switch format {
	case "json":
		return &JsonReportRender{}, true
	case "yaml", "yml":
		return &YAMLReportRender{}, true
	default:
		return nil, false
	}
}

// YAML 內層方法
func forceReadableList[T any](w io.Writer, t *T) error {
	var node yaml.Node
	if err := node.Encode(t); err != nil {
		return err
	}

	// 若該 sequence 內部「沒有子 sequence」=> flow style；外層維度保持 block
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
		return

	case yaml.SequenceNode:
		hasChildSeq := false
		for _, c := range n.Content {
			if c != nil && c.Kind == yaml.SequenceNode {
				hasChildSeq = true
				break
			}
		}
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
		if !hasChildSeq {
			n.Style = yaml.FlowStyle
		}
		return

	default:
		return
	}
}
