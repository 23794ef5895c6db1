// Copyright 2024-2025 NetCracker Technology Corporation
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

package view

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type TableData struct {
	Data    []TableRow `json:"data"`
	Headers []string   `json:"headers"`
}

// TableRow keeps its cells in display order. Success is rendered as "_success" and is never a header.
type TableRow struct {
	Cells   *orderedmap.OrderedMap[string, interface{}]
	Success bool
}

const SuccessKey = "_success"

func (r TableRow) Get(key string) (interface{}, bool) {
	if r.Cells == nil {
		return nil, false
	}
	return r.Cells.Get(key)
}

func (r TableRow) Keys() []string {
	var keys []string
	if r.Cells == nil {
		return keys
	}
	for pair := r.Cells.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (r TableRow) MarshalJSON() ([]byte, error) {
	success, err := json.Marshal(r.Success)
	if err != nil {
		return nil, err
	}
	if r.Cells == nil || r.Cells.Len() == 0 {
		return []byte(`{"` + SuccessKey + `":` + string(success) + `}`), nil
	}
	cells, err := r.Cells.MarshalJSON()
	if err != nil {
		return nil, err
	}
	cells = bytes.TrimSpace(cells)
	var buf bytes.Buffer
	buf.Write(cells[:len(cells)-1])
	buf.WriteString(`,"` + SuccessKey + `":`)
	buf.Write(success)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *TableRow) UnmarshalJSON(data []byte) error {
	cells := orderedmap.New[string, interface{}]()
	if err := cells.UnmarshalJSON(data); err != nil {
		return err
	}
	if success, ok := cells.Get(SuccessKey); ok {
		r.Success, _ = success.(bool)
		cells.Delete(SuccessKey)
	}
	r.Cells = cells
	return nil
}
