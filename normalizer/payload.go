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

package normalizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Payload is a parsed `result` object. Values keep their raw JSON text so that nested
// structures can be re-serialized in their original key order.
type Payload = orderedmap.OrderedMap[string, json.RawMessage]

func NewPayload() *Payload {
	return orderedmap.New[string, json.RawMessage]()
}

var errNotObject = errors.New("payload is not a JSON object")

// ParseResultPayload accepts the `result` field of a raw result: absent, null, a JSON
// string holding either JSON or the python repr dialect, or an already structured object.
// Malformed input never fails the caller, it degrades to an empty payload.
func ParseResultPayload(raw json.RawMessage) *Payload {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return NewPayload()
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			log.Warnf("Failed to read result payload string %s: %v", string(trimmed), err)
			return NewPayload()
		}
		return parseResultText(text)
	}
	payload, err := decodePayload(trimmed)
	if err != nil {
		log.Warnf("Failed to parse result payload %s: %v", string(trimmed), err)
		return NewPayload()
	}
	return payload
}

func parseResultText(text string) *Payload {
	payload, err := decodePayload([]byte(text))
	if err == nil {
		return payload
	}
	log.Debugf("Result payload is not strict JSON (%v), trying python literal", err)
	return PythonDictLiteralToJSON(text)
}

func decodePayload(data []byte) (*Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("invalid JSON")
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotObject
	}
	payload := NewPayload()
	if err := payload.UnmarshalJSON(trimmed); err != nil {
		return nil, err
	}
	return payload, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func isStructured(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// decodeValue turns a raw value into its display form: scalars become json.Number,
// string, bool or nil; structures stay raw (compacted) to keep their key order.
func decodeValue(raw json.RawMessage) interface{} {
	if isNull(raw) {
		return nil
	}
	if isStructured(raw) {
		return json.RawMessage(compact(raw))
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return string(raw)
	}
	return value
}

// stringify is the JSON text of a value, as rendered for opaque columns.
func stringify(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "null"
	}
	return string(compact(raw))
}

func compact(raw json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return bytes.TrimSpace(raw)
	}
	return buf.Bytes()
}
