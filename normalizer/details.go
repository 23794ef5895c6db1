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
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	ElementCount                = "element_count"
	UnexpectedCount             = "unexpected_count"
	UnexpectedPercent           = "unexpected_percent"
	UnexpectedPercentTotal      = "unexpected_percent_total"
	UnexpectedPercentNonmissing = "unexpected_percent_nonmissing"
	MissingCount                = "missing_count"
	MissingPercent              = "missing_percent"

	PartialUnexpectedList      = "partial_unexpected_list"
	PartialUnexpectedCounts    = "partial_unexpected_counts"
	PartialUnexpectedIndexList = "partial_unexpected_index_list"
)

// KnownFields are numeric metrics copied untouched, in this order.
var KnownFields = []string{
	ElementCount,
	UnexpectedCount,
	UnexpectedPercent,
	UnexpectedPercentTotal,
	UnexpectedPercentNonmissing,
	MissingCount,
	MissingPercent,
}

// SerializedFields are always rendered as JSON text.
var SerializedFields = []string{
	PartialUnexpectedList,
	PartialUnexpectedCounts,
	PartialUnexpectedIndexList,
}

// Detail is the flat, display ready form of a result payload.
type Detail = orderedmap.OrderedMap[string, interface{}]

func NewDetail() *Detail {
	return orderedmap.New[string, interface{}]()
}

var capturedFields = func() map[string]bool {
	m := make(map[string]bool)
	for _, f := range KnownFields {
		m[f] = true
	}
	for _, f := range SerializedFields {
		m[f] = true
	}
	return m
}()

// ExtractResultDetails flattens a parsed payload: known fields first, then serialized
// fields, then every other non-null key in the order it was encountered.
func ExtractResultDetails(parsed *Payload) *Detail {
	detail := NewDetail()
	if parsed == nil {
		return detail
	}
	for _, field := range KnownFields {
		if raw, ok := parsed.Get(field); ok {
			detail.Set(field, decodeValue(raw))
		}
	}
	for _, field := range SerializedFields {
		if raw, ok := parsed.Get(field); ok {
			detail.Set(field, stringify(raw))
		}
	}
	for pair := parsed.Oldest(); pair != nil; pair = pair.Next() {
		if capturedFields[pair.Key] || isNull(pair.Value) {
			continue
		}
		if isStructured(pair.Value) {
			detail.Set(pair.Key, stringify(pair.Value))
		} else {
			detail.Set(pair.Key, decodeValue(pair.Value))
		}
	}
	return detail
}
