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

import "encoding/json"

// RawResult is one expectation outcome as returned by the validation API.
// Result holds auxiliary metrics either as a JSON/python-repr string or as an object.
type RawResult struct {
	Success         bool            `json:"success"`
	ExpectationType *string         `json:"expectation_type,omitempty" jsonschema:"oneof_type=string;null"`
	Column          *string         `json:"column,omitempty" jsonschema:"oneof_type=string;null"`
	ElementCount    *float64        `json:"element_count,omitempty" jsonschema:"oneof_type=number;null"`
	Result          json.RawMessage `json:"result,omitempty" jsonschema:"oneof_type=string;object;null"`
}

// RawResultsEnvelope is the object form of a validation API response.
type RawResultsEnvelope struct {
	Results []RawResult `json:"results"`
}
