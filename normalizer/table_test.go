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
	"encoding/json"
	"testing"

	"github.com/Netcracker/qubership-validation-dashboard/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

// textPayload encodes s as a JSON string, the way the API ships python repr payloads.
func textPayload(t *testing.T, s string) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	return data
}

func detailKeys(d *Detail) []string {
	var keys []string
	for pair := d.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func TestParseResultPayload(t *testing.T) {
	t.Run("absent and null", func(t *testing.T) {
		assert.Equal(t, 0, ParseResultPayload(nil).Len())
		assert.Equal(t, 0, ParseResultPayload(json.RawMessage("null")).Len())
	})

	t.Run("json string", func(t *testing.T) {
		payload := ParseResultPayload(textPayload(t, `{"element_count": 5}`))
		raw, ok := payload.Get("element_count")
		require.True(t, ok)
		assert.Equal(t, "5", string(raw))
	})

	t.Run("python literal string", func(t *testing.T) {
		payload := ParseResultPayload(textPayload(t, "{'element_count': 100, 'missing_count': None}"))
		raw, ok := payload.Get("element_count")
		require.True(t, ok)
		assert.Equal(t, "100", string(raw))
		raw, ok = payload.Get("missing_count")
		require.True(t, ok)
		assert.True(t, isNull(raw))
	})

	t.Run("structured object is used as is", func(t *testing.T) {
		payload := ParseResultPayload(json.RawMessage(`{"observed_value": {"b": 2, "a": 1}}`))
		raw, ok := payload.Get("observed_value")
		require.True(t, ok)
		assert.Equal(t, `{"b":2,"a":1}`, string(compact(raw)))
	})

	t.Run("valid json matches plain unmarshal", func(t *testing.T) {
		text := `{"element_count": 10, "partial_unexpected_list": ["a", 1], "details": {"x": null}, "ok": true}`
		payload := ParseResultPayload(json.RawMessage(text))

		data, err := payload.MarshalJSON()
		require.NoError(t, err)

		var fromPayload, direct map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &fromPayload))
		require.NoError(t, json.Unmarshal([]byte(text), &direct))
		assert.Equal(t, direct, fromPayload)
	})

	t.Run("unparseable string degrades to empty", func(t *testing.T) {
		assert.Equal(t, 0, ParseResultPayload(textPayload(t, "{'a': }")).Len())
	})

	t.Run("non object json degrades to empty", func(t *testing.T) {
		assert.Equal(t, 0, ParseResultPayload(json.RawMessage(`[1, 2]`)).Len())
		assert.Equal(t, 0, ParseResultPayload(textPayload(t, "42")).Len())
	})
}

func TestExtractResultDetails(t *testing.T) {
	t.Run("field ordering and rendering", func(t *testing.T) {
		payload := ParseResultPayload(json.RawMessage(`{
			"custom": "x",
			"partial_unexpected_counts": [{"value": "A", "count": 2}],
			"unexpected_count": 3,
			"element_count": 10,
			"nested": {"k": 1},
			"skip": null,
			"missing_count": null
		}`))

		detail := ExtractResultDetails(payload)

		assert.Equal(t, []string{
			ElementCount,
			UnexpectedCount,
			MissingCount,
			PartialUnexpectedCounts,
			"custom",
			"nested",
		}, detailKeys(detail))

		value, _ := detail.Get(ElementCount)
		assert.Equal(t, json.Number("10"), value)
		value, _ = detail.Get(UnexpectedCount)
		assert.Equal(t, json.Number("3"), value)
		value, ok := detail.Get(MissingCount)
		assert.True(t, ok)
		assert.Nil(t, value)
		value, _ = detail.Get(PartialUnexpectedCounts)
		assert.Equal(t, `[{"value":"A","count":2}]`, value)
		value, _ = detail.Get("custom")
		assert.Equal(t, "x", value)
		value, _ = detail.Get("nested")
		assert.Equal(t, `{"k":1}`, value)
	})

	t.Run("serialized fields are stringified even when primitive", func(t *testing.T) {
		detail := ExtractResultDetails(ParseResultPayload(json.RawMessage(`{"partial_unexpected_list": "abc", "partial_unexpected_index_list": null}`)))
		value, _ := detail.Get(PartialUnexpectedList)
		assert.Equal(t, `"abc"`, value)
		value, _ = detail.Get(PartialUnexpectedIndexList)
		assert.Equal(t, "null", value)
	})

	t.Run("other arrays are stringified", func(t *testing.T) {
		detail := ExtractResultDetails(ParseResultPayload(json.RawMessage(`{"unexpected_list": [1, 2]}`)))
		value, _ := detail.Get("unexpected_list")
		assert.Equal(t, "[1,2]", value)
	})

	t.Run("nil payload", func(t *testing.T) {
		assert.Equal(t, 0, ExtractResultDetails(nil).Len())
	})
}

func TestBuildTable(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		table := BuildTable(nil)
		assert.Empty(t, table.Data)
		assert.Empty(t, table.Headers)

		data, err := json.Marshal(table)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":[],"headers":[]}`, string(data))
	})

	t.Run("unique column scenario", func(t *testing.T) {
		table := BuildTable([]view.RawResult{{
			Success:         true,
			Column:          strPtr("RIC"),
			ExpectationType: strPtr("ExpectColumnValuesToBeUnique"),
			Result:          textPayload(t, "{'element_count': 100}"),
		}})

		require.Len(t, table.Data, 1)
		assert.Equal(t, []string{"status", "column", "expectationType", "element_count"}, table.Headers)

		row := table.Data[0]
		assert.True(t, row.Success)
		assert.Equal(t, []string{"status", "column", "expectationType", "element_count"}, row.Keys())

		data, err := json.Marshal(row)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"status": "✓",
			"column": "RIC",
			"expectationType": "Column Values To Be Unique",
			"element_count": 100,
			"_success": true
		}`, string(data))
	})

	t.Run("malformed payload keeps the row", func(t *testing.T) {
		table := BuildTable([]view.RawResult{
			{Success: false, Column: strPtr("Price"), ExpectationType: strPtr("ExpectColumnValuesToNotBeNull"), Result: textPayload(t, "{'a': }")},
			{Success: true, Column: strPtr("RIC"), Result: textPayload(t, "{'element_count': 3}")},
		})

		require.Len(t, table.Data, 2)
		assert.Equal(t, []string{"status", "column", "expectationType"}, table.Data[0].Keys())
		status, _ := table.Data[0].Get("status")
		assert.Equal(t, StatusFailed, status)
		assert.False(t, table.Data[0].Success)

		data, err := json.Marshal(table.Data[0])
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"status": "✗",
			"column": "Price",
			"expectationType": "Column Values To Not Be Null",
			"_success": false
		}`, string(data))
	})

	t.Run("row count matches input and order is preserved", func(t *testing.T) {
		results := []view.RawResult{
			{Success: true, Column: strPtr("A")},
			{Success: false, Column: strPtr("B")},
			{Success: true, Column: strPtr("C")},
		}
		table := BuildTable(results)
		require.Len(t, table.Data, len(results))
		for i, row := range table.Data {
			column, _ := row.Get("column")
			assert.Equal(t, *results[i].Column, column)
		}
	})

	t.Run("hidden headers are dropped", func(t *testing.T) {
		payload := json.RawMessage(`{"element_count": 10, "missing_count": 0, "missing_percent": 0.0}`)
		table := BuildTable([]view.RawResult{
			{Success: true, Result: payload},
			{Success: true, Result: payload},
		})
		assert.NotContains(t, table.Headers, MissingCount)
		assert.NotContains(t, table.Headers, MissingPercent)

		value, ok := table.Data[0].Get(MissingCount)
		assert.True(t, ok)
		assert.Equal(t, json.Number("0"), value)
	})

	t.Run("header order follows preferred list then first seen", func(t *testing.T) {
		table := BuildTable([]view.RawResult{
			{Success: true, Result: json.RawMessage(`{"custom_b": 1, "unexpected_count": 2}`)},
			{Success: true, Result: json.RawMessage(`{"custom_a": 3, "element_count": 5}`)},
		})
		assert.Equal(t, []string{
			"status", "column", "expectationType", "element_count", "unexpected_count", "custom_b", "custom_a",
		}, table.Headers)
	})

	t.Run("serialized field is a string", func(t *testing.T) {
		table := BuildTable([]view.RawResult{{
			Success: false,
			Result:  textPayload(t, "{'partial_unexpected_counts': [{'value': 'XX', 'count': np.int64(2)}]}"),
		}})
		value, ok := table.Data[0].Get(PartialUnexpectedCounts)
		require.True(t, ok)
		assert.IsType(t, "", value)
		assert.Equal(t, `[{"value":"XX","count":2}]`, value)
	})

	t.Run("numpy float is numeric", func(t *testing.T) {
		table := BuildTable([]view.RawResult{{
			Success: true,
			Result:  textPayload(t, "{'unexpected_percent': np.float64(12.5)}"),
		}})
		value, _ := table.Data[0].Get(UnexpectedPercent)
		assert.Equal(t, json.Number("12.5"), value)
	})

	t.Run("element count is back-filled from the top level", func(t *testing.T) {
		table := BuildTable([]view.RawResult{
			{Success: true, ElementCount: floatPtr(42)},
			{Success: true, ElementCount: floatPtr(42), Result: json.RawMessage(`{"element_count": 100}`)},
		})
		value, _ := table.Data[0].Get(ElementCount)
		assert.Equal(t, float64(42), value)
		value, _ = table.Data[1].Get(ElementCount)
		assert.Equal(t, json.Number("100"), value)
		assert.Contains(t, table.Headers, ElementCount)
	})

	t.Run("missing column and expectation type", func(t *testing.T) {
		table := BuildTable([]view.RawResult{{Success: true}})
		column, _ := table.Data[0].Get(HeaderColumn)
		expectation, _ := table.Data[0].Get(HeaderExpectationType)
		assert.Equal(t, NotAvailable, column)
		assert.Equal(t, NotAvailable, expectation)
	})
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"ExpectColumnValuesToBeUnique":      "Column Values To Be Unique",
		"ExpectColumnValuesToNotBeNull":     "Column Values To Not Be Null",
		"ColumnPairValuesAToBeGreaterThanB": "Column Pair Values A To Be Greater Than B",
		"ExpectColumn_Values":               "Column_ Values",
		"expect_column_values_to_be_unique": "expect_column_values_to_be_unique",
		"":                                  "",
	}
	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, Humanize(input))
		})
	}
}

func TestExpectationKey(t *testing.T) {
	tests := map[string]string{
		"ExpectColumnValuesToBeUnique":                     "column values to be unique",
		"expect_column_values_to_be_unique":                "column values to be unique",
		"ColumnValuesToBeUnique":                           "column values to be unique",
		"ExpectColumn_Values":                              "column values",
		"expect_column_pair_values_a_to_be_greater_than_b": "column pair values a to be greater than b",
		"ExpectColumnPairValuesAToBeGreaterThanB":          "column pair values a to be greater than b",
		"":                                                 "",
	}
	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, ExpectationKey(input))
		})
	}
}
