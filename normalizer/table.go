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
	"regexp"
	"strings"

	"github.com/Netcracker/qubership-validation-dashboard/view"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	HeaderStatus          = "status"
	HeaderColumn          = "column"
	HeaderExpectationType = "expectationType"

	StatusPassed = "✓"
	StatusFailed = "✗"
	NotAvailable = "N/A"
	expectPrefix = "Expect"
)

// PreferredHeaders is the display order of well known columns.
var PreferredHeaders = []string{
	HeaderStatus,
	HeaderColumn,
	HeaderExpectationType,
	ElementCount,
	UnexpectedCount,
	UnexpectedPercent,
	UnexpectedPercentTotal,
	UnexpectedPercentNonmissing,
	MissingCount,
	MissingPercent,
	PartialUnexpectedList,
	PartialUnexpectedCounts,
	PartialUnexpectedIndexList,
}

// HiddenHeaders never reach the rendered table even when rows carry them.
var HiddenHeaders = map[string]bool{
	MissingCount:   true,
	MissingPercent: true,
}

// BuildTable converts raw results into display rows plus an ordered header list.
// Rows keep the input order; a malformed payload only empties the details of its own row.
func BuildTable(results []view.RawResult) view.TableData {
	table := view.TableData{Data: []view.TableRow{}, Headers: []string{}}
	if len(results) == 0 {
		return table
	}

	seen := orderedmap.New[string, struct{}]()
	for _, result := range results {
		row := buildRow(result)
		for pair := row.Cells.Oldest(); pair != nil; pair = pair.Next() {
			seen.Set(pair.Key, struct{}{})
		}
		table.Data = append(table.Data, row)
	}

	placed := make(map[string]bool)
	for _, header := range PreferredHeaders {
		if _, ok := seen.Get(header); ok && !HiddenHeaders[header] {
			table.Headers = append(table.Headers, header)
			placed[header] = true
		}
	}
	for pair := seen.Oldest(); pair != nil; pair = pair.Next() {
		if !placed[pair.Key] && !HiddenHeaders[pair.Key] {
			table.Headers = append(table.Headers, pair.Key)
		}
	}
	return table
}

func buildRow(result view.RawResult) view.TableRow {
	cells := orderedmap.New[string, interface{}]()

	status := StatusFailed
	if result.Success {
		status = StatusPassed
	}
	cells.Set(HeaderStatus, status)

	column := NotAvailable
	if result.Column != nil {
		column = *result.Column
	}
	cells.Set(HeaderColumn, column)

	expectationType := NotAvailable
	if result.ExpectationType != nil {
		expectationType = Humanize(*result.ExpectationType)
	}
	cells.Set(HeaderExpectationType, expectationType)

	details := ExtractResultDetails(ParseResultPayload(result.Result))
	for pair := details.Oldest(); pair != nil; pair = pair.Next() {
		cells.Set(pair.Key, pair.Value)
	}

	if result.ElementCount != nil {
		if _, ok := details.Get(ElementCount); !ok {
			cells.Set(ElementCount, *result.ElementCount)
		}
	}

	return view.TableRow{Cells: cells, Success: result.Success}
}

var internalCapital = regexp.MustCompile(`([A-Z])`)

// Humanize turns an expectation type into a readable label: the leading "Expect" is
// dropped and a space goes before every capital, so "ExpectColumnValuesToBeUnique"
// becomes "Column Values To Be Unique".
func Humanize(expectationType string) string {
	name := strings.TrimPrefix(expectationType, expectPrefix)
	return strings.TrimSpace(internalCapital.ReplaceAllString(name, " $1"))
}

// ExpectationKey reduces an expectation type written in CamelCase or snake_case to its
// lower case words without the "expect" prefix, so both spellings compare equal.
func ExpectationKey(expectationType string) string {
	spaced := strings.ToLower(internalCapital.ReplaceAllString(expectationType, " $1"))
	words := strings.FieldsFunc(spaced, func(r rune) bool {
		return r == ' ' || r == '_'
	})
	if len(words) > 0 && words[0] == strings.ToLower(expectPrefix) {
		words = words[1:]
	}
	return strings.Join(words, " ")
}
