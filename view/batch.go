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

import "time"

// BatchPlan lists the slices to validate. A region without exchanges is expanded
// with the exchanges the validation API reports for it.
type BatchPlan struct {
	Regions      []string            `json:"regions" yaml:"regions"`
	ProductTypes []string            `json:"productTypes" yaml:"productTypes"`
	Exchanges    map[string][]string `json:"exchanges,omitempty" yaml:"exchanges,omitempty"`
	Persist      bool                `json:"persist" yaml:"persist"`
}

type BatchItemStatus string

const (
	BatchItemPassed  BatchItemStatus = "passed"
	BatchItemFailed  BatchItemStatus = "failed"
	BatchItemError   BatchItemStatus = "error"
	BatchItemSkipped BatchItemStatus = "skipped"
)

type BatchItem struct {
	Region      string          `json:"region"`
	ProductType string          `json:"productType"`
	Exchange    string          `json:"exchange"`
	Status      BatchItemStatus `json:"status"`
	RunId       string          `json:"runId,omitempty"`
	ResultCount int             `json:"resultCount"`
	PassedCount int             `json:"passedCount"`
	FailedCount int             `json:"failedCount"`
	Error       string          `json:"error,omitempty"`
}

type BatchReport struct {
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
	Items      []BatchItem `json:"items"`
	Passed     int         `json:"passed"`
	Failed     int         `json:"failed"`
	Errors     int         `json:"errors"`
	Skipped    int         `json:"skipped"`
}

func (r BatchReport) HasErrors() bool {
	return r.Errors > 0
}
