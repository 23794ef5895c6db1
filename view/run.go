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

type RunStatus string

const (
	RunStatusPassed RunStatus = "passed"
	RunStatusFailed RunStatus = "failed"
	RunStatusError  RunStatus = "error" // validation API call failed, no results
)

func (s RunStatus) Valid() bool {
	switch s {
	case RunStatusPassed, RunStatusFailed, RunStatusError:
		return true
	}
	return false
}

type ValidationRequest struct {
	Region      string `json:"region"`
	ProductType string `json:"productType"`
	Exchange    string `json:"exchange"`
	Persist     bool   `json:"persist"`
}

type ValidationRun struct {
	Id          string     `json:"id"`
	Region      string     `json:"region"`
	ProductType string     `json:"productType"`
	Exchange    string     `json:"exchange"`
	Status      RunStatus  `json:"status"`
	Details     string     `json:"details,omitempty"`
	PayloadHash string     `json:"payloadHash,omitempty"`
	ResultCount int        `json:"resultCount"`
	PassedCount int        `json:"passedCount"`
	FailedCount int        `json:"failedCount"`
	TriggeredBy string     `json:"triggeredBy,omitempty"`
	StartedAt   time.Time  `json:"startedAt"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
	Persisted   bool       `json:"persisted"`
}

type ValidationRuns struct {
	Runs []ValidationRun `json:"runs"`
}

type ValidationRunResult struct {
	Run           ValidationRun         `json:"run"`
	Table         TableData             `json:"table"`
	CombinedRules []CombinedRuleOutcome `json:"combinedRules"`
}

type RunFilter struct {
	Region      string
	ProductType string
	Exchange    string
	Status      RunStatus
	Limit       int
	Page        int
}
