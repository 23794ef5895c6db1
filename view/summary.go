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

type SummaryFilter struct {
	Region      string
	ProductType string
	Exchange    string
	From        *time.Time
}

type PassRate struct {
	Region      string  `json:"region"`
	ProductType string  `json:"productType"`
	Exchange    string  `json:"exchange"`
	Runs        int     `json:"runs"`
	Total       int     `json:"total"`
	Passed      int     `json:"passed"`
	PassRate    float64 `json:"passRate"`
}

type PassRates struct {
	PassRates []PassRate `json:"passRates"`
}

type RuleFailure struct {
	ExpectationType string  `json:"expectationType"`
	DisplayName     string  `json:"displayName"`
	Total           int     `json:"total"`
	Failed          int     `json:"failed"`
	FailureRate     float64 `json:"failureRate"`
}

type RuleFailures struct {
	RuleFailures []RuleFailure `json:"ruleFailures"`
}

type TrendPoint struct {
	Region   string  `json:"region"`
	Day      string  `json:"day"` // yyyy-mm-dd
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	PassRate float64 `json:"passRate"`
}

type RegionalTrends struct {
	Trends []TrendPoint `json:"trends"`
}

// Rate is passed/total, 0 for an empty slice.
func Rate(passed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(passed) / float64(total)
}
