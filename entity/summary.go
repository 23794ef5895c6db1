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

package entity

import (
	"time"

	"github.com/Netcracker/qubership-validation-dashboard/view"
)

// Aggregate rows of the dashboard queries, not tables.

type PassRateRow struct {
	Region      string `pg:"region"`
	ProductType string `pg:"product_type"`
	Exchange    string `pg:"exchange"`
	Runs        int    `pg:"runs"`
	Total       int    `pg:"total"`
	Passed      int    `pg:"passed"`
}

type RuleFailureRow struct {
	ExpectationType string `pg:"expectation_type"`
	Total           int    `pg:"total"`
	Failed          int    `pg:"failed"`
}

type TrendRow struct {
	Region string    `pg:"region"`
	Day    time.Time `pg:"day"`
	Total  int       `pg:"total"`
	Passed int       `pg:"passed"`
}

func MakePassRateView(row PassRateRow) view.PassRate {
	return view.PassRate{
		Region:      row.Region,
		ProductType: row.ProductType,
		Exchange:    row.Exchange,
		Runs:        row.Runs,
		Total:       row.Total,
		Passed:      row.Passed,
		PassRate:    view.Rate(row.Passed, row.Total),
	}
}

func MakeTrendPointView(row TrendRow) view.TrendPoint {
	return view.TrendPoint{
		Region:   row.Region,
		Day:      row.Day.Format("2006-01-02"),
		Total:    row.Total,
		Passed:   row.Passed,
		PassRate: view.Rate(row.Passed, row.Total),
	}
}
