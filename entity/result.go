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
	"encoding/json"
	"fmt"

	"github.com/Netcracker/qubership-validation-dashboard/view"
)

// ValidationResult keeps the raw result as received so that stored runs are
// rendered by the same normalization as live ones.
type ValidationResult struct {
	tableName struct{} `pg:"validation_result, alias:vr"`

	RunId           string `pg:"run_id,pk,type:varchar"`
	Idx             int    `pg:"idx,pk,type:integer,use_zero"`
	Success         bool   `pg:"success,type:bool,notnull,use_zero"`
	ColumnName      string `pg:"column_name,type:varchar"`
	ExpectationType string `pg:"expectation_type,type:varchar"`
	Raw             []byte `pg:"raw,type:jsonb,notnull"`
}

func MakeValidationResultEntities(runId string, results []view.RawResult) ([]ValidationResult, error) {
	ents := make([]ValidationResult, 0, len(results))
	for i, result := range results {
		raw, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize result %d of run %s: %w", i, runId, err)
		}
		ent := ValidationResult{
			RunId:   runId,
			Idx:     i,
			Success: result.Success,
			Raw:     raw,
		}
		if result.Column != nil {
			ent.ColumnName = *result.Column
		}
		if result.ExpectationType != nil {
			ent.ExpectationType = *result.ExpectationType
		}
		ents = append(ents, ent)
	}
	return ents, nil
}

func MakeRawResultView(ent ValidationResult) (view.RawResult, error) {
	var result view.RawResult
	if err := json.Unmarshal(ent.Raw, &result); err != nil {
		return view.RawResult{}, fmt.Errorf("failed to read stored result %d of run %s: %w", ent.Idx, ent.RunId, err)
	}
	return result, nil
}
