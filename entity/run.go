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

type ValidationRun struct {
	tableName struct{} `pg:"validation_run, alias:r"`

	Id          string         `pg:"id,pk,type:varchar"`
	Region      string         `pg:"region,type:varchar,notnull"`
	ProductType string         `pg:"product_type,type:varchar,notnull"`
	Exchange    string         `pg:"exchange,type:varchar,notnull"`
	Status      view.RunStatus `pg:"status,type:varchar,notnull"`
	Details     string         `pg:"details,type:varchar"`
	PayloadHash string         `pg:"payload_hash,type:varchar"`
	ResultCount int            `pg:"result_count,type:integer,notnull,use_zero"`
	PassedCount int            `pg:"passed_count,type:integer,notnull,use_zero"`
	FailedCount int            `pg:"failed_count,type:integer,notnull,use_zero"`
	TriggeredBy string         `pg:"triggered_by,type:varchar"`
	StartedAt   time.Time      `pg:"started_at,type:timestamp without time zone,notnull"`
	FinishedAt  *time.Time     `pg:"finished_at,type:timestamp without time zone"`
}

func MakeValidationRunView(ent ValidationRun) view.ValidationRun {
	return view.ValidationRun{
		Id:          ent.Id,
		Region:      ent.Region,
		ProductType: ent.ProductType,
		Exchange:    ent.Exchange,
		Status:      ent.Status,
		Details:     ent.Details,
		PayloadHash: ent.PayloadHash,
		ResultCount: ent.ResultCount,
		PassedCount: ent.PassedCount,
		FailedCount: ent.FailedCount,
		TriggeredBy: ent.TriggeredBy,
		StartedAt:   ent.StartedAt,
		FinishedAt:  ent.FinishedAt,
		Persisted:   true,
	}
}

func MakeValidationRunEntity(run view.ValidationRun) ValidationRun {
	return ValidationRun{
		Id:          run.Id,
		Region:      run.Region,
		ProductType: run.ProductType,
		Exchange:    run.Exchange,
		Status:      run.Status,
		Details:     run.Details,
		PayloadHash: run.PayloadHash,
		ResultCount: run.ResultCount,
		PassedCount: run.PassedCount,
		FailedCount: run.FailedCount,
		TriggeredBy: run.TriggeredBy,
		StartedAt:   run.StartedAt,
		FinishedAt:  run.FinishedAt,
	}
}
