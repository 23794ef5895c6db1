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

package db

import (
	"context"
	"fmt"

	"github.com/Netcracker/qubership-validation-dashboard/entity"
	"github.com/go-pg/pg/v10/orm"
	log "github.com/sirupsen/logrus"
)

var indexes = []string{
	`create index if not exists validation_run_slice_idx on validation_run (region, product_type, exchange)`,
	`create index if not exists validation_run_started_at_idx on validation_run (started_at)`,
	`create index if not exists validation_result_expectation_idx on validation_result (expectation_type)`,
}

// InitSchema creates the run and result tables when they are missing.
func InitSchema(ctx context.Context, cp ConnectionProvider) error {
	conn := cp.GetConnection()
	models := []interface{}{
		(*entity.ValidationRun)(nil),
		(*entity.ValidationResult)(nil),
	}
	for _, model := range models {
		err := conn.ModelContext(ctx, model).CreateTable(&orm.CreateTableOptions{IfNotExists: true})
		if err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}
	for _, stmt := range indexes {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	log.Info("Database schema is up to date")
	return nil
}
