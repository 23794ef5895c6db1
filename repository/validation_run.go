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

package repository

import (
	"context"
	"errors"

	"github.com/Netcracker/qubership-validation-dashboard/db"
	"github.com/Netcracker/qubership-validation-dashboard/entity"
	"github.com/Netcracker/qubership-validation-dashboard/view"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

const DefaultRunsLimit = 100

type ValidationRunRepository interface {
	SaveRunWithResults(ctx context.Context, run entity.ValidationRun, results []entity.ValidationResult) error
	GetRun(ctx context.Context, runId string) (*entity.ValidationRun, error)
	ListRuns(ctx context.Context, filter view.RunFilter) ([]entity.ValidationRun, error)
	GetResults(ctx context.Context, runId string) ([]entity.ValidationResult, error)
}

func NewValidationRunRepository(cp db.ConnectionProvider) ValidationRunRepository {
	return &validationRunRepositoryImpl{cp: cp}
}

type validationRunRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (r *validationRunRepositoryImpl) SaveRunWithResults(ctx context.Context, run entity.ValidationRun, results []entity.ValidationResult) error {
	return r.cp.GetConnection().RunInTransaction(ctx, func(tx *pg.Tx) error {
		_, err := tx.ModelContext(ctx, &run).Insert()
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return nil
		}
		_, err = tx.ModelContext(ctx, &results).Insert()
		return err
	})
}

func (r *validationRunRepositoryImpl) GetRun(ctx context.Context, runId string) (*entity.ValidationRun, error) {
	var run entity.ValidationRun
	err := r.cp.GetConnection().ModelContext(ctx, &run).
		Where("id = ?", runId).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *validationRunRepositoryImpl) ListRuns(ctx context.Context, filter view.RunFilter) ([]entity.ValidationRun, error) {
	limit := filter.Limit
	if limit <= 0 || limit > DefaultRunsLimit {
		limit = DefaultRunsLimit
	}
	page := filter.Page
	if page < 0 {
		page = 0
	}

	var runs []entity.ValidationRun
	query := r.cp.GetConnection().ModelContext(ctx, &runs)
	applySliceFilter(query, filter.Region, filter.ProductType, filter.Exchange)
	if filter.Status != "" {
		query.Where("r.status = ?", filter.Status)
	}
	err := query.
		Order("r.started_at DESC").
		Limit(limit).
		Offset(limit * page).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return []entity.ValidationRun{}, nil
		}
		return nil, err
	}
	return runs, nil
}

func (r *validationRunRepositoryImpl) GetResults(ctx context.Context, runId string) ([]entity.ValidationResult, error) {
	var results []entity.ValidationResult
	err := r.cp.GetConnection().ModelContext(ctx, &results).
		Where("run_id = ?", runId).
		Order("idx ASC").
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return []entity.ValidationResult{}, nil
		}
		return nil, err
	}
	return results, nil
}

func applySliceFilter(query *orm.Query, region, productType, exchange string) {
	if region != "" {
		query.Where("r.region = ?", region)
	}
	if productType != "" {
		query.Where("r.product_type = ?", productType)
	}
	if exchange != "" {
		query.Where("r.exchange = ?", exchange)
	}
}
