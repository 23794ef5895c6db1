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
	"time"

	"github.com/Netcracker/qubership-validation-dashboard/db"
	"github.com/Netcracker/qubership-validation-dashboard/entity"
	"github.com/Netcracker/qubership-validation-dashboard/view"
	"github.com/go-pg/pg/v10/orm"
)

type SummaryRepository interface {
	GetPassRates(ctx context.Context, filter view.SummaryFilter) ([]entity.PassRateRow, error)
	GetRuleFailures(ctx context.Context, filter view.SummaryFilter, limit int) ([]entity.RuleFailureRow, error)
	GetTrends(ctx context.Context, filter view.SummaryFilter) ([]entity.TrendRow, error)
}

func NewSummaryRepository(cp db.ConnectionProvider) SummaryRepository {
	return &summaryRepositoryImpl{cp: cp}
}

type summaryRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (s *summaryRepositoryImpl) GetPassRates(ctx context.Context, filter view.SummaryFilter) ([]entity.PassRateRow, error) {
	rows := make([]entity.PassRateRow, 0)
	query := s.cp.GetConnection().ModelContext(ctx, (*entity.ValidationRun)(nil)).
		ColumnExpr("r.region, r.product_type, r.exchange").
		ColumnExpr("count(*) AS runs").
		ColumnExpr("coalesce(sum(r.result_count), 0) AS total").
		ColumnExpr("coalesce(sum(r.passed_count), 0) AS passed")
	applySummaryFilter(query, filter)
	err := query.
		Group("r.region", "r.product_type", "r.exchange").
		Order("r.region", "r.product_type", "r.exchange").
		Select(&rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *summaryRepositoryImpl) GetRuleFailures(ctx context.Context, filter view.SummaryFilter, limit int) ([]entity.RuleFailureRow, error) {
	rows := make([]entity.RuleFailureRow, 0)
	query := s.cp.GetConnection().ModelContext(ctx, (*entity.ValidationResult)(nil)).
		ColumnExpr("vr.expectation_type").
		ColumnExpr("count(*) AS total").
		ColumnExpr("count(*) FILTER (WHERE NOT vr.success) AS failed").
		Join("JOIN validation_run AS r ON r.id = vr.run_id").
		Where("vr.expectation_type <> ''")
	applySummaryFilter(query, filter)
	query.
		Group("vr.expectation_type").
		OrderExpr("failed DESC, vr.expectation_type ASC")
	if limit > 0 {
		query.Limit(limit)
	}
	if err := query.Select(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *summaryRepositoryImpl) GetTrends(ctx context.Context, filter view.SummaryFilter) ([]entity.TrendRow, error) {
	rows := make([]entity.TrendRow, 0)
	query := s.cp.GetConnection().ModelContext(ctx, (*entity.ValidationRun)(nil)).
		ColumnExpr("r.region").
		ColumnExpr("date_trunc('day', r.started_at) AS day").
		ColumnExpr("coalesce(sum(r.result_count), 0) AS total").
		ColumnExpr("coalesce(sum(r.passed_count), 0) AS passed")
	applySummaryFilter(query, filter)
	err := query.
		GroupExpr("r.region, day").
		OrderExpr("r.region ASC, day ASC").
		Select(&rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func applySummaryFilter(query *orm.Query, filter view.SummaryFilter) {
	applySliceFilter(query, filter.Region, filter.ProductType, filter.Exchange)
	if filter.From != nil {
		query.Where("r.started_at >= ?", filter.From.UTC().Truncate(time.Second))
	}
}
