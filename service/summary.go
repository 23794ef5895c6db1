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

package service

import (
	"context"
	"time"

	"github.com/Netcracker/qubership-validation-dashboard/entity"
	"github.com/Netcracker/qubership-validation-dashboard/normalizer"
	"github.com/Netcracker/qubership-validation-dashboard/repository"
	"github.com/Netcracker/qubership-validation-dashboard/view"
)

const (
	DefaultTrendDays        = 30
	DefaultRuleFailureLimit = 20
)

type SummaryService interface {
	GetPassRates(ctx context.Context, filter view.SummaryFilter) (*view.PassRates, error)
	GetRuleFailures(ctx context.Context, filter view.SummaryFilter, limit int) (*view.RuleFailures, error)
	GetRegionalTrends(ctx context.Context, filter view.SummaryFilter, days int) (*view.RegionalTrends, error)
}

// NewSummaryService creates the dashboard aggregates service; a nil repository disables it.
func NewSummaryService(summaryRepository repository.SummaryRepository) SummaryService {
	return &summaryServiceImpl{summaryRepository: summaryRepository}
}

type summaryServiceImpl struct {
	summaryRepository repository.SummaryRepository
}

func (s summaryServiceImpl) GetPassRates(ctx context.Context, filter view.SummaryFilter) (*view.PassRates, error) {
	if s.summaryRepository == nil {
		return nil, persistenceDisabledError()
	}
	rows, err := s.summaryRepository.GetPassRates(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := &view.PassRates{PassRates: make([]view.PassRate, 0, len(rows))}
	for _, row := range rows {
		result.PassRates = append(result.PassRates, entity.MakePassRateView(row))
	}
	return result, nil
}

func (s summaryServiceImpl) GetRuleFailures(ctx context.Context, filter view.SummaryFilter, limit int) (*view.RuleFailures, error) {
	if s.summaryRepository == nil {
		return nil, persistenceDisabledError()
	}
	if limit <= 0 {
		limit = DefaultRuleFailureLimit
	}
	rows, err := s.summaryRepository.GetRuleFailures(ctx, filter, limit)
	if err != nil {
		return nil, err
	}
	result := &view.RuleFailures{RuleFailures: make([]view.RuleFailure, 0, len(rows))}
	for _, row := range rows {
		result.RuleFailures = append(result.RuleFailures, view.RuleFailure{
			ExpectationType: row.ExpectationType,
			DisplayName:     normalizer.Humanize(row.ExpectationType),
			Total:           row.Total,
			Failed:          row.Failed,
			FailureRate:     view.Rate(row.Failed, row.Total),
		})
	}
	return result, nil
}

func (s summaryServiceImpl) GetRegionalTrends(ctx context.Context, filter view.SummaryFilter, days int) (*view.RegionalTrends, error) {
	if s.summaryRepository == nil {
		return nil, persistenceDisabledError()
	}
	if days <= 0 {
		days = DefaultTrendDays
	}
	from := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -(days - 1))
	filter.From = &from

	rows, err := s.summaryRepository.GetTrends(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := &view.RegionalTrends{Trends: make([]view.TrendPoint, 0, len(rows))}
	for _, row := range rows {
		result.Trends = append(result.Trends, entity.MakeTrendPointView(row))
	}
	return result, nil
}
