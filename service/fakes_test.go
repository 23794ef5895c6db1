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
	"fmt"
	"sort"

	"github.com/Netcracker/qubership-validation-dashboard/entity"
	"github.com/Netcracker/qubership-validation-dashboard/view"
)

func strPtr(s string) *string {
	return &s
}

func sliceKey(region, productType, exchange string) string {
	return fmt.Sprintf("%s/%s/%s", region, productType, exchange)
}

type fakeApiClient struct {
	results   map[string][]view.RawResult
	errs      map[string]error
	exchanges map[string][]string
	calls     []string
	onCall    func()
}

func (f *fakeApiClient) Validate(ctx context.Context, region, productType, exchange string) ([]view.RawResult, []byte, error) {
	key := sliceKey(region, productType, exchange)
	f.calls = append(f.calls, key)
	if f.onCall != nil {
		f.onCall()
	}
	if err := f.errs[key]; err != nil {
		return nil, nil, err
	}
	return f.results[key], []byte(fmt.Sprintf(`{"slice": %q}`, key)), nil
}

func (f *fakeApiClient) ListExchanges(ctx context.Context, region string) ([]string, error) {
	if err := f.errs[region]; err != nil {
		return nil, err
	}
	return f.exchanges[region], nil
}

type fakeRunRepository struct {
	runs    map[string]entity.ValidationRun
	results map[string][]entity.ValidationResult
	saveErr error
}

func newFakeRunRepository() *fakeRunRepository {
	return &fakeRunRepository{
		runs:    make(map[string]entity.ValidationRun),
		results: make(map[string][]entity.ValidationResult),
	}
}

func (f *fakeRunRepository) SaveRunWithResults(ctx context.Context, run entity.ValidationRun, results []entity.ValidationResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.runs[run.Id] = run
	f.results[run.Id] = results
	return nil
}

func (f *fakeRunRepository) GetRun(ctx context.Context, runId string) (*entity.ValidationRun, error) {
	run, ok := f.runs[runId]
	if !ok {
		return nil, nil
	}
	return &run, nil
}

func (f *fakeRunRepository) ListRuns(ctx context.Context, filter view.RunFilter) ([]entity.ValidationRun, error) {
	runs := make([]entity.ValidationRun, 0)
	for _, run := range f.runs {
		if filter.Region != "" && run.Region != filter.Region {
			continue
		}
		if filter.Status != "" && run.Status != filter.Status {
			continue
		}
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAt.After(runs[j].StartedAt) })
	return runs, nil
}

func (f *fakeRunRepository) GetResults(ctx context.Context, runId string) ([]entity.ValidationResult, error) {
	return f.results[runId], nil
}

type fakeSummaryRepository struct {
	passRates    []entity.PassRateRow
	ruleFailures []entity.RuleFailureRow
	trends       []entity.TrendRow
	lastFilter   view.SummaryFilter
	lastLimit    int
}

func (f *fakeSummaryRepository) GetPassRates(ctx context.Context, filter view.SummaryFilter) ([]entity.PassRateRow, error) {
	f.lastFilter = filter
	return f.passRates, nil
}

func (f *fakeSummaryRepository) GetRuleFailures(ctx context.Context, filter view.SummaryFilter, limit int) ([]entity.RuleFailureRow, error) {
	f.lastFilter = filter
	f.lastLimit = limit
	return f.ruleFailures, nil
}

func (f *fakeSummaryRepository) GetTrends(ctx context.Context, filter view.SummaryFilter) ([]entity.TrendRow, error) {
	f.lastFilter = filter
	return f.trends, nil
}
