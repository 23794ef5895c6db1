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
	"errors"
	"net/http"
	"testing"

	"github.com/Netcracker/qubership-validation-dashboard/exception"
	"github.com/Netcracker/qubership-validation-dashboard/secctx"
	"github.com/Netcracker/qubership-validation-dashboard/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apacResults() []view.RawResult {
	return []view.RawResult{
		{Success: true, Column: strPtr("RIC"), ExpectationType: strPtr("ExpectColumnValuesToBeUnique"), Result: []byte(`"{'element_count': 100}"`)},
		{Success: false, Column: strPtr("Price"), ExpectationType: strPtr("expect_column_values_to_not_be_null"), Result: []byte(`{"unexpected_count": 2}`)},
	}
}

func newValidationTestService(repo *fakeRunRepository) (ValidationService, *fakeApiClient) {
	apiClient := &fakeApiClient{
		results: map[string][]view.RawResult{sliceKey("APAC", "stock", "XHKG"): apacResults()},
		errs:    map[string]error{},
	}
	rules := []view.CombinedRule{{
		Name:    "Identity",
		Members: []view.CombinedRuleMember{{Expectation: "expect_column_values_to_be_unique", Column: "RIC"}},
	}}
	if repo == nil {
		return NewValidationService(apiClient, nil, NewCombinedRuleService(rules)), apiClient
	}
	return NewValidationService(apiClient, repo, NewCombinedRuleService(rules)), apiClient
}

func TestRunValidation(t *testing.T) {
	t.Run("builds table and counts", func(t *testing.T) {
		svc, _ := newValidationTestService(nil)
		ctx := secctx.MakeSysadminContext(context.Background())

		result, err := svc.RunValidation(ctx, view.ValidationRequest{Region: "APAC", ProductType: "stock", Exchange: "XHKG"})
		require.NoError(t, err)

		assert.NotEmpty(t, result.Run.Id)
		assert.Equal(t, view.RunStatusFailed, result.Run.Status)
		assert.Equal(t, 2, result.Run.ResultCount)
		assert.Equal(t, 1, result.Run.PassedCount)
		assert.Equal(t, 1, result.Run.FailedCount)
		assert.Equal(t, secctx.SystemUserId, result.Run.TriggeredBy)
		assert.Len(t, result.Run.PayloadHash, 64)
		assert.False(t, result.Run.Persisted)
		require.NotNil(t, result.Run.FinishedAt)

		require.Len(t, result.Table.Data, 2)
		assert.Equal(t, []string{"status", "column", "expectationType", "element_count", "unexpected_count"}, result.Table.Headers)

		require.Len(t, result.CombinedRules, 1)
		assert.True(t, result.CombinedRules[0].Tradable)
	})

	t.Run("empty results pass", func(t *testing.T) {
		svc, _ := newValidationTestService(nil)
		result, err := svc.RunValidation(context.Background(), view.ValidationRequest{Region: "EMEA", ProductType: "etf", Exchange: "XLON"})
		require.NoError(t, err)
		assert.Equal(t, view.RunStatusPassed, result.Run.Status)
		assert.Empty(t, result.Table.Data)
		require.Len(t, result.CombinedRules, 1)
		assert.Equal(t, "Identity", result.CombinedRules[0].Name)
		assert.False(t, result.CombinedRules[0].Tradable)
	})

	t.Run("missing params", func(t *testing.T) {
		svc, _ := newValidationTestService(nil)
		_, err := svc.RunValidation(context.Background(), view.ValidationRequest{Region: "APAC"})
		var customErr *exception.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusBadRequest, customErr.Status)
		assert.Equal(t, "Required parameters are missing: productType, exchange", customErr.Error())
	})

	t.Run("persist without database", func(t *testing.T) {
		svc, apiClient := newValidationTestService(nil)
		_, err := svc.RunValidation(context.Background(), view.ValidationRequest{Region: "APAC", ProductType: "stock", Exchange: "XHKG", Persist: true})
		var customErr *exception.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, exception.PersistenceDisabled, customErr.Code)
		assert.Empty(t, apiClient.calls)
	})

	t.Run("persists run and results", func(t *testing.T) {
		repo := newFakeRunRepository()
		svc, _ := newValidationTestService(repo)

		result, err := svc.RunValidation(context.Background(), view.ValidationRequest{Region: "APAC", ProductType: "stock", Exchange: "XHKG", Persist: true})
		require.NoError(t, err)
		assert.True(t, result.Run.Persisted)

		stored, ok := repo.runs[result.Run.Id]
		require.True(t, ok)
		assert.Equal(t, view.RunStatusFailed, stored.Status)
		require.Len(t, repo.results[result.Run.Id], 2)
		assert.Equal(t, "RIC", repo.results[result.Run.Id][0].ColumnName)
		assert.Equal(t, 1, repo.results[result.Run.Id][1].Idx)
	})

	t.Run("api failure is recorded", func(t *testing.T) {
		repo := newFakeRunRepository()
		svc, apiClient := newValidationTestService(repo)
		apiErr := &exception.CustomError{Status: http.StatusBadGateway, Code: exception.ValidationApiFailure, Message: "down"}
		apiClient.errs[sliceKey("APAC", "stock", "XHKG")] = apiErr

		_, err := svc.RunValidation(context.Background(), view.ValidationRequest{Region: "APAC", ProductType: "stock", Exchange: "XHKG", Persist: true})
		assert.Equal(t, apiErr, err)

		require.Len(t, repo.runs, 1)
		for _, run := range repo.runs {
			assert.Equal(t, view.RunStatusError, run.Status)
			assert.Equal(t, "down", run.Details)
		}
	})
}

func TestStoredRuns(t *testing.T) {
	repo := newFakeRunRepository()
	svc, _ := newValidationTestService(repo)
	live, err := svc.RunValidation(context.Background(), view.ValidationRequest{Region: "APAC", ProductType: "stock", Exchange: "XHKG", Persist: true})
	require.NoError(t, err)
	runId := live.Run.Id

	t.Run("get run", func(t *testing.T) {
		run, err := svc.GetRun(context.Background(), runId)
		require.NoError(t, err)
		assert.Equal(t, "XHKG", run.Exchange)
		assert.True(t, run.Persisted)
	})

	t.Run("stored table matches live table", func(t *testing.T) {
		table, err := svc.GetRunTable(context.Background(), runId)
		require.NoError(t, err)
		assert.Equal(t, live.Table.Headers, table.Headers)
		require.Len(t, table.Data, len(live.Table.Data))
		for i := range table.Data {
			assert.Equal(t, live.Table.Data[i].Keys(), table.Data[i].Keys())
			assert.Equal(t, live.Table.Data[i].Success, table.Data[i].Success)
		}
	})

	t.Run("combined rules", func(t *testing.T) {
		outcomes, err := svc.GetRunCombinedRules(context.Background(), runId)
		require.NoError(t, err)
		require.Len(t, outcomes, 1)
		assert.True(t, outcomes[0].Tradable)
	})

	t.Run("list runs", func(t *testing.T) {
		runs, err := svc.ListRuns(context.Background(), view.RunFilter{Region: "APAC"})
		require.NoError(t, err)
		assert.Len(t, runs.Runs, 1)

		runs, err = svc.ListRuns(context.Background(), view.RunFilter{Region: "EMEA"})
		require.NoError(t, err)
		assert.Empty(t, runs.Runs)
	})

	t.Run("page out of range", func(t *testing.T) {
		_, err := svc.ListRuns(context.Background(), view.RunFilter{Page: MaxRunsPage + 1})
		var customErr *exception.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusBadRequest, customErr.Status)
		assert.Equal(t, exception.InvalidParameterValue, customErr.Code)

		runs, err := svc.ListRuns(context.Background(), view.RunFilter{Region: "APAC", Page: MaxRunsPage})
		require.NoError(t, err)
		assert.NotNil(t, runs)
	})

	t.Run("unknown run", func(t *testing.T) {
		_, err := svc.GetRunTable(context.Background(), "missing")
		var customErr *exception.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusNotFound, customErr.Status)
		assert.Equal(t, "Validation run with id missing is not found", customErr.Error())
	})

	t.Run("history disabled", func(t *testing.T) {
		disabled, _ := newValidationTestService(nil)
		_, err := disabled.ListRuns(context.Background(), view.RunFilter{})
		var customErr *exception.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusNotImplemented, customErr.Status)
	})
}
