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
	"net/http"
	"strings"
	"time"

	"github.com/Netcracker/qubership-validation-dashboard/client"
	"github.com/Netcracker/qubership-validation-dashboard/entity"
	"github.com/Netcracker/qubership-validation-dashboard/exception"
	"github.com/Netcracker/qubership-validation-dashboard/normalizer"
	"github.com/Netcracker/qubership-validation-dashboard/repository"
	"github.com/Netcracker/qubership-validation-dashboard/secctx"
	"github.com/Netcracker/qubership-validation-dashboard/utils"
	"github.com/Netcracker/qubership-validation-dashboard/view"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// MaxRunsPage bounds the run list page so the offset stays within range.
const MaxRunsPage = 10000

type ValidationService interface {
	IsPersistenceEnabled() bool
	RunValidation(ctx context.Context, req view.ValidationRequest) (*view.ValidationRunResult, error)
	GetRun(ctx context.Context, runId string) (*view.ValidationRun, error)
	ListRuns(ctx context.Context, filter view.RunFilter) (*view.ValidationRuns, error)
	GetRunTable(ctx context.Context, runId string) (*view.TableData, error)
	GetRunCombinedRules(ctx context.Context, runId string) ([]view.CombinedRuleOutcome, error)
}

// NewValidationService creates the service; a nil runRepository disables history.
func NewValidationService(
	apiClient client.ValidationApiClient,
	runRepository repository.ValidationRunRepository,
	combinedRuleService CombinedRuleService) ValidationService {
	return &validationServiceImpl{
		apiClient:           apiClient,
		runRepository:       runRepository,
		combinedRuleService: combinedRuleService,
	}
}

type validationServiceImpl struct {
	apiClient           client.ValidationApiClient
	runRepository       repository.ValidationRunRepository
	combinedRuleService CombinedRuleService
}

func (v validationServiceImpl) IsPersistenceEnabled() bool {
	return v.runRepository != nil
}

func (v validationServiceImpl) RunValidation(ctx context.Context, req view.ValidationRequest) (*view.ValidationRunResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Persist && !v.IsPersistenceEnabled() {
		return nil, persistenceDisabledError()
	}

	run := view.ValidationRun{
		Id:          uuid.NewString(),
		Region:      req.Region,
		ProductType: req.ProductType,
		Exchange:    req.Exchange,
		TriggeredBy: secctx.GetUserId(ctx),
		StartedAt:   time.Now().UTC(),
	}

	results, body, err := v.apiClient.Validate(ctx, req.Region, req.ProductType, req.Exchange)
	finishedAt := time.Now().UTC()
	run.FinishedAt = &finishedAt
	if err != nil {
		run.Status = view.RunStatusError
		run.Details = err.Error()
		if req.Persist {
			if saveErr := v.saveRun(ctx, &run, nil); saveErr != nil {
				log.Errorf("Failed to save failed validation run %s: %v", run.Id, saveErr)
			}
		}
		return nil, err
	}

	run.PayloadHash = utils.PayloadDigest(body)
	run.ResultCount = len(results)
	for _, result := range results {
		if result.Success {
			run.PassedCount++
		} else {
			run.FailedCount++
		}
	}
	run.Status = view.RunStatusPassed
	if run.FailedCount > 0 {
		run.Status = view.RunStatusFailed
	}

	if req.Persist {
		if err := v.saveRun(ctx, &run, results); err != nil {
			return nil, err
		}
	}
	log.Debugf("Validation run %s for %s/%s/%s finished with status %s (%d/%d passed)",
		run.Id, run.Region, run.ProductType, run.Exchange, run.Status, run.PassedCount, run.ResultCount)

	return &view.ValidationRunResult{
		Run:           run,
		Table:         normalizer.BuildTable(results),
		CombinedRules: v.combinedRuleService.Evaluate(results),
	}, nil
}

func (v validationServiceImpl) saveRun(ctx context.Context, run *view.ValidationRun, results []view.RawResult) error {
	ents, err := entity.MakeValidationResultEntities(run.Id, results)
	if err != nil {
		return err
	}
	if err := v.runRepository.SaveRunWithResults(ctx, entity.MakeValidationRunEntity(*run), ents); err != nil {
		return err
	}
	run.Persisted = true
	return nil
}

func (v validationServiceImpl) GetRun(ctx context.Context, runId string) (*view.ValidationRun, error) {
	if !v.IsPersistenceEnabled() {
		return nil, persistenceDisabledError()
	}
	ent, err := v.runRepository.GetRun(ctx, runId)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, runNotFoundError(runId)
	}
	run := entity.MakeValidationRunView(*ent)
	return &run, nil
}

func (v validationServiceImpl) ListRuns(ctx context.Context, filter view.RunFilter) (*view.ValidationRuns, error) {
	if !v.IsPersistenceEnabled() {
		return nil, persistenceDisabledError()
	}
	if filter.Page > MaxRunsPage {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "page", "value": filter.Page},
		}
	}
	ents, err := v.runRepository.ListRuns(ctx, filter)
	if err != nil {
		return nil, err
	}
	runs := make([]view.ValidationRun, 0, len(ents))
	for _, ent := range ents {
		runs = append(runs, entity.MakeValidationRunView(ent))
	}
	return &view.ValidationRuns{Runs: runs}, nil
}

func (v validationServiceImpl) GetRunTable(ctx context.Context, runId string) (*view.TableData, error) {
	results, err := v.getRunResults(ctx, runId)
	if err != nil {
		return nil, err
	}
	table := normalizer.BuildTable(results)
	return &table, nil
}

func (v validationServiceImpl) GetRunCombinedRules(ctx context.Context, runId string) ([]view.CombinedRuleOutcome, error) {
	results, err := v.getRunResults(ctx, runId)
	if err != nil {
		return nil, err
	}
	return v.combinedRuleService.Evaluate(results), nil
}

func (v validationServiceImpl) getRunResults(ctx context.Context, runId string) ([]view.RawResult, error) {
	if _, err := v.GetRun(ctx, runId); err != nil {
		return nil, err
	}
	ents, err := v.runRepository.GetResults(ctx, runId)
	if err != nil {
		return nil, err
	}
	results := make([]view.RawResult, 0, len(ents))
	for _, ent := range ents {
		result, err := entity.MakeRawResultView(ent)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func validateRequest(req view.ValidationRequest) error {
	var missing []string
	if req.Region == "" {
		missing = append(missing, "region")
	}
	if req.ProductType == "" {
		missing = append(missing, "productType")
	}
	if req.Exchange == "" {
		missing = append(missing, "exchange")
	}
	if len(missing) > 0 {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Params:  map[string]interface{}{"params": strings.Join(missing, ", ")},
		}
	}
	return nil
}

func persistenceDisabledError() error {
	return &exception.CustomError{
		Status:  http.StatusNotImplemented,
		Code:    exception.PersistenceDisabled,
		Message: exception.PersistenceDisabledMsg,
	}
}

func runNotFoundError(runId string) error {
	return &exception.CustomError{
		Status:  http.StatusNotFound,
		Code:    exception.EntityNotFound,
		Message: exception.EntityNotFoundMsg,
		Params:  map[string]interface{}{"entity": "Validation run", "id": runId},
	}
}
