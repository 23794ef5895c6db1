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
	"strings"
	"time"

	"github.com/Netcracker/qubership-validation-dashboard/client"
	"github.com/Netcracker/qubership-validation-dashboard/exception"
	"github.com/Netcracker/qubership-validation-dashboard/view"
	log "github.com/sirupsen/logrus"
)

type BatchService interface {
	RunBatch(ctx context.Context, plan view.BatchPlan) (*view.BatchReport, error)
}

func NewBatchService(apiClient client.ValidationApiClient, validationService ValidationService) BatchService {
	return &batchServiceImpl{apiClient: apiClient, validationService: validationService}
}

type batchServiceImpl struct {
	apiClient         client.ValidationApiClient
	validationService ValidationService
}

type batchSlice struct {
	region   string
	exchange string
	err      error
}

// RunBatch validates every region × product type × exchange slice of the plan one after another.
// A failing slice is recorded in the report and the loop goes on; a cancelled context skips the rest.
func (b batchServiceImpl) RunBatch(ctx context.Context, plan view.BatchPlan) (*view.BatchReport, error) {
	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	if plan.Persist && !b.validationService.IsPersistenceEnabled() {
		return nil, persistenceDisabledError()
	}

	report := &view.BatchReport{StartedAt: time.Now().UTC(), Items: []view.BatchItem{}}
	for _, slice := range b.expandPlan(ctx, plan) {
		for _, productType := range plan.ProductTypes {
			item := view.BatchItem{Region: slice.region, ProductType: productType, Exchange: slice.exchange}
			logger := log.WithFields(log.Fields{"region": slice.region, "productType": productType, "exchange": slice.exchange})

			switch {
			case ctx.Err() != nil:
				item.Status = view.BatchItemSkipped
				item.Error = ctx.Err().Error()
			case slice.err != nil:
				item.Status = view.BatchItemError
				item.Error = slice.err.Error()
			default:
				b.runItem(ctx, &item, plan.Persist)
			}

			switch item.Status {
			case view.BatchItemPassed:
				report.Passed++
			case view.BatchItemFailed:
				report.Failed++
			case view.BatchItemError:
				report.Errors++
				logger.Errorf("Validation failed: %s", item.Error)
			case view.BatchItemSkipped:
				report.Skipped++
			}
			if item.Status == view.BatchItemPassed || item.Status == view.BatchItemFailed {
				logger.Infof("Validation %s: %d/%d passed", item.Status, item.PassedCount, item.ResultCount)
			}
			report.Items = append(report.Items, item)
		}
	}
	report.FinishedAt = time.Now().UTC()
	log.Infof("Batch finished: %d passed, %d failed, %d errors, %d skipped", report.Passed, report.Failed, report.Errors, report.Skipped)
	return report, nil
}

func (b batchServiceImpl) runItem(ctx context.Context, item *view.BatchItem, persist bool) {
	result, err := b.validationService.RunValidation(ctx, view.ValidationRequest{
		Region:      item.Region,
		ProductType: item.ProductType,
		Exchange:    item.Exchange,
		Persist:     persist,
	})
	if err != nil {
		item.Status = view.BatchItemError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			item.Status = view.BatchItemSkipped
		}
		item.Error = err.Error()
		return
	}
	item.Status = view.BatchItemPassed
	if result.Run.Status == view.RunStatusFailed {
		item.Status = view.BatchItemFailed
	}
	if result.Run.Persisted {
		item.RunId = result.Run.Id
	}
	item.ResultCount = result.Run.ResultCount
	item.PassedCount = result.Run.PassedCount
	item.FailedCount = result.Run.FailedCount
}

// expandPlan resolves the exchanges of each region, asking the validation API when the plan names none.
func (b batchServiceImpl) expandPlan(ctx context.Context, plan view.BatchPlan) []batchSlice {
	slices := make([]batchSlice, 0)
	for _, region := range plan.Regions {
		exchanges := plan.Exchanges[region]
		if len(exchanges) == 0 {
			if ctx.Err() != nil {
				slices = append(slices, batchSlice{region: region, err: ctx.Err()})
				continue
			}
			listed, err := b.apiClient.ListExchanges(ctx, region)
			if err != nil {
				log.Errorf("Failed to list exchanges of region %s: %v", region, err)
				slices = append(slices, batchSlice{region: region, err: err})
				continue
			}
			if len(listed) == 0 {
				log.Warnf("Region %s has no exchanges to validate", region)
			}
			exchanges = listed
		}
		for _, exchange := range exchanges {
			slices = append(slices, batchSlice{region: region, exchange: exchange})
		}
	}
	return slices
}

func validatePlan(plan view.BatchPlan) error {
	var missing []string
	if len(plan.Regions) == 0 {
		missing = append(missing, "regions")
	}
	if len(plan.ProductTypes) == 0 {
		missing = append(missing, "productTypes")
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
