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

package controller

import (
	"net/http"

	"github.com/Netcracker/qubership-validation-dashboard/exception"
	"github.com/Netcracker/qubership-validation-dashboard/secctx"
	"github.com/Netcracker/qubership-validation-dashboard/service"
	"github.com/Netcracker/qubership-validation-dashboard/view"
)

type RunController interface {
	ListRuns(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	GetRunTable(w http.ResponseWriter, r *http.Request)
	GetRunCombinedRules(w http.ResponseWriter, r *http.Request)
}

func NewRunController(validationService service.ValidationService) RunController {
	return &runControllerImpl{validationService: validationService}
}

type runControllerImpl struct {
	validationService service.ValidationService
}

func (c runControllerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := getIntQueryParam(r, "limit", 0)
	if err != nil {
		respondWithError(w, "Invalid limit", err)
		return
	}
	page, err := getIntQueryParam(r, "page", 0)
	if err != nil {
		respondWithError(w, "Invalid page", err)
		return
	}
	status := view.RunStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "status", "value": status},
		})
		return
	}

	runs, err := c.validationService.ListRuns(secctx.MakeUserContext(r), view.RunFilter{
		Region:      r.URL.Query().Get("region"),
		ProductType: r.URL.Query().Get("productType"),
		Exchange:    r.URL.Query().Get("exchange"),
		Status:      status,
		Limit:       limit,
		Page:        page,
	})
	if err != nil {
		respondWithError(w, "Failed to list validation runs", err)
		return
	}
	respondWithJson(w, http.StatusOK, runs)
}

func (c runControllerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	runId := getStringParam(r, "runId")
	run, err := c.validationService.GetRun(secctx.MakeUserContext(r), runId)
	if err != nil {
		respondWithError(w, "Failed to get validation run", err)
		return
	}
	respondWithJson(w, http.StatusOK, run)
}

func (c runControllerImpl) GetRunTable(w http.ResponseWriter, r *http.Request) {
	runId := getStringParam(r, "runId")
	table, err := c.validationService.GetRunTable(secctx.MakeUserContext(r), runId)
	if err != nil {
		respondWithError(w, "Failed to get validation run table", err)
		return
	}
	respondWithJson(w, http.StatusOK, table)
}

func (c runControllerImpl) GetRunCombinedRules(w http.ResponseWriter, r *http.Request) {
	runId := getStringParam(r, "runId")
	outcomes, err := c.validationService.GetRunCombinedRules(secctx.MakeUserContext(r), runId)
	if err != nil {
		respondWithError(w, "Failed to evaluate combined rules", err)
		return
	}
	respondWithJson(w, http.StatusOK, outcomes)
}
