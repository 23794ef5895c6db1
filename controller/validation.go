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

	"github.com/Netcracker/qubership-validation-dashboard/secctx"
	"github.com/Netcracker/qubership-validation-dashboard/service"
	"github.com/Netcracker/qubership-validation-dashboard/view"
	log "github.com/sirupsen/logrus"
)

type ValidationController interface {
	RunValidation(w http.ResponseWriter, r *http.Request)
	RunBatch(w http.ResponseWriter, r *http.Request)
}

func NewValidationController(validationService service.ValidationService, batchService service.BatchService) ValidationController {
	return &validationControllerImpl{validationService: validationService, batchService: batchService}
}

type validationControllerImpl struct {
	validationService service.ValidationService
	batchService      service.BatchService
}

func (v *validationControllerImpl) RunValidation(w http.ResponseWriter, r *http.Request) {
	var req view.ValidationRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, "Failed to decode validation request", err)
		return
	}

	ctx := secctx.MakeUserContext(r)
	result, err := v.validationService.RunValidation(ctx, req)
	if err != nil {
		respondWithError(w, "Failed to run validation", err)
		return
	}
	log.Debugf("Validation run %s requested by %s", result.Run.Id, secctx.GetUserId(ctx))
	respondWithJson(w, http.StatusOK, result)
}

func (v *validationControllerImpl) RunBatch(w http.ResponseWriter, r *http.Request) {
	var plan view.BatchPlan
	if err := decodeBody(w, r, &plan); err != nil {
		respondWithError(w, "Failed to decode batch plan", err)
		return
	}

	report, err := v.batchService.RunBatch(secctx.MakeUserContext(r), plan)
	if err != nil {
		respondWithError(w, "Failed to run batch", err)
		return
	}
	respondWithJson(w, http.StatusOK, report)
}
