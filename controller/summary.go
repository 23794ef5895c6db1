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
)

type SummaryController interface {
	GetPassRates(w http.ResponseWriter, r *http.Request)
	GetRuleFailures(w http.ResponseWriter, r *http.Request)
	GetRegionalTrends(w http.ResponseWriter, r *http.Request)
}

func NewSummaryController(summaryService service.SummaryService) SummaryController {
	return &summaryControllerImpl{summaryService: summaryService}
}

type summaryControllerImpl struct {
	summaryService service.SummaryService
}

func (s summaryControllerImpl) GetPassRates(w http.ResponseWriter, r *http.Request) {
	result, err := s.summaryService.GetPassRates(secctx.MakeUserContext(r), getSummaryFilter(r))
	if err != nil {
		respondWithError(w, "Failed to get pass rates", err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}

func (s summaryControllerImpl) GetRuleFailures(w http.ResponseWriter, r *http.Request) {
	limit, err := getIntQueryParam(r, "limit", service.DefaultRuleFailureLimit)
	if err != nil {
		respondWithError(w, "Invalid limit", err)
		return
	}
	result, err := s.summaryService.GetRuleFailures(secctx.MakeUserContext(r), getSummaryFilter(r), limit)
	if err != nil {
		respondWithError(w, "Failed to get rule failures", err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}

func (s summaryControllerImpl) GetRegionalTrends(w http.ResponseWriter, r *http.Request) {
	days, err := getIntQueryParam(r, "days", service.DefaultTrendDays)
	if err != nil {
		respondWithError(w, "Invalid days", err)
		return
	}
	result, err := s.summaryService.GetRegionalTrends(secctx.MakeUserContext(r), getSummaryFilter(r), days)
	if err != nil {
		respondWithError(w, "Failed to get regional trends", err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}

func getSummaryFilter(r *http.Request) view.SummaryFilter {
	return view.SummaryFilter{
		Region:      r.URL.Query().Get("region"),
		ProductType: r.URL.Query().Get("productType"),
		Exchange:    r.URL.Query().Get("exchange"),
	}
}
