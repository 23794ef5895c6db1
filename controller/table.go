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

	"github.com/Netcracker/qubership-validation-dashboard/service"
)

type TableController interface {
	BuildTable(w http.ResponseWriter, r *http.Request)
}

func NewTableController(tableService service.TableService) TableController {
	return &tableControllerImpl{tableService: tableService}
}

type tableControllerImpl struct {
	tableService service.TableService
}

func (t tableControllerImpl) BuildTable(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		respondWithError(w, "Failed to read raw results", err)
		return
	}
	table, err := t.tableService.BuildTableFromJSON(body)
	if err != nil {
		respondWithError(w, "Failed to build results table", err)
		return
	}
	respondWithJson(w, http.StatusOK, table)
}
