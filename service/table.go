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
	"net/http"

	"github.com/Netcracker/qubership-validation-dashboard/client"
	"github.com/Netcracker/qubership-validation-dashboard/exception"
	"github.com/Netcracker/qubership-validation-dashboard/normalizer"
	"github.com/Netcracker/qubership-validation-dashboard/view"
)

type TableService interface {
	BuildTable(results []view.RawResult) view.TableData
	BuildTableFromJSON(body []byte) (*view.TableData, error)
}

func NewTableService(schemaService SchemaService) TableService {
	return &tableServiceImpl{schemaService: schemaService}
}

type tableServiceImpl struct {
	schemaService SchemaService
}

func (t tableServiceImpl) BuildTable(results []view.RawResult) view.TableData {
	return normalizer.BuildTable(results)
}

func (t tableServiceImpl) BuildTableFromJSON(body []byte) (*view.TableData, error) {
	if err := t.schemaService.ValidateRawResults(body); err != nil {
		return nil, err
	}
	results, err := client.ParseRawResults(body)
	if err != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		}
	}
	table := t.BuildTable(results)
	return &table, nil
}
