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
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/Netcracker/qubership-validation-dashboard/exception"
	"github.com/Netcracker/qubership-validation-dashboard/view"
	"github.com/invopop/jsonschema"
	kjsonschema "github.com/kaptinlin/jsonschema"
)

const draft2020 = "https://json-schema.org/draft/2020-12/schema"

type SchemaService interface {
	GetRawResultsSchema() json.RawMessage
	ValidateRawResults(body []byte) error
}

// NewSchemaService derives the accepted request schema from view.RawResult: a bare
// array of results or an object holding them under "results".
func NewSchemaService() (SchemaService, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	item := reflector.Reflect(&view.RawResult{})
	item.Version = ""
	item.ID = ""

	results := map[string]interface{}{
		"type":  "array",
		"items": item,
	}
	root := map[string]interface{}{
		"$schema": draft2020,
		"title":   "Raw validation results",
		"oneOf": []interface{}{
			results,
			map[string]interface{}{
				"type":       "object",
				"required":   []string{"results"},
				"properties": map[string]interface{}{"results": results},
			},
		},
	}
	data, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to generate raw results schema: %w", err)
	}

	compiled, err := kjsonschema.NewCompiler().Compile(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compile raw results schema: %w", err)
	}
	return &schemaServiceImpl{schema: data, compiled: compiled}, nil
}

type schemaServiceImpl struct {
	schema   json.RawMessage
	compiled *kjsonschema.Schema
}

func (s schemaServiceImpl) GetRawResultsSchema() json.RawMessage {
	return s.schema
}

func (s schemaServiceImpl) ValidateRawResults(body []byte) error {
	if !json.Valid(body) {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
		}
	}
	result := s.compiled.ValidateJSON(body)
	if result.IsValid() {
		return nil
	}
	messages := make([]string, 0, len(result.Errors))
	for path, evalErr := range result.Errors {
		messages = append(messages, fmt.Sprintf("%s: %v", path, evalErr))
	}
	sort.Strings(messages)
	return &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.InvalidRawResults,
		Message: exception.InvalidRawResultsMsg,
		Params:  map[string]interface{}{"errors": strings.Join(messages, "; ")},
	}
}
