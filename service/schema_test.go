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
	"errors"
	"net/http"
	"testing"

	"github.com/Netcracker/qubership-validation-dashboard/exception"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaService(t *testing.T) {
	svc, err := NewSchemaService()
	require.NoError(t, err)

	t.Run("schema document", func(t *testing.T) {
		var schema map[string]interface{}
		require.NoError(t, json.Unmarshal(svc.GetRawResultsSchema(), &schema))
		assert.Equal(t, draft2020, schema["$schema"])
		assert.Len(t, schema["oneOf"], 2)
	})

	valid := []string{
		`[]`,
		`[{"success": true}]`,
		`[{"success": false, "column": "RIC", "expectation_type": "ExpectColumnValuesToBeUnique", "element_count": 10, "result": "{'element_count': 10}"}]`,
		`[{"success": true, "column": null, "result": {"element_count": 10}, "extra": 1}]`,
		`{"results": [{"success": true, "result": null}]}`,
	}
	for _, body := range valid {
		t.Run(body, func(t *testing.T) {
			assert.NoError(t, svc.ValidateRawResults([]byte(body)))
		})
	}

	invalid := []string{
		`[{"column": "RIC"}]`,
		`[{"success": "yes"}]`,
		`[{"success": true, "element_count": "ten"}]`,
		`[{"success": true, "result": 5}]`,
		`{"rows": []}`,
		`"text"`,
	}
	for _, body := range invalid {
		t.Run(body, func(t *testing.T) {
			err := svc.ValidateRawResults([]byte(body))
			var customErr *exception.CustomError
			require.True(t, errors.As(err, &customErr))
			assert.Equal(t, http.StatusBadRequest, customErr.Status)
			assert.Equal(t, exception.InvalidRawResults, customErr.Code)
		})
	}

	t.Run("not json", func(t *testing.T) {
		err := svc.ValidateRawResults([]byte(`[{`))
		var customErr *exception.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, exception.BadRequestBody, customErr.Code)
	})
}

func TestTableService(t *testing.T) {
	schemaService, err := NewSchemaService()
	require.NoError(t, err)
	svc := NewTableService(schemaService)

	table, err := svc.BuildTableFromJSON([]byte(`{"results": [{"success": true, "column": "RIC", "expectation_type": "ExpectColumnValuesToBeUnique", "result": "{'element_count': 100}"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "column", "expectationType", "element_count"}, table.Headers)
	require.Len(t, table.Data, 1)

	_, err = svc.BuildTableFromJSON([]byte(`[{"success": 1}]`))
	assert.Error(t, err)
}
