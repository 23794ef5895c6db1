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

package exception

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomError(t *testing.T) {
	err := &CustomError{
		Status:  http.StatusNotFound,
		Code:    EntityNotFound,
		Message: EntityNotFoundMsg,
		Params:  map[string]interface{}{"entity": "Validation run", "id": "run-1"},
	}
	assert.Equal(t, "Validation run with id run-1 is not found", err.Error())

	wrapped := fmt.Errorf("lookup failed: %w", err)
	var customErr *CustomError
	require.True(t, errors.As(wrapped, &customErr))
	assert.Equal(t, http.StatusNotFound, customErr.Status)

	noParams := CustomError{Message: PersistenceDisabledMsg}
	assert.Equal(t, PersistenceDisabledMsg, noParams.Error())
}
