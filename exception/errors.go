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
	"fmt"
	"strings"
)

type CustomError struct {
	Status  int                    `json:"status"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Debug   string                 `json:"debug,omitempty"`
}

func (c CustomError) Error() string {
	msg := c.Message
	for k, v := range c.Params {
		//todo make smart replace (e.g. now it replaces $projectId if we have $project in params)
		msg = strings.ReplaceAll(msg, "$"+k, fmt.Sprintf("%v", v))
	}
	return msg
}

const NoValidationApiAccess = "200"
const NoValidationApiAccessMsg = "No access to validation API with code: $code. Probably incorrect configuration: api key."

const ValidationApiFailure = "201"
const ValidationApiFailureMsg = "Validation API request failed with code: $code"

const InvalidParameterValue = "9"
const InvalidParameterValueMsg = "Value '$value' is not allowed for parameter $param"

const BadRequestBody = "10"
const BadRequestBodyMsg = "Failed to decode body"

const RequestBodyTooLarge = "11"
const RequestBodyTooLargeMsg = "Request body exceeds the limit of $limit bytes"

const RequiredParamsMissing = "15"
const RequiredParamsMissingMsg = "Required parameters are missing: $params"

const InvalidRawResults = "16"
const InvalidRawResultsMsg = "Raw results do not match the schema: $errors"

const EntityNotFound = "100"
const EntityNotFoundMsg = "$entity with id $id is not found"

const PersistenceDisabled = "300"
const PersistenceDisabledMsg = "Validation history is not available: persistence is disabled"

const CombinedRulesNotLoaded = "310"
const CombinedRulesNotLoadedMsg = "Failed to load combined rules from $path"
