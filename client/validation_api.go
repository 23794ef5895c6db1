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

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Netcracker/qubership-validation-dashboard/exception"
	"github.com/Netcracker/qubership-validation-dashboard/view"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"gopkg.in/resty.v1"
)

const maxLoggedBody = 512

type ValidationApiClient interface {
	// Validate returns the raw results of one slice together with the response body they were read from.
	Validate(ctx context.Context, region, productType, exchange string) ([]view.RawResult, []byte, error)
	ListExchanges(ctx context.Context, region string) ([]string, error)
}

func NewValidationApiClient(apiUrl, apiKey string, timeout time.Duration) ValidationApiClient {
	apiUrl = strings.TrimSuffix(apiUrl, "/")
	apiHost := ""
	parsedUrl, err := url.Parse(apiUrl)
	if err != nil {
		log.Errorf("Can't parse validation API url: %v", err)
	} else {
		apiHost = parsedUrl.Hostname()
	}

	cl := http.Client{Timeout: timeout}
	client := resty.NewWithClient(&cl)
	if apiHost != "" {
		client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(apiHost))
	}
	return &validationApiClientImpl{apiUrl: apiUrl, apiKey: apiKey, client: client}
}

type validationApiClientImpl struct {
	apiUrl string
	apiKey string
	client *resty.Client
}

func (v validationApiClientImpl) Validate(ctx context.Context, region, productType, exchange string) ([]view.RawResult, []byte, error) {
	req := v.makeRequest(ctx)
	req.SetQueryParam("region", region)
	req.SetQueryParam("productType", productType)
	req.SetQueryParam("exchange", exchange)

	resp, err := req.Get(fmt.Sprintf("%s/api/v1/validate", v.apiUrl))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to validate region %s, product type %s, exchange %s: %w", region, productType, exchange, err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, nil, err
	}

	results, err := ParseRawResults(resp.Body())
	if err != nil {
		return nil, nil, &exception.CustomError{
			Status:  http.StatusBadGateway,
			Code:    exception.ValidationApiFailure,
			Message: exception.ValidationApiFailureMsg,
			Params:  map[string]interface{}{"code": strconv.Itoa(resp.StatusCode())},
			Debug:   err.Error(),
		}
	}
	return results, resp.Body(), nil
}

func (v validationApiClientImpl) ListExchanges(ctx context.Context, region string) ([]string, error) {
	req := v.makeRequest(ctx)
	resp, err := req.Get(fmt.Sprintf("%s/api/v1/regions/%s/exchanges", v.apiUrl, url.PathEscape(region)))
	if err != nil {
		return nil, fmt.Errorf("failed to list exchanges of region %s: %w", region, err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(resp.Body())
	if parsed.IsObject() {
		parsed = parsed.Get("exchanges")
	}
	if !parsed.IsArray() {
		return nil, fmt.Errorf("unexpected exchanges response for region %s: %s", region, truncate(resp.Body()))
	}
	exchanges := make([]string, 0)
	for _, item := range parsed.Array() {
		if name := item.String(); name != "" {
			exchanges = append(exchanges, name)
		}
	}
	return exchanges, nil
}

func (v validationApiClientImpl) makeRequest(ctx context.Context) *resty.Request {
	req := v.client.R()
	req.SetContext(ctx)
	req.SetHeader("Accept", "application/json")
	if v.apiKey != "" {
		req.SetHeader("api-key", v.apiKey)
	}
	return req
}

// ParseRawResults reads a validation API body: either a bare array of results or an object with a "results" array.
func ParseRawResults(body []byte) ([]view.RawResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response is not valid JSON: %s", truncate(body))
	}
	items := gjson.ParseBytes(body)
	if items.IsObject() {
		items = items.Get("results")
	}
	if !items.IsArray() {
		return nil, fmt.Errorf("response holds no results array: %s", truncate(body))
	}
	results := make([]view.RawResult, 0)
	if err := json.Unmarshal([]byte(items.Raw), &results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return results, nil
}

func checkResponse(resp *resty.Response) error {
	if err := checkUnauthorized(resp); err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return &exception.CustomError{
			Status:  http.StatusBadGateway,
			Code:    exception.ValidationApiFailure,
			Message: exception.ValidationApiFailureMsg,
			Params:  map[string]interface{}{"code": strconv.Itoa(resp.StatusCode())},
			Debug:   truncate(resp.Body()),
		}
	}
	return nil
}

func checkUnauthorized(resp *resty.Response) error {
	if resp != nil && (resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden) {
		log.Errorf("Incorrect validation API key detected!")
		return &exception.CustomError{
			Status:  http.StatusFailedDependency,
			Code:    exception.NoValidationApiAccess,
			Message: exception.NoValidationApiAccessMsg,
			Params:  map[string]interface{}{"code": strconv.Itoa(resp.StatusCode())},
		}
	}
	return nil
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
