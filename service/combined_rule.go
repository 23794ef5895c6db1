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
	"fmt"
	"net/http"
	"os"

	"github.com/Netcracker/qubership-validation-dashboard/exception"
	"github.com/Netcracker/qubership-validation-dashboard/normalizer"
	"github.com/Netcracker/qubership-validation-dashboard/view"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type CombinedRuleService interface {
	ListRules() []view.CombinedRule
	Evaluate(results []view.RawResult) []view.CombinedRuleOutcome
}

func NewCombinedRuleService(rules []view.CombinedRule) CombinedRuleService {
	if rules == nil {
		rules = []view.CombinedRule{}
	}
	return &combinedRuleServiceImpl{rules: rules}
}

// LoadCombinedRules reads rule definitions from a yaml file. An empty path means no rules.
func LoadCombinedRules(path string) ([]view.CombinedRule, error) {
	if path == "" {
		log.Info("Combined rules path is not set, no combined rules will be evaluated")
		return []view.CombinedRule{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusInternalServerError,
			Code:    exception.CombinedRulesNotLoaded,
			Message: exception.CombinedRulesNotLoadedMsg,
			Params:  map[string]interface{}{"path": path},
			Debug:   err.Error(),
		}
	}
	return ParseCombinedRules(data)
}

func ParseCombinedRules(data []byte) ([]view.CombinedRule, error) {
	var rules view.CombinedRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse combined rules: %w", err)
	}
	names := make(map[string]bool)
	for _, rule := range rules.Rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("combined rule without name")
		}
		if names[rule.Name] {
			return nil, fmt.Errorf("duplicate combined rule %s", rule.Name)
		}
		names[rule.Name] = true
		if len(rule.Members) == 0 {
			return nil, fmt.Errorf("combined rule %s has no members", rule.Name)
		}
		for _, member := range rule.Members {
			if member.Expectation == "" {
				return nil, fmt.Errorf("combined rule %s has a member without expectation", rule.Name)
			}
		}
	}
	if rules.Rules == nil {
		return []view.CombinedRule{}, nil
	}
	return rules.Rules, nil
}

type combinedRuleServiceImpl struct {
	rules []view.CombinedRule
}

func (c combinedRuleServiceImpl) ListRules() []view.CombinedRule {
	return append([]view.CombinedRule{}, c.rules...)
}

// Evaluate classifies every rule: tradable iff each member matches at least one result and all matching results passed.
func (c combinedRuleServiceImpl) Evaluate(results []view.RawResult) []view.CombinedRuleOutcome {
	outcomes := make([]view.CombinedRuleOutcome, 0, len(c.rules))
	for _, rule := range c.rules {
		outcome := view.CombinedRuleOutcome{
			Name:    rule.Name,
			Failed:  []string{},
			Missing: []string{},
		}
		for _, member := range rule.Members {
			matched, passed := evaluateMember(member, results)
			if !matched {
				outcome.Missing = append(outcome.Missing, member.String())
			} else if !passed {
				outcome.Failed = append(outcome.Failed, member.String())
			}
		}
		outcome.Tradable = len(outcome.Failed) == 0 && len(outcome.Missing) == 0
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func evaluateMember(member view.CombinedRuleMember, results []view.RawResult) (bool, bool) {
	expectation := normalizer.ExpectationKey(member.Expectation)
	matched, passed := false, true
	for _, result := range results {
		if result.ExpectationType == nil || normalizer.ExpectationKey(*result.ExpectationType) != expectation {
			continue
		}
		if member.Column != "" && (result.Column == nil || *result.Column != member.Column) {
			continue
		}
		matched = true
		passed = passed && result.Success
	}
	return matched, passed
}
