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

package view

// CombinedRule groups expectations that must all pass for an instrument slice to be tradable.
type CombinedRule struct {
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Members     []CombinedRuleMember `json:"members" yaml:"members"`
}

// CombinedRuleMember matches results by expectation type (either naming style) and, when set, by column.
type CombinedRuleMember struct {
	Expectation string `json:"expectation" yaml:"expectation"`
	Column      string `json:"column,omitempty" yaml:"column,omitempty"`
}

func (m CombinedRuleMember) String() string {
	if m.Column == "" {
		return m.Expectation
	}
	return m.Expectation + " (" + m.Column + ")"
}

type CombinedRules struct {
	Rules []CombinedRule `json:"rules" yaml:"rules"`
}

type CombinedRuleOutcome struct {
	Name     string   `json:"name"`
	Tradable bool     `json:"tradable"`
	Failed   []string `json:"failed"`
	Missing  []string `json:"missing"`
}
