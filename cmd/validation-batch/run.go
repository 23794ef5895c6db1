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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Netcracker/qubership-validation-dashboard/client"
	"github.com/Netcracker/qubership-validation-dashboard/db"
	"github.com/Netcracker/qubership-validation-dashboard/repository"
	"github.com/Netcracker/qubership-validation-dashboard/secctx"
	"github.com/Netcracker/qubership-validation-dashboard/service"
	"github.com/Netcracker/qubership-validation-dashboard/view"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var errBatchHasErrors = errors.New("batch finished with errors")

type runOptions struct {
	planFile     string
	regions      []string
	productTypes []string
	exchanges    []string
	persist      bool
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Validate every region, product type and exchange of a plan",
		Example: `  validation-batch run --regions APAC,EMEA --product-types stock,etf
  validation-batch run --regions APAC --product-types stock --exchanges APAC=XHKG;XSES --persist
  validation-batch run --plan plan.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := buildPlan(cmd, opts)
			if err != nil {
				return err
			}
			return runBatch(cmd, v, plan)
		},
	}
	cmd.Flags().StringVar(&opts.planFile, "plan", "", "yaml plan file")
	cmd.Flags().StringSliceVar(&opts.regions, "regions", nil, "regions to validate")
	cmd.Flags().StringSliceVar(&opts.productTypes, "product-types", nil, "product types to validate")
	cmd.Flags().StringSliceVar(&opts.exchanges, "exchanges", nil, "exchanges as REGION=EX1;EX2 or EX applied to every region; listed from the API when omitted")
	cmd.Flags().BoolVar(&opts.persist, "persist", false, "store runs in the database")
	return cmd
}

// buildPlan reads the plan file, if any, and lets flags override its fields.
func buildPlan(cmd *cobra.Command, opts *runOptions) (view.BatchPlan, error) {
	var plan view.BatchPlan
	if opts.planFile != "" {
		data, err := os.ReadFile(opts.planFile)
		if err != nil {
			return plan, fmt.Errorf("failed to read plan: %w", err)
		}
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return plan, fmt.Errorf("failed to parse plan %s: %w", opts.planFile, err)
		}
	}
	flags := cmd.Flags()
	if flags.Changed("regions") {
		plan.Regions = opts.regions
	}
	if flags.Changed("product-types") {
		plan.ProductTypes = opts.productTypes
	}
	if flags.Changed("exchanges") {
		exchanges, err := parseExchanges(opts.exchanges, plan.Regions)
		if err != nil {
			return plan, err
		}
		plan.Exchanges = exchanges
	}
	if flags.Changed("persist") {
		plan.Persist = opts.persist
	}
	return plan, nil
}

func parseExchanges(values []string, regions []string) (map[string][]string, error) {
	exchanges := make(map[string][]string)
	for _, value := range values {
		region, list, found := strings.Cut(value, "=")
		if !found {
			for _, r := range regions {
				exchanges[r] = append(exchanges[r], strings.TrimSpace(value))
			}
			continue
		}
		region = strings.TrimSpace(region)
		if region == "" {
			return nil, fmt.Errorf("exchanges entry '%s' has no region", value)
		}
		for _, exchange := range strings.Split(list, ";") {
			if exchange = strings.TrimSpace(exchange); exchange != "" {
				exchanges[region] = append(exchanges[region], exchange)
			}
		}
	}
	return exchanges, nil
}

func runBatch(cmd *cobra.Command, v *viper.Viper, plan view.BatchPlan) error {
	if v.GetString(keyApiUrl) == "" {
		return fmt.Errorf("validation API url is not set: use --api-url or %s_API_URL", envPrefix)
	}
	ctx := secctx.MakeSysadminContext(cmd.Context())

	var runRepository repository.ValidationRunRepository
	if plan.Persist {
		if v.GetString(keyDbHost) == "" {
			return fmt.Errorf("persist requires a database: set %s_DB_HOST", envPrefix)
		}
		cp := db.NewConnectionProvider(db.DbCredentials{
			Host:     v.GetString(keyDbHost),
			Port:     v.GetInt(keyDbPort),
			Database: v.GetString(keyDbName),
			Username: v.GetString(keyDbUsername),
			Password: v.GetString(keyDbPassword),
			SSLMode:  v.GetString(keyDbSSLMode),
		})
		defer cp.Close()
		if err := db.InitSchema(ctx, cp); err != nil {
			return fmt.Errorf("failed to init db schema: %w", err)
		}
		runRepository = repository.NewValidationRunRepository(cp)
	}

	combinedRules, err := service.LoadCombinedRules(v.GetString(keyCombinedRules))
	if err != nil {
		return err
	}
	apiClient := client.NewValidationApiClient(v.GetString(keyApiUrl), v.GetString(keyApiKey), v.GetDuration(keyApiTimeout))
	validationService := service.NewValidationService(apiClient, runRepository, service.NewCombinedRuleService(combinedRules))
	batchService := service.NewBatchService(apiClient, validationService)

	report, err := batchService.RunBatch(ctx, plan)
	if err != nil {
		return err
	}
	if err := printJson(cmd, report); err != nil {
		return err
	}
	if report.HasErrors() {
		log.Errorf("%d of %d validations failed to run", report.Errors, len(report.Items))
		return errBatchHasErrors
	}
	return nil
}

func printJson(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
