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
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "VALIDATION"

// Config keys; env variables are VALIDATION_ + upper-cased key with dots replaced by underscores.
const (
	keyLogLevel   = "log.level"
	keyApiUrl     = "api.url"
	keyApiKey     = "api.key"
	keyApiTimeout = "api.timeout"
	keyDbHost     = "db.host"
	keyDbPort     = "db.port"
	keyDbName     = "db.name"
	keyDbUsername = "db.username"
	keyDbPassword = "db.password"
	keyDbSSLMode  = "db.sslmode"

	keyCombinedRules = "combined_rules"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "validation-batch",
		Short:         "Runs instrument data validations and normalizes their results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}
			return initializeLogger(cmd, v)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./validation-batch.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "validation API url")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")
	cobra.CheckErr(v.BindPFlag(keyApiUrl, rootCmd.PersistentFlags().Lookup("api-url")))
	cobra.CheckErr(v.BindPFlag(keyLogLevel, rootCmd.PersistentFlags().Lookup("log-level")))

	v.SetDefault(keyApiTimeout, 60*time.Second)
	v.SetDefault(keyDbPort, 5432)
	v.SetDefault(keyDbName, "validation_dashboard")
	v.SetDefault(keyDbSSLMode, "disable")

	rootCmd.AddCommand(newRunCmd(v))
	rootCmd.AddCommand(newTableCmd())

	return rootCmd
}

func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("validation-batch")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func initializeLogger(cmd *cobra.Command, v *viper.Viper) error {
	level, err := log.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}
