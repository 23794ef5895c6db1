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
	"fmt"
	"io"
	"os"

	"github.com/Netcracker/qubership-validation-dashboard/service"
	"github.com/spf13/cobra"
)

func newTableCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Normalize a saved validation API response into a results table",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			schemaService, err := service.NewSchemaService()
			if err != nil {
				return err
			}
			table, err := service.NewTableService(schemaService).BuildTableFromJSON(body)
			if err != nil {
				return err
			}
			return printJson(cmd, table)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "validation API response, - for stdin")
	return cmd
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return data, nil
}
