// Copyright 2025 walteh LLC
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

package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/bomcopy/cmd/bomcopy/opts"
	"github.com/walteh/bomcopy/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewConfigCmd creates the config command group
func NewConfigCmd(rootOpts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the configuration file",
	}

	cmd.AddCommand(newConfigInitCmd(rootOpts), newConfigShowCmd(rootOpts))
	return cmd
}

func newConfigInitCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a configuration file with the default settings",
		Annotations: map[string]string{opts.SkipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.ConfigPath
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Errorf("%s already exists; pass --force to replace it", path)
			}

			if err := config.Save(cmd.Context(), path, config.Default()); err != nil {
				return errors.Errorf("writing config: %w", err)
			}

			pterm.Success.WithWriter(cmd.OutOrStdout()).WithPrefix(pterm.Prefix{Text: "✅"}).Printfln("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace an existing file")
	return cmd
}

func newConfigShowCmd(rootOpts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := config.GetParser(rootOpts.ConfigPath)
			if p == nil {
				return errors.Errorf("no parser found for file: %s", rootOpts.ConfigPath)
			}

			data, err := p.Encode(rootOpts.Config)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
