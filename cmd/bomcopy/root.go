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

package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/bomcopy/cmd/bomcopy/commands"
	"github.com/walteh/bomcopy/cmd/bomcopy/opts"
	"github.com/walteh/bomcopy/pkg/config"
	"github.com/walteh/bomcopy/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootCmd creates the root command with every subcommand attached
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "bomcopy",
		Short: "Copy the drawing files a bill of materials names",
		Long: `bomcopy reads part names from a BOM spreadsheet, finds the matching files
(and their suffixed variants) anywhere below a source directory, and copies the
ones you select into a target directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd)

			if err := loadRootOpts(cmd, rootOpts); err != nil {
				return err
			}

			logger := log.New(os.Stdout, *zerolog.Ctx(ctx), log.NewSink(rootOpts.Config.LogFile))
			cmd.SetContext(log.NewContext(ctx, logger))
			return nil
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(
		commands.NewSearchCmd(rootOpts),
		commands.NewMaterialsCmd(rootOpts),
		commands.NewCopyCmd(rootOpts),
		commands.NewConfigCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// loadRootOpts fills in the shared options from flags
func loadRootOpts(cmd *cobra.Command, rootOpts *opts.RootOpts) error {
	rootOpts.ConfigPath = configFile

	if cmd.Annotations[opts.SkipConfigAnnotation] == "true" {
		rootOpts.Config = config.Default()
		return nil
	}

	cfg, err := config.Load(cmd.Context(), configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	rootOpts.Config = cfg
	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "bomcopy.yaml", "config file path (.yaml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags and puts the logger on the command context
func setupLogging(cmd *cobra.Command) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)
	return ctx
}
