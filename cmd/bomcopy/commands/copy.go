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
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/bomcopy/cmd/bomcopy/opts"
	"github.com/walteh/bomcopy/pkg/log"
	"github.com/walteh/bomcopy/pkg/match"
	"github.com/walteh/bomcopy/pkg/operation"
	"github.com/walteh/bomcopy/pkg/queue"
	"github.com/walteh/bomcopy/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewCopyCmd creates the copy command
func NewCopyCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		pass       opts.PassFlags
		sel        selectFlags
		target     string
		exclude    []string
		overwrite  bool
		yes        bool
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the selected files into the target directory",
		Long: `Copy runs a search pass, queues the selected items and copies the ones that
were found into the target directory.
It will:
1. Queue every item that passes --material and --filter, minus --exclude
2. Ask for confirmation (skip with --yes)
3. Copy in BOM order, skipping existing targets unless overwrite is on
4. Append the session to the log file and print a summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "copy").Logger().WithContext(cmd.Context())
			out := cmd.OutOrStdout()
			cfg := rootOpts.Config

			if target == "" {
				target = cfg.TargetDirectory
			}
			if !cmd.Flags().Changed("overwrite") {
				overwrite = cfg.OverwriteExisting
			}

			result, req, err := runPass(ctx, out, rootOpts, pass)
			if err != nil {
				return err
			}

			q := queue.New()
			q.Add(sel.apply(result.Items)...)
			q.Remove(excludedIDs(q.Items(), exclude)...)

			if q.Len() == 0 {
				pterm.Info.WithWriter(out).Println("No files in queue.")
				return nil
			}
			if target == "" {
				return errors.Errorf("%w; pass --target", operation.ErrNoDestination)
			}

			tally := queue.Summary(q.Items())
			if tally.Found == 0 {
				pterm.Warning.WithWriter(out).Println("None of the queued files were found in the source directory.")
				return nil
			}
			found := queue.Found(q.Items())

			preflight := status.FormatPreflight(tally.Found, tally.Missing(), target)
			if !yes {
				ok, err := pterm.DefaultInteractiveConfirm.WithDefaultText(preflight).Show()
				if err != nil {
					return errors.Errorf("asking for confirmation: %w", err)
				}
				if !ok {
					pterm.Info.WithWriter(out).Println("Copy cancelled.")
					return nil
				}
			} else {
				pterm.Info.WithWriter(out).Println(preflight)
			}

			if err := rootOpts.Remember(ctx, req, target); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("path", rootOpts.ConfigPath).Msg("saving directories to config")
			}

			events := log.FromContext(ctx)
			copyOpts := operation.Options{Events: events}

			var bar *pterm.ProgressbarPrinter
			if noProgress {
				copyOpts.Progress = func(current, total int, name string) {
					fmt.Fprintln(out, status.FormatProgress(current, total))
				}
			} else {
				bar, err = pterm.DefaultProgressbar.
					WithTotal(len(found)).
					WithTitle("Copying").
					WithWriter(out).
					Start()
				if err != nil {
					return errors.Errorf("starting progress bar: %w", err)
				}
				// the bar owns the console while it runs
				copyOpts.Events = events.WithConsole(io.Discard)
				copyOpts.Progress = func(current, total int, name string) {
					bar.UpdateTitle(name)
					bar.Increment()
				}
			}

			res, err := operation.NewCopier(copyOpts).Copy(ctx, found, target, overwrite)
			if bar != nil {
				_, _ = bar.Stop()
			}
			if err != nil {
				return errors.Errorf("copying: %w", err)
			}

			summary := status.FormatSummary(res, cfg.LogFile)
			if res.Errors > 0 || res.Cancelled > 0 {
				pterm.Warning.WithWriter(out).Println(summary)
				return errors.Errorf("%s", status.FormatStatusLine(res))
			}

			pterm.Success.WithWriter(out).Println(summary)
			q.Clear()
			zerolog.Ctx(ctx).Debug().Msg("queue cleared")
			return nil
		},
	}

	addPassFlags(cmd, &pass)
	addSelectFlags(cmd, &sel)
	cmd.Flags().StringVarP(&target, "target", "t", "", "target directory; defaults to the configured one")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "target file names to leave out of the queue (repeatable, case-insensitive)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", true, "replace files that already exist in the target directory; defaults to the configured value")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "copy without asking for confirmation")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "print a line per file and a running count instead of a progress bar")

	return cmd
}

// excludedIDs returns the IDs of queued items whose target name matches one of names
func excludedIDs(items []match.Item, names []string) []string {
	if len(names) == 0 {
		return nil
	}
	var ids []string
	for _, it := range items {
		for _, name := range names {
			if strings.EqualFold(it.TargetFileName, strings.TrimSpace(name)) {
				ids = append(ids, it.ID)
				break
			}
		}
	}
	return ids
}
