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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/bomcopy/cmd/bomcopy/opts"
	"github.com/walteh/bomcopy/pkg/status"
)

// NewSearchCmd creates the search command
func NewSearchCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var (
		pass opts.PassFlags
		sel  selectFlags
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List the files a BOM resolves to",
		Long: `Search reads the BOM, scans the source directory once and prints one line per
resolved file. A BOM row can resolve to its normal file, its suffixed variant, both,
or neither; rows with no file are listed as not found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "search").Logger().WithContext(cmd.Context())
			out := cmd.OutOrStdout()

			result, _, err := runPass(ctx, out, rootOpts, pass)
			if err != nil {
				return err
			}

			return status.WriteItems(out, sel.apply(result.Items))
		},
	}

	addPassFlags(cmd, &pass)
	addSelectFlags(cmd, &sel)
	cmd.Flags().BoolVar(&sel.missing, "missing", false, "only items with no file in the source directory")

	return cmd
}
