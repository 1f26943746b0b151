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

	"github.com/spf13/cobra"
	"github.com/walteh/bomcopy/cmd/bomcopy/opts"
	"github.com/walteh/bomcopy/pkg/queue"
)

// NewMaterialsCmd creates the materials command
func NewMaterialsCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var pass opts.PassFlags

	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List the distinct materials of a BOM",
		Long: `Materials prints the values accepted by --material: the "(All)" option
followed by every distinct material of the resolved items, sorted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			result, _, err := runPass(cmd.Context(), out, rootOpts, pass)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, queue.AllMaterials)
			for _, m := range queue.Materials(result.Items) {
				fmt.Fprintln(out, m)
			}
			return nil
		},
	}

	addPassFlags(cmd, &pass)
	return cmd
}
