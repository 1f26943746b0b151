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
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/bomcopy/cmd/bomcopy/opts"
	"github.com/walteh/bomcopy/pkg/log"
	"github.com/walteh/bomcopy/pkg/match"
	"github.com/walteh/bomcopy/pkg/queue"
	"github.com/walteh/bomcopy/pkg/search"
	"github.com/walteh/bomcopy/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔍 selectFlags narrow a search pass down to the items a command works on
type selectFlags struct {
	material string
	filter   string
	missing  bool
}

func addPassFlags(cmd *cobra.Command, flags *opts.PassFlags) {
	cmd.Flags().StringVarP(&flags.BomPath, "bom", "b", "", "BOM file (.xlsx or .csv); defaults to the last one used")
	cmd.Flags().StringVarP(&flags.SourceDirectory, "source", "s", "", "source directory to search; defaults to the configured one")
}

func addSelectFlags(cmd *cobra.Command, flags *selectFlags) {
	cmd.Flags().StringVarP(&flags.material, "material", "m", "", "only items with this exact material ("+queue.AllMaterials+" for every material)")
	cmd.Flags().StringVarP(&flags.filter, "filter", "f", "", "only items whose file name or material contains this text")
}

// apply runs the material filter, then the text search
func (f selectFlags) apply(items []match.Item) []match.Item {
	items = queue.FilterByMaterial(items, f.material)
	items = queue.Search(items, f.filter)
	if f.missing {
		items = queue.Missing(items)
	}
	return items
}

// runPass runs a search pass and reports an unavailable source directory to the console and the log file
func runPass(ctx context.Context, out io.Writer, rootOpts *opts.RootOpts, flags opts.PassFlags) (*search.Pass, search.Request, error) {
	req := rootOpts.Request(flags)
	if req.BomPath == "" {
		return nil, req, errors.New("no BOM file given; pass --bom")
	}

	pass, err := search.Run(ctx, req)
	if err != nil {
		return nil, req, errors.Errorf("searching: %w", err)
	}

	if pass.IndexErr != nil {
		log.FromContext(ctx).WithConsole(out).Warning(pass.IndexErr.Error())
	}
	pterm.Info.WithWriter(out).WithPrefix(pterm.Prefix{Text: "📦"}).Println(status.FormatStats(pass.Stats))

	return pass, req, nil
}
