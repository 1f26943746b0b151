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

// Package search runs one search pass: read a BOM, index a source tree and resolve
// every entry to the files it names.
package search

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/bomcopy/pkg/bom"
	"github.com/walteh/bomcopy/pkg/index"
	"github.com/walteh/bomcopy/pkg/match"
	"github.com/walteh/bomcopy/pkg/naming"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔧 Request describes a search pass.
type Request struct {
	BomPath         string
	SourceDirectory string
	Layout          bom.Layout
	Rule            naming.Rule
	Index           index.Options
}

// 📦 Pass is the outcome of a search pass.
type Pass struct {
	Entries []bom.Entry
	Items   []match.Item
	Stats   match.Stats
	Index   *index.Index

	// IndexErr is set when the source directory could not be scanned. The pass still
	// succeeds and every item is reported as not found.
	IndexErr error
}

// 🏃 Run loads the BOM and scans the source directory concurrently, then expands the
// entries against the index.
//
// A BOM that cannot be read fails the pass. An unavailable source directory does not:
// it is recorded in Pass.IndexErr.
func Run(ctx context.Context, req Request) (*Pass, error) {
	logger := zerolog.Ctx(ctx)

	if req.BomPath == "" {
		return nil, errors.New("no BOM file given")
	}

	pass := &Pass{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		entries, err := bom.Load(gctx, req.BomPath, req.Layout)
		if err != nil {
			return err
		}
		pass.Entries = entries
		return nil
	})

	g.Go(func() error {
		idx, err := index.Build(gctx, req.SourceDirectory, req.Index)
		if errors.Is(err, index.ErrDirectoryUnavailable) {
			logger.Warn().Err(err).Str("dir", req.SourceDirectory).Msg("source directory unavailable, nothing will match")
			pass.IndexErr = err
			err = nil
		}
		if err != nil {
			return errors.Errorf("indexing source directory: %w", err)
		}
		pass.Index = idx
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	pass.Items, pass.Stats = match.NewExpander(pass.Index).Expand(ctx, pass.Entries, req.Rule)
	return pass, nil
}
