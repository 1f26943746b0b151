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

package opts

import (
	"context"

	"github.com/walteh/bomcopy/pkg/config"
	"github.com/walteh/bomcopy/pkg/search"
)

// SkipConfigAnnotation marks commands that run on the default config instead of loading
// the config file, so they keep working when that file is broken.
const SkipConfigAnnotation = "bomcopy/skip-config"

// RootOpts contains shared options used by all commands. It is filled in before any
// command runs.
type RootOpts struct {
	ConfigPath string
	Config     *config.Config
}

// 🔍 PassFlags are the search inputs every command that reads a BOM accepts.
// Empty values fall back to the configuration.
type PassFlags struct {
	BomPath         string
	SourceDirectory string
}

// Request builds a search request from flags and configuration.
func (o *RootOpts) Request(flags PassFlags) search.Request {
	req := search.Request{
		BomPath:         o.Config.LastBomFile,
		SourceDirectory: o.Config.SourceDirectory,
		Layout:          o.Config.Layout(),
		Rule:            o.Config.NamingRule(),
		Index:           o.Config.IndexOptions(),
	}
	if flags.BomPath != "" {
		req.BomPath = flags.BomPath
	}
	if flags.SourceDirectory != "" {
		req.SourceDirectory = flags.SourceDirectory
	}
	return req
}

// 💾 Remember stores the paths of a successful run and saves the configuration.
func (o *RootOpts) Remember(ctx context.Context, req search.Request, target string) error {
	o.Config.LastBomFile = req.BomPath
	o.Config.SourceDirectory = req.SourceDirectory
	if target != "" {
		o.Config.TargetDirectory = target
	}
	return config.Save(ctx, o.ConfigPath, o.Config)
}
