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

// Package index builds a case-insensitive filename index of a source directory tree.
//
// An Index is built by a single recursive scan and is read-only afterwards. When two
// files share a name (ignoring case) the first one seen during the walk is kept. Walk
// order comes from the filesystem, so which duplicate wins is not guaranteed to be the
// same on every platform.
package index

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/cases"
)

// ErrDirectoryUnavailable is returned when the scan root is missing or unreadable.
// It is not fatal: Build still returns a usable, empty index.
var ErrDirectoryUnavailable = errors.Base("source directory unavailable")

// 🔧 Options tunes a scan.
type Options struct {
	// IgnorePatterns are doublestar globs, relative to the root and slash separated,
	// for files and directories to leave out of the index.
	IgnorePatterns []string
}

// 🗂️ Index maps folded filenames to the absolute path of the first file seen with that name.
type Index struct {
	root       string
	paths      map[string]string
	duplicates int
}

// Empty returns an index with no entries.
func Empty() *Index {
	return &Index{paths: map[string]string{}}
}

func key(name string) string {
	// a Caser keeps state, so one per call
	return cases.Fold().String(name)
}

// 🔍 Build walks root recursively and indexes every regular file below it.
//
// If root does not exist, is not a directory, or cannot be read, Build returns an empty
// index and an error wrapping ErrDirectoryUnavailable. Unreadable subdirectories are
// skipped and logged.
func Build(ctx context.Context, root string, opts Options) (*Index, error) {
	logger := zerolog.Ctx(ctx)

	for _, pattern := range opts.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return Empty(), errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	if root == "" {
		return Empty(), errors.Errorf("%w: no directory given", ErrDirectoryUnavailable)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Empty(), errors.Errorf("%w: resolving %s: %s", ErrDirectoryUnavailable, root, err.Error())
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return Empty(), errors.Errorf("%w: %s", ErrDirectoryUnavailable, err.Error())
	}
	if !info.IsDir() {
		return Empty(), errors.Errorf("%w: %s is not a directory", ErrDirectoryUnavailable, absRoot)
	}

	// WalkDir does not descend into a root that is itself a symlink
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return Empty(), errors.Errorf("%w: resolving %s: %s", ErrDirectoryUnavailable, root, err.Error())
	}

	idx := &Index{
		root:  absRoot,
		paths: make(map[string]string),
	}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if path == absRoot {
				return errors.Errorf("%w: %s", ErrDirectoryUnavailable, walkErr.Error())
			}
			logger.Warn().Err(walkErr).Str("path", path).Msg("skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != absRoot && idx.ignored(ctx, path, opts.IgnorePatterns) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		k := key(d.Name())
		if first, ok := idx.paths[k]; ok {
			idx.duplicates++
			logger.Debug().Str("kept", first).Str("discarded", path).Msg("duplicate filename")
			return nil
		}
		idx.paths[k] = path
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDirectoryUnavailable) {
			return Empty(), err
		}
		return Empty(), errors.Errorf("scanning %s: %w", absRoot, err)
	}

	logger.Debug().
		Str("root", absRoot).
		Int("files", len(idx.paths)).
		Int("duplicates", idx.duplicates).
		Msg("indexed source directory")

	return idx, nil
}

func (i *Index) ignored(ctx context.Context, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(i.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			zerolog.Ctx(ctx).Debug().Str("path", rel).Str("pattern", pattern).Msg("path ignored by pattern")
			return true
		}
	}
	return false
}

// Lookup returns the path indexed for name, ignoring case.
func (i *Index) Lookup(name string) (string, bool) {
	p, ok := i.paths[key(name)]
	return p, ok
}

// Len returns the number of distinct filenames.
func (i *Index) Len() int { return len(i.paths) }

// Duplicates returns how many files were discarded because their name was already indexed.
func (i *Index) Duplicates() int { return i.duplicates }

// Root returns the absolute scan root with symlinks resolved, empty for an empty index.
func (i *Index) Root() string { return i.root }
