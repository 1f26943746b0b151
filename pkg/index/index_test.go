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

package index_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/bomcopy/pkg/index"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0o644))
	}
}

// tempRoot returns a temp dir with symlinks resolved, the form Build reports paths in
func tempRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return root
}

func TestBuild(t *testing.T) {
	ctx := testContext(t)
	root := tempRoot(t)
	writeFiles(t, root,
		"1234-PART.dwg",
		"sub/deeper/1234-PARTFLO.dwg",
		"other/README.txt",
	)

	idx, err := index.Build(ctx, root, index.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 0, idx.Duplicates())

	p, ok := idx.Lookup("1234-part.DWG")
	require.True(t, ok, "lookup should ignore case")
	assert.Equal(t, filepath.Join(root, "1234-PART.dwg"), p)

	p, ok = idx.Lookup("1234-PARTFLO.dwg")
	require.True(t, ok, "nested files should be indexed")
	assert.Equal(t, filepath.Join(root, "sub", "deeper", "1234-PARTFLO.dwg"), p)
	assert.True(t, filepath.IsAbs(p), "paths should be absolute")

	_, ok = idx.Lookup("sub")
	assert.False(t, ok, "directories are not indexed")

	_, ok = idx.Lookup("missing.dwg")
	assert.False(t, ok)
}

func TestBuildDuplicatesKeepOne(t *testing.T) {
	ctx := testContext(t)
	root := tempRoot(t)
	writeFiles(t, root, "a/PART.dwg", "b/part.DWG")

	idx, err := index.Build(ctx, root, index.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, 1, idx.Duplicates())

	// which of the two wins depends on walk order
	p, ok := idx.Lookup("part.dwg")
	require.True(t, ok)
	assert.Contains(t, []string{
		filepath.Join(root, "a", "PART.dwg"),
		filepath.Join(root, "b", "part.DWG"),
	}, p)
}

func TestBuildSymlinkedRoot(t *testing.T) {
	ctx := testContext(t)
	base := tempRoot(t)
	linked := filepath.Join(base, "drawings")
	writeFiles(t, linked, "1234-PART.dwg", "sub/1234-PARTFLO.dwg", "skip/OLD.dwg")

	link := filepath.Join(base, "link")
	if err := os.Symlink(linked, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	idx, err := index.Build(ctx, link, index.Options{IgnorePatterns: []string{"skip/**"}})
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, linked, idx.Root())

	p, ok := idx.Lookup("1234-part.dwg")
	require.True(t, ok, "files under a linked root are indexed")
	assert.Equal(t, filepath.Join(linked, "1234-PART.dwg"), p)

	_, ok = idx.Lookup("1234-PARTFLO.dwg")
	assert.True(t, ok)
	_, ok = idx.Lookup("OLD.dwg")
	assert.False(t, ok, "ignore patterns are relative to the resolved root")
}

func TestBuildIgnorePatterns(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()
	writeFiles(t, root, "keep/PART.dwg", "archive/old/PART2.dwg", "tmp.bak")

	idx, err := index.Build(ctx, root, index.Options{IgnorePatterns: []string{"archive/**", "*.bak"}})
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
	_, ok := idx.Lookup("PART2.dwg")
	assert.False(t, ok)

	_, err = index.Build(ctx, root, index.Options{IgnorePatterns: []string{"[unterminated"}})
	require.Error(t, err)
}

func TestBuildUnavailable(t *testing.T) {
	ctx := testContext(t)
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	tests := []struct {
		name string
		root string
	}{
		{name: "missing", root: filepath.Join(t.TempDir(), "does-not-exist")},
		{name: "not_a_directory", root: file},
		{name: "empty_path", root: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := index.Build(ctx, tt.root, index.Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, index.ErrDirectoryUnavailable), "error should wrap ErrDirectoryUnavailable: %v", err)
			require.NotNil(t, idx, "an empty index is still returned")
			assert.Equal(t, 0, idx.Len())
		})
	}
}

func TestBuildCancelled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "PART.dwg")

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	idx, err := index.Build(ctx, root, index.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, idx.Len())
}
