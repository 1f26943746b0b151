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
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/bomcopy/cmd/bomcopy/opts"
	"github.com/walteh/bomcopy/pkg/config"
	"github.com/walteh/bomcopy/pkg/log"
	"github.com/walteh/bomcopy/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

const testBOM = `Name,Material,Qty
1234-PART.SLDPRT,AL 6061,4
5678-BRACKET.SLDPRT,STEEL,2
9999-GHOST.SLDPRT,STEEL,1
`

// 🧪 testEnv is a BOM, a source tree and a config file in one temp dir
type testEnv struct {
	dir      string
	src      string
	dst      string
	rootOpts *opts.RootOpts
	ctx      context.Context
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	dir := t.TempDir()
	env := &testEnv{
		dir: dir,
		src: filepath.Join(dir, "src"),
		dst: filepath.Join(dir, "dst"),
		ctx: zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background()),
	}

	for _, rel := range []string{"a/1234-PART.dwg", "a/1234-PARTFLO.dwg", "b/5678-BRACKETFLO.dwg"} {
		path := filepath.Join(env.src, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(rel), 0o644))
	}

	bomPath := filepath.Join(dir, "job.csv")
	require.NoError(t, os.WriteFile(bomPath, []byte(testBOM), 0o644))

	cfg := config.Default()
	cfg.DocumentNameColumn = 1
	cfg.MaterialColumn = 2
	cfg.QuantityColumn = 3
	cfg.HeaderRows = 1
	cfg.LastBomFile = bomPath
	cfg.SourceDirectory = env.src
	cfg.LogFile = filepath.Join(dir, "log.txt")

	sessionLog := log.New(io.Discard, zerolog.Nop(), log.NewSink(cfg.LogFile))
	env.ctx = log.NewContext(env.ctx, sessionLog)

	env.rootOpts = &opts.RootOpts{
		ConfigPath: filepath.Join(dir, "bomcopy.yaml"),
		Config:     cfg,
	}
	return env
}

func (e *testEnv) run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(e.ctx)
	return buf.String(), err
}

func TestSearchCommand(t *testing.T) {
	env := setupEnv(t)

	out, err := env.run(t, NewSearchCmd(env.rootOpts))
	require.NoError(t, err)
	assert.Contains(t, out, "3 entries: 1 normal, 2 suffix, 1 not found (4 items)")
	for _, name := range []string{"1234-PART.dwg", "1234-PARTFLO.dwg", "5678-BRACKETFLO.dwg", "9999-GHOST.dwg"} {
		assert.Contains(t, out, name)
	}

	out, err = env.run(t, NewSearchCmd(env.rootOpts), "--missing")
	require.NoError(t, err)
	assert.Contains(t, out, "9999-GHOST.dwg")
	assert.NotContains(t, out, "1234-PART.dwg")

	out, err = env.run(t, NewSearchCmd(env.rootOpts), "--source", filepath.Join(env.dir, "nope"))
	require.NoError(t, err, "an unavailable source directory is reported, not fatal")
	assert.Contains(t, out, "source directory unavailable")

	logData, err := os.ReadFile(env.rootOpts.Config.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "source directory unavailable", "the warning also lands in the log file")
}

func TestMaterialsCommand(t *testing.T) {
	env := setupEnv(t)

	out, err := env.run(t, NewMaterialsCmd(env.rootOpts))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "(All)\nAL 6061\nSTEEL\n"), "got %q", out)
}

func TestCopyCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCopied []string
		wantAbsent []string
		wantLast   string
	}{
		{
			name:       "everything_found",
			wantLast:   "✅ Progress: 3/3 (100%)",
			args:       nil,
			wantCopied: []string{"1234-PART.dwg", "1234-PARTFLO.dwg", "5678-BRACKETFLO.dwg"},
		},
		{
			name:       "material_filter",
			wantLast:   "✅ Progress: 1/1 (100%)",
			args:       []string{"--material", "STEEL"},
			wantCopied: []string{"5678-BRACKETFLO.dwg"},
			wantAbsent: []string{"1234-PART.dwg"},
		},
		{
			name:       "exclude",
			wantLast:   "✅ Progress: 2/2 (100%)",
			args:       []string{"--exclude", "1234-partflo.DWG"},
			wantCopied: []string{"1234-PART.dwg", "5678-BRACKETFLO.dwg"},
			wantAbsent: []string{"1234-PARTFLO.dwg"},
		},
		{
			name:       "text_filter",
			wantLast:   "✅ Progress: 2/2 (100%)",
			args:       []string{"--filter", "o"},
			wantCopied: []string{"1234-PARTFLO.dwg", "5678-BRACKETFLO.dwg"},
			wantAbsent: []string{"1234-PART.dwg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupEnv(t)

			args := append([]string{"--yes", "--no-progress", "--target", env.dst}, tt.args...)
			out, err := env.run(t, NewCopyCmd(env.rootOpts), args...)
			require.NoError(t, err, out)

			assert.Contains(t, out, "Copy Complete!")
			assert.Contains(t, out, "1 files will be skipped - not found", "the ghost part is never submitted")
			assert.Contains(t, out, tt.wantLast, "the running count ends at the number of found files")
			for _, name := range tt.wantCopied {
				assert.FileExists(t, filepath.Join(env.dst, name))
			}
			for _, name := range tt.wantAbsent {
				assert.NoFileExists(t, filepath.Join(env.dst, name))
			}

			saved, err := config.Load(env.ctx, env.rootOpts.ConfigPath)
			require.NoError(t, err, "directories are remembered")
			assert.Equal(t, env.dst, saved.TargetDirectory)
			assert.Equal(t, env.src, saved.SourceDirectory)

			logData, err := os.ReadFile(env.rootOpts.Config.LogFile)
			require.NoError(t, err)
			assert.Contains(t, string(logData), "Session complete: ")
		})
	}
}

func TestCopyCommandNothingQueued(t *testing.T) {
	env := setupEnv(t)

	out, err := env.run(t, NewCopyCmd(env.rootOpts), "--yes", "--target", env.dst, "--material", "TITANIUM")
	require.NoError(t, err)
	assert.Contains(t, out, "No files in queue.")
	assert.NoDirExists(t, env.dst)
}

func TestCopyCommandNoTarget(t *testing.T) {
	env := setupEnv(t)

	_, err := env.run(t, NewCopyCmd(env.rootOpts), "--yes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, operation.ErrNoDestination))
}

func TestCopyCommandOverwrite(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, os.MkdirAll(env.dst, 0o755))
	existing := filepath.Join(env.dst, "1234-PART.dwg")
	require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0o644))

	out, err := env.run(t, NewCopyCmd(env.rootOpts), "--yes", "--no-progress", "--target", env.dst, "--overwrite=false")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Skipped: 1")

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestCopyCommandTargetUnwritable(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, os.WriteFile(env.dst, []byte("a file"), 0o644))

	out, err := env.run(t, NewCopyCmd(env.rootOpts), "--yes", "--no-progress", "--target", env.dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 errors")
	assert.Contains(t, out, "cannot create target directory")
}

func TestConfigCommands(t *testing.T) {
	env := setupEnv(t)

	_, err := env.run(t, NewConfigCmd(env.rootOpts), "init")
	require.NoError(t, err)
	assert.FileExists(t, env.rootOpts.ConfigPath)

	_, err = env.run(t, NewConfigCmd(env.rootOpts), "init")
	require.Error(t, err, "init does not replace an existing file")

	_, err = env.run(t, NewConfigCmd(env.rootOpts), "init", "--force")
	require.NoError(t, err)

	out, err := env.run(t, NewConfigCmd(env.rootOpts), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "filename_suffix: FLO")
	assert.Contains(t, out, "document_name_column: 1")
}
