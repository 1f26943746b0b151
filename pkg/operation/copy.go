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

package operation

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/bomcopy/pkg/log"
	"github.com/walteh/bomcopy/pkg/match"
	"gitlab.com/tozd/go/errors"
)

// ErrNoDestination is returned by Copy when no target directory is given.
var ErrNoDestination = errors.Base("no target directory given")

// ProgressFunc is called once per processed item with a 1-based running count.
type ProgressFunc func(current, total int, name string)

// 📣 Events receives the session log of a batch. *log.Logger implements it.
type Events interface {
	SessionStart(ctx context.Context, source, target string, files int)
	Copied(ctx context.Context, name string, overwritten bool)
	Skipped(ctx context.Context, name, reason string)
	Failed(ctx context.Context, name, reason string)
	SessionEnd(ctx context.Context, copied, skipped, errors int)
	Info(msg string)
	Error(msg string)
}

var _ Events = (*log.Logger)(nil)

// 🔧 Options configures a Copier. Zero values pick the OS filesystem, a discarding
// event log and no progress reporting.
type Options struct {
	FileSystem FileSystem
	Events     Events
	Progress   ProgressFunc
}

// 📦 Copier copies resolved items into a target directory.
type Copier struct {
	fs       FileSystem
	events   Events
	progress ProgressFunc
}

// 🏭 NewCopier creates a copier.
func NewCopier(opts Options) *Copier {
	c := &Copier{
		fs:       opts.FileSystem,
		events:   opts.Events,
		progress: opts.Progress,
	}
	if c.fs == nil {
		c.fs = OSFileSystem{}
	}
	if c.events == nil {
		c.events = log.Discard()
	}
	if c.progress == nil {
		c.progress = func(int, int, string) {}
	}
	return c
}

// 🏃 Copy copies items into dest in order and reports what happened to each.
//
// A missing dest is created with its parents; if that fails every item counts as an
// error and nothing is copied. Items without a source, and items whose target exists
// while overwrite is false, are skipped. A failure on one item never stops the batch.
// Progress fires after each processed item. Cancellation is honored between items, and
// the remaining items are counted as cancelled.
//
// The returned error is only ever ErrNoDestination.
func (c *Copier) Copy(ctx context.Context, items []match.Item, dest string, overwrite bool) (Result, error) {
	if dest == "" {
		return Result{}, ErrNoDestination
	}

	logger := zerolog.Ctx(ctx)
	total := len(items)
	result := Result{Outcomes: make([]Outcome, 0, total)}

	if err := c.ensureDir(dest); err != nil {
		c.events.Error("Failed to create target directory: " + err.Error())
		result.Errors = total
		result.Messages = []string{"cannot create target directory: " + err.Error()}
		return result, nil
	}

	c.events.SessionStart(ctx, sourceLabel(items), dest, total)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Int("remaining", total-i).Msg("copy cancelled")
			c.events.Error("Copy cancelled: " + err.Error())
			for _, rest := range items[i:] {
				result.record(Outcome{
					ItemID:         rest.ID,
					TargetFileName: rest.TargetFileName,
					Status:         StatusCancelled,
					Reason:         err.Error(),
				})
			}
			break
		}

		result.record(c.copyItem(ctx, item, dest, overwrite))
		c.progress(i+1, total, item.TargetFileName)
	}

	c.events.SessionEnd(ctx, result.Copied, result.Skipped, result.Errors)
	return result, nil
}

func (c *Copier) ensureDir(dest string) error {
	info, err := c.fs.Stat(dest)
	if err == nil {
		if !info.IsDir() {
			return errors.Errorf("%s is not a directory", dest)
		}
		return nil
	}

	if err := c.fs.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	c.events.Info("Created target directory: " + dest)
	return nil
}

// 📄 copyItem handles a single item
func (c *Copier) copyItem(ctx context.Context, item match.Item, dest string, overwrite bool) Outcome {
	out := Outcome{
		ItemID:         item.ID,
		TargetFileName: item.TargetFileName,
	}

	if !item.IsFound() {
		out.Status = StatusSkipped
		out.Reason = ReasonSourceNotFound
		c.events.Skipped(ctx, item.TargetFileName, out.Reason)
		return out
	}

	out.TargetPath = filepath.Join(dest, item.TargetFileName)

	exists, err := c.exists(out.TargetPath)
	if err != nil {
		return c.fail(ctx, out, errors.Errorf("checking target: %w", err))
	}
	if exists && !overwrite {
		out.Status = StatusSkipped
		out.Reason = ReasonTargetExists
		c.events.Skipped(ctx, item.TargetFileName, out.Reason)
		return out
	}

	if err := c.copyFile(ctx, item.SourcePath, out.TargetPath); err != nil {
		return c.fail(ctx, out, err)
	}

	out.Status = StatusCopied
	out.Overwritten = exists
	c.events.Copied(ctx, item.TargetFileName, exists)
	return out
}

func (c *Copier) fail(ctx context.Context, out Outcome, err error) Outcome {
	out.Status = StatusFailed
	out.Reason = err.Error()
	c.events.Failed(ctx, out.TargetFileName, out.Reason)
	return out
}

func (c *Copier) exists(path string) (bool, error) {
	_, err := c.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (c *Copier) copyFile(ctx context.Context, src, dst string) error {
	info, err := c.fs.Stat(src)
	if err != nil {
		return errors.Errorf("reading source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return errors.Errorf("source %s is not a regular file", src)
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}

	r, err := c.fs.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer r.Close()

	if err := c.fs.WriteFileAtomic(ctx, dst, r, perm); err != nil {
		return errors.Errorf("writing target: %w", err)
	}
	return nil
}

// sourceLabel names the source of a batch for the session log.
func sourceLabel(items []match.Item) string {
	for _, it := range items {
		if it.IsFound() {
			return filepath.Dir(it.SourcePath)
		}
	}
	return "unknown"
}
