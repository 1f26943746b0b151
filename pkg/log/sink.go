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

package log

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"gitlab.com/tozd/go/errors"
)

const timestampLayout = "2006-01-02 15:04:05"

// 🗒️ Sink appends timestamped lines to a log file.
//
// Appends are serialized by a mutex within the process and by an advisory lock on
// "<path>.lock" across processes.
type Sink struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
	now  func() time.Time
}

// 🏭 NewSink creates a sink for path. The file is created on first append.
func NewSink(path string) *Sink {
	return &Sink{
		path: path,
		lock: flock.New(path + ".lock"),
		now:  time.Now,
	}
}

// Path returns the log file path.
func (s *Sink) Path() string { return s.path }

// 📝 Append writes each line as "[yyyy-mm-dd hh:mm:ss] line".
func (s *Sink) Append(lines ...string) error {
	if len(lines) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().Format(timestampLayout)
	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString("[")
		buf.WriteString(ts)
		buf.WriteString("] ")
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Errorf("creating log directory: %w", err)
		}
	}

	if err := s.lock.Lock(); err != nil {
		return errors.Errorf("locking %s: %w", s.path, err)
	}
	defer s.lock.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(buf.String()); err != nil {
		return errors.Errorf("appending to log file: %w", err)
	}
	return nil
}
