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

package status

import (
	"fmt"
	"strings"

	"github.com/walteh/bomcopy/pkg/match"
	"github.com/walteh/bomcopy/pkg/operation"
)

const (
	EmojiProgress = "⏳"
	EmojiComplete = "✅"

	MsgProgress = "%s Progress: %d/%d (%.0f%%)"
)

// MaxSummaryErrors is how many error messages a copy summary lists before truncating.
const MaxSummaryErrors = 5

// FormatProgress formats a progress message with percentage
func FormatProgress(current, total int) string {
	if current < 0 {
		current = 0
	}
	if total < 0 {
		total = 0
	}

	var percentage float64
	if total > 0 {
		percentage = float64(min(current, total)) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf(MsgProgress, EmojiComplete, current, total, percentage)
	}
	return fmt.Sprintf(MsgProgress, EmojiProgress, current, total, percentage)
}

// 📋 FormatPreflight describes a copy before it starts. notFound counts the
// selected items that will not be submitted because they have no source.
func FormatPreflight(found, notFound int, dest string) string {
	msg := fmt.Sprintf("Copy %d file(s) to:\n%s", found, dest)
	if notFound > 0 {
		msg += fmt.Sprintf("\n\n(%d files will be skipped - not found)", notFound)
	}
	return msg
}

// 📊 FormatSummary renders a finished copy for the user. At most MaxSummaryErrors
// messages are listed; the rest are counted and pointed at logFile.
func FormatSummary(result operation.Result, logFile string) string {
	var b strings.Builder
	b.WriteString("Copy Complete!\n\n")
	fmt.Fprintf(&b, "Copied: %d\nSkipped: %d\nErrors: %d", result.Copied, result.Skipped, result.Errors)
	if result.Cancelled > 0 {
		fmt.Fprintf(&b, "\nCancelled: %d", result.Cancelled)
	}

	if result.Errors > 0 && len(result.Messages) > 0 {
		shown := result.Messages
		if len(shown) > MaxSummaryErrors {
			shown = shown[:MaxSummaryErrors]
		}
		b.WriteString("\n\nErrors:\n")
		b.WriteString(strings.Join(shown, "\n"))
		if extra := len(result.Messages) - len(shown); extra > 0 {
			fmt.Fprintf(&b, "\n... and %d more (see %s)", extra, logFile)
		}
	}
	return b.String()
}

// FormatStatusLine is the one-line form of a copy result.
func FormatStatusLine(result operation.Result) string {
	return fmt.Sprintf("Copy complete: %d copied, %d skipped, %d errors", result.Copied, result.Skipped, result.Errors)
}

// FormatStats summarizes a search pass.
func FormatStats(stats match.Stats) string {
	return fmt.Sprintf("%d entries: %d normal, %d suffix, %d not found (%d items)",
		stats.Entries, stats.NormalFound, stats.SuffixFound, stats.NotFound, stats.Items)
}
