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

// 📊 Status is what happened to one item of a batch.
type Status int

const (
	StatusUnknown   Status = iota
	StatusCopied           // bytes written to the target
	StatusSkipped          // source missing, or target exists with overwrite off
	StatusFailed           // I/O error on this item
	StatusCancelled        // not processed because the context was cancelled
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusCopied:
		return "copied"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Skip reasons.
const (
	ReasonSourceNotFound = "source not found"
	ReasonTargetExists   = "target exists, overwrite disabled"
)

// 📄 Outcome records the handling of one item.
type Outcome struct {
	ItemID         string
	TargetFileName string
	TargetPath     string
	Status         Status
	Reason         string // skip reason or error text
	Overwritten    bool
}

// 📦 Result summarizes a batch.
//
// Copied + Skipped + Errors + Cancelled always equals the number of submitted items.
type Result struct {
	Copied    int
	Skipped   int
	Errors    int
	Cancelled int
	// Messages holds one "name: error" entry per failed item, in processing order.
	// A batch that failed to create its target directory has a single message.
	Messages []string
	Outcomes []Outcome
}

// Total returns the number of items the result accounts for.
func (r Result) Total() int {
	return r.Copied + r.Skipped + r.Errors + r.Cancelled
}

func (r *Result) record(o Outcome) {
	switch o.Status {
	case StatusCopied:
		r.Copied++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Errors++
		r.Messages = append(r.Messages, o.TargetFileName+": "+o.Reason)
	case StatusCancelled:
		r.Cancelled++
	}
	r.Outcomes = append(r.Outcomes, o)
}
