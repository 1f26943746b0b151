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

// Package match resolves BOM entries to concrete files in a directory index.
//
// One entry expands to one or two items: an item for the normal file and an item for
// the suffixed variant when each exists, or a single not-found item when neither does.
package match

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/bomcopy/pkg/bom"
	"github.com/walteh/bomcopy/pkg/naming"
	"golang.org/x/text/cases"
)

// 📄 Item is one file-level candidate derived from a BOM entry.
//
// Items are identified by ID, never by filename: the normal and suffixed items of one
// entry, or two entries that happen to share a filename, are distinct. Items from one
// search pass must not be mixed with items from another.
type Item struct {
	ID              string
	OriginalName    string
	BaseName        string
	NormalFileName  string
	SuffixFileName  string
	TargetFileName  string // file to copy: the name that was found, or NormalFileName when nothing was
	Material        string
	Quantity        int
	SourcePath      string // absolute path in the source tree, empty when not found
	IsSuffixVariant bool
}

// IsFound reports whether the item resolved to a source file.
func (i Item) IsFound() bool {
	return i.SourcePath != ""
}

// 🔍 Index is the lookup side of a directory index.
type Index interface {
	Lookup(name string) (string, bool)
}

// Pair couples an entry with the rule used to name its files.
type Pair struct {
	Entry bom.Entry
	Rule  naming.Rule
}

// 📊 Stats summarizes an expansion.
type Stats struct {
	Entries     int
	NormalFound int
	SuffixFound int
	NotFound    int
	Items       int
}

// 🧩 Expander turns entries into items against one index.
type Expander struct {
	index Index
	newID func() string
}

// 🏭 NewExpander creates an expander that assigns random UUIDs to items.
func NewExpander(idx Index) *Expander {
	return &Expander{
		index: idx,
		newID: uuid.NewString,
	}
}

// Expand resolves every entry with the same rule.
func Expand(ctx context.Context, entries []bom.Entry, rule naming.Rule, idx Index) []Item {
	items, _ := NewExpander(idx).Expand(ctx, entries, rule)
	return items
}

// 🎯 Expand resolves every entry with the same rule.
func (e *Expander) Expand(ctx context.Context, entries []bom.Entry, rule naming.Rule) ([]Item, Stats) {
	pairs := make([]Pair, len(entries))
	for i, entry := range entries {
		pairs[i] = Pair{Entry: entry, Rule: rule}
	}
	return e.ExpandEach(ctx, pairs)
}

// ExpandEach resolves each entry with its own rule. Output follows input order, and
// for an entry that matched both files the normal item comes first.
func (e *Expander) ExpandEach(ctx context.Context, pairs []Pair) ([]Item, Stats) {
	logger := zerolog.Ctx(ctx)

	items := make([]Item, 0, len(pairs))
	stats := Stats{Entries: len(pairs)}
	seen := make(map[string]string, len(pairs))

	for _, p := range pairs {
		names := naming.Resolve(p.Entry.OriginalName, p.Rule)

		// two BOM rows with one base name will copy onto the same target; the
		// index ignores case, so the check does too
		target := cases.Fold().String(names.Normal)
		if prev, ok := seen[target]; ok {
			logger.Warn().
				Str("target", names.Normal).
				Str("first", prev).
				Str("second", p.Entry.OriginalName).
				Msg("BOM entries resolve to the same file name")
		} else {
			seen[target] = p.Entry.OriginalName
		}

		item := Item{
			OriginalName:   p.Entry.OriginalName,
			BaseName:       names.Base,
			NormalFileName: names.Normal,
			SuffixFileName: names.Suffix,
			TargetFileName: names.Normal,
			Material:       p.Entry.Material,
			Quantity:       p.Entry.Quantity,
		}

		found := false

		if path, ok := e.index.Lookup(names.Normal); ok {
			normal := item
			normal.ID = e.newID()
			normal.SourcePath = path
			items = append(items, normal)
			stats.NormalFound++
			found = true
		}

		if path, ok := e.index.Lookup(names.Suffix); ok {
			suffix := item
			suffix.ID = e.newID()
			suffix.TargetFileName = names.Suffix
			suffix.SourcePath = path
			suffix.IsSuffixVariant = true
			items = append(items, suffix)
			stats.SuffixFound++
			found = true
		}

		if !found {
			item.ID = e.newID()
			items = append(items, item)
			stats.NotFound++
		}
	}

	stats.Items = len(items)

	logger.Info().
		Int("normal", stats.NormalFound).
		Int("suffix", stats.SuffixFound).
		Int("not_found", stats.NotFound).
		Int("items", stats.Items).
		Msg("file matching complete")

	return items, stats
}
