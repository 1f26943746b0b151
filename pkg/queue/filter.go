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

// Package queue selects resolved items for copying.
//
// The filters never modify their input and keep the relative order of the items they return.
package queue

import (
	"sort"
	"strings"

	"github.com/walteh/bomcopy/pkg/match"
)

// AllMaterials is the material picker entry that disables material filtering.
const AllMaterials = "(All)"

// 🔍 FilterByMaterial keeps items whose material equals material exactly.
// An empty material or AllMaterials keeps everything.
func FilterByMaterial(items []match.Item, material string) []match.Item {
	if strings.TrimSpace(material) == "" || material == AllMaterials {
		return clone(items)
	}
	return filter(items, func(it match.Item) bool {
		return it.Material == material
	})
}

// 🔍 Search keeps items whose target filename or material contains substring, ignoring case.
func Search(items []match.Item, substring string) []match.Item {
	needle := strings.ToLower(strings.TrimSpace(substring))
	if needle == "" {
		return clone(items)
	}
	return filter(items, func(it match.Item) bool {
		return strings.Contains(strings.ToLower(it.TargetFileName), needle) ||
			strings.Contains(strings.ToLower(it.Material), needle)
	})
}

// Exclude drops every item whose ID appears in excluded. Filenames are not compared.
func Exclude(items []match.Item, excluded []match.Item) []match.Item {
	ids := make(map[string]struct{}, len(excluded))
	for _, it := range excluded {
		ids[it.ID] = struct{}{}
	}
	return filter(items, func(it match.Item) bool {
		_, gone := ids[it.ID]
		return !gone
	})
}

// Found keeps items that resolved to a source file.
func Found(items []match.Item) []match.Item {
	return filter(items, match.Item.IsFound)
}

// Missing keeps items that did not resolve to a source file.
func Missing(items []match.Item) []match.Item {
	return filter(items, func(it match.Item) bool { return !it.IsFound() })
}

// 📊 Tally counts a selection.
type Tally struct {
	Found int
	Total int
}

// Missing returns how many counted items have no source file.
func (t Tally) Missing() int { return t.Total - t.Found }

// Summary counts how many of items were found.
func Summary(items []match.Item) Tally {
	t := Tally{Total: len(items)}
	for _, it := range items {
		if it.IsFound() {
			t.Found++
		}
	}
	return t
}

// 📋 Materials returns the distinct non-blank materials of items in ascending order.
func Materials(items []match.Item) []string {
	set := make(map[string]struct{})
	for _, it := range items {
		if strings.TrimSpace(it.Material) == "" {
			continue
		}
		set[it.Material] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func filter(items []match.Item, keep func(match.Item) bool) []match.Item {
	out := make([]match.Item, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func clone(items []match.Item) []match.Item {
	return append(make([]match.Item, 0, len(items)), items...)
}
