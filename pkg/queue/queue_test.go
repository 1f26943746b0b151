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

package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/bomcopy/pkg/match"
	"github.com/walteh/bomcopy/pkg/queue"
)

func fixtures() []match.Item {
	return []match.Item{
		{ID: "1", TargetFileName: "1234-PART.dwg", Material: "Steel", SourcePath: "/src/1234-PART.dwg"},
		{ID: "2", TargetFileName: "1234-PARTFLO.dwg", Material: "Steel", SourcePath: "/src/1234-PARTFLO.dwg", IsSuffixVariant: true},
		{ID: "3", TargetFileName: "BRACKET.dwg", Material: "AISI 304"},
		{ID: "4", TargetFileName: "PLATE.dwg", Material: "steel", SourcePath: "/src/PLATE.dwg"},
		{ID: "5", TargetFileName: "PIN.dwg", Material: ""},
	}
}

func ids(items []match.Item) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFilterByMaterial(t *testing.T) {
	items := fixtures()

	tests := []struct {
		material string
		want     []string
	}{
		{material: "", want: []string{"1", "2", "3", "4", "5"}},
		{material: "   ", want: []string{"1", "2", "3", "4", "5"}},
		{material: queue.AllMaterials, want: []string{"1", "2", "3", "4", "5"}},
		{material: "Steel", want: []string{"1", "2"}},
		{material: "steel", want: []string{"4"}},
		{material: "Brass", want: []string{}},
	}

	for _, tt := range tests {
		t.Run("material_"+tt.material, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(queue.FilterByMaterial(items, tt.material)))
		})
	}
	assert.Equal(t, fixtures(), items, "input is not modified")
}

func TestSearch(t *testing.T) {
	items := fixtures()

	assert.Equal(t, []string{"1", "2"}, ids(queue.Search(items, "part")))
	assert.Equal(t, []string{"2"}, ids(queue.Search(items, "flo")))
	assert.Equal(t, []string{"1", "2", "4"}, ids(queue.Search(items, "STEEL")), "material is searched too")
	assert.Equal(t, []string{"3"}, ids(queue.Search(items, "304")))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(queue.Search(items, "")))
}

func TestExcludeByIdentity(t *testing.T) {
	items := fixtures()
	twin := match.Item{ID: "other", TargetFileName: "1234-PART.dwg", Material: "Steel"}

	got := queue.Exclude(items, []match.Item{items[1], twin})
	assert.Equal(t, []string{"1", "3", "4", "5"}, ids(got), "same filename with a different id is not excluded")
}

func TestFoundAndMaterials(t *testing.T) {
	items := fixtures()
	assert.Equal(t, []string{"1", "2", "4"}, ids(queue.Found(items)))
	assert.Equal(t, []string{"3", "5"}, ids(queue.Missing(items)))
	assert.Equal(t, []string{"AISI 304", "Steel", "steel"}, queue.Materials(items))
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name        string
		items       []match.Item
		wantFound   int
		wantMissing int
	}{
		{name: "mixed", items: fixtures(), wantFound: 3, wantMissing: 2},
		{name: "empty", items: nil, wantFound: 0, wantMissing: 0},
		{name: "only_missing", items: queue.Missing(fixtures()), wantFound: 0, wantMissing: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := queue.Summary(tt.items)
			assert.Equal(t, len(tt.items), got.Total)
			assert.Equal(t, tt.wantFound, got.Found)
			assert.Equal(t, tt.wantMissing, got.Missing())
		})
	}
}

func TestFiltersCombine(t *testing.T) {
	items := fixtures()
	q := queue.New()
	q.Add(items[0])

	got := queue.Search(queue.FilterByMaterial(q.Available(items), "Steel"), "dwg")
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestQueue(t *testing.T) {
	items := fixtures()
	q := queue.New()

	assert.Equal(t, 3, q.Add(items[0], items[1], items[2]))
	assert.Equal(t, 0, q.Add(items[1]), "queued items are not added twice")
	assert.Equal(t, 3, q.Len())
	assert.True(t, q.Contains("2"))

	assert.Equal(t, []string{"4", "5"}, ids(q.Available(items)))
	assert.Equal(t, []string{"2"}, ids(q.Search("FLO")))
	assert.Equal(t, []string{}, ids(q.Search("steel")), "queued search only looks at filenames")

	assert.Equal(t, 1, q.Remove("1", "missing"))
	assert.Equal(t, []string{"2", "3"}, ids(q.Items()))

	snapshot := q.Items()
	snapshot[0].TargetFileName = "changed"
	assert.Equal(t, "1234-PARTFLO.dwg", q.Items()[0].TargetFileName, "Items returns a copy")

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Contains("2"))
}

func TestQueueReconcile(t *testing.T) {
	items := fixtures()
	q := queue.New()
	q.Add(items...)

	// a rescan produces new items, only "3" survives
	fresh := []match.Item{items[2], {ID: "9", TargetFileName: "1234-PART.dwg"}}
	require.Equal(t, 4, q.Reconcile(fresh))
	assert.Equal(t, []string{"3"}, ids(q.Items()))
}
