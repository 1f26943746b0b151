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

package queue

import (
	"strings"

	"github.com/walteh/bomcopy/pkg/match"
)

// 📥 Queue is an ordered selection of items keyed by item ID.
// A Queue is owned by one goroutine and is not safe for concurrent use.
type Queue struct {
	items []match.Item
	ids   map[string]struct{}
}

// 🏭 New creates an empty queue.
func New() *Queue {
	return &Queue{ids: make(map[string]struct{})}
}

// Add appends items that are not queued yet and returns how many were added.
func (q *Queue) Add(items ...match.Item) int {
	added := 0
	for _, it := range items {
		if _, ok := q.ids[it.ID]; ok {
			continue
		}
		q.ids[it.ID] = struct{}{}
		q.items = append(q.items, it)
		added++
	}
	return added
}

// Remove drops the items with the given IDs and returns how many were removed.
func (q *Queue) Remove(ids ...string) int {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := q.ids[id]; ok {
			drop[id] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return 0
	}

	kept := q.items[:0]
	for _, it := range q.items {
		if _, ok := drop[it.ID]; ok {
			delete(q.ids, it.ID)
			continue
		}
		kept = append(kept, it)
	}
	q.items = kept
	return len(drop)
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.items = nil
	q.ids = make(map[string]struct{})
}

// Items returns a copy of the queued items in the order they were added.
func (q *Queue) Items() []match.Item {
	return clone(q.items)
}

// Len returns the number of queued items.
func (q *Queue) Len() int { return len(q.items) }

// Contains reports whether the item with id is queued.
func (q *Queue) Contains(id string) bool {
	_, ok := q.ids[id]
	return ok
}

// Available returns the items of a pass that are not queued.
func (q *Queue) Available(items []match.Item) []match.Item {
	return Exclude(items, q.items)
}

// Search keeps queued items whose target filename contains substring, ignoring case.
func (q *Queue) Search(substring string) []match.Item {
	needle := strings.ToLower(strings.TrimSpace(substring))
	if needle == "" {
		return q.Items()
	}
	return filter(q.items, func(it match.Item) bool {
		return strings.Contains(strings.ToLower(it.TargetFileName), needle)
	})
}

// 🔄 Reconcile drops queued items that are not part of fresh, the items of a new
// search pass, and returns how many were dropped.
func (q *Queue) Reconcile(fresh []match.Item) int {
	current := make(map[string]struct{}, len(fresh))
	for _, it := range fresh {
		current[it.ID] = struct{}{}
	}

	var stale []string
	for _, it := range q.items {
		if _, ok := current[it.ID]; !ok {
			stale = append(stale, it.ID)
		}
	}
	return q.Remove(stale...)
}
