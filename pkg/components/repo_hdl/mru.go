/*
 * Copyright 2025 InfAI (CC SES)
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package repo_hdl

import "strings"

const mruCapacity = 30

// MruList keeps the most recently used locations, newest first.
type MruList struct {
	List
}

func NewMruList(filePath string) *MruList {
	return &MruList{List: *NewList("Recently used", filePath)}
}

// Push records a copy of the item under fullPath at the front. An
// existing entry with the same location is replaced, matching case
// insensitively, and the list is trimmed to capacity from the tail.
func (l *MruList) Push(item *Item, fullPath string) {
	entry := item.Clone()
	entry.Location = fullPath
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.items[:0]
	for _, existing := range l.items {
		if !strings.EqualFold(existing.Location, fullPath) {
			kept = append(kept, existing)
		}
	}
	l.items = append([]*Item{entry}, kept...)
	if len(l.items) > mruCapacity {
		l.items = l.items[:mruCapacity]
	}
}
