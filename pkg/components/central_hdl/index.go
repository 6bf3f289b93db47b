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

package central_hdl

import (
	"sync"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

type indexEntry struct {
	ident  aas.Identifiable
	source string
}

// LookupStore maps identifiable ids to their objects. It only changes
// on an explicit reindex, so the fast path can lag behind edits until
// the next ReIndex call.
type LookupStore struct {
	byID map[string][]indexEntry
	mu   sync.RWMutex
}

func NewLookupStore() *LookupStore {
	return &LookupStore{byID: make(map[string][]indexEntry)}
}

func (s *LookupStore) index(env *aas.Environment, source string) map[string][]indexEntry {
	entries := make(map[string][]indexEntry)
	env.Identifiables(func(i aas.Identifiable) bool {
		if id := i.GetID(); id != "" {
			entries[id] = append(entries[id], indexEntry{ident: i, source: source})
		}
		return true
	})
	return entries
}

func (s *LookupStore) lookup(id string) []indexEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// ReIndex rebuilds the lookup store from every attached container.
func (h *Handler) ReIndex() {
	entries := make(map[string][]indexEntry)
	for _, c := range h.containers() {
		env := c.Env()
		if env == nil {
			continue
		}
		source := c.Info().Location
		for id, e := range h.lookup.index(env, source) {
			entries[id] = append(entries[id], e...)
		}
	}
	h.lookup.mu.Lock()
	defer h.lookup.mu.Unlock()
	h.lookup.byID = entries
}

// LookupAllIdent resolves an id against the precomputed store and, when
// deep, additionally walks every attached environment, de-duplicating
// by object identity.
func (h *Handler) LookupAllIdent(id string, deep bool) []model.IdentInfo {
	seen := make(map[aas.Identifiable]struct{})
	var out []model.IdentInfo
	add := func(ident aas.Identifiable, source string) {
		if _, ok := seen[ident]; ok {
			return
		}
		seen[ident] = struct{}{}
		out = append(out, model.IdentInfo{
			ID:      ident.GetID(),
			IdShort: ident.GetIdShort(),
			Kind:    string(ident.Kind()),
			Source:  source,
		})
	}
	for _, e := range h.lookup.lookup(id) {
		add(e.ident, e.source)
	}
	if deep {
		for _, c := range h.containers() {
			env := c.Env()
			if env == nil {
				continue
			}
			source := c.Info().Location
			env.Identifiables(func(i aas.Identifiable) bool {
				if i.GetID() == id {
					add(i, source)
				}
				return true
			})
		}
	}
	return out
}
