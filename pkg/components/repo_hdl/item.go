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

import (
	"path"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

// minVisualPeriod keeps flashed states visible long enough to notice.
const minVisualPeriod = 100 * time.Millisecond

// Item is one repository entry plus its transient runtime state.
type Item struct {
	model.RepoItem
	visualState model.VisualState
	visualUntil time.Time
	mu          sync.RWMutex
}

func NewItem(entry model.RepoItem) *Item {
	return &Item{RepoItem: entry, visualState: model.VisualIdle}
}

// SetVisualState flashes a state for the given period, clamped to the
// minimum visible duration. The state decays back to idle on read.
func (i *Item) SetVisualState(state model.VisualState, period time.Duration) {
	if period < minVisualPeriod {
		period = minVisualPeriod
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.visualState = state
	i.visualUntil = time.Now().Add(period)
}

func (i *Item) VisualState() model.VisualState {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.visualState != model.VisualIdle && time.Now().After(i.visualUntil) {
		return model.VisualIdle
	}
	return i.visualState
}

// CalculateIdsTagAndDesc rebuilds the id bookkeeping from an opened
// environment. The id lists are always discarded and repopulated with
// the non-empty ids in iteration order, duplicates stay as they come.
// Tag and description are only derived when empty, unless forced.
func (i *Item) CalculateIdsTagAndDesc(env *aas.Environment, force bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.AssetIds = nil
	i.AasIds = nil
	i.SubmodelIds = nil
	for _, shell := range env.Shells {
		if shell.ID != "" {
			i.AasIds = append(i.AasIds, shell.ID)
		}
		if shell.AssetID != "" {
			i.AssetIds = append(i.AssetIds, shell.AssetID)
		}
	}
	for _, sm := range env.Submodels {
		if sm.ID != "" {
			i.SubmodelIds = append(i.SubmodelIds, sm.ID)
		}
	}
	var firstIdShort string
	if len(env.Shells) > 0 {
		firstIdShort = env.Shells[0].IdShort
	}
	if i.Description == "" || force {
		i.Description = firstIdShort
	}
	if i.Tag == "" || force {
		fileName := strings.TrimSuffix(path.Base(strings.ReplaceAll(i.Location, "\\", "/")), path.Ext(i.Location))
		i.Tag = deriveTag(fileName, firstIdShort)
	}
}

// deriveTag condenses a name into a short uppercase tag: Pascal case
// initials of the file name, then a prefix of the first shell's
// idShort, then a prefix of the file name itself.
func deriveTag(fileName, firstIdShort string) string {
	var initials []rune
	for _, r := range fileName {
		if unicode.IsUpper(r) {
			initials = append(initials, r)
		}
	}
	tag := initials
	if len(tag) < 2 {
		if firstIdShort != "" {
			tag = []rune(firstIdShort)
		} else {
			tag = []rune(fileName)
		}
	}
	if len(tag) > 3 {
		tag = tag[:3]
	}
	return strings.ToUpper(string(tag))
}

// Clone returns a deep copy of the persisted entry, runtime state is
// not carried over.
func (i *Item) Clone() *Item {
	i.mu.RLock()
	defer i.mu.RUnlock()
	entry := i.RepoItem
	entry.AssetIds = append([]string(nil), i.AssetIds...)
	entry.AasIds = append([]string(nil), i.AasIds...)
	entry.SubmodelIds = append([]string(nil), i.SubmodelIds...)
	return NewItem(entry)
}
