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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/industrial-twin/aas-package-manager/lib/model"
)

// List holds an ordered set of repository items, optionally persisted
// to a JSON or YAML file.
type List struct {
	header   string
	filePath string
	endpoint string
	items    []*Item
	mu       sync.RWMutex
}

func NewList(header, filePath string) *List {
	return &List{header: header, filePath: filePath}
}

func (l *List) Info() model.RepoListInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return model.RepoListInfo{
		Header:    l.header,
		ItemCount: len(l.items),
		FilePath:  l.filePath,
		Endpoint:  l.endpoint,
	}
}

func (l *List) Items() []*Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*Item(nil), l.items...)
}

func (l *List) Add(item *Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, item)
}

func (l *List) RemoveAt(idx int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if idx < 0 || idx >= len(l.items) {
		return model.NewNotFoundError(fmt.Errorf("no item at index %d", idx))
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return nil
}

// MoveUp swaps an item with its predecessor, a no-op at the boundary.
func (l *List) MoveUp(idx int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if idx < 0 || idx >= len(l.items) {
		return model.NewNotFoundError(fmt.Errorf("no item at index %d", idx))
	}
	if idx > 0 {
		l.items[idx-1], l.items[idx] = l.items[idx], l.items[idx-1]
	}
	return nil
}

// MoveDown swaps an item with its successor, a no-op at the boundary.
func (l *List) MoveDown(idx int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if idx < 0 || idx >= len(l.items) {
		return model.NewNotFoundError(fmt.Errorf("no item at index %d", idx))
	}
	if idx < len(l.items)-1 {
		l.items[idx], l.items[idx+1] = l.items[idx+1], l.items[idx]
	}
	return nil
}

// FindByAssetID returns the first item carrying the id. Matching is
// exact after trimming surrounding whitespace.
func (l *List) FindByAssetID(id string) *Item {
	return l.find(id, func(i *Item) []string { return i.AssetIds })
}

func (l *List) FindByAasID(id string) *Item {
	return l.find(id, func(i *Item) []string { return i.AasIds })
}

func (l *List) FindBySubmodelID(id string) *Item {
	return l.find(id, func(i *Item) []string { return i.SubmodelIds })
}

func (l *List) find(id string, ids func(*Item) []string) *Item {
	id = strings.TrimSpace(id)
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.items {
		for _, candidate := range ids(item) {
			if strings.TrimSpace(candidate) == id {
				return item
			}
		}
	}
	return nil
}

// ResolveLocation resolves a relative item location against the list
// file's directory. Absolute locations and scheme prefixed ones pass
// through.
func (l *List) ResolveLocation(location string) string {
	if l.filePath == "" || path.IsAbs(location) || strings.Contains(location, "://") {
		return location
	}
	return path.Join(path.Dir(l.filePath), location)
}

// LoadFromFile reads the list file and merges its entries into the held
// items. The format follows the file extension, JSON unless it ends in
// yaml/yml.
func (l *List) LoadFromFile() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.filePath == "" {
		return model.NewInvalidInputError(errors.New("list has no file"))
	}
	b, err := os.ReadFile(l.filePath)
	if err != nil {
		return model.NewInternalError(err)
	}
	var list model.RepoList
	if isYamlFile(l.filePath) {
		err = yaml.Unmarshal(b, &list)
	} else {
		err = json.Unmarshal(b, &list)
	}
	if err != nil {
		return model.NewInternalError(err)
	}
	if list.Header != "" {
		l.header = list.Header
	}
	for _, entry := range list.FileMaps {
		l.items = append(l.items, NewItem(entry))
	}
	return nil
}

func (l *List) SaveToFile() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.filePath == "" {
		return model.NewInvalidInputError(errors.New("list has no file"))
	}
	list := model.RepoList{Header: l.header}
	for _, item := range l.items {
		list.FileMaps = append(list.FileMaps, item.RepoItem)
	}
	var b []byte
	var err error
	if isYamlFile(l.filePath) {
		b, err = yaml.Marshal(list)
	} else {
		b, err = json.MarshalIndent(list, "", "  ")
	}
	if err != nil {
		return model.NewInternalError(err)
	}
	if err = os.WriteFile(l.filePath, b, 0644); err != nil {
		return model.NewInternalError(err)
	}
	return nil
}

func isYamlFile(fp string) bool {
	switch strings.ToLower(path.Ext(fp)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
