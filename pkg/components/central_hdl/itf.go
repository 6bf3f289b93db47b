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
	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/components/repo_hdl"
)

// RepositoryList is the common surface of file backed and server backed
// repository lists.
type RepositoryList interface {
	Info() model.RepoListInfo
	Items() []*repo_hdl.Item
	Add(item *repo_hdl.Item)
	RemoveAt(idx int) error
	MoveUp(idx int) error
	MoveDown(idx int) error
	ResolveLocation(location string) string
	LoadFromFile() error
	SaveToFile() error
}
