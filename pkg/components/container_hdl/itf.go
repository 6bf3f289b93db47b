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

package container_hdl

import (
	"context"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

// Container is one package held by the manager, backed by a file, a
// per-user file, a remote server or plain memory.
type Container interface {
	Info() model.ContainerInfo
	Env() *aas.Environment
	SetEnv(env *aas.Environment)
	Options() model.ContainerOptions
	// Load opens the backing source and populates the environment.
	Load(ctx context.Context) error
	// Save persists the environment. An empty SaveAsFileName targets the
	// current location; the target either keeps its old content or holds
	// the fully written new one, never a torn mix.
	Save(ctx context.Context, req model.MainSaveRequest) error
	Close() error
	// Backup writes a rotating backup into dir, keeping at most maxFiles.
	Backup(dir string, maxFiles int, bt model.BackupType) error
	// Endpoint is the server head for event synchronization, empty when
	// the backend has none.
	Endpoint() string
	// Connector is the primary connector, nil when the container is not
	// kept in sync with a server.
	Connector() Connector
	SetConnector(c Connector)
	// AddSecondaryConnector registers an additional connector, e.g. for a
	// second event source feeding the same package.
	AddSecondaryConnector(c Connector)
	Connectors() []Connector
}

// Connector reconciles a container against its server by pulled events
// or, when events are unavailable, by value polling.
type Connector interface {
	PullEvents(ctx context.Context) (int, error)
	PollValues(ctx context.Context) (bool, error)
}
