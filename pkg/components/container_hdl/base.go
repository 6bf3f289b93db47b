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
	"sync"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

type base struct {
	location    string
	format      model.Format
	env         *aas.Environment
	options     model.ContainerOptions
	isOpen      bool
	connector   Connector
	secondaries []Connector
	mu          sync.RWMutex
}

func (b *base) Env() *aas.Environment {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.env
}

func (b *base) SetEnv(env *aas.Environment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.env = env
}

func (b *base) Options() model.ContainerOptions {
	return b.options
}

func (b *base) Endpoint() string {
	return ""
}

func (b *base) Connector() Connector {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.connector
}

func (b *base) SetConnector(c Connector) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connector = c
}

func (b *base) AddSecondaryConnector(c Connector) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.secondaries = append(b.secondaries, c)
}

// Connectors lists the primary connector followed by the secondaries.
func (b *base) Connectors() []Connector {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []Connector
	if b.connector != nil {
		out = append(out, b.connector)
	}
	return append(out, b.secondaries...)
}

func (b *base) info(backend string) model.ContainerInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return model.ContainerInfo{
		Location: b.location,
		Format:   b.format,
		IsOpen:   b.isOpen,
		Backend:  backend,
	}
}
