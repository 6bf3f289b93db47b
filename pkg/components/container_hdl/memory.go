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
	"errors"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

const memoryBackend = "memory"

// MemoryContainer holds an environment taken over from another party.
// There is no backing source, saving requires an explicit target name
// handled further up.
type MemoryContainer struct {
	base
}

func NewMemoryContainer(env *aas.Environment, options model.ContainerOptions) *MemoryContainer {
	return &MemoryContainer{
		base: base{
			env:     env,
			options: options.Normalized(),
			isOpen:  true,
		},
	}
}

func (c *MemoryContainer) Info() model.ContainerInfo {
	return c.info(memoryBackend)
}

func (c *MemoryContainer) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.env == nil {
		return model.NewInvalidInputError(errors.New("no environment held"))
	}
	c.isOpen = true
	return nil
}

func (c *MemoryContainer) Save(_ context.Context, _ model.MainSaveRequest) error {
	return model.NewInvalidInputError(errors.New("memory backend is not storable"))
}

func (c *MemoryContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.env = nil
	c.isOpen = false
	return nil
}

func (c *MemoryContainer) Backup(dir string, maxFiles int, bt model.BackupType) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.isOpen {
		return model.NewInvalidInputError(errors.New("container not open"))
	}
	if bt == model.BackupFullCopy {
		return model.NewInvalidInputError(errors.New("memory backend has no source file"))
	}
	if err := backupInDir(dir, maxFiles, bt, "", c.env); err != nil {
		return model.NewContainerError("backup", memoryBackend, "", err)
	}
	return nil
}
