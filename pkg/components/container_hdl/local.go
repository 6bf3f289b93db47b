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
	"log/slog"
	"os"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	helper_aasx "github.com/industrial-twin/aas-package-manager/pkg/components/helper/aasx"
)

const fileBackend = "file"

// FileContainer backs a package with a local file. Archives and
// configured plain files go through the staging buffer, everything else
// is read and written in place.
type FileContainer struct {
	base
	buf      buffer
	indirect bool
	logger   *slog.Logger
}

func NewFileContainer(location string, options model.ContainerOptions, config Config, logger *slog.Logger) *FileContainer {
	format := helper_aasx.FormatFromLocation(location)
	c := &FileContainer{
		base: base{
			location: location,
			format:   format,
			options:  options.Normalized(),
		},
		buf:      buffer{tempDir: config.TempDirPath},
		indirect: config.IndirectFiles || helper_aasx.IsArchive(format),
		logger:   logger,
	}
	return c
}

func (c *FileContainer) Info() model.ContainerInfo {
	return c.info(fileBackend)
}

func (c *FileContainer) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.format == model.FormatUnknown {
		return model.NewInvalidInputError(errors.New("unknown package format"))
	}
	readFrom := c.location
	if c.indirect {
		if err := c.buf.stage(c.location, c.format); err != nil {
			return model.NewInternalError(model.NewContainerError("load", fileBackend, c.location, err))
		}
		readFrom = c.buf.tempFn
	}
	env, err := helper_aasx.ReadFile(readFrom, c.format)
	if err != nil {
		return model.NewInternalError(model.NewContainerError("load", fileBackend, c.location, err))
	}
	c.env = env
	c.isOpen = true
	return nil
}

func (c *FileContainer) Save(ctx context.Context, req model.MainSaveRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return model.NewInvalidInputError(errors.New("container not open"))
	}
	target := c.location
	format := c.format
	if req.SaveAsFileName != "" {
		target = req.SaveAsFileName
		if f := helper_aasx.FormatFromLocation(target); f != model.FormatUnknown {
			format = f
		}
	}
	if c.indirect {
		if err := c.buf.flush(c.env, format); err != nil {
			return model.NewInternalError(model.NewContainerError("save", fileBackend, target, err))
		}
		if err := c.buf.promote(target); err != nil {
			return model.NewInternalError(model.NewContainerError("save", fileBackend, target, err))
		}
	} else {
		tmp := target + ".tmp~"
		if err := helper_aasx.WriteFile(tmp, format, c.env); err != nil {
			return model.NewInternalError(model.NewContainerError("save", fileBackend, target, err))
		}
		if err := os.Rename(tmp, target); err != nil {
			return model.NewInternalError(model.NewContainerError("save", fileBackend, target, err))
		}
	}
	if req.SaveAsFileName != "" && !req.DoNotRememberLocation {
		c.location = target
		c.format = format
	}
	return nil
}

// Close drops the environment. Temp files are left behind for the OS
// temp dir cleanup.
func (c *FileContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.env = nil
	c.isOpen = false
	return nil
}

func (c *FileContainer) Backup(dir string, maxFiles int, bt model.BackupType) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.isOpen {
		return model.NewInvalidInputError(errors.New("container not open"))
	}
	if err := backupInDir(dir, maxFiles, bt, c.location, c.env); err != nil {
		return model.NewContainerError("backup", fileBackend, c.location, err)
	}
	return nil
}
