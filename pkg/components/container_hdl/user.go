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
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/industrial-twin/aas-package-manager/lib/model"
)

const userFileBackend = "user_file"

// UserFileContainer resolves "user://" locations against the configured
// per-user directory. Only bare file names are allowed, nothing can
// escape the sandbox.
type UserFileContainer struct {
	*FileContainer
	userLocation string
	config       Config
}

func NewUserFileContainer(location string, options model.ContainerOptions, config Config, logger *slog.Logger) (*UserFileContainer, error) {
	name := strings.TrimPrefix(location, model.UserFileScheme)
	if err := validateUserFileName(name); err != nil {
		return nil, err
	}
	dir := path.Join(config.UserDirPath, config.UserName)
	if err := os.MkdirAll(dir, 0775); err != nil {
		return nil, model.NewInternalError(err)
	}
	return &UserFileContainer{
		FileContainer: NewFileContainer(path.Join(dir, name), options, config, logger),
		userLocation:  model.UserFileScheme + name,
		config:        config,
	}, nil
}

func validateUserFileName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") || name != path.Base(name) || name == ".." {
		return model.NewInvalidInputError(fmt.Errorf("invalid user file name '%s'", name))
	}
	return nil
}

func (c *UserFileContainer) Info() model.ContainerInfo {
	info := c.FileContainer.Info()
	info.Location = c.userLocation
	info.Backend = userFileBackend
	return info
}

func (c *UserFileContainer) Save(ctx context.Context, req model.MainSaveRequest) error {
	if req.SaveAsFileName == "" {
		return c.FileContainer.Save(ctx, req)
	}
	name := strings.TrimPrefix(req.SaveAsFileName, model.UserFileScheme)
	if err := validateUserFileName(name); err != nil {
		return err
	}
	err := c.FileContainer.Save(ctx, model.MainSaveRequest{
		SaveAsFileName:        path.Join(c.config.UserDirPath, c.config.UserName, name),
		DoNotRememberLocation: req.DoNotRememberLocation,
	})
	if err == nil && !req.DoNotRememberLocation {
		c.userLocation = model.UserFileScheme + name
	}
	return err
}
