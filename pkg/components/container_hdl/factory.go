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
	"regexp"
	"strings"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	helper_aasx "github.com/industrial-twin/aas-package-manager/pkg/components/helper/aasx"
	helper_http "github.com/industrial-twin/aas-package-manager/pkg/components/helper/http"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
	"github.com/industrial-twin/aas-package-manager/pkg/models/slog_attr"
)

// getAasxPattern matches server package download routes and captures the
// server head and the package index.
var getAasxPattern = regexp.MustCompile(`^(https?://.+?)/server/getaasx/([^/]+)/?$`)

// RuntimeOptions carry per-request callbacks the backends may use.
type RuntimeOptions struct {
	Progress      func(readBytes int64)
	TokenProvider helper_http.TokenProvider
}

type Factory struct {
	config Config
	logger *slog.Logger
}

func NewFactory(config Config, logger *slog.Logger) *Factory {
	return &Factory{config: config, logger: logger}
}

func (f *Factory) Init() error {
	return os.MkdirAll(f.config.TempDirPath, 0775)
}

// GuessAndCreate picks a backend from the location shape. Unresolvable
// locations yield an invalid input error. The container is loaded right
// away when overrideLoadResident or its own LoadResident option asks
// for it, otherwise the environment stays empty until Load is called.
func (f *Factory) GuessAndCreate(ctx context.Context, location string, options model.ContainerOptions, overrideLoadResident bool, runtime RuntimeOptions) (Container, error) {
	location = strings.TrimSpace(location)
	var container Container
	switch {
	case strings.HasPrefix(location, model.UserFileScheme):
		c, err := NewUserFileContainer(location, options, f.config, f.logger)
		if err != nil {
			return nil, err
		}
		container = c
	case strings.HasPrefix(strings.ToLower(location), "http://"), strings.HasPrefix(strings.ToLower(location), "https://"):
		if m := getAasxPattern.FindStringSubmatch(location); m != nil {
			container = NewNetworkContainer(location, m[1], m[2], options, f.config, runtime, f.logger)
		} else {
			container = NewNetworkContainer(location, "", "", options, f.config, runtime, f.logger)
		}
	default:
		if helper_aasx.FormatFromLocation(location) == model.FormatUnknown {
			f.logger.Warn("no backend matches location", slog_attr.LocationKey, location)
			return nil, model.NewInvalidInputError(fmt.Errorf("no backend matches location '%s'", location))
		}
		container = NewFileContainer(location, options, f.config, f.logger)
	}
	if overrideLoadResident || options.LoadResident {
		if err := container.Load(ctx); err != nil {
			return nil, err
		}
	}
	return container, nil
}

// TakeOver wraps an environment handed over by another party into a
// memory backed container.
func (f *Factory) TakeOver(env *aas.Environment, options model.ContainerOptions) Container {
	return NewMemoryContainer(env, options)
}
