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

package connector_hdl

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/components/container_hdl"
	helper_http "github.com/industrial-twin/aas-package-manager/pkg/components/helper/http"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
	"github.com/industrial-twin/aas-package-manager/pkg/models/slog_attr"
)

// EventSink receives envelopes after their payloads were processed, so
// the other collaborators observe them too.
type EventSink interface {
	PushEvent(envelope model.EventEnvelope) bool
}

// Connector reconciles one container against its server endpoint. The
// only state carried across calls is the HTTP client with its token and
// the timestamp cursor.
type Connector struct {
	container container_hdl.Container
	endpoint  string
	client    *helper_http.Client
	sink      EventSink
	handler   model.ChangeHandler
	lastSeen  time.Time
	logger    *slog.Logger
	mu        sync.Mutex
}

func New(container container_hdl.Container, endpoint string, timeout time.Duration, tokenFn helper_http.TokenProvider, sink EventSink, logger *slog.Logger) *Connector {
	return &Connector{
		container: container,
		endpoint:  strings.TrimRight(endpoint, "/"),
		client:    helper_http.NewClient(timeout, tokenFn),
		sink:      sink,
		logger:    logger,
	}
}

func (c *Connector) SetChangeHandler(handler model.ChangeHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

func (c *Connector) notify(event model.ChangeEvent) {
	c.mu.Lock()
	handler := c.handler
	c.mu.Unlock()
	if handler != nil {
		handler(event)
	}
}

// newApplier builds the applier for one batch, reporting through the
// change handler and logging every item that could not be applied.
func (c *Connector) newApplier(env *aas.Environment) *Applier {
	return NewApplier(env, func(event model.ChangeEvent) {
		if event.Reason == model.ChangeException {
			c.logger.Warn("event item not applied", slog_attr.EndpointKey, c.endpoint, slog_attr.PathKey, strings.Join(event.Path, "/"), "info", event.Info)
		}
		c.notify(event)
	})
}
