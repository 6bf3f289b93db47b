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
	"strings"
	"sync"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/components/connector_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/models/slog_attr"
)

// EventStore keeps a bounded window of envelopes. A disabled store
// records nothing and never consumes.
type EventStore struct {
	capacity int
	enabled  bool
	events   []model.EventEnvelope
	mu       sync.RWMutex
}

func NewEventStore(capacity int) *EventStore {
	if capacity < 1 {
		capacity = 1
	}
	return &EventStore{capacity: capacity}
}

func (s *EventStore) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// PushEvent records the envelope when enabled, dropping the oldest
// entry once the window is full. Returns whether the store consumed it.
func (s *EventStore) PushEvent(envelope model.EventEnvelope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return false
	}
	s.events = append(s.events, envelope)
	if len(s.events) > s.capacity {
		s.events = s.events[len(s.events)-s.capacity:]
	}
	return true
}

func (s *EventStore) Events() []model.EventEnvelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.EventEnvelope(nil), s.events...)
}

// EventStore exposes the main event window for the API surface.
func (h *Handler) EventStore() *EventStore {
	return h.eventStore
}

func (h *Handler) EditBuffer() *EventStore {
	return h.editBuffer
}

// PushEvent offers the envelope to the event store, the edit buffer and
// every attached container, in that order. The first collaborator that
// consumes it stops the fan-out. A container consumes by resolving the
// observable and applying the payloads to its environment; containers
// kept in sync by their own connector already received the server
// changes through it and are skipped.
func (h *Handler) PushEvent(envelope model.EventEnvelope) bool {
	if h.eventStore.PushEvent(envelope) {
		return true
	}
	if h.editBuffer.PushEvent(envelope) {
		return true
	}
	for _, c := range h.containers() {
		env := c.Env()
		if env == nil || env.FindReferable(envelope.Observable) == nil {
			continue
		}
		if c.Connector() != nil {
			continue
		}
		connector_hdl.NewApplier(env, func(event model.ChangeEvent) {
			if event.Reason == model.ChangeException {
				h.logger.Warn("event item not applied", slog_attr.PathKey, strings.Join(event.Path, "/"), "info", event.Info)
			}
		}).Apply(envelope)
		return true
	}
	return false
}
