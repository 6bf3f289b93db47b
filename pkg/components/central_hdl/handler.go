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
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/components/container_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
	"github.com/industrial-twin/aas-package-manager/pkg/models/slog_attr"
)

// Handler coordinates the open packages: one main slot, one aux slot,
// the repository lists and the event collaborators.
type Handler struct {
	factory    *container_hdl.Factory
	eventStore *EventStore
	editBuffer *EventStore
	lookup     *LookupStore
	repos      []RepositoryList
	main       container_hdl.Container
	aux        container_hdl.Container
	attached   []container_hdl.Container
	logger     *slog.Logger
	mu         sync.RWMutex
}

func New(factory *container_hdl.Factory, eventStoreSize int, logger *slog.Logger) *Handler {
	return &Handler{
		factory:    factory,
		eventStore: NewEventStore(eventStoreSize),
		editBuffer: NewEventStore(eventStoreSize),
		lookup:     NewLookupStore(),
		logger:     logger,
	}
}

func (h *Handler) AddRepository(list RepositoryList) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.repos = append(h.repos, list)
}

func (h *Handler) Repositories() []RepositoryList {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]RepositoryList(nil), h.repos...)
}

func (h *Handler) Factory() *container_hdl.Factory {
	return h.factory
}

func (h *Handler) Main() container_hdl.Container {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.main
}

func (h *Handler) Aux() container_hdl.Container {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.aux
}

func (h *Handler) MainAvailable() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.main != nil && h.main.Info().IsOpen
}

// MainStorable reports whether the main package can be written back to
// a source. Taken-over memory packages cannot.
func (h *Handler) MainStorable() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.main == nil {
		return false
	}
	info := h.main.Info()
	return info.IsOpen && info.Location != ""
}

func (h *Handler) AuxAvailable() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.aux != nil && h.aux.Info().IsOpen
}

// LoadMain opens a new main package. The previous one is closed before
// the slot is replaced.
func (h *Handler) LoadMain(ctx context.Context, location string, options model.ContainerOptions, runtime container_hdl.RuntimeOptions) error {
	container, err := h.factory.GuessAndCreate(ctx, location, options, true, runtime)
	if err != nil {
		return err
	}
	h.replaceMain(container)
	return nil
}

// TakeOverMain installs an environment handed over by another party as
// the main package.
func (h *Handler) TakeOverMain(env *aas.Environment, options model.ContainerOptions) {
	h.replaceMain(h.factory.TakeOver(env, options))
}

func (h *Handler) replaceMain(container container_hdl.Container) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.main != nil {
		if err := h.main.Close(); err != nil {
			h.logger.Error("closing previous main package failed", slog_attr.ErrorKey, err)
		}
	}
	h.main = container
}

func (h *Handler) SaveMain(ctx context.Context, req model.MainSaveRequest) error {
	h.mu.RLock()
	main := h.main
	h.mu.RUnlock()
	if main == nil {
		return model.NewNotFoundError(errors.New("no main package"))
	}
	return main.Save(ctx, req)
}

func (h *Handler) CloseMain() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.main == nil {
		return model.NewNotFoundError(errors.New("no main package"))
	}
	err := h.main.Close()
	h.main = nil
	return err
}

// LoadAux opens a new aux package, closing the previous one first.
func (h *Handler) LoadAux(ctx context.Context, location string, options model.ContainerOptions, runtime container_hdl.RuntimeOptions) error {
	container, err := h.factory.GuessAndCreate(ctx, location, options, true, runtime)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.aux != nil {
		if err = h.aux.Close(); err != nil {
			h.logger.Error("closing previous aux package failed", slog_attr.ErrorKey, err)
		}
	}
	h.aux = container
	return nil
}

func (h *Handler) CloseAux() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.aux == nil {
		return model.NewNotFoundError(errors.New("no aux package"))
	}
	err := h.aux.Close()
	h.aux = nil
	return err
}

// Attach registers an additionally opened container, typically backing
// a repository item, with lookup and event fan-out.
func (h *Handler) Attach(container container_hdl.Container) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attached = append(h.attached, container)
}

func (h *Handler) Detach(container container_hdl.Container) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, c := range h.attached {
		if c == container {
			h.attached = append(h.attached[:i], h.attached[i+1:]...)
			return
		}
	}
}

// containers lists every attached container, main and aux first.
func (h *Handler) containers() []container_hdl.Container {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []container_hdl.Container
	if h.main != nil {
		out = append(out, h.main)
	}
	if h.aux != nil {
		out = append(out, h.aux)
	}
	out = append(out, h.attached...)
	return out
}
