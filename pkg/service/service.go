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

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/components/central_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/components/connector_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/components/container_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/components/repo_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/configuration"
	"github.com/industrial-twin/aas-package-manager/pkg/models/slog_attr"
)

// Service ties the package central, the repository lists and the job
// handler together behind the public api.
type Service struct {
	central *central_hdl.Handler
	jobs    jobHandler
	mru     *repo_hdl.MruList
	config  *configuration.Config
	logger  *slog.Logger
}

func New(central *central_hdl.Handler, jobs jobHandler, mru *repo_hdl.MruList, config *configuration.Config, logger *slog.Logger) *Service {
	return &Service{
		central: central,
		jobs:    jobs,
		mru:     mru,
		config:  config,
		logger:  logger,
	}
}

// Init loads the configured repository list files and the MRU file.
// Missing files are not an error on first start.
func (s *Service) Init() error {
	for _, list := range s.central.Repositories() {
		info := list.Info()
		if info.FilePath == "" {
			continue
		}
		if err := list.LoadFromFile(); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				s.logger.Warn("repository list file missing", slog_attr.FilePathKey, info.FilePath)
				continue
			}
			return err
		}
	}
	if s.mru.Info().FilePath != "" {
		if err := s.mru.LoadFromFile(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (s *Service) GetRepositories(_ context.Context) ([]model.RepoListInfo, error) {
	var infos []model.RepoListInfo
	for _, list := range s.central.Repositories() {
		infos = append(infos, list.Info())
	}
	return infos, nil
}

func (s *Service) repository(header string) (central_hdl.RepositoryList, error) {
	for _, list := range s.central.Repositories() {
		if list.Info().Header == header {
			return list, nil
		}
	}
	return nil, model.NewNotFoundError(fmt.Errorf("repository '%s' not found", header))
}

func (s *Service) GetRepositoryItems(_ context.Context, header string) ([]model.RepoItem, error) {
	list, err := s.repository(header)
	if err != nil {
		return nil, err
	}
	var items []model.RepoItem
	for _, item := range list.Items() {
		items = append(items, item.RepoItem)
	}
	return items, nil
}

// AddRepositoryItem opens the package once to derive its ids, tag and
// description, then registers it and persists the list. Runs as a job.
func (s *Service) AddRepositoryItem(_ context.Context, header, location string) (string, error) {
	list, err := s.repository(header)
	if err != nil {
		return "", err
	}
	return s.jobs.Create(fmt.Sprintf("add '%s' to repository '%s'", location, header), func(ctx context.Context, _ context.CancelFunc) error {
		container, err := s.newContainer(ctx, list.ResolveLocation(location))
		if err != nil {
			return err
		}
		defer func() {
			if err := container.Close(); err != nil {
				s.logger.Error("closing package failed", slog_attr.LocationKey, location, slog_attr.ErrorKey, err)
			}
		}()
		item := repo_hdl.NewItem(model.RepoItem{Location: location})
		item.CalculateIdsTagAndDesc(container.Env(), false)
		list.Add(item)
		if list.Info().FilePath != "" {
			return list.SaveToFile()
		}
		return nil
	})
}

func (s *Service) RemoveRepositoryItem(_ context.Context, header, location string) error {
	list, err := s.repository(header)
	if err != nil {
		return err
	}
	for idx, item := range list.Items() {
		if item.Location == location {
			if err = list.RemoveAt(idx); err != nil {
				return err
			}
			if list.Info().FilePath != "" {
				return list.SaveToFile()
			}
			return nil
		}
	}
	return model.NewNotFoundError(fmt.Errorf("item '%s' not found in repository '%s'", location, header))
}

// SyncRepository refreshes a server backed repository as a job.
func (s *Service) SyncRepository(_ context.Context, header string) (string, error) {
	list, err := s.repository(header)
	if err != nil {
		return "", err
	}
	remote, ok := list.(*repo_hdl.RemoteList)
	if !ok {
		return "", model.NewInvalidInputError(fmt.Errorf("repository '%s' is not server backed", header))
	}
	return s.jobs.Create(fmt.Sprintf("sync repository '%s'", header), func(ctx context.Context, _ context.CancelFunc) error {
		return remote.SyncFromServer(ctx)
	})
}

func (s *Service) GetMainInfo(_ context.Context) (model.ContainerInfo, error) {
	main := s.central.Main()
	if main == nil {
		return model.ContainerInfo{}, model.NewNotFoundError(errors.New("no main package"))
	}
	return main.Info(), nil
}

// LoadMain opens a package into the main slot as a job. A connector is
// attached when the backend exposes an endpoint and the options ask to
// stay connected.
func (s *Service) LoadMain(_ context.Context, location string, options *model.ContainerOptions) (string, error) {
	opts := model.ContainerOptions{}
	if options != nil {
		opts = *options
	}
	return s.jobs.Create(fmt.Sprintf("load '%s'", location), func(ctx context.Context, _ context.CancelFunc) error {
		if err := s.central.LoadMain(ctx, location, opts, s.runtimeOptions()); err != nil {
			return err
		}
		main := s.central.Main()
		if opts.StayConnected {
			if ep := main.Endpoint(); ep != "" {
				main.SetConnector(connector_hdl.New(main, ep, s.config.Connector.Timeout, nil, s.central, s.logger))
			} else {
				s.logger.Warn("backend has no endpoint to stay connected to", slog_attr.LocationKey, location)
			}
		}
		s.central.ReIndex()
		s.pushMru(main.Info().Location)
		return nil
	})
}

func (s *Service) runtimeOptions() container_hdl.RuntimeOptions {
	return container_hdl.RuntimeOptions{
		Progress: func(readBytes int64) {
			s.logger.Debug("download progress", slog_attr.CountKey, readBytes)
		},
	}
}

func (s *Service) pushMru(location string) {
	item := repo_hdl.NewItem(model.RepoItem{Location: location})
	s.mru.Push(item, location)
	if s.mru.Info().FilePath != "" {
		if err := s.mru.SaveToFile(); err != nil {
			s.logger.Error("saving recently used list failed", slog_attr.ErrorKey, err)
		}
	}
}

func (s *Service) SaveMain(_ context.Context, saveAsFileName string, doNotRememberLocation bool) (string, error) {
	if !s.central.MainAvailable() {
		return "", model.NewNotFoundError(errors.New("no main package"))
	}
	return s.jobs.Create("save main package", func(ctx context.Context, _ context.CancelFunc) error {
		return s.central.SaveMain(ctx, model.MainSaveRequest{
			SaveAsFileName:        saveAsFileName,
			DoNotRememberLocation: doNotRememberLocation,
		})
	})
}

func (s *Service) CloseMain(_ context.Context) error {
	return s.central.CloseMain()
}

func (s *Service) LookupIdent(_ context.Context, id string, deep bool) ([]model.IdentInfo, error) {
	if id == "" {
		return nil, model.NewInvalidInputError(errors.New("empty id"))
	}
	return s.central.LookupAllIdent(id, deep), nil
}

func (s *Service) ReIndex(_ context.Context) error {
	s.central.ReIndex()
	return nil
}

func (s *Service) PushEvent(_ context.Context, envelope model.EventEnvelope) (bool, error) {
	return s.central.PushEvent(envelope), nil
}

func (s *Service) GetEvents(_ context.Context, limit int) ([]model.EventEnvelope, error) {
	events := s.central.EventStore().Events()
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}

func (s *Service) GetJobs(_ context.Context, filter model.JobFilter) ([]model.Job, error) {
	return s.jobs.List(filter), nil
}

func (s *Service) GetJob(_ context.Context, id string) (model.Job, error) {
	return s.jobs.Get(id)
}

func (s *Service) CancelJob(_ context.Context, id string) error {
	return s.jobs.Cancel(id)
}

// PurgeJobs removes settled jobs older than the configured age.
func (s *Service) PurgeJobs() {
	if n := s.jobs.PurgeJobs(s.config.Jobs.MaxAge); n > 0 {
		s.logger.Info("purged jobs", slog_attr.CountKey, n)
	}
}

// newContainer opens a package outside the main and aux slots, loaded
// right away since every caller needs the environment.
func (s *Service) newContainer(ctx context.Context, location string) (container_hdl.Container, error) {
	return s.central.Factory().GuessAndCreate(ctx, location, model.ContainerOptions{}, true, s.runtimeOptions())
}
