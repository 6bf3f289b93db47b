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
	"log/slog"
	"os"
	"path"
	"testing"
	"time"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/components/central_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/components/container_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/components/helper/aasx"
	"github.com/industrial-twin/aas-package-manager/pkg/components/repo_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/configuration"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

var testLogger = slog.New(slog.DiscardHandler)

// syncJobs runs every created job inline and records its outcome.
type syncJobs struct {
	count int
	errs  []error
}

func (j *syncJobs) Create(_ string, tFunc func(context.Context, context.CancelFunc) error) (string, error) {
	j.count++
	_, cf := context.WithCancel(context.Background())
	defer cf()
	j.errs = append(j.errs, tFunc(context.Background(), cf))
	return "test-job", nil
}

func (j *syncJobs) Get(id string) (model.Job, error) {
	return model.Job{ID: id}, nil
}

func (j *syncJobs) Cancel(_ string) error { return nil }

func (j *syncJobs) List(_ model.JobFilter) []model.Job { return nil }

func (j *syncJobs) PurgeJobs(_ time.Duration) int { return 0 }

func (j *syncJobs) lastErr() error {
	if len(j.errs) == 0 {
		return nil
	}
	return j.errs[len(j.errs)-1]
}

func newTestService(t *testing.T) (*Service, *central_hdl.Handler, *syncJobs, string) {
	t.Helper()
	dir := t.TempDir()
	config := &configuration.Config{
		Container: container_hdl.Config{
			TempDirPath: path.Join(dir, "tmp"),
			UserDirPath: path.Join(dir, "users"),
			UserName:    "tester",
			HttpTimeout: time.Second,
		},
		Connector: configuration.ConnectorConfig{Timeout: time.Second, UpdatePeriod: time.Second},
		Jobs:      configuration.JobsConfig{MaxAge: time.Hour},
	}
	factory := container_hdl.NewFactory(config.Container, testLogger)
	if err := factory.Init(); err != nil {
		t.Fatal(err)
	}
	central := central_hdl.New(factory, 10, testLogger)
	jobs := &syncJobs{}
	mru := repo_hdl.NewMruList(path.Join(dir, "mru.json"))
	return New(central, jobs, mru, config, testLogger), central, jobs, dir
}

func writeTestPackage(t *testing.T, filePath string) {
	t.Helper()
	env := &aas.Environment{
		Shells: []*aas.Shell{
			{ID: "urn:aas:1", IdShort: "Motor01", AssetID: "urn:asset:1"},
		},
		Submodels: []*aas.Submodel{
			{ID: "urn:sm:1", IdShort: "Ident"},
		},
	}
	if err := aasx.WriteFile(filePath, model.FormatJSON, env); err != nil {
		t.Fatal(err)
	}
}

func TestRepositoryOperations(t *testing.T) {
	srv, central, jobs, dir := newTestService(t)
	central.AddRepository(repo_hdl.NewList("Local", path.Join(dir, "list.json")))
	pkgPath := path.Join(dir, "motor.json")
	writeTestPackage(t, pkgPath)

	t.Run("list repositories", func(t *testing.T) {
		infos, err := srv.GetRepositories(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(infos) != 1 || infos[0].Header != "Local" {
			t.Errorf("got %v", infos)
		}
	})
	t.Run("unknown repository", func(t *testing.T) {
		_, err := srv.GetRepositoryItems(context.Background(), "missing")
		var nfe *model.NotFoundError
		if !errors.As(err, &nfe) {
			t.Errorf("got %v", err)
		}
	})
	t.Run("add item derives ids", func(t *testing.T) {
		if _, err := srv.AddRepositoryItem(context.Background(), "Local", pkgPath); err != nil {
			t.Fatal(err)
		}
		if err := jobs.lastErr(); err != nil {
			t.Fatal(err)
		}
		items, err := srv.GetRepositoryItems(context.Background(), "Local")
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 1 {
			t.Fatalf("got %d items", len(items))
		}
		if items[0].Tag != "MOT" {
			t.Errorf("got tag %s", items[0].Tag)
		}
		if len(items[0].AasIds) != 1 || items[0].AasIds[0] != "urn:aas:1" {
			t.Errorf("got %v", items[0].AasIds)
		}
		if _, err = os.Stat(path.Join(dir, "list.json")); err != nil {
			t.Error("list file not written")
		}
	})
	t.Run("remove item", func(t *testing.T) {
		if err := srv.RemoveRepositoryItem(context.Background(), "Local", pkgPath); err != nil {
			t.Fatal(err)
		}
		items, _ := srv.GetRepositoryItems(context.Background(), "Local")
		if len(items) != 0 {
			t.Errorf("got %d items", len(items))
		}
	})
	t.Run("remove missing item", func(t *testing.T) {
		err := srv.RemoveRepositoryItem(context.Background(), "Local", "nope.json")
		var nfe *model.NotFoundError
		if !errors.As(err, &nfe) {
			t.Errorf("got %v", err)
		}
	})
	t.Run("sync on file backed repository", func(t *testing.T) {
		_, err := srv.SyncRepository(context.Background(), "Local")
		var iie *model.InvalidInputError
		if !errors.As(err, &iie) {
			t.Errorf("got %v", err)
		}
	})
}

func TestMainLifecycle(t *testing.T) {
	srv, central, jobs, dir := newTestService(t)
	pkgPath := path.Join(dir, "motor.json")
	writeTestPackage(t, pkgPath)

	t.Run("info without main", func(t *testing.T) {
		_, err := srv.GetMainInfo(context.Background())
		var nfe *model.NotFoundError
		if !errors.As(err, &nfe) {
			t.Errorf("got %v", err)
		}
	})
	t.Run("save without main", func(t *testing.T) {
		_, err := srv.SaveMain(context.Background(), "", false)
		var nfe *model.NotFoundError
		if !errors.As(err, &nfe) {
			t.Errorf("got %v", err)
		}
	})
	t.Run("load", func(t *testing.T) {
		if _, err := srv.LoadMain(context.Background(), pkgPath, nil); err != nil {
			t.Fatal(err)
		}
		if err := jobs.lastErr(); err != nil {
			t.Fatal(err)
		}
		info, err := srv.GetMainInfo(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if !info.IsOpen || info.Location != pkgPath {
			t.Errorf("got %+v", info)
		}
	})
	t.Run("load indexes main", func(t *testing.T) {
		matches, err := srv.LookupIdent(context.Background(), "urn:aas:1", false)
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) != 1 {
			t.Errorf("got %v", matches)
		}
	})
	t.Run("load pushes recently used", func(t *testing.T) {
		if _, err := os.Stat(path.Join(dir, "mru.json")); err != nil {
			t.Error("mru file not written")
		}
	})
	t.Run("save", func(t *testing.T) {
		if _, err := srv.SaveMain(context.Background(), "", false); err != nil {
			t.Fatal(err)
		}
		if err := jobs.lastErr(); err != nil {
			t.Fatal(err)
		}
	})
	t.Run("close", func(t *testing.T) {
		if err := srv.CloseMain(context.Background()); err != nil {
			t.Fatal(err)
		}
		if central.MainAvailable() {
			t.Error("main still available")
		}
	})
}

func TestGetEventsLimit(t *testing.T) {
	srv, central, _, _ := newTestService(t)
	central.EventStore().SetEnabled(true)
	for i := 0; i < 5; i++ {
		_, _ = srv.PushEvent(context.Background(), model.EventEnvelope{})
	}
	events, err := srv.GetEvents(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events", len(events))
	}
	events, _ = srv.GetEvents(context.Background(), 0)
	if len(events) != 5 {
		t.Errorf("got %d events", len(events))
	}
}

func TestLookupEmptyID(t *testing.T) {
	srv, _, _, _ := newTestService(t)
	_, err := srv.LookupIdent(context.Background(), "", false)
	var iie *model.InvalidInputError
	if !errors.As(err, &iie) {
		t.Errorf("got %v", err)
	}
}
