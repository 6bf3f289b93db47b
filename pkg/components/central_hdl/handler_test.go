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
	"log/slog"
	"path"
	"testing"
	"time"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/components/container_hdl"
	helper_aasx "github.com/industrial-twin/aas-package-manager/pkg/components/helper/aasx"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

var testLogger = slog.New(slog.DiscardHandler)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	config := container_hdl.Config{
		TempDirPath: t.TempDir(),
		UserDirPath: t.TempDir(),
		UserName:    "alice",
		HttpTimeout: time.Second * 5,
	}
	factory := container_hdl.NewFactory(config, testLogger)
	return New(factory, 10, testLogger)
}

func testEnv(shellID string) *aas.Environment {
	sm := &aas.Submodel{
		ID:      shellID + ":sm",
		IdShort: "Nameplate",
		Elements: []aas.SubmodelElement{
			&aas.Property{IdShort: "Manufacturer", Value: "ACME"},
		},
	}
	shell := &aas.Shell{
		ID:        shellID,
		IdShort:   "Motor01",
		Submodels: []aas.Reference{aas.NewReference(aas.Key{Type: aas.KeyTypeSubmodel, Value: sm.ID})},
	}
	return &aas.Environment{Shells: []*aas.Shell{shell}, Submodels: []*aas.Submodel{sm}}
}

func writeEnvFile(t *testing.T, env *aas.Environment) string {
	t.Helper()
	fp := path.Join(t.TempDir(), "env.json")
	if err := helper_aasx.WriteFile(fp, model.FormatJSON, env); err != nil {
		t.Fatal(err)
	}
	return fp
}

func TestMainSlot(t *testing.T) {
	h := testHandler(t)
	ctx := context.Background()
	if h.MainAvailable() {
		t.Error("main available before load")
	}
	fp := writeEnvFile(t, testEnv("urn:aas:one"))
	if err := h.LoadMain(ctx, fp, model.ContainerOptions{}, container_hdl.RuntimeOptions{}); err != nil {
		t.Fatal(err)
	}
	if !h.MainAvailable() || !h.MainStorable() {
		t.Error("main not available")
	}
	first := h.Main()
	fp2 := writeEnvFile(t, testEnv("urn:aas:two"))
	if err := h.LoadMain(ctx, fp2, model.ContainerOptions{}, container_hdl.RuntimeOptions{}); err != nil {
		t.Fatal(err)
	}
	if first.Info().IsOpen {
		t.Error("previous main not closed")
	}
	if h.Main() == first {
		t.Error("slot not replaced")
	}
	if err := h.CloseMain(); err != nil {
		t.Fatal(err)
	}
	if h.MainAvailable() {
		t.Error("main still available")
	}
	if err := h.CloseMain(); err == nil {
		t.Error("expected error")
	}
}

func TestTakeOverMain(t *testing.T) {
	h := testHandler(t)
	h.TakeOverMain(testEnv("urn:aas:mem"), model.ContainerOptions{})
	if !h.MainAvailable() {
		t.Error("main not available")
	}
	if h.MainStorable() {
		t.Error("memory package reported storable")
	}
}

func TestLookup(t *testing.T) {
	h := testHandler(t)
	ctx := context.Background()
	fp := writeEnvFile(t, testEnv("urn:aas:one"))
	if err := h.LoadMain(ctx, fp, model.ContainerOptions{}, container_hdl.RuntimeOptions{}); err != nil {
		t.Fatal(err)
	}
	h.ReIndex()
	t.Run("indexed", func(t *testing.T) {
		got := h.LookupAllIdent("urn:aas:one", false)
		if len(got) != 1 || got[0].IdShort != "Motor01" {
			t.Errorf("got %v", got)
		}
		if got[0].Source != fp {
			t.Errorf("source = '%s'", got[0].Source)
		}
	})
	t.Run("stale without deep", func(t *testing.T) {
		h.Main().Env().Submodels = append(h.Main().Env().Submodels, &aas.Submodel{ID: "urn:sm:new", IdShort: "New"})
		if got := h.LookupAllIdent("urn:sm:new", false); len(got) != 0 {
			t.Errorf("got %v", got)
		}
		if got := h.LookupAllIdent("urn:sm:new", true); len(got) != 1 {
			t.Errorf("got %v", got)
		}
	})
	t.Run("deep deduplicates", func(t *testing.T) {
		if got := h.LookupAllIdent("urn:aas:one", true); len(got) != 1 {
			t.Errorf("got %v", got)
		}
	})
}

func TestPushEvent(t *testing.T) {
	h := testHandler(t)
	envelope := model.EventEnvelope{
		Timestamp:  time.Now(),
		Observable: aas.NewReference(aas.Key{Type: aas.KeyTypeSubmodel, Value: "urn:aas:one:sm"}),
	}
	t.Run("nothing consumes", func(t *testing.T) {
		if h.PushEvent(envelope) {
			t.Error("consumed with no collaborators")
		}
	})
	t.Run("store consumes first", func(t *testing.T) {
		h.EventStore().SetEnabled(true)
		if !h.PushEvent(envelope) {
			t.Error("not consumed")
		}
		if len(h.EventStore().Events()) != 1 {
			t.Error("not recorded")
		}
		if len(h.EditBuffer().Events()) != 0 {
			t.Error("fan-out did not stop at first consumer")
		}
	})
	t.Run("container applies payloads", func(t *testing.T) {
		h.EventStore().SetEnabled(false)
		h.TakeOverMain(testEnv("urn:aas:one"), model.ContainerOptions{})
		update := envelope
		update.Payloads = []model.EventPayload{{
			Type:  model.PayloadUpdateValue,
			Path:  []string{"Manufacturer"},
			Value: "Umbrella",
		}}
		if !h.PushEvent(update) {
			t.Error("container did not consume")
		}
		sm := h.Main().Env().FindSubmodel("urn:aas:one:sm")
		if p := sm.Elements[0].(*aas.Property); p.Value != "Umbrella" {
			t.Errorf("value = '%s'", p.Value)
		}
	})
	t.Run("synced container left to its connector", func(t *testing.T) {
		h.Main().SetConnector(&stubConnector{})
		update := envelope
		update.Payloads = []model.EventPayload{{
			Type:  model.PayloadUpdateValue,
			Path:  []string{"Manufacturer"},
			Value: "Wayne",
		}}
		if h.PushEvent(update) {
			t.Error("consumed despite connector")
		}
		sm := h.Main().Env().FindSubmodel("urn:aas:one:sm")
		if p := sm.Elements[0].(*aas.Property); p.Value != "Umbrella" {
			t.Errorf("value = '%s'", p.Value)
		}
	})
	t.Run("store window bounded", func(t *testing.T) {
		store := NewEventStore(2)
		store.SetEnabled(true)
		for i := 0; i < 5; i++ {
			store.PushEvent(model.EventEnvelope{})
		}
		if len(store.Events()) != 2 {
			t.Errorf("got %d events", len(store.Events()))
		}
	})
}

type stubConnector struct{}

func (s *stubConnector) PullEvents(_ context.Context) (int, error) {
	return 0, nil
}

func (s *stubConnector) PollValues(_ context.Context) (bool, error) {
	return false, nil
}
