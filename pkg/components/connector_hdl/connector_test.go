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
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/components/container_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

var testLogger = slog.New(slog.DiscardHandler)

type testSink struct {
	envelopes []model.EventEnvelope
}

func (s *testSink) PushEvent(envelope model.EventEnvelope) bool {
	s.envelopes = append(s.envelopes, envelope)
	return true
}

func testEnv() *aas.Environment {
	sm := &aas.Submodel{
		ID:      "urn:sm:nameplate",
		IdShort: "Nameplate",
		Elements: []aas.SubmodelElement{
			&aas.Property{IdShort: "Manufacturer", Value: "ACME"},
			&aas.ElementCollection{
				IdShort: "Markings",
				Value: []aas.SubmodelElement{
					&aas.Property{IdShort: "CE", Value: "true"},
				},
			},
		},
	}
	shell := &aas.Shell{
		ID:        "urn:aas:motor01",
		IdShort:   "Motor01",
		Submodels: []aas.Reference{aas.NewReference(aas.Key{Type: aas.KeyTypeSubmodel, Value: sm.ID})},
	}
	return &aas.Environment{Shells: []*aas.Shell{shell}, Submodels: []*aas.Submodel{sm}}
}

func eventServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, body)
	}))
}

func testConnector(t *testing.T, srvURL string) (*Connector, *container_hdl.MemoryContainer, *testSink, *[]model.ChangeEvent) {
	t.Helper()
	container := container_hdl.NewMemoryContainer(testEnv(), model.ContainerOptions{})
	sink := &testSink{}
	connector := New(container, srvURL, time.Second*5, nil, sink, testLogger)
	var changes []model.ChangeEvent
	connector.SetChangeHandler(func(ev model.ChangeEvent) {
		changes = append(changes, ev)
	})
	return connector, container, sink, &changes
}

const observable = `{"keys":[{"type":"Submodel","value":"urn:sm:nameplate"}]}`

func TestPullEventsUpdateValue(t *testing.T) {
	body := fmt.Sprintf(`[{"timestamp":"2026-08-30T10:00:00Z","observable":%s,"payloads":[
		{"type":"update","path":["Manufacturer"],"value":"Contoso"}
	]}]`, observable)
	srv := eventServer(t, body)
	defer srv.Close()
	connector, container, sink, changes := testConnector(t, srv.URL)
	n, err := connector.PullEvents(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("got %d envelopes", n)
	}
	sm := container.Env().FindSubmodel("urn:sm:nameplate")
	if p := sm.Elements[0].(*aas.Property); p.Value != "Contoso" {
		t.Errorf("value = '%s'", p.Value)
	}
	if len(sink.envelopes) != 1 {
		t.Error("envelope not forwarded")
	}
	wantReasons := []model.ChangeReason{model.ChangeStartOfChanges, model.ChangeUpdateValue, model.ChangeEndOfChanges}
	if len(*changes) != len(wantReasons) {
		t.Fatalf("got %d change events", len(*changes))
	}
	for i, want := range wantReasons {
		if (*changes)[i].Reason != want {
			t.Errorf("change %d = '%s'", i, (*changes)[i].Reason)
		}
	}
}

func TestPullEventsOrderingDependence(t *testing.T) {
	create := `{"type":"structure","reason":"create","path":["SerialNumber"],"referable":{"modelType":"Property","idShort":"SerialNumber"}}`
	update := `{"type":"update","path":["SerialNumber"],"value":"1234"}`
	t.Run("create then update", func(t *testing.T) {
		srv := eventServer(t, fmt.Sprintf(`[{"timestamp":"2026-08-30T10:00:00Z","observable":%s,"payloads":[%s,%s]}]`, observable, create, update))
		defer srv.Close()
		connector, container, _, changes := testConnector(t, srv.URL)
		if _, err := connector.PullEvents(context.Background()); err != nil {
			t.Fatal(err)
		}
		sm := container.Env().FindSubmodel("urn:sm:nameplate")
		target := container.Env().ResolvePath(sm, []string{"SerialNumber"})
		if target == nil {
			t.Fatal("element not created")
		}
		if p := target.(*aas.Property); p.Value != "1234" {
			t.Errorf("value = '%s'", p.Value)
		}
		for _, ev := range *changes {
			if ev.Reason == model.ChangeException {
				t.Errorf("unexpected exception: %s", ev.Info)
			}
		}
	})
	t.Run("update before create", func(t *testing.T) {
		srv := eventServer(t, fmt.Sprintf(`[{"timestamp":"2026-08-30T10:00:00Z","observable":%s,"payloads":[%s,%s]}]`, observable, update, create))
		defer srv.Close()
		connector, container, _, changes := testConnector(t, srv.URL)
		if _, err := connector.PullEvents(context.Background()); err != nil {
			t.Fatal(err)
		}
		exceptions := 0
		for _, ev := range *changes {
			if ev.Reason == model.ChangeException {
				exceptions++
			}
		}
		if exceptions != 1 {
			t.Errorf("got %d exceptions", exceptions)
		}
		sm := container.Env().FindSubmodel("urn:sm:nameplate")
		target := container.Env().ResolvePath(sm, []string{"SerialNumber"})
		if target == nil {
			t.Fatal("create after failed update should still apply")
		}
		if p := target.(*aas.Property); p.Value != "" {
			t.Errorf("value = '%s'", p.Value)
		}
	})
}

func TestPullEventsIdempotentDelete(t *testing.T) {
	del := `{"type":"structure","reason":"delete","path":["Manufacturer"]}`
	srv := eventServer(t, fmt.Sprintf(`[{"timestamp":"2026-08-30T10:00:00Z","observable":%s,"payloads":[%s,%s]}]`, observable, del, del))
	defer srv.Close()
	connector, container, _, changes := testConnector(t, srv.URL)
	if _, err := connector.PullEvents(context.Background()); err != nil {
		t.Fatal(err)
	}
	sm := container.Env().FindSubmodel("urn:sm:nameplate")
	if got := container.Env().ResolvePath(sm, []string{"Manufacturer"}); got != nil {
		t.Error("element not removed")
	}
	if len(sm.Elements) != 1 {
		t.Errorf("got %d elements", len(sm.Elements))
	}
	deletes, exceptions := 0, 0
	for _, ev := range *changes {
		switch ev.Reason {
		case model.ChangeDelete:
			deletes++
		case model.ChangeException:
			exceptions++
		}
	}
	if deletes != 1 || exceptions != 1 {
		t.Errorf("deletes = %d exceptions = %d", deletes, exceptions)
	}
}

func TestPullEventsCreateGuards(t *testing.T) {
	t.Run("existing target", func(t *testing.T) {
		create := `{"type":"structure","reason":"create","path":["Manufacturer"],"referable":{"modelType":"Property","idShort":"Manufacturer"}}`
		srv := eventServer(t, fmt.Sprintf(`[{"timestamp":"2026-08-30T10:00:00Z","observable":%s,"payloads":[%s]}]`, observable, create))
		defer srv.Close()
		connector, container, _, changes := testConnector(t, srv.URL)
		if _, err := connector.PullEvents(context.Background()); err != nil {
			t.Fatal(err)
		}
		if len(container.Env().FindSubmodel("urn:sm:nameplate").Elements) != 2 {
			t.Error("element count changed")
		}
		if (*changes)[1].Reason != model.ChangeException {
			t.Errorf("got '%s'", (*changes)[1].Reason)
		}
	})
	t.Run("idShort mismatch", func(t *testing.T) {
		create := `{"type":"structure","reason":"create","path":["SerialNumber"],"referable":{"modelType":"Property","idShort":"Other"}}`
		srv := eventServer(t, fmt.Sprintf(`[{"timestamp":"2026-08-30T10:00:00Z","observable":%s,"payloads":[%s]}]`, observable, create))
		defer srv.Close()
		connector, container, _, changes := testConnector(t, srv.URL)
		if _, err := connector.PullEvents(context.Background()); err != nil {
			t.Fatal(err)
		}
		if len(container.Env().FindSubmodel("urn:sm:nameplate").Elements) != 2 {
			t.Error("element count changed")
		}
		if (*changes)[1].Reason != model.ChangeException {
			t.Errorf("got '%s'", (*changes)[1].Reason)
		}
	})
	t.Run("insert at index", func(t *testing.T) {
		create := `{"type":"structure","reason":"create","path":["Markings","RoHS"],"create_at_index":0,"referable":{"modelType":"Property","idShort":"RoHS"}}`
		srv := eventServer(t, fmt.Sprintf(`[{"timestamp":"2026-08-30T10:00:00Z","observable":%s,"payloads":[%s]}]`, observable, create))
		defer srv.Close()
		connector, container, _, _ := testConnector(t, srv.URL)
		if _, err := connector.PullEvents(context.Background()); err != nil {
			t.Fatal(err)
		}
		sm := container.Env().FindSubmodel("urn:sm:nameplate")
		coll := sm.Elements[1].(*aas.ElementCollection)
		if len(coll.Value) != 2 || coll.Value[0].GetIdShort() != "RoHS" {
			t.Errorf("collection = %v", coll.Value)
		}
	})
}

func TestPullEventsModifyUnimplemented(t *testing.T) {
	modify := `{"type":"structure","reason":"modify","path":["Manufacturer"],"referable":{"modelType":"Property","idShort":"Manufacturer"}}`
	srv := eventServer(t, fmt.Sprintf(`[{"timestamp":"2026-08-30T10:00:00Z","observable":%s,"payloads":[%s]}]`, observable, modify))
	defer srv.Close()
	connector, container, _, changes := testConnector(t, srv.URL)
	if _, err := connector.PullEvents(context.Background()); err != nil {
		t.Fatal(err)
	}
	if (*changes)[1].Reason != model.ChangeException {
		t.Errorf("got '%s'", (*changes)[1].Reason)
	}
	sm := container.Env().FindSubmodel("urn:sm:nameplate")
	if p := sm.Elements[0].(*aas.Property); p.Value != "ACME" {
		t.Errorf("value = '%s'", p.Value)
	}
}

func TestPullEventsTerminalFailures(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()
		connector, container, _, changes := testConnector(t, srv.URL)
		if _, err := connector.PullEvents(context.Background()); err == nil {
			t.Error("expected error")
		}
		if len(*changes) != 0 {
			t.Error("change events emitted on terminal failure")
		}
		sm := container.Env().FindSubmodel("urn:sm:nameplate")
		if len(sm.Elements) != 2 {
			t.Error("environment mutated")
		}
	})
	t.Run("parse failure", func(t *testing.T) {
		srv := eventServer(t, `{"not":"an array"}`)
		defer srv.Close()
		connector, container, _, changes := testConnector(t, srv.URL)
		if _, err := connector.PullEvents(context.Background()); err == nil {
			t.Error("expected error")
		}
		if len(*changes) != 0 {
			t.Error("change events emitted on parse failure")
		}
		sm := container.Env().FindSubmodel("urn:sm:nameplate")
		if p := sm.Elements[0].(*aas.Property); p.Value != "ACME" {
			t.Error("environment mutated")
		}
	})
}

func TestSimulateUpdateValuesEventByGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/submodels/Nameplate/values" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"Manufacturer":"Contoso","Markings":{"CE":"false"}}`)
	}))
	defer srv.Close()
	connector, container, sink, _ := testConnector(t, srv.URL)
	ok, err := connector.PollValues(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("poll reported unsupported")
	}
	sm := container.Env().FindSubmodel("urn:sm:nameplate")
	if p := sm.Elements[0].(*aas.Property); p.Value != "Contoso" {
		t.Errorf("value = '%s'", p.Value)
	}
	coll := sm.Elements[1].(*aas.ElementCollection)
	if p := coll.Value[0].(*aas.Property); p.Value != "false" {
		t.Errorf("nested value = '%s'", p.Value)
	}
	if len(sink.envelopes) != 1 {
		t.Fatalf("got %d synthesized envelopes", len(sink.envelopes))
	}
	if len(sink.envelopes[0].Payloads) != 2 {
		t.Errorf("got %d payloads", len(sink.envelopes[0].Payloads))
	}
}
