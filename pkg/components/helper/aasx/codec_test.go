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

package aasx

import (
	"os"
	"path"
	"testing"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

func TestFormatFromLocation(t *testing.T) {
	t.Run("archive", func(t *testing.T) {
		if f := FormatFromLocation("/srv/data/Motor01.AASX"); f != model.FormatAASX {
			t.Errorf("got '%s'", f)
		}
	})
	t.Run("windows path", func(t *testing.T) {
		if f := FormatFromLocation("C:\\data\\plant.xml"); f != model.FormatXML {
			t.Errorf("got '%s'", f)
		}
	})
	t.Run("json", func(t *testing.T) {
		if f := FormatFromLocation("user://env.json"); f != model.FormatJSON {
			t.Errorf("got '%s'", f)
		}
	})
	t.Run("unknown", func(t *testing.T) {
		if f := FormatFromLocation("/srv/data/readme.txt"); f != model.FormatUnknown {
			t.Errorf("got '%s'", f)
		}
	})
}

func testEnvironment() *aas.Environment {
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
		AssetID:   "urn:asset:motor01",
		Submodels: []aas.Reference{aas.NewReference(aas.Key{Type: aas.KeyTypeSubmodel, Value: sm.ID})},
	}
	return &aas.Environment{Shells: []*aas.Shell{shell}, Submodels: []*aas.Submodel{sm}}
}

func checkEnvironment(t *testing.T, env *aas.Environment) {
	t.Helper()
	if len(env.Shells) != 1 || env.Shells[0].ID != "urn:aas:motor01" {
		t.Fatalf("shells = %v", env.Shells)
	}
	sm := env.FindSubmodel("urn:sm:nameplate")
	if sm == nil {
		t.Fatal("submodel missing")
	}
	r := env.ResolvePath(sm, []string{"Markings", "CE"})
	if r == nil {
		t.Fatal("path did not resolve")
	}
	p, ok := r.(*aas.Property)
	if !ok || p.Value != "true" {
		t.Errorf("resolved %v", r)
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []model.Format{model.FormatJSON, model.FormatXML, model.FormatAASX} {
		t.Run(string(f), func(t *testing.T) {
			fp := path.Join(dir, "env"+Extension(f))
			if err := WriteFile(fp, f, testEnvironment()); err != nil {
				t.Fatal(err)
			}
			env, err := ReadFile(fp, f)
			if err != nil {
				t.Fatal(err)
			}
			checkEnvironment(t, env)
		})
	}
}

func TestDecodeArchive(t *testing.T) {
	dir := t.TempDir()
	fp := path.Join(dir, "env.aasx")
	if err := WriteFile(fp, model.FormatAASX, testEnvironment()); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(fp)
	if err != nil {
		t.Fatal(err)
	}
	env, err := DecodeArchive(b)
	if err != nil {
		t.Fatal(err)
	}
	checkEnvironment(t, env)
}
