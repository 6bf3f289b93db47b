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

package aas

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Shell struct {
	ID        string      `json:"id"`
	IdShort   string      `json:"idShort"`
	AssetID   string      `json:"assetId,omitempty"`
	Submodels []Reference `json:"submodels,omitempty"`
}

func (s *Shell) GetIdShort() string {
	return s.IdShort
}

func (s *Shell) Kind() ElementKind {
	return KindShell
}

func (s *Shell) GetID() string {
	return s.ID
}

type Submodel struct {
	ID       string
	IdShort  string
	Elements []SubmodelElement
}

func (s *Submodel) GetIdShort() string {
	return s.IdShort
}

func (s *Submodel) Kind() ElementKind {
	return KindSubmodel
}

func (s *Submodel) GetID() string {
	return s.ID
}

func (s *Submodel) MarshalJSON() ([]byte, error) {
	raw, err := marshalElements(s.Elements)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ModelType string            `json:"modelType"`
		ID        string            `json:"id"`
		IdShort   string            `json:"idShort"`
		Elements  []json.RawMessage `json:"submodelElements,omitempty"`
	}{modelTypeSubmodel, s.ID, s.IdShort, raw})
}

func (s *Submodel) UnmarshalJSON(b []byte) error {
	var tmp struct {
		ID       string            `json:"id"`
		IdShort  string            `json:"idShort"`
		Elements []json.RawMessage `json:"submodelElements"`
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	s.ID = tmp.ID
	s.IdShort = tmp.IdShort
	s.Elements = nil
	for _, raw := range tmp.Elements {
		e, err := UnmarshalElement(raw)
		if err != nil {
			return err
		}
		s.Elements = append(s.Elements, e)
	}
	return nil
}

type ConceptDescription struct {
	ID      string `json:"id"`
	IdShort string `json:"idShort"`
}

func (c *ConceptDescription) GetIdShort() string {
	return c.IdShort
}

func (c *ConceptDescription) Kind() ElementKind {
	return KindUnknown
}

func (c *ConceptDescription) GetID() string {
	return c.ID
}

// Environment is the in-memory root of one package's data.
type Environment struct {
	Shells              []*Shell              `json:"assetAdministrationShells,omitempty"`
	Submodels           []*Submodel           `json:"submodels,omitempty"`
	ConceptDescriptions []*ConceptDescription `json:"conceptDescriptions,omitempty"`
}

func (e *Environment) FindShell(id string) *Shell {
	for _, s := range e.Shells {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (e *Environment) FindSubmodel(id string) *Submodel {
	for _, s := range e.Submodels {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (e *Environment) FindIdentifiable(id string) Identifiable {
	var found Identifiable
	e.Identifiables(func(i Identifiable) bool {
		if i.GetID() == id {
			found = i
			return false
		}
		return true
	})
	return found
}

// Identifiables visits every identifiable until the visitor returns
// false.
func (e *Environment) Identifiables(visit func(Identifiable) bool) {
	for _, s := range e.Shells {
		if !visit(s) {
			return
		}
	}
	for _, s := range e.Submodels {
		if !visit(s) {
			return
		}
	}
	for _, c := range e.ConceptDescriptions {
		if !visit(c) {
			return
		}
	}
}

// FindReferable resolves a full key chain: the first key addresses an
// identifiable by id, the remaining keys walk children by idShort.
func (e *Environment) FindReferable(ref Reference) Referable {
	if ref.IsEmpty() {
		return nil
	}
	first := ref.Keys[0]
	var cur Referable
	switch first.Type {
	case KeyTypeShell:
		if s := e.FindShell(first.Value); s != nil {
			cur = s
		}
	case KeyTypeSubmodel:
		if s := e.FindSubmodel(first.Value); s != nil {
			cur = s
		}
	default:
		if i := e.FindIdentifiable(first.Value); i != nil {
			cur = i
		}
	}
	if cur == nil {
		return nil
	}
	var path []string
	for _, k := range ref.Keys[1:] {
		path = append(path, k.Value)
	}
	return e.ResolvePath(cur, path)
}

// ResolvePath walks idShort segments from an observable down. An empty
// path yields the observable itself.
func (e *Environment) ResolvePath(observable Referable, path []string) Referable {
	cur := observable
	for _, seg := range path {
		if cur == nil {
			return nil
		}
		cur = e.childByIdShort(cur, seg)
	}
	return cur
}

func (e *Environment) childByIdShort(r Referable, idShort string) Referable {
	for _, c := range e.Children(r) {
		if c.GetIdShort() == idShort {
			return c
		}
	}
	return nil
}

// Children lists the direct children of a referable. Shell children are
// the submodels its references resolve to.
func (e *Environment) Children(r Referable) []Referable {
	var children []Referable
	switch v := r.(type) {
	case *Shell:
		for _, ref := range v.Submodels {
			if last, ok := ref.Last(); ok {
				if sm := e.FindSubmodel(last.Value); sm != nil {
					children = append(children, sm)
				}
			}
		}
	case *Submodel:
		for _, c := range v.Elements {
			children = append(children, c)
		}
	case *ElementCollection:
		for _, c := range v.Value {
			children = append(children, c)
		}
	}
	return children
}

// AddElement appends a child to a parent that hosts children, or inserts
// at the given index when the parent is collection indexable and the
// index is within bounds.
func (e *Environment) AddElement(parent Referable, elem SubmodelElement, at int) error {
	switch v := parent.(type) {
	case *Submodel:
		v.Elements = append(v.Elements, elem)
	case *ElementCollection:
		if at >= 0 && at < len(v.Value) {
			v.Value = append(v.Value[:at], append([]SubmodelElement{elem}, v.Value[at:]...)...)
		} else {
			v.Value = append(v.Value, elem)
		}
	default:
		return fmt.Errorf("element kind '%s' cannot host children", parent.Kind())
	}
	return nil
}

// RemoveElement removes a child by idShort. Removing a non-member is
// not an error.
func (e *Environment) RemoveElement(parent Referable, idShort string) bool {
	switch v := parent.(type) {
	case *Submodel:
		for i, c := range v.Elements {
			if c.GetIdShort() == idShort {
				v.Elements = append(v.Elements[:i], v.Elements[i+1:]...)
				return true
			}
		}
	case *ElementCollection:
		for i, c := range v.Value {
			if c.GetIdShort() == idShort {
				v.Value = append(v.Value[:i], v.Value[i+1:]...)
				return true
			}
		}
	}
	return false
}

// AddSubmodel registers a submodel and a matching reference on a shell.
func (e *Environment) AddSubmodel(shell *Shell, sm *Submodel) {
	e.Submodels = append(e.Submodels, sm)
	shell.Submodels = append(shell.Submodels, NewReference(Key{Type: KeyTypeSubmodel, Value: sm.ID}))
}

// RemoveSubmodel removes the shell's matching submodel reference and the
// submodel itself. Fails when no reference matches.
func (e *Environment) RemoveSubmodel(shell *Shell, sm *Submodel) error {
	refIdx := -1
	for i, ref := range shell.Submodels {
		if ref.MatchesID(sm.ID) {
			refIdx = i
			break
		}
	}
	if refIdx < 0 {
		return errors.New("no matching submodel reference")
	}
	shell.Submodels = append(shell.Submodels[:refIdx], shell.Submodels[refIdx+1:]...)
	for i, s := range e.Submodels {
		if s == sm {
			e.Submodels = append(e.Submodels[:i], e.Submodels[i+1:]...)
			break
		}
	}
	return nil
}
