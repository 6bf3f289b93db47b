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
	"fmt"
)

// ElementKind is the closed set of addressable element kinds. Event
// application dispatches over this instead of runtime type checks.
type ElementKind string

const (
	KindUnknown    ElementKind = ""
	KindShell      ElementKind = "shell"
	KindSubmodel   ElementKind = "submodel"
	KindCollection ElementKind = "collection"
	KindProperty   ElementKind = "property"
)

// CanHostChildren reports whether elements of this kind manage a child
// element collection.
func (k ElementKind) CanHostChildren() bool {
	return k == KindSubmodel || k == KindCollection
}

// IsCollectionIndexable reports whether children may be inserted at an
// explicit index.
func (k ElementKind) IsCollectionIndexable() bool {
	return k == KindCollection
}

type Referable interface {
	GetIdShort() string
	Kind() ElementKind
}

type Identifiable interface {
	Referable
	GetID() string
}

// SubmodelElement is the closed variant of elements living below a
// submodel.
type SubmodelElement interface {
	Referable
	element()
}

type Property struct {
	IdShort string `json:"idShort"`
	Value   string `json:"value,omitempty"`
	ValueID string `json:"valueId,omitempty"`
}

func (p *Property) GetIdShort() string {
	return p.IdShort
}

func (p *Property) Kind() ElementKind {
	return KindProperty
}

func (p *Property) element() {}

type ElementCollection struct {
	IdShort string            `json:"idShort"`
	Value   []SubmodelElement `json:"value,omitempty"`
}

func (c *ElementCollection) GetIdShort() string {
	return c.IdShort
}

func (c *ElementCollection) Kind() ElementKind {
	return KindCollection
}

func (c *ElementCollection) element() {}

const (
	modelTypeShell      = "AssetAdministrationShell"
	modelTypeSubmodel   = "Submodel"
	modelTypeCollection = "SubmodelElementCollection"
	modelTypeProperty   = "Property"
)

// MarshalElement wraps an element with its modelType discriminator.
func MarshalElement(e SubmodelElement) ([]byte, error) {
	switch v := e.(type) {
	case *Property:
		return json.Marshal(struct {
			ModelType string `json:"modelType"`
			*Property
		}{modelTypeProperty, v})
	case *ElementCollection:
		raw, err := marshalElements(v.Value)
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			ModelType string            `json:"modelType"`
			IdShort   string            `json:"idShort"`
			Value     []json.RawMessage `json:"value,omitempty"`
		}{modelTypeCollection, v.IdShort, raw})
	default:
		return nil, fmt.Errorf("unsupported element kind '%s'", e.Kind())
	}
}

// UnmarshalElement decodes an element document by its modelType
// discriminator.
func UnmarshalElement(b []byte) (SubmodelElement, error) {
	var probe struct {
		ModelType string `json:"modelType"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, err
	}
	switch probe.ModelType {
	case modelTypeProperty:
		var p Property
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, err
		}
		return &p, nil
	case modelTypeCollection:
		var tmp struct {
			IdShort string            `json:"idShort"`
			Value   []json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(b, &tmp); err != nil {
			return nil, err
		}
		c := ElementCollection{IdShort: tmp.IdShort}
		for _, raw := range tmp.Value {
			child, err := UnmarshalElement(raw)
			if err != nil {
				return nil, err
			}
			c.Value = append(c.Value, child)
		}
		return &c, nil
	default:
		return nil, fmt.Errorf("unknown modelType '%s'", probe.ModelType)
	}
}

// UnmarshalReferable decodes an element or a full submodel document.
func UnmarshalReferable(b []byte) (Referable, error) {
	var probe struct {
		ModelType string `json:"modelType"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, err
	}
	if probe.ModelType == modelTypeSubmodel {
		var sm Submodel
		if err := json.Unmarshal(b, &sm); err != nil {
			return nil, err
		}
		return &sm, nil
	}
	return UnmarshalElement(b)
}

func marshalElements(elements []SubmodelElement) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	for _, e := range elements {
		b, err := MarshalElement(e)
		if err != nil {
			return nil, err
		}
		raw = append(raw, b)
	}
	return raw, nil
}
