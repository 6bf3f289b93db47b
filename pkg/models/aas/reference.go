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

import "strings"

type KeyType string

const (
	KeyTypeShell      KeyType = "AssetAdministrationShell"
	KeyTypeSubmodel   KeyType = "Submodel"
	KeyTypeCollection KeyType = "SubmodelElementCollection"
	KeyTypeProperty   KeyType = "Property"
	KeyTypeAsset      KeyType = "Asset"
)

type Key struct {
	Type  KeyType `json:"type" yaml:"type"`
	Value string  `json:"value" yaml:"value"`
}

// Reference locates a referable through an ordered key chain. The first
// key addresses an identifiable by id, subsequent keys address children
// by idShort.
type Reference struct {
	Keys []Key `json:"keys" yaml:"keys"`
}

func NewReference(keys ...Key) Reference {
	return Reference{Keys: keys}
}

func (r Reference) IsEmpty() bool {
	return len(r.Keys) == 0
}

func (r Reference) Last() (Key, bool) {
	if len(r.Keys) == 0 {
		return Key{}, false
	}
	return r.Keys[len(r.Keys)-1], true
}

// MatchesID reports whether the reference points at the identifiable
// with the given id. Key values are compared case insensitively, key
// types are ignored (relaxed match).
func (r Reference) MatchesID(id string) bool {
	last, ok := r.Last()
	if !ok {
		return false
	}
	return strings.EqualFold(last.Value, id)
}

func (r Reference) String() string {
	var parts []string
	for _, k := range r.Keys {
		parts = append(parts, string(k.Type)+":"+k.Value)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
