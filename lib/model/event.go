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

package model

import (
	"encoding/json"
	"time"

	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

type PayloadType string

const (
	PayloadStructuralChange PayloadType = "structure"
	PayloadUpdateValue      PayloadType = "update"
)

type StructuralReason string

const (
	StructuralCreate StructuralReason = "create"
	StructuralDelete StructuralReason = "delete"
	StructuralModify StructuralReason = "modify"
)

// EventPayload addresses a referable relative to the envelope's
// observable. Path segments are idShort keys from the observable down.
type EventPayload struct {
	Type          PayloadType      `json:"type"`
	Reason        StructuralReason `json:"reason,omitempty"`
	Path          []string         `json:"path"`
	Referable     json.RawMessage  `json:"referable,omitempty"`
	CreateAtIndex int              `json:"create_at_index"`
	Value         string           `json:"value,omitempty"`
	ValueID       string           `json:"value_id,omitempty"`
}

func (p *EventPayload) UnmarshalJSON(b []byte) error {
	type alias EventPayload
	tmp := alias{CreateAtIndex: -1}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*p = EventPayload(tmp)
	return nil
}

type EventEnvelope struct {
	Timestamp  time.Time      `json:"timestamp"`
	Source     aas.Reference  `json:"source"`
	Observable aas.Reference  `json:"observable"`
	Payloads   []EventPayload `json:"payloads"`
}

type ChangeReason string

const (
	ChangeStartOfChanges ChangeReason = "start_of_changes"
	ChangeEndOfChanges   ChangeReason = "end_of_changes"
	ChangeCreate         ChangeReason = "create"
	ChangeDelete         ChangeReason = "delete"
	ChangeUpdateValue    ChangeReason = "update_value"
	ChangeException      ChangeReason = "exception"
)

// ChangeEvent notifies a registered handler about one processed payload
// item. Exception events carry a human readable Info and never abort the
// enclosing batch.
type ChangeEvent struct {
	Reason ChangeReason `json:"reason"`
	Info   string       `json:"info,omitempty"`
	Path   []string     `json:"path,omitempty"`
}

type ChangeHandler func(ChangeEvent)
