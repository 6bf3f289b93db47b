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
	"fmt"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

// Applier mutates one environment from event payloads. Payloads are
// applied independently, a failed item is reported as an Exception
// change event and never aborts the batch.
type Applier struct {
	env    *aas.Environment
	notify func(event model.ChangeEvent)
}

func NewApplier(env *aas.Environment, notify func(event model.ChangeEvent)) *Applier {
	return &Applier{env: env, notify: notify}
}

// Apply applies every payload of the envelope in array order.
func (a *Applier) Apply(envelope model.EventEnvelope) {
	for _, payload := range envelope.Payloads {
		a.applyPayload(envelope, payload)
	}
}

func (a *Applier) exception(path []string, info string) {
	a.notify(model.ChangeEvent{Reason: model.ChangeException, Info: info, Path: path})
}

func (a *Applier) applyPayload(envelope model.EventEnvelope, payload model.EventPayload) {
	switch payload.Type {
	case model.PayloadStructuralChange:
		switch payload.Reason {
		case model.StructuralCreate:
			a.applyCreate(envelope, payload)
		case model.StructuralDelete:
			a.applyDelete(envelope, payload)
		case model.StructuralModify:
			a.exception(payload.Path, "structural modify is not implemented")
		default:
			a.exception(payload.Path, fmt.Sprintf("unknown structural reason '%s'", payload.Reason))
		}
	case model.PayloadUpdateValue:
		a.applyUpdate(envelope, payload)
	default:
		a.exception(payload.Path, fmt.Sprintf("unknown payload type '%s'", payload.Type))
	}
}

func (a *Applier) applyCreate(envelope model.EventEnvelope, payload model.EventPayload) {
	if len(payload.Path) == 0 {
		a.exception(payload.Path, "create without a path")
		return
	}
	observable := a.env.FindReferable(envelope.Observable)
	if observable == nil {
		a.exception(payload.Path, "observable could not be resolved")
		return
	}
	parentPath := payload.Path[:len(payload.Path)-1]
	last := payload.Path[len(payload.Path)-1]
	parent := a.env.ResolvePath(observable, parentPath)
	if parent == nil {
		a.exception(payload.Path, "parent could not be resolved")
		return
	}
	if a.env.ResolvePath(parent, []string{last}) != nil {
		a.exception(payload.Path, "target already exists")
		return
	}
	referable, err := aas.UnmarshalReferable(payload.Referable)
	if err != nil {
		a.exception(payload.Path, fmt.Sprintf("decoding referable: %s", err.Error()))
		return
	}
	if referable.GetIdShort() != last {
		a.exception(payload.Path, fmt.Sprintf("idShort '%s' does not match path segment '%s'", referable.GetIdShort(), last))
		return
	}
	switch {
	case parent.Kind().CanHostChildren():
		elem, ok := referable.(aas.SubmodelElement)
		if !ok {
			a.exception(payload.Path, "unsupported creation target")
			return
		}
		at := -1
		if parent.Kind().IsCollectionIndexable() {
			at = payload.CreateAtIndex
		}
		if err = a.env.AddElement(parent, elem, at); err != nil {
			a.exception(payload.Path, err.Error())
			return
		}
	case parent.Kind() == aas.KindShell:
		sm, ok := referable.(*aas.Submodel)
		if !ok {
			a.exception(payload.Path, "unsupported creation target")
			return
		}
		a.env.AddSubmodel(parent.(*aas.Shell), sm)
	default:
		a.exception(payload.Path, "unsupported creation target")
		return
	}
	a.notify(model.ChangeEvent{Reason: model.ChangeCreate, Path: payload.Path})
}

func (a *Applier) applyDelete(envelope model.EventEnvelope, payload model.EventPayload) {
	if len(payload.Path) == 0 {
		a.exception(payload.Path, "delete without a path")
		return
	}
	observable := a.env.FindReferable(envelope.Observable)
	if observable == nil {
		a.exception(payload.Path, "observable could not be resolved")
		return
	}
	parentPath := payload.Path[:len(payload.Path)-1]
	last := payload.Path[len(payload.Path)-1]
	parent := a.env.ResolvePath(observable, parentPath)
	if parent == nil {
		a.exception(payload.Path, "parent could not be resolved")
		return
	}
	target := a.env.ResolvePath(parent, []string{last})
	if target == nil {
		a.exception(payload.Path, "target could not be resolved")
		return
	}
	switch {
	case parent.Kind().CanHostChildren():
		a.env.RemoveElement(parent, last)
	case parent.Kind() == aas.KindShell:
		sm, ok := target.(*aas.Submodel)
		if !ok {
			a.exception(payload.Path, "unsupported deletion target")
			return
		}
		if err := a.env.RemoveSubmodel(parent.(*aas.Shell), sm); err != nil {
			a.exception(payload.Path, err.Error())
			return
		}
	default:
		a.exception(payload.Path, "unsupported deletion target")
		return
	}
	a.notify(model.ChangeEvent{Reason: model.ChangeDelete, Path: payload.Path})
}

func (a *Applier) applyUpdate(envelope model.EventEnvelope, payload model.EventPayload) {
	observable := a.env.FindReferable(envelope.Observable)
	if observable == nil {
		a.exception(payload.Path, "observable could not be resolved")
		return
	}
	target := a.env.ResolvePath(observable, payload.Path)
	if target == nil {
		a.exception(payload.Path, "target could not be resolved")
		return
	}
	prop, ok := target.(*aas.Property)
	if !ok {
		a.exception(payload.Path, fmt.Sprintf("value update is not implemented for kind '%s'", target.Kind()))
		return
	}
	prop.Value = payload.Value
	prop.ValueID = payload.ValueID
	a.notify(model.ChangeEvent{Reason: model.ChangeUpdateValue, Path: payload.Path})
}
