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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	helper_time "github.com/industrial-twin/aas-package-manager/pkg/components/helper/time"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

// PollValues is the degraded mode for servers without an event feed. It
// synthesizes update-value envelopes by polling every submodel's values
// route. Reports whether any submodel could be polled.
func (c *Connector) PollValues(ctx context.Context) (bool, error) {
	env := c.container.Env()
	if env == nil {
		return false, model.NewInvalidInputError(errors.New("container not open"))
	}
	any := false
	for _, sm := range env.Submodels {
		ok, err := c.SimulateUpdateValuesEventByGet(ctx, aas.NewReference(aas.Key{Type: aas.KeyTypeSubmodel, Value: sm.ID}))
		if err != nil {
			return any, err
		}
		if ok {
			any = true
		}
	}
	return any, nil
}

// SimulateUpdateValuesEventByGet polls the values route for the
// referenced submodel or element and applies the returned values. Only
// property and collection shaped targets are supported, anything else
// is a silent false.
func (c *Connector) SimulateUpdateValuesEventByGet(ctx context.Context, ref aas.Reference) (bool, error) {
	env := c.container.Env()
	if env == nil {
		return false, model.NewInvalidInputError(errors.New("container not open"))
	}
	target := env.FindReferable(ref)
	if target == nil {
		return false, nil
	}
	var sm *aas.Submodel
	var elemPath []string
	switch v := target.(type) {
	case *aas.Submodel:
		sm = v
	case *aas.Property, *aas.ElementCollection:
		if first, ok := firstKey(ref); ok {
			sm = env.FindSubmodel(first.Value)
		}
		for _, k := range ref.Keys[1:] {
			elemPath = append(elemPath, k.Value)
		}
	default:
		return false, nil
	}
	if sm == nil {
		return false, nil
	}
	u, err := valuesURL(c.endpoint, sm.IdShort, elemPath)
	if err != nil {
		return false, model.NewInternalError(err)
	}
	var values any
	err = c.client.GetJSON(ctx, u, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&values)
	})
	if err != nil {
		return false, model.NewInternalError(fmt.Errorf("polling values from '%s': %w", c.endpoint, err))
	}
	payloads := applyValues(env, target, nil, values)
	if len(payloads) > 0 {
		envelope := model.EventEnvelope{
			Timestamp:  helper_time.Now(),
			Source:     ref,
			Observable: ref,
			Payloads:   payloads,
		}
		c.sink.PushEvent(envelope)
		for _, p := range payloads {
			c.notify(model.ChangeEvent{Reason: model.ChangeUpdateValue, Path: p.Path})
		}
	}
	return true, nil
}

func firstKey(ref aas.Reference) (aas.Key, bool) {
	if len(ref.Keys) == 0 {
		return aas.Key{}, false
	}
	return ref.Keys[0], true
}

func valuesURL(endpoint, smIdShort string, elemPath []string) (string, error) {
	parts := []string{"submodels", smIdShort}
	if len(elemPath) > 0 {
		parts = append(parts, "elements")
		parts = append(parts, elemPath...)
	}
	parts = append(parts, "values")
	return url.JoinPath(endpoint, parts...)
}

// applyValues walks a decoded values document alongside the element
// tree, assigning property values and recursing into collections. Each
// changed property yields an update payload.
func applyValues(env *aas.Environment, target aas.Referable, base []string, values any) []model.EventPayload {
	var payloads []model.EventPayload
	switch v := target.(type) {
	case *aas.Property:
		if s, ok := values.(string); ok && s != v.Value {
			v.Value = s
			payloads = append(payloads, model.EventPayload{
				Type:  model.PayloadUpdateValue,
				Path:  append([]string(nil), base...),
				Value: s,
			})
		}
	default:
		byIdShort, ok := values.(map[string]any)
		if !ok {
			return nil
		}
		for _, child := range env.Children(target) {
			childValues, ok := byIdShort[child.GetIdShort()]
			if !ok {
				continue
			}
			childBase := append(append([]string(nil), base...), child.GetIdShort())
			payloads = append(payloads, applyValues(env, child, childBase, childValues)...)
		}
	}
	return payloads
}
