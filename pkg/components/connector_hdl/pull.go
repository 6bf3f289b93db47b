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
	"time"

	"github.com/industrial-twin/aas-package-manager/lib/model"
)

// PullEvents fetches pending envelopes and applies them in strict array
// order. HTTP and parse failures are terminal for the call and mutate
// nothing; failures of single payload items are isolated as exception
// change events. Returns the number of envelopes processed.
func (c *Connector) PullEvents(ctx context.Context) (int, error) {
	env := c.container.Env()
	if env == nil {
		return 0, model.NewInvalidInputError(errors.New("container not open"))
	}
	u, err := url.JoinPath(c.endpoint, "events")
	if err != nil {
		return 0, model.NewInternalError(err)
	}
	c.mu.Lock()
	since := c.lastSeen
	c.mu.Unlock()
	if !since.IsZero() {
		u += "?since=" + url.QueryEscape(since.Format(time.RFC3339Nano))
	}
	var envelopes []model.EventEnvelope
	err = c.client.GetJSON(ctx, u, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&envelopes)
	})
	if err != nil {
		return 0, model.NewInternalError(fmt.Errorf("pulling events from '%s': %w", c.endpoint, err))
	}
	c.notify(model.ChangeEvent{Reason: model.ChangeStartOfChanges})
	applier := c.newApplier(env)
	var maxSeen time.Time
	for _, envelope := range envelopes {
		applier.Apply(envelope)
		c.sink.PushEvent(envelope)
		if envelope.Timestamp.After(maxSeen) {
			maxSeen = envelope.Timestamp
		}
	}
	c.notify(model.ChangeEvent{Reason: model.ChangeEndOfChanges})
	if !maxSeen.IsZero() {
		c.mu.Lock()
		c.lastSeen = maxSeen
		c.mu.Unlock()
	}
	return len(envelopes), nil
}
