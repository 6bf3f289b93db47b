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

package repo_hdl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	helper_http "github.com/industrial-twin/aas-package-manager/pkg/components/helper/http"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
	"github.com/industrial-twin/aas-package-manager/pkg/models/slog_attr"
)

// RemoteList mirrors the package listing of a server. Synchronization
// rebuilds the whole list from scratch, local annotations on existing
// items do not survive it.
type RemoteList struct {
	List
	client *helper_http.Client
	logger *slog.Logger
}

func NewRemoteList(header, endpoint string, timeout time.Duration, tokenFn helper_http.TokenProvider, logger *slog.Logger) *RemoteList {
	l := &RemoteList{
		List:   *NewList(header, ""),
		client: helper_http.NewClient(timeout, tokenFn),
		logger: logger,
	}
	l.endpoint = strings.TrimRight(endpoint, "/")
	return l
}

type aasListResponse struct {
	AasList []string `json:"aaslist"`
}

type aasCoreResponse struct {
	AAS   aas.Shell `json:"AAS"`
	Asset struct {
		ID string `json:"id"`
	} `json:"Asset"`
}

// SyncFromServer replaces the held items with the server's listing. For
// every listed package the per-item core route supplies the shell and
// asset ids.
func (l *RemoteList) SyncFromServer(ctx context.Context) error {
	listURL, err := url.JoinPath(l.endpoint, "server", "listaas")
	if err != nil {
		return model.NewInternalError(err)
	}
	var listing aasListResponse
	err = l.client.GetJSON(ctx, listURL, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&listing)
	})
	if err != nil {
		return model.NewInternalError(fmt.Errorf("listing packages at '%s': %w", l.endpoint, err))
	}
	var items []*Item
	for _, line := range listing.AasList {
		idx, idShort, err := parseListLine(line)
		if err != nil {
			return model.NewInternalError(err)
		}
		coreURL, err := url.JoinPath(l.endpoint, "aas", idx, "core")
		if err != nil {
			return model.NewInternalError(err)
		}
		var core aasCoreResponse
		err = l.client.GetJSON(ctx, coreURL, func(r io.Reader) error {
			return json.NewDecoder(r).Decode(&core)
		})
		if err != nil {
			return model.NewInternalError(fmt.Errorf("fetching package core '%s': %w", idx, err))
		}
		entry := model.RepoItem{
			Description: idShort,
			Location:    l.endpoint + "/server/getaasx/" + idx,
		}
		if core.AAS.ID != "" {
			entry.AasIds = append(entry.AasIds, core.AAS.ID)
		}
		if core.Asset.ID != "" {
			entry.AssetIds = append(entry.AssetIds, core.Asset.ID)
		}
		if core.AAS.IdShort != "" {
			entry.Description = core.AAS.IdShort
		}
		entry.Tag = deriveTag(idShort, core.AAS.IdShort)
		items = append(items, NewItem(entry))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	discarded := 0
	for _, item := range l.items {
		if item.Tag != "" || item.Description != "" {
			discarded++
		}
	}
	if discarded > 0 {
		l.logger.Warn("discarding annotated items on sync", slog_attr.CountKey, discarded, slog_attr.EndpointKey, l.endpoint)
	}
	l.items = items
	return nil
}

// parseListLine splits one "index : idShort : id : filename" listing
// line. Only the first two fields are used, ids come from the core
// route.
func parseListLine(line string) (idx string, idShort string, err error) {
	parts := strings.SplitN(line, " : ", 4)
	if len(parts) < 4 {
		return "", "", fmt.Errorf("malformed listing line '%s'", line)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
