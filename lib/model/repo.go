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

import "encoding/json"

// RepoItem is the persisted shape of one repository entry. Older list
// files carried single-valued "assetId" and "aasId" keys; those are
// folded into the id lists on read.
type RepoItem struct {
	AssetIds    []string         `json:"AssetIds" yaml:"asset_ids"`
	AasIds      []string         `json:"AasIds" yaml:"aas_ids"`
	SubmodelIds []string         `json:"SubmodelIds" yaml:"submodel_ids"`
	Description string           `json:"description" yaml:"description"`
	Tag         string           `json:"tag" yaml:"tag"`
	CodeType2D  string           `json:"code" yaml:"code"`
	Location    string           `json:"fn" yaml:"fn"`
	Options     ContainerOptions `json:"options" yaml:"options"`
}

func (i *RepoItem) UnmarshalJSON(b []byte) error {
	type alias RepoItem
	tmp := struct {
		alias
		LegacyAssetID string `json:"assetId"`
		LegacyAasID   string `json:"aasId"`
	}{}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*i = RepoItem(tmp.alias)
	if tmp.LegacyAssetID != "" {
		i.AssetIds = append(i.AssetIds, tmp.LegacyAssetID)
	}
	if tmp.LegacyAasID != "" {
		i.AasIds = append(i.AasIds, tmp.LegacyAasID)
	}
	return nil
}

type RepoList struct {
	Header   string     `json:"Header" yaml:"header"`
	FileMaps []RepoItem `json:"filemaps" yaml:"filemaps"`
}

type RepoListInfo struct {
	Header    string `json:"header"`
	ItemCount int    `json:"item_count"`
	FilePath  string `json:"file_path,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
}
