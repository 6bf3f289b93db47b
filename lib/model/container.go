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

import "time"

type ContainerOptions struct {
	LoadResident  bool          `json:"load_resident" yaml:"load_resident"`
	StayConnected bool          `json:"stay_connected" yaml:"stay_connected"`
	UpdatePeriod  time.Duration `json:"update_period" yaml:"update_period"`
}

// Normalized clamps UpdatePeriod to MinUpdatePeriod.
func (o ContainerOptions) Normalized() ContainerOptions {
	if o.UpdatePeriod < MinUpdatePeriod {
		o.UpdatePeriod = MinUpdatePeriod
	}
	return o
}

type ContainerInfo struct {
	Location string `json:"location"`
	Format   Format `json:"format"`
	IsOpen   bool   `json:"is_open"`
	Backend  string `json:"backend"`
}

type MainLoadRequest struct {
	Location string            `json:"location"`
	Options  *ContainerOptions `json:"options"`
}

type MainSaveRequest struct {
	SaveAsFileName        string `json:"save_as_file_name"`
	DoNotRememberLocation bool   `json:"do_not_remember_location"`
}

type ItemAddRequest struct {
	Location string `json:"location"`
}

type IdentInfo struct {
	ID      string `json:"id"`
	IdShort string `json:"id_short"`
	Kind    string `json:"kind"`
	Source  string `json:"source"`
}
