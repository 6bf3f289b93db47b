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

const ServiceName = "aas-package-manager"

const (
	HeaderRequestID = "X-Request-ID"
	HeaderApiVer    = "X-Api-Version"
	HeaderSrvName   = "X-Service"
)

const (
	RepositoriesPath = "repositories"
	ItemsPath        = "items"
	LookupPath       = "lookup"
	ReIndexPath      = "reindex"
	EventsPath       = "events"
	MainPath         = "main"
	LoadPath         = "load"
	SavePath         = "save"
	SyncPath         = "sync"
	JobsPath         = "jobs"
	JobsCancelPath   = "cancel"
	SrvInfoPath      = "info"
)

type Format string

const (
	FormatUnknown Format = ""
	FormatAASX    Format = "aasx"
	FormatXML     Format = "xml"
	FormatJSON    Format = "json"
)

type BackupType string

const (
	BackupXML      BackupType = "xml"
	BackupFullCopy BackupType = "full_copy"
)

type VisualState string

const (
	VisualIdle      VisualState = "idle"
	VisualActivated VisualState = "activated"
	VisualReadFrom  VisualState = "read_from"
	VisualWriteTo   VisualState = "write_to"
)

// UserFileScheme marks locations resolved against the configured
// per-user directory. The remainder must be a bare file name.
const UserFileScheme = "user://"

// MinUpdatePeriod is the lower bound for ContainerOptions.UpdatePeriod.
const MinUpdatePeriod = time.Second

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCanceled  JobStatus = "canceled"
	JobCompleted JobStatus = "completed"
	JobError     JobStatus = "error"
	JobOK        JobStatus = "ok"
)
