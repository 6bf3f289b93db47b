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

package lib

import (
	"context"

	"github.com/industrial-twin/aas-package-manager/lib/model"
)

type Api interface {
	GetRepositories(ctx context.Context) ([]model.RepoListInfo, error)
	GetRepositoryItems(ctx context.Context, header string) ([]model.RepoItem, error)
	AddRepositoryItem(ctx context.Context, header, location string) (string, error)
	RemoveRepositoryItem(ctx context.Context, header, location string) error
	SyncRepository(ctx context.Context, header string) (string, error)
	GetMainInfo(ctx context.Context) (model.ContainerInfo, error)
	LoadMain(ctx context.Context, location string, options *model.ContainerOptions) (string, error)
	SaveMain(ctx context.Context, saveAsFileName string, doNotRememberLocation bool) (string, error)
	CloseMain(ctx context.Context) error
	LookupIdent(ctx context.Context, id string, deep bool) ([]model.IdentInfo, error)
	ReIndex(ctx context.Context) error
	PushEvent(ctx context.Context, envelope model.EventEnvelope) (bool, error)
	GetEvents(ctx context.Context, limit int) ([]model.EventEnvelope, error)
	GetJobs(ctx context.Context, filter model.JobFilter) ([]model.Job, error)
	GetJob(ctx context.Context, id string) (model.Job, error)
	CancelJob(ctx context.Context, id string) error
}
