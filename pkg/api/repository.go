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

package api

import (
	"errors"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/industrial-twin/aas-package-manager/lib/model"
)

const headerParam = "header"

// getRepositoriesH godoc
// @Summary List repositories
// @Description	List all configured repository lists.
// @Tags Repositories
// @Produce	json
// @Success	200 {array} model.RepoListInfo "repositories"
// @Failure	500 {string} string "error message"
// @Router /repositories [get]
func getRepositoriesH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodGet, model.RepositoriesPath, func(gc *gin.Context) {
		repositories, err := a.service.GetRepositories(gc.Request.Context())
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.JSON(http.StatusOK, repositories)
	}
}

// getRepositoryItemsH godoc
// @Summary List repository items
// @Description	List the items of one repository.
// @Tags Repositories
// @Produce	json
// @Param header path string true "repository header"
// @Success	200 {array} model.RepoItem "items"
// @Failure	404 {string} string "error message"
// @Failure	500 {string} string "error message"
// @Router /repositories/{header}/items [get]
func getRepositoryItemsH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodGet, path.Join(model.RepositoriesPath, ":"+headerParam, model.ItemsPath), func(gc *gin.Context) {
		items, err := a.service.GetRepositoryItems(gc.Request.Context(), gc.Param(headerParam))
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.JSON(http.StatusOK, items)
	}
}

// postRepositoryItemH godoc
// @Summary Add repository item
// @Description	Register a package location with a repository. Returns a job ID.
// @Tags Repositories
// @Accept json
// @Produce	plain
// @Param header path string true "repository header"
// @Param request body model.ItemAddRequest true "item location"
// @Success	200 {string} string "job ID"
// @Failure	400 {string} string "error message"
// @Failure	404 {string} string "error message"
// @Failure	500 {string} string "error message"
// @Router /repositories/{header}/items [post]
func postRepositoryItemH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodPost, path.Join(model.RepositoriesPath, ":"+headerParam, model.ItemsPath), func(gc *gin.Context) {
		var req model.ItemAddRequest
		if err := gc.ShouldBindJSON(&req); err != nil {
			_ = gc.Error(model.NewInvalidInputError(err))
			return
		}
		if req.Location == "" {
			_ = gc.Error(model.NewInvalidInputError(errors.New("empty location")))
			return
		}
		jID, err := a.service.AddRepositoryItem(gc.Request.Context(), gc.Param(headerParam), req.Location)
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.String(http.StatusOK, jID)
	}
}

// deleteRepositoryItemH godoc
// @Summary Remove repository item
// @Description	Remove an item from a repository by its location.
// @Tags Repositories
// @Param header path string true "repository header"
// @Param location query string true "item location"
// @Success	200
// @Failure	400 {string} string "error message"
// @Failure	404 {string} string "error message"
// @Failure	500 {string} string "error message"
// @Router /repositories/{header}/items [delete]
func deleteRepositoryItemH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodDelete, path.Join(model.RepositoriesPath, ":"+headerParam, model.ItemsPath), func(gc *gin.Context) {
		location := gc.Query("location")
		if location == "" {
			_ = gc.Error(model.NewInvalidInputError(errors.New("empty location")))
			return
		}
		if err := a.service.RemoveRepositoryItem(gc.Request.Context(), gc.Param(headerParam), location); err != nil {
			_ = gc.Error(err)
			return
		}
		gc.Status(http.StatusOK)
	}
}

// patchRepositorySyncH godoc
// @Summary Sync repository
// @Description	Refresh a server backed repository. Returns a job ID.
// @Tags Repositories
// @Produce	plain
// @Param header path string true "repository header"
// @Success	200 {string} string "job ID"
// @Failure	400 {string} string "error message"
// @Failure	404 {string} string "error message"
// @Failure	500 {string} string "error message"
// @Router /repositories/{header}/sync [patch]
func patchRepositorySyncH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodPatch, path.Join(model.RepositoriesPath, ":"+headerParam, model.SyncPath), func(gc *gin.Context) {
		jID, err := a.service.SyncRepository(gc.Request.Context(), gc.Param(headerParam))
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.String(http.StatusOK, jID)
	}
}
