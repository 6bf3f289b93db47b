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

// getMainInfoH godoc
// @Summary Get main package info
// @Description	Get information about the main package slot.
// @Tags Main
// @Produce	json
// @Success	200 {object} model.ContainerInfo "info"
// @Failure	404 {string} string "error message"
// @Failure	500 {string} string "error message"
// @Router /main [get]
func getMainInfoH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodGet, model.MainPath, func(gc *gin.Context) {
		info, err := a.service.GetMainInfo(gc.Request.Context())
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.JSON(http.StatusOK, info)
	}
}

// postMainLoadH godoc
// @Summary Load main package
// @Description	Open a package into the main slot. Returns a job ID.
// @Tags Main
// @Accept json
// @Produce	plain
// @Param request body model.MainLoadRequest true "load request"
// @Success	200 {string} string "job ID"
// @Failure	400 {string} string "error message"
// @Failure	500 {string} string "error message"
// @Router /main/load [post]
func postMainLoadH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodPost, path.Join(model.MainPath, model.LoadPath), func(gc *gin.Context) {
		var req model.MainLoadRequest
		if err := gc.ShouldBindJSON(&req); err != nil {
			_ = gc.Error(model.NewInvalidInputError(err))
			return
		}
		if req.Location == "" {
			_ = gc.Error(model.NewInvalidInputError(errors.New("empty location")))
			return
		}
		jID, err := a.service.LoadMain(gc.Request.Context(), req.Location, req.Options)
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.String(http.StatusOK, jID)
	}
}

// postMainSaveH godoc
// @Summary Save main package
// @Description	Write the main package back to its source. Returns a job ID.
// @Tags Main
// @Accept json
// @Produce	plain
// @Param request body model.MainSaveRequest true "save request"
// @Success	200 {string} string "job ID"
// @Failure	400 {string} string "error message"
// @Failure	404 {string} string "error message"
// @Failure	500 {string} string "error message"
// @Router /main/save [post]
func postMainSaveH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodPost, path.Join(model.MainPath, model.SavePath), func(gc *gin.Context) {
		var req model.MainSaveRequest
		if err := gc.ShouldBindJSON(&req); err != nil {
			_ = gc.Error(model.NewInvalidInputError(err))
			return
		}
		jID, err := a.service.SaveMain(gc.Request.Context(), req.SaveAsFileName, req.DoNotRememberLocation)
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.String(http.StatusOK, jID)
	}
}

// deleteMainH godoc
// @Summary Close main package
// @Description	Close the main package and free its slot.
// @Tags Main
// @Success	200
// @Failure	404 {string} string "error message"
// @Failure	500 {string} string "error message"
// @Router /main [delete]
func deleteMainH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodDelete, model.MainPath, func(gc *gin.Context) {
		if err := a.service.CloseMain(gc.Request.Context()); err != nil {
			_ = gc.Error(err)
			return
		}
		gc.Status(http.StatusOK)
	}
}
