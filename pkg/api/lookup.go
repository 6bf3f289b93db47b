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
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/industrial-twin/aas-package-manager/lib/model"
)

const idParam = "id"

type lookupQuery struct {
	Deep bool `form:"deep"`
}

// getLookupH godoc
// @Summary Lookup identifiable
// @Description	Find identifiables by ID across all open packages. Deep mode walks the environments instead of the index.
// @Tags Lookup
// @Produce	json
// @Param id path string true "identifiable ID"
// @Param deep query bool false "bypass the index"
// @Success	200 {array} model.IdentInfo "matches"
// @Failure	400 {string} string "error message"
// @Failure	500 {string} string "error message"
// @Router /lookup/{id} [get]
func getLookupH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodGet, path.Join(model.LookupPath, ":"+idParam), func(gc *gin.Context) {
		query := lookupQuery{}
		if err := gc.ShouldBindQuery(&query); err != nil {
			_ = gc.Error(model.NewInvalidInputError(err))
			return
		}
		matches, err := a.service.LookupIdent(gc.Request.Context(), gc.Param(idParam), query.Deep)
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.JSON(http.StatusOK, matches)
	}
}

// patchReIndexH godoc
// @Summary Rebuild lookup index
// @Description	Rebuild the identifiable index from all open packages.
// @Tags Lookup
// @Success	200
// @Failure	500 {string} string "error message"
// @Router /reindex [patch]
func patchReIndexH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodPatch, model.ReIndexPath, func(gc *gin.Context) {
		if err := a.service.ReIndex(gc.Request.Context()); err != nil {
			_ = gc.Error(err)
			return
		}
		gc.Status(http.StatusOK)
	}
}
