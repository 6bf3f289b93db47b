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

	"github.com/gin-gonic/gin"

	"github.com/industrial-twin/aas-package-manager/lib/model"
)

// getSrvInfoH godoc
// @Summary Get service info
// @Description	Get service name and version.
// @Tags Info
// @Produce	json
// @Success	200 {object} srv_info_hdl.ServiceInfo "service info"
// @Router /info [get]
func getSrvInfoH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodGet, model.SrvInfoPath, func(gc *gin.Context) {
		gc.JSON(http.StatusOK, a.infoHdl.ServiceInfo())
	}
}
