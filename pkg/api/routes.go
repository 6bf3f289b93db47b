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
	"github.com/gin-gonic/gin"
)

func setRoutes(a *Api, e *gin.Engine) [][2]string {
	handlers := []func(a *Api) (string, string, gin.HandlerFunc){
		getRepositoriesH,
		getRepositoryItemsH,
		postRepositoryItemH,
		deleteRepositoryItemH,
		patchRepositorySyncH,
		getMainInfoH,
		postMainLoadH,
		postMainSaveH,
		deleteMainH,
		getLookupH,
		patchReIndexH,
		getEventsH,
		postEventH,
		getJobsH,
		getJobH,
		patchJobCancelH,
		getSrvInfoH,
	}
	var routes [][2]string
	for _, h := range handlers {
		method, path, handler := h(a)
		e.Handle(method, "/"+path, handler)
		routes = append(routes, [2]string{method, "/" + path})
	}
	return routes
}
