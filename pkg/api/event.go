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

type eventsQuery struct {
	Limit int `form:"limit"`
}

// getEventsH godoc
// @Summary List events
// @Description	List collected event envelopes, newest last.
// @Tags Events
// @Produce	json
// @Param limit query int false "max number of envelopes"
// @Success	200 {array} model.EventEnvelope "events"
// @Failure	400 {string} string "error message"
// @Failure	500 {string} string "error message"
// @Router /events [get]
func getEventsH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodGet, model.EventsPath, func(gc *gin.Context) {
		query := eventsQuery{}
		if err := gc.ShouldBindQuery(&query); err != nil {
			_ = gc.Error(model.NewInvalidInputError(err))
			return
		}
		events, err := a.service.GetEvents(gc.Request.Context(), query.Limit)
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.JSON(http.StatusOK, events)
	}
}

// postEventH godoc
// @Summary Push event
// @Description	Feed an event envelope into the fan-out chain. Returns whether a collaborator consumed it.
// @Tags Events
// @Accept json
// @Produce	json
// @Param envelope body model.EventEnvelope true "event envelope"
// @Success	200 {boolean} bool "consumed"
// @Failure	400 {string} string "error message"
// @Failure	500 {string} string "error message"
// @Router /events [post]
func postEventH(a *Api) (string, string, gin.HandlerFunc) {
	return http.MethodPost, model.EventsPath, func(gc *gin.Context) {
		var envelope model.EventEnvelope
		if err := gc.ShouldBindJSON(&envelope); err != nil {
			_ = gc.Error(model.NewInvalidInputError(err))
			return
		}
		consumed, err := a.service.PushEvent(gc.Request.Context(), envelope)
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.JSON(http.StatusOK, consumed)
	}
}
