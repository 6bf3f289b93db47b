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
	"log/slog"

	gin_mw "github.com/SENERGY-Platform/gin-middleware"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/models/slog_attr"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

type Api struct {
	service   serviceItf
	infoHdl   infoHandler
	ginEngine *gin.Engine
}

func New(service serviceItf, infoHdl infoHandler, logger *slog.Logger, accessLog bool) (*Api, error) {
	ginEngine := gin.New()
	var middleware []gin.HandlerFunc
	if accessLog {
		middleware = append(
			middleware,
			gin_mw.StructLoggerHandler(
				logger.With(slog_attr.LogRecordTypeKey, slog_attr.HttpAccessLogRecordTypeVal),
				slog_attr.Provider,
				nil,
				nil,
				requestIDGenerator,
			),
		)
	}
	middleware = append(middleware,
		gin_mw.StaticHeaderHandler(map[string]string{
			model.HeaderApiVer:  infoHdl.Version(),
			model.HeaderSrvName: infoHdl.Name(),
		}),
		requestid.New(requestid.WithCustomHeaderStrKey(model.HeaderRequestID)),
		gin_mw.ErrorHandler(getStatusCode, ", "),
		gin_mw.StructRecoveryHandler(logger, gin_mw.DefaultRecoveryFunc),
	)
	ginEngine.Use(middleware...)
	ginEngine.UseRawPath = true
	a := &Api{
		service:   service,
		infoHdl:   infoHdl,
		ginEngine: ginEngine,
	}
	for _, route := range setRoutes(a, ginEngine) {
		logger.Debug("http route", slog_attr.MethodKey, route[0], slog_attr.PathKey, route[1])
	}
	return a, nil
}

func (a *Api) Handler() *gin.Engine {
	return a.ginEngine
}

func requestIDGenerator(gc *gin.Context) (string, any) {
	return slog_attr.RequestIDKey, requestid.Get(gc)
}
