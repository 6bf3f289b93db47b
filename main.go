package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/SENERGY-Platform/go-cc-job-handler/ccjh"
	sb_config_hdl "github.com/SENERGY-Platform/go-service-base/config-hdl"
	srv_info_hdl "github.com/SENERGY-Platform/go-service-base/srv-info-hdl"
	struct_logger "github.com/SENERGY-Platform/go-service-base/struct-logger"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/api"
	"github.com/industrial-twin/aas-package-manager/pkg/components/central_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/components/container_hdl"
	helper_os_signal "github.com/industrial-twin/aas-package-manager/pkg/components/helper/os_signal"
	helper_time "github.com/industrial-twin/aas-package-manager/pkg/components/helper/time"
	"github.com/industrial-twin/aas-package-manager/pkg/components/job_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/components/repo_hdl"
	"github.com/industrial-twin/aas-package-manager/pkg/configuration"
	"github.com/industrial-twin/aas-package-manager/pkg/models/slog_attr"
	"github.com/industrial-twin/aas-package-manager/pkg/service"
)

var version string

func main() {
	ec := 0
	defer func() {
		os.Exit(ec)
	}()

	srvInfoHdl := srv_info_hdl.New(model.ServiceName, version)

	configuration.ParseFlags()

	config, err := configuration.New(configuration.ConfPath)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		ec = 1
		return
	}

	helper_time.UTC = config.UseUTC

	logger := struct_logger.New(config.Logger, os.Stderr, "", srvInfoHdl.Name())

	logger.Info("starting service", slog_attr.VersionKey, srvInfoHdl.Version(), slog_attr.ConfigValuesKey, sb_config_hdl.StructToMap(config, true))

	ctx, cf := context.WithCancel(context.Background())

	factory := container_hdl.NewFactory(config.Container, logger)
	if err = factory.Init(); err != nil {
		logger.Error("initializing container factory failed", slog_attr.ErrorKey, err)
		ec = 1
		return
	}

	central := central_hdl.New(factory, config.Events.StoreSize, logger)
	central.EventStore().SetEnabled(config.Events.StoreEnabled)

	for _, repoConfig := range config.Repositories {
		if repoConfig.Endpoint != "" {
			central.AddRepository(repo_hdl.NewRemoteList(repoConfig.Header, repoConfig.Endpoint, config.Connector.Timeout, nil, logger))
		} else {
			central.AddRepository(repo_hdl.NewList(repoConfig.Header, repoConfig.FilePath))
		}
	}

	mru := repo_hdl.NewMruList(config.MruFilePath)

	ccHandler := ccjh.New(config.Jobs.BufferSize)
	jobHandler := job_hdl.New(ctx, ccHandler)
	if err = ccHandler.RunAsync(config.Jobs.MaxNumber, config.Jobs.CCHInterval); err != nil {
		logger.Error("starting job handler failed", slog_attr.ErrorKey, err)
		ec = 1
		return
	}
	defer ccHandler.Stop()

	srv := service.New(central, jobHandler, mru, config, logger)
	if err = srv.Init(); err != nil {
		logger.Error("initializing service failed", slog_attr.ErrorKey, err)
		ec = 1
		return
	}

	httpApi, err := api.New(
		srv,
		srvInfoHdl,
		logger,
		config.HttpAccessLog,
	)
	if err != nil {
		logger.Error("creating http engine failed", slog_attr.ErrorKey, err)
		ec = 1
		return
	}

	httpServer := &http.Server{Handler: httpApi.Handler()}
	serverListener, err := net.Listen("tcp", ":"+strconv.FormatInt(int64(config.ServerPort), 10))
	if err != nil {
		logger.Error("creating server listener failed", slog_attr.ErrorKey, err)
		ec = 1
		return
	}

	go func() {
		helper_os_signal.Wait(ctx, logger, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		cf()
	}()

	go func() {
		ticker := time.NewTicker(config.Jobs.PJHInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				srv.PurgeJobs()
			}
		}
	}()

	if config.Backup.Interval > 0 {
		go func() {
			ticker := time.NewTicker(config.Backup.Interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if !central.MainAvailable() {
						continue
					}
					if err := central.Main().Backup(config.Backup.DirPath, config.Backup.MaxFiles, config.Backup.Type); err != nil {
						logger.Error("backup failed", slog_attr.ErrorKey, err)
					}
				}
			}
		}()
	}

	go func() {
		ticker := time.NewTicker(config.Connector.UpdatePeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				main := central.Main()
				if main == nil {
					continue
				}
				for _, connector := range main.Connectors() {
					if _, err := connector.PullEvents(ctx); err != nil {
						logger.Warn("pulling events failed, falling back to value polling", slog_attr.ErrorKey, err)
						if _, err = connector.PollValues(ctx); err != nil {
							logger.Error("polling values failed", slog_attr.ErrorKey, err)
						}
					}
				}
			}
		}
	}()

	wg := &sync.WaitGroup{}

	go func() {
		logger.Info("starting http server")
		if err := httpServer.Serve(serverListener); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("starting server failed", slog_attr.ErrorKey, err)
			ec = 1
		}
		cf()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("stopping http server")
		ctxWt, cf2 := context.WithTimeout(context.Background(), time.Second*5)
		defer cf2()
		if err := httpServer.Shutdown(ctxWt); err != nil {
			logger.Error("stopping server failed", slog_attr.ErrorKey, err)
			ec = 1
		} else {
			logger.Info("http server stopped")
		}
	}()

	wg.Wait()
}
