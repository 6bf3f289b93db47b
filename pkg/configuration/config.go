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

package configuration

import (
	"time"

	sb_config_hdl "github.com/SENERGY-Platform/go-service-base/config-hdl"
	struct_logger "github.com/SENERGY-Platform/go-service-base/struct-logger"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/components/container_hdl"
)

type RepositoryConfig struct {
	Header   string `json:"header" env_var:"REPOSITORY_HEADER"`
	FilePath string `json:"file_path" env_var:"REPOSITORY_FILE_PATH"`
	Endpoint string `json:"endpoint" env_var:"REPOSITORY_ENDPOINT"`
}

type BackupConfig struct {
	DirPath  string           `json:"dir_path" env_var:"BACKUP_DIR_PATH"`
	MaxFiles int              `json:"max_files" env_var:"BACKUP_MAX_FILES"`
	Type     model.BackupType `json:"type" env_var:"BACKUP_TYPE"`
	Interval time.Duration    `json:"interval" env_var:"BACKUP_INTERVAL"`
}

type ConnectorConfig struct {
	Timeout      time.Duration `json:"timeout" env_var:"CONNECTOR_HTTP_TIMEOUT"`
	UpdatePeriod time.Duration `json:"update_period" env_var:"CONNECTOR_UPDATE_PERIOD"`
}

type EventsConfig struct {
	StoreSize    int  `json:"store_size" env_var:"EVENTS_STORE_SIZE"`
	StoreEnabled bool `json:"store_enabled" env_var:"EVENTS_STORE_ENABLED"`
}

type JobsConfig struct {
	BufferSize  int           `json:"buffer_size" env_var:"JOBS_BUFFER_SIZE"`
	MaxNumber   int           `json:"max_number" env_var:"JOBS_MAX_NUMBER"`
	CCHInterval time.Duration `json:"cch_interval" env_var:"JOBS_CCH_INTERVAL"`
	PJHInterval time.Duration `json:"pjh_interval" env_var:"JOBS_PJH_INTERVAL"`
	MaxAge      time.Duration `json:"max_age" env_var:"JOBS_MAX_AGE"`
}

type Config struct {
	ServerPort    uint                 `json:"server_port" env_var:"SERVER_PORT"`
	Container     container_hdl.Config `json:"container"`
	Repositories  []RepositoryConfig   `json:"repositories"`
	MruFilePath   string               `json:"mru_file_path" env_var:"MRU_FILE_PATH"`
	Backup        BackupConfig         `json:"backup"`
	Connector     ConnectorConfig      `json:"connector"`
	Events        EventsConfig         `json:"events"`
	Jobs          JobsConfig           `json:"jobs"`
	Logger        struct_logger.Config `json:"logger"`
	HttpAccessLog bool                 `json:"http_access_log" env_var:"HTTP_ACCESS_LOG"`
	UseUTC        bool                 `json:"use_utc" env_var:"USE_UTC"`
}

func New(path string) (*Config, error) {
	cfg := Config{
		ServerPort: 80,
		Container: container_hdl.Config{
			TempDirPath: "/opt/aas-package-manager/tmp",
			UserDirPath: "/opt/aas-package-manager/users",
			UserName:    "default",
			HttpTimeout: time.Second * 30,
		},
		Backup: BackupConfig{
			DirPath:  "/opt/aas-package-manager/backups",
			MaxFiles: 10,
			Type:     model.BackupXML,
			Interval: time.Minute * 5,
		},
		Connector: ConnectorConfig{
			Timeout:      time.Second * 30,
			UpdatePeriod: time.Second * 5,
		},
		Events: EventsConfig{
			StoreSize:    100,
			StoreEnabled: false,
		},
		Jobs: JobsConfig{
			BufferSize:  200,
			MaxNumber:   20,
			CCHInterval: time.Millisecond * 500,
			PJHInterval: time.Minute * 5,
			MaxAge:      time.Hour * 48,
		},
		Logger: struct_logger.Config{
			Handler:    struct_logger.TextHandlerSelector,
			Level:      struct_logger.LevelInfo,
			TimeFormat: time.RFC3339Nano,
			TimeUtc:    true,
			AddMeta:    false,
		},
		UseUTC: true,
	}
	if err := sb_config_hdl.Load(&cfg, nil, envTypeParser, nil, path); err != nil {
		return nil, err
	}
	if cfg.Connector.UpdatePeriod < model.MinUpdatePeriod {
		cfg.Connector.UpdatePeriod = model.MinUpdatePeriod
	}
	return &cfg, nil
}
