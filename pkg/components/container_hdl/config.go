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

package container_hdl

import "time"

type Config struct {
	TempDirPath   string        `json:"temp_dir_path" env_var:"CONTAINER_HANDLER_TEMP_DIR_PATH"`
	UserDirPath   string        `json:"user_dir_path" env_var:"CONTAINER_HANDLER_USER_DIR_PATH"`
	UserName      string        `json:"user_name" env_var:"CONTAINER_HANDLER_USER_NAME"`
	IndirectFiles bool          `json:"indirect_files" env_var:"CONTAINER_HANDLER_INDIRECT_FILES"`
	HttpTimeout   time.Duration `json:"http_timeout" env_var:"CONTAINER_HANDLER_HTTP_TIMEOUT"`
}
