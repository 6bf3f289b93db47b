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
	"os"
	"path"
	"testing"
	"time"

	"github.com/industrial-twin/aas-package-manager/lib/model"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	fp := path.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(fp, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fp
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := New(writeConfigFile(t, "{}"))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.ServerPort != 80 {
			t.Errorf("port = %d", cfg.ServerPort)
		}
		if cfg.Connector.UpdatePeriod != time.Second*5 {
			t.Errorf("update period = %s", cfg.Connector.UpdatePeriod)
		}
	})
	t.Run("update period clamped", func(t *testing.T) {
		cfg, err := New(writeConfigFile(t, `{"connector":{"update_period":1}}`))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Connector.UpdatePeriod != model.MinUpdatePeriod {
			t.Errorf("update period = %s", cfg.Connector.UpdatePeriod)
		}
	})
}
