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

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path"
	"sync/atomic"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	helper_aasx "github.com/industrial-twin/aas-package-manager/pkg/components/helper/aasx"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

// buffer stages the real source in a private temp file. The environment
// is only ever read from and written to the staged copy; the real
// location changes in one rename.
type buffer struct {
	tempDir string
	tempFn  string
}

func (b *buffer) ensure(format model.Format) error {
	if b.tempFn != "" {
		return nil
	}
	f, err := os.CreateTemp(b.tempDir, "pkg-*"+helper_aasx.Extension(format))
	if err != nil {
		return err
	}
	b.tempFn = f.Name()
	return f.Close()
}

// stage copies the real source into the temp file.
func (b *buffer) stage(src string, format model.Format) error {
	if err := b.ensure(format); err != nil {
		return err
	}
	return copyFile(src, b.tempFn)
}

// flush serializes the environment into the temp file.
func (b *buffer) flush(env *aas.Environment, format model.Format) error {
	if err := b.ensure(format); err != nil {
		return err
	}
	return helper_aasx.WriteFile(b.tempFn, format, env)
}

// promote copies the temp file next to dst and renames it onto dst, so
// dst holds either its old content or the complete new one.
func (b *buffer) promote(dst string) error {
	tmp := dst + ".tmp~"
	if err := copyFile(b.tempFn, tmp); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

func copyFile(src, dst string) error {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sf.Close()
	df, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err = io.Copy(df, sf); err != nil {
		df.Close()
		return err
	}
	return df.Close()
}

// backupCounter starts at a random offset so restarts do not keep
// clobbering the same slot.
var backupCounter atomic.Int64

func init() {
	backupCounter.Store(rand.Int63n(1000))
}

// backupInDir writes one rotating backup slot for the given source. XML
// backups re-encode the environment, full copies duplicate the source
// file as is.
func backupInDir(dir string, maxFiles int, bt model.BackupType, src string, env *aas.Environment) error {
	if maxFiles < 1 {
		maxFiles = 1
	}
	if err := os.MkdirAll(dir, 0775); err != nil {
		return err
	}
	idx := int(backupCounter.Add(1)) % maxFiles
	switch bt {
	case model.BackupXML:
		fp := path.Join(dir, fmt.Sprintf("backup%03d.xml", idx))
		f, err := os.OpenFile(fp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		if err = helper_aasx.EncodeXML(f, env); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case model.BackupFullCopy:
		ext := path.Ext(src)
		if ext == "" {
			ext = ".bak"
		}
		return copyFile(src, path.Join(dir, fmt.Sprintf("backup%03d%s", idx, ext)))
	default:
		return fmt.Errorf("unknown backup type '%s'", bt)
	}
}
