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
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	helper_aasx "github.com/industrial-twin/aas-package-manager/pkg/components/helper/aasx"
	helper_http "github.com/industrial-twin/aas-package-manager/pkg/components/helper/http"
)

const networkBackend = "network"

const progressChunk = 512 * 1024

// NetworkContainer backs a package with a remote server file. Downloads
// are staged in the buffer, uploads go back base64 encoded.
type NetworkContainer struct {
	base
	buf      buffer
	head     string
	aasIdx   string
	client   *helper_http.Client
	progress func(readBytes int64)
	logger   *slog.Logger
}

// NewNetworkContainer takes the download URL plus the server head and
// package index extracted from it. Both are empty for plain download
// only URLs.
func NewNetworkContainer(sourceURL, head, aasIdx string, options model.ContainerOptions, config Config, runtime RuntimeOptions, logger *slog.Logger) *NetworkContainer {
	format := helper_aasx.FormatFromLocation(sourceURL)
	if format == model.FormatUnknown {
		format = model.FormatAASX
	}
	return &NetworkContainer{
		base: base{
			location: sourceURL,
			format:   format,
			options:  options.Normalized(),
		},
		buf:      buffer{tempDir: config.TempDirPath},
		head:     head,
		aasIdx:   aasIdx,
		client:   helper_http.NewClient(config.HttpTimeout, runtime.TokenProvider),
		progress: runtime.Progress,
		logger:   logger,
	}
}

func (c *NetworkContainer) Info() model.ContainerInfo {
	return c.info(networkBackend)
}

// Endpoint is the server route the connector synchronizes against.
func (c *NetworkContainer) Endpoint() string {
	if c.head == "" || c.aasIdx == "" {
		return ""
	}
	u, err := url.JoinPath(c.head, "aas", c.aasIdx)
	if err != nil {
		return ""
	}
	return u
}

func (c *NetworkContainer) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.buf.ensure(c.format); err != nil {
		return model.NewInternalError(model.NewContainerError("load", networkBackend, c.location, err))
	}
	if err := c.download(ctx); err != nil {
		return model.NewInternalError(model.NewContainerError("load", networkBackend, c.location, err))
	}
	env, err := helper_aasx.ReadFile(c.buf.tempFn, c.format)
	if err != nil {
		return model.NewInternalError(model.NewContainerError("load", networkBackend, c.location, err))
	}
	c.env = env
	c.isOpen = true
	return nil
}

// download streams the response body into the staged temp file.
func (c *NetworkContainer) download(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.location, nil)
	if err != nil {
		return err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		b, err := io.ReadAll(res.Body)
		if err != nil || len(b) == 0 {
			return helper_http.NewResponseError(res.StatusCode, res.Status)
		}
		return helper_http.NewResponseError(res.StatusCode, string(b))
	}
	file, err := os.OpenFile(c.buf.tempFn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	counter := &progressWriter{report: c.progress}
	if _, err = io.Copy(file, io.TeeReader(res.Body, counter)); err != nil {
		_ = file.Close()
		return err
	}
	counter.finish()
	return file.Close()
}

// progressWriter reports the byte count every progressChunk bytes and
// once more when the transfer is done.
type progressWriter struct {
	report       func(readBytes int64)
	written      int64
	lastReported int64
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	if w.report != nil && w.written >= w.lastReported+progressChunk {
		w.lastReported = w.written
		w.report(w.written)
	}
	return len(p), nil
}

func (w *progressWriter) finish() {
	if w.report != nil {
		w.report(w.written)
	}
}

func (c *NetworkContainer) Save(ctx context.Context, req model.MainSaveRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return model.NewInvalidInputError(errors.New("container not open"))
	}
	if req.SaveAsFileName != "" {
		return model.NewInvalidInputError(errors.New("network backend cannot save under a different name"))
	}
	u := c.Endpoint()
	if u == "" {
		return model.NewInvalidInputError(errors.New("source is download only"))
	}
	if err := c.buf.flush(c.env, c.format); err != nil {
		return model.NewInternalError(model.NewContainerError("save", networkBackend, c.location, err))
	}
	b, err := os.ReadFile(c.buf.tempFn)
	if err != nil {
		return model.NewInternalError(model.NewContainerError("save", networkBackend, c.location, err))
	}
	body := base64.StdEncoding.EncodeToString(b)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader([]byte(body)))
	if err != nil {
		return model.NewInternalError(err)
	}
	httpReq.Header.Set("Content-Type", "application/base64")
	res, err := c.client.Do(httpReq)
	if err != nil {
		return model.NewInternalError(model.NewContainerError("save", networkBackend, c.location, err))
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		b, err := io.ReadAll(res.Body)
		if err != nil || len(b) == 0 {
			return model.NewInternalError(model.NewContainerError("save", networkBackend, c.location, helper_http.NewResponseError(res.StatusCode, res.Status)))
		}
		return model.NewInternalError(model.NewContainerError("save", networkBackend, c.location, helper_http.NewResponseError(res.StatusCode, string(b))))
	}
	_, _ = io.ReadAll(res.Body)
	return nil
}

func (c *NetworkContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.env = nil
	c.isOpen = false
	return nil
}

func (c *NetworkContainer) Backup(dir string, maxFiles int, bt model.BackupType) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.isOpen {
		return model.NewInvalidInputError(errors.New("container not open"))
	}
	src := c.buf.tempFn
	if bt == model.BackupFullCopy && src == "" {
		return model.NewInvalidInputError(errors.New("no staged copy to back up"))
	}
	if err := backupInDir(dir, maxFiles, bt, src, c.env); err != nil {
		return model.NewContainerError("backup", networkBackend, c.location, err)
	}
	return nil
}
