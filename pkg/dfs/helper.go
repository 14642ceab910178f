/*
 Licensed to the Apache Software Foundation (ASF) under one
 or more contributor license agreements.  See the NOTICE file
 distributed with this work for additional information
 regarding copyright ownership.  The ASF licenses this file
 to you under the Apache License, Version 2.0 (the
 "License"); you may not use this file except in compliance
 with the License.  You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package dfs wraps the raw DFS client with the idempotence conventions
// the launcher relies on: removes never fail on absent paths and
// directory listings of absent paths read as empty.
package dfs

import (
	"go.uber.org/zap"

	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/common"
	"github.com/yarnkit/yarnkit/pkg/log"
	"github.com/yarnkit/yarnkit/pkg/metrics"
)

type Helper struct {
	dfs client.DFSClient
}

func NewHelper(dfs client.DFSClient) *Helper {
	return &Helper{dfs: dfs}
}

// Upload copies a local file to the DFS. Succeeds when the local path
// exists and the parent directories of the DFS path are directories.
func (h *Helper) Upload(localPath, dfsPath string) error {
	log.Named("dfs").Info("uploading file",
		zap.String("localPath", localPath),
		zap.String("dfsPath", dfsPath))
	err := h.dfs.Put(localPath, dfsPath)
	metrics.ObserveDFSCall("put", err)
	return err
}

// MakeDir creates a directory, missing parents included.
func (h *Helper) MakeDir(dfsPath string) error {
	log.Named("dfs").Info("creating directory",
		zap.String("dfsPath", dfsPath))
	err := h.dfs.MkDir(dfsPath)
	metrics.ObserveDFSCall("mkdir", err)
	return err
}

// RemoveDir deletes a path recursively. Removing an absent path is a
// no-op, the operation is idempotent.
func (h *Helper) RemoveDir(dfsPath string) error {
	log.Named("dfs").Info("removing directory",
		zap.String("dfsPath", dfsPath))
	err := h.dfs.Delete(dfsPath, true)
	metrics.ObserveDFSCall("delete", err)
	if common.IsNotFound(err) {
		log.Named("dfs").Debug("path already absent",
			zap.String("dfsPath", dfsPath))
		return nil
	}
	return err
}

// ListNames returns the node names of the direct children of a path. An
// absent path reads as an empty set.
func (h *Helper) ListNames(dfsPath string) ([]string, error) {
	entries, err := h.dfs.ListDir(dfsPath)
	metrics.ObserveDFSCall("listDir", err)
	if common.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, common.NodeName(entry.Path))
	}
	return names, nil
}
