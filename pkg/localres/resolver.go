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

// Package localres maps DFS paths to localizable resource descriptors
// that node managers can fetch before container startup.
package localres

import (
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"

	"github.com/yarnkit/yarnkit/pkg/cache"
	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/common"
	"github.com/yarnkit/yarnkit/pkg/metrics"
)

// Type tells the node manager whether to localize the artifact as a
// plain file or unpack it as an archive.
type Type int

const (
	TypeFile Type = iota
	TypeArchive
)

func (t Type) String() string {
	if t == TypeArchive {
		return "ARCHIVE"
	}
	return "FILE"
}

// Visibility is the sharing scope of a localized resource on a node.
// Non application visibility may introduce conflicts when containers of
// multiple applications on the same node write the same data in the
// resource directory.
type Visibility int

const (
	VisibilityApplication Visibility = iota
	VisibilityPrivate
	VisibilityPublic
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "PRIVATE"
	case VisibilityPublic:
		return "PUBLIC"
	default:
		return "APPLICATION"
	}
}

// archiveExtensions are unpacked on the node, anything else localizes as
// a plain file.
var archiveExtensions = []string{".tar.gz", ".zip", ".tgz", ".tar"}

// Ref is a fully resolved localizable resource.
type Ref struct {
	LogicalName  string
	SourcePath   string
	Type         Type
	Visibility   Visibility
	SizeBytes    int64
	ModifiedTime time.Time
}

// Set collects the resources of a single request keyed by logical name.
type Set map[string]Ref

// MetadataCache memoizes DFS file status per path.
type MetadataCache = cache.Loading[string, client.FileMeta]

// NewMetadataCache creates the cache the Resolver consults. It is owned
// by the dependency injection root and shared by reference.
func NewMetadataCache() *MetadataCache {
	return cache.NewLoading[string, client.FileMeta]("fileMetadata")
}

type Resolver struct {
	dfs  client.DFSClient
	meta *MetadataCache
}

func NewResolver(dfs client.DFSClient, meta *MetadataCache) *Resolver {
	return &Resolver{dfs: dfs, meta: meta}
}

// Resolve maps a DFS path to a localizable resource. Trailing path
// separators are stripped first: a directory resource path ending in a
// separator makes localization hang on the node. The file status comes
// from the metadata cache, a path absent on the DFS surfaces as a
// NotFound classified error and a syntactically broken path as a
// contract violation.
func (r *Resolver) Resolve(dfsPath string, visibility Visibility) (Ref, error) {
	span := opentracing.StartSpan("resolveLocalResource")
	defer span.Finish()

	path, err := cleanPath(dfsPath)
	if err != nil {
		return Ref{}, err
	}

	meta, err := r.meta.Get(path, r.stat)
	if err != nil {
		return Ref{}, err
	}

	return Ref{
		LogicalName:  common.NodeName(path),
		SourcePath:   path,
		Type:         typeOf(path),
		Visibility:   visibility,
		SizeBytes:    meta.SizeBytes,
		ModifiedTime: meta.ModifiedTime,
	}, nil
}

// Add resolves the path with APPLICATION visibility and stores it in the
// set under its logical name, the final path segment. A name already
// present is a hard failure before submission, never a silent overwrite:
// the RM would otherwise localize only one of the two artifacts.
func (r *Resolver) Add(set Set, dfsPath string) error {
	path, err := cleanPath(dfsPath)
	if err != nil {
		return err
	}
	logicalName := common.NodeName(path)
	if existing, ok := set[logicalName]; ok {
		return common.NewContractViolation(
			"duplicate file or directory names in local resources: [%s], [%s]",
			existing.SourcePath, path)
	}

	ref, err := r.Resolve(path, VisibilityApplication)
	if err != nil {
		return err
	}
	set[logicalName] = ref
	return nil
}

// InvalidateMetadata clears the cached file status wholesale, used when
// artifacts are known to have been rewritten in place.
func (r *Resolver) InvalidateMetadata() {
	r.meta.Invalidate()
}

func (r *Resolver) stat(path string) (client.FileMeta, error) {
	meta, err := r.dfs.Stat(path)
	metrics.ObserveDFSCall("stat", err)
	return meta, err
}

// cleanPath trims surrounding whitespace and trailing separators and
// rejects paths this module cannot hand to the DFS. The path may come
// straight from a user.
func cleanPath(dfsPath string) (string, error) {
	path := strings.TrimSpace(dfsPath)
	path = strings.TrimRight(path, common.PathSeparator)
	if path == "" {
		return "", common.NewContractViolation("resource path %q is illegal", dfsPath)
	}
	if strings.ContainsAny(path, " \t\n") {
		return "", common.NewContractViolation("resource path %q is illegal", dfsPath)
	}
	if !strings.HasPrefix(path, common.PathSeparator) && !strings.Contains(path, "://") {
		return "", common.NewContractViolation("resource path %q is illegal", dfsPath)
	}
	return path, nil
}

func typeOf(path string) Type {
	lower := strings.ToLower(path)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) {
			return TypeArchive
		}
	}
	return TypeFile
}
