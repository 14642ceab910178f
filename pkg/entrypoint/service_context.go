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

package entrypoint

import (
	"io"

	"go.uber.org/zap"

	"github.com/yarnkit/yarnkit/pkg/application"
	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/dfs"
	"github.com/yarnkit/yarnkit/pkg/localres"
	"github.com/yarnkit/yarnkit/pkg/log"
	"github.com/yarnkit/yarnkit/pkg/request"
	"github.com/yarnkit/yarnkit/pkg/topology"
)

// ServiceContext is the dependency injection root of this module. It
// owns the two caches, every component that needs one gets it by
// reference, and the cache lifecycle follows the service: created empty
// here, cleared only via InvalidateCaches, gone at process exit.
type ServiceContext struct {
	InstanceID string

	MinAllocations *request.MinAllocationCache
	FileMetadata   *localres.MetadataCache

	Normalizer   *request.Normalizer
	Requests     *request.Builder
	Topology     *topology.Query
	Resources    *localres.Resolver
	Files        *dfs.Helper
	Applications *application.Manager

	tracerCloser io.Closer
}

// InvalidateCaches clears both caches wholesale. The next lookup on
// either reloads from the RM or the DFS.
func (s *ServiceContext) InvalidateCaches() {
	s.MinAllocations.Invalidate()
	s.FileMetadata.Invalidate()
	log.Named("entrypoint").Info("caches invalidated",
		zap.String("instanceID", s.InstanceID))
}

// StopAll releases everything the context holds, currently only the
// tracer, flushing its buffered spans.
func (s *ServiceContext) StopAll() {
	log.Named("entrypoint").Info("service context stop all services",
		zap.String("instanceID", s.InstanceID))
	if s.tracerCloser != nil {
		if err := s.tracerCloser.Close(); err != nil {
			log.Named("entrypoint").Error("failed to close tracer",
				zap.Error(err))
		}
	}
}

// clients bundles the external collaborators injected by the hosting
// service.
type clients struct {
	rm       client.RMClient
	dfs      client.DFSClient
	identity client.Identity
}
