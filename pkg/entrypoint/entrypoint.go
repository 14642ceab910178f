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

// Package entrypoint wires the components of this module together for
// the hosting service.
package entrypoint

import (
	"go.uber.org/zap"

	"github.com/yarnkit/yarnkit/pkg/application"
	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/common"
	"github.com/yarnkit/yarnkit/pkg/common/configs"
	"github.com/yarnkit/yarnkit/pkg/dfs"
	"github.com/yarnkit/yarnkit/pkg/localres"
	"github.com/yarnkit/yarnkit/pkg/log"
	"github.com/yarnkit/yarnkit/pkg/metrics"
	"github.com/yarnkit/yarnkit/pkg/request"
	"github.com/yarnkit/yarnkit/pkg/topology"
	"github.com/yarnkit/yarnkit/pkg/trace"
)

// StartAllServices creates a fully wired service context from the
// injected clients. The clients own connection handling, this only
// builds the adaptation layer on top of them.
func StartAllServices(conf *configs.LauncherConfig, rm client.RMClient, dfsClient client.DFSClient, identity client.Identity) *ServiceContext {
	return startAllServices(conf, clients{rm: rm, dfs: dfsClient, identity: identity})
}

func startAllServices(conf *configs.LauncherConfig, c clients) *ServiceContext {
	metrics.Register()

	ctx := &ServiceContext{
		InstanceID:     common.GetNewUUID(),
		MinAllocations: request.NewMinAllocationCache(),
		FileMetadata:   localres.NewMetadataCache(),
	}
	ctx.Normalizer = request.NewNormalizer(c.rm, ctx.MinAllocations)
	ctx.Requests = request.NewBuilder(ctx.Normalizer)
	ctx.Topology = topology.NewQuery(c.rm)
	ctx.Resources = localres.NewResolver(c.dfs, ctx.FileMetadata)
	ctx.Files = dfs.NewHelper(c.dfs)
	ctx.Applications = application.NewManager(c.rm, c.identity)

	if conf.Tracing.Enabled {
		tracer, closer, err := trace.NewTracerFromEnv(conf.Tracing.ServiceName)
		if err != nil {
			log.Named("entrypoint").Warn("tracing disabled, tracer init failed",
				zap.Error(err))
		} else {
			trace.InstallGlobal(tracer)
			ctx.tracerCloser = closer
		}
	}

	log.Named("entrypoint").Info("all services started",
		zap.String("instanceID", ctx.InstanceID),
		zap.String("cluster", conf.ClusterName),
		zap.Bool("tracing", conf.Tracing.Enabled))
	return ctx
}
