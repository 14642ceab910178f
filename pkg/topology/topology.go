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

// Package topology answers cluster topology questions by combining RM
// node and container reports with node label matching. All operations
// are stateless, results are derived per query and never maintained
// incrementally.
package topology

import (
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"

	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/common"
	"github.com/yarnkit/yarnkit/pkg/log"
	"github.com/yarnkit/yarnkit/pkg/metrics"
	"github.com/yarnkit/yarnkit/pkg/nodelabel"
)

type Query struct {
	rm client.RMClient
}

func NewQuery(rm client.RMClient) *Query {
	return &Query{rm: rm}
}

// AccessibleHosts returns the hostnames of all RUNNING nodes whose label
// set matches the request expression. Each matched node additionally
// leaves a diagnostic debug record, which is observability only and not
// part of the functional contract.
func (q *Query) AccessibleHosts(expr nodelabel.Expression) ([]string, error) {
	span := opentracing.StartSpan("accessibleHosts")
	span.SetTag("nodeLabel", expr.String())
	defer span.Finish()

	nodes, err := q.rm.ListRunningNodes()
	metrics.ObserveRMCall("listRunningNodes", err)
	if err != nil {
		return nil, err
	}

	correlationID := common.GetNewUUID()
	var hosts []string
	for _, node := range nodes {
		if !expr.Matches(node.Labels) {
			continue
		}
		hosts = append(hosts, node.Host)
		logNodeInfo(node, correlationID)
	}
	metrics.AddNodesMatched(len(hosts))

	log.Named("topology").Info("matched nodes against request node label",
		zap.Int("matched", len(hosts)),
		zap.Int("running", len(nodes)),
		zap.String("nodeLabel", expr.String()),
		zap.String("correlationID", correlationID))
	return hosts, nil
}

// LiveContainers reconciles the RM reported container set of an attempt
// against the expected AM container. COMPLETE containers are excluded.
// An empty report set is a consistency error because the AM's own
// container must always be reportable, and so is a report set without
// the AM container id, which indicates an inconsistent RM view. The AM
// container id itself is removed from the result: callers only care
// about the other live containers under the attempt.
func (q *Query) LiveContainers(attemptID, amContainerID string) (map[string]bool, error) {
	span := opentracing.StartSpan("liveContainers")
	span.SetTag("attemptID", attemptID)
	defer span.Finish()

	reports, err := q.rm.GetContainers(attemptID)
	metrics.ObserveRMCall("getContainers", err)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, common.NewConsistencyError(
			"container reports of attempt %s are empty, but the AM container exists", attemptID)
	}

	containerIDs := make(map[string]bool)
	for _, report := range reports {
		if report.State == client.ContainerComplete {
			continue
		}
		containerIDs[report.ContainerID] = true
	}

	if !containerIDs[amContainerID] {
		return nil, common.NewConsistencyError(
			"container reports of attempt %s do not contain AM container %s", attemptID, amContainerID)
	}
	delete(containerIDs, amContainerID)

	return containerIDs, nil
}

func logNodeInfo(node client.NodeReport, correlationID string) {
	log.Named("topology").Debug("got node report from RM",
		zap.String("host", node.Host),
		zap.String("rack", node.Rack),
		zap.Int32("containers", node.NumContainers),
		zap.String("nodeLabel", nodelabel.Join(node.Labels)),
		zap.Int64("totalMemoryMB", int64(node.Capability.MemoryMB)),
		zap.Int64("usedMemoryMB", int64(node.Used.MemoryMB)),
		zap.Int64("totalVCores", int64(node.Capability.VCores)),
		zap.Int64("totalGPUs", int64(node.Capability.GPUs)),
		zap.Int64("usedGPUs", int64(node.Used.GPUs)),
		zap.Uint64("usedGPUAttribute", node.Used.GPUAttribute),
		zap.String("correlationID", correlationID))
}
