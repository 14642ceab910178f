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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Subsystem - subsystem name used for all metrics of this module
	Subsystem = "yarnkit"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: Subsystem,
			Name:      "cache_lookups_total",
			Help:      "Number of cache lookups, by cache name and outcome (hit or miss).",
		}, []string{"cache", "outcome"})
	cacheInvalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: Subsystem,
			Name:      "cache_invalidations_total",
			Help:      "Number of whole-cache invalidations, by cache name.",
		}, []string{"cache"})
	rmCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: Subsystem,
			Name:      "rm_calls_total",
			Help:      "Number of calls issued to the resource manager, by operation and result.",
		}, []string{"operation", "result"})
	dfsCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: Subsystem,
			Name:      "dfs_calls_total",
			Help:      "Number of calls issued to the distributed file system, by operation and result.",
		}, []string{"operation", "result"})
	nodesMatched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: Subsystem,
			Name:      "topology_nodes_matched_total",
			Help:      "Number of nodes matched against a request node label expression.",
		})
	containerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: Subsystem,
			Name:      "container_requests_built_total",
			Help:      "Number of container request specs built, by constraint kind.",
		}, []string{"constraint"})

	metricsList = []prometheus.Collector{
		cacheLookups,
		cacheInvalidations,
		rmCalls,
		dfsCalls,
		nodesMatched,
		containerRequests,
	}
)

// CacheMetrics covers a single named cache instance.
type CacheMetrics struct {
	name string
}

func GetCacheMetrics(name string) CacheMetrics {
	return CacheMetrics{name: name}
}

func (c CacheMetrics) Hit() {
	cacheLookups.WithLabelValues(c.name, "hit").Inc()
}

func (c CacheMetrics) Miss() {
	cacheLookups.WithLabelValues(c.name, "miss").Inc()
}

func (c CacheMetrics) Invalidated() {
	cacheInvalidations.WithLabelValues(c.name).Inc()
}

// ObserveRMCall counts a single resource manager call.
func ObserveRMCall(operation string, err error) {
	rmCalls.WithLabelValues(operation, resultOf(err)).Inc()
}

// ObserveDFSCall counts a single file system call.
func ObserveDFSCall(operation string, err error) {
	dfsCalls.WithLabelValues(operation, resultOf(err)).Inc()
}

func AddNodesMatched(count int) {
	nodesMatched.Add(float64(count))
}

func ObserveContainerRequest(constraint string) {
	containerRequests.WithLabelValues(constraint).Inc()
}

func resultOf(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
