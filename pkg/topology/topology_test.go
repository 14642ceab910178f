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

package topology

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/common"
	"github.com/yarnkit/yarnkit/pkg/mock"
	"github.com/yarnkit/yarnkit/pkg/nodelabel"
)

func newTestQuery(nodes ...client.NodeReport) (*Query, *mock.RMClient) {
	rm := mock.NewRMClient()
	rm.Nodes = nodes
	return NewQuery(rm), rm
}

func TestAccessibleHosts(t *testing.T) {
	unlabeled := client.NodeReport{Host: "n1", Rack: "/rack-1"}
	gpuNode := client.NodeReport{Host: "n2", Rack: "/rack-1", Labels: []string{"gpu"}}
	comboNode := client.NodeReport{Host: "n3", Rack: "/rack-2", Labels: []string{"gpu&fast"}}

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"absent matches unlabeled only", "", []string{"n1"}},
		{"exact label", "gpu", []string{"n2"}},
		{"fuzzy token", "*gpu*", []string{"n2", "n3"}},
		{"fuzzy empty matches all", "**", []string{"n1", "n2", "n3"}},
		{"no match", "tpu", nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			q, _ := newTestQuery(unlabeled, gpuNode, comboNode)
			got, err := q.AccessibleHosts(nodelabel.Parse(test.expr))
			assert.NilError(t, err)
			assert.DeepEqual(t, got, test.want)
		})
	}
}

func TestAccessibleHostsRMFailurePropagates(t *testing.T) {
	q, rm := newTestQuery()
	rm.Fail = errors.New("rm unavailable")
	_, err := q.AccessibleHosts(nodelabel.Absent())
	assert.Assert(t, errors.Is(err, rm.Fail), "client error must propagate unchanged")
}

func TestLiveContainers(t *testing.T) {
	q, rm := newTestQuery()
	rm.Containers["attempt_1"] = []client.ContainerReport{
		{ContainerID: "am", State: client.ContainerRunning},
		{ContainerID: "c1", State: client.ContainerRunning},
		{ContainerID: "c2", State: client.ContainerComplete},
	}

	got, err := q.LiveContainers("attempt_1", "am")
	assert.NilError(t, err)
	assert.DeepEqual(t, got, map[string]bool{"c1": true})
}

func TestLiveContainersEmptyReports(t *testing.T) {
	q, _ := newTestQuery()
	_, err := q.LiveContainers("attempt_1", "am")
	assert.Assert(t, common.IsConsistencyError(err), "empty report set must be a consistency error")
}

func TestLiveContainersMissingAM(t *testing.T) {
	q, rm := newTestQuery()
	rm.Containers["attempt_1"] = []client.ContainerReport{
		{ContainerID: "c1", State: client.ContainerRunning},
	}
	_, err := q.LiveContainers("attempt_1", "am")
	assert.Assert(t, common.IsConsistencyError(err), "missing AM container must be a consistency error")
}

func TestLiveContainersCompletedAM(t *testing.T) {
	q, rm := newTestQuery()
	rm.Containers["attempt_1"] = []client.ContainerReport{
		{ContainerID: "am", State: client.ContainerComplete},
		{ContainerID: "c1", State: client.ContainerRunning},
	}
	_, err := q.LiveContainers("attempt_1", "am")
	assert.Assert(t, common.IsConsistencyError(err), "a completed AM is not a live AM")
}
