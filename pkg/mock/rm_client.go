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

// Package mock provides in-memory RM and DFS clients for tests.
package mock

import (
	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/common"
	"github.com/yarnkit/yarnkit/pkg/common/resources"
	"github.com/yarnkit/yarnkit/pkg/locking"
)

// RMClient is a scripted in-memory resource manager.
type RMClient struct {
	Nodes          []client.NodeReport
	Containers     map[string][]client.ContainerReport
	MinAllocations map[resources.Dimension]resources.Quantity
	Submitted      []client.SubmissionContext
	Killed         []string
	// KnownApps marks application ids the mock accepts kills for, a kill
	// for any other id returns a NotFound classified error.
	KnownApps map[string]bool

	// Fail, when set, is returned by every call.
	Fail error

	MinAllocationCalls int
	ListNodesCalls     int

	locking.RWMutex
}

var _ client.RMClient = &RMClient{}

func NewRMClient() *RMClient {
	return &RMClient{
		Containers: make(map[string][]client.ContainerReport),
		MinAllocations: map[resources.Dimension]resources.Quantity{
			resources.Memory: 1024,
			resources.VCore:  1,
		},
		KnownApps: make(map[string]bool),
	}
}

func (m *RMClient) ListRunningNodes() ([]client.NodeReport, error) {
	m.Lock()
	defer m.Unlock()
	m.ListNodesCalls++
	if m.Fail != nil {
		return nil, m.Fail
	}
	return m.Nodes, nil
}

func (m *RMClient) GetContainers(attemptID string) ([]client.ContainerReport, error) {
	m.RLock()
	defer m.RUnlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	return m.Containers[attemptID], nil
}

func (m *RMClient) MinAllocation(dim resources.Dimension) (resources.Quantity, error) {
	m.Lock()
	defer m.Unlock()
	m.MinAllocationCalls++
	if m.Fail != nil {
		return 0, m.Fail
	}
	minAlloc, ok := m.MinAllocations[dim]
	if !ok {
		return 0, common.NewConfigurationError("no min allocation for dimension %s", dim)
	}
	return minAlloc, nil
}

func (m *RMClient) SubmitApplication(ctx client.SubmissionContext) error {
	m.Lock()
	defer m.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.Submitted = append(m.Submitted, ctx)
	m.KnownApps[ctx.ApplicationID] = true
	return nil
}

func (m *RMClient) KillApplication(applicationID string) error {
	m.Lock()
	defer m.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	if !m.KnownApps[applicationID] {
		return common.NewNotFound("application %s does not exist", applicationID)
	}
	m.Killed = append(m.Killed, applicationID)
	return nil
}
