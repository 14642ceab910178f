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

// Package client defines the narrow interfaces through which this module
// talks to the cluster resource manager and the distributed file system.
// Connection handling, authentication and timeouts are owned by the
// implementations which live in the hosting service, every call here is
// a blocking synchronous call that runs to completion or failure.
package client

import (
	"time"

	"github.com/yarnkit/yarnkit/pkg/common/resources"
)

// ContainerState is the RM reported lifecycle state of a container.
type ContainerState string

const (
	ContainerNew      ContainerState = "NEW"
	ContainerRunning  ContainerState = "RUNNING"
	ContainerComplete ContainerState = "COMPLETE"
)

// NodeReport describes a single running node as reported by the RM.
type NodeReport struct {
	Host          string
	Rack          string
	HTTPAddress   string
	Labels        []string
	Capability    resources.Descriptor
	Used          resources.Descriptor
	NumContainers int32
}

// ContainerReport describes a single container under an attempt.
type ContainerReport struct {
	ContainerID     string
	State           ContainerState
	Host            string
	NodeHTTPAddress string
	Resource        resources.Descriptor
	Priority        int32
}

// FileMeta is the DFS metadata of a single file or directory.
type FileMeta struct {
	Path         string
	SizeBytes    int64
	ModifiedTime time.Time
	IsDir        bool
}

// SubmissionContext carries everything the RM needs to launch the
// application master of a new application.
type SubmissionContext struct {
	ApplicationID string
	Name          string
	Queue         string
	Priority      int32
	AMResource    resources.Descriptor
	NodeLabel     string
}

// RMClient is the resource manager facade. Failures propagate unchanged,
// retry and backoff policy is owned by the caller. An absent application
// surfaces as a NotFound classified error from KillApplication.
type RMClient interface {
	// ListRunningNodes reports all nodes currently in the RUNNING state.
	ListRunningNodes() ([]NodeReport, error)
	// GetContainers reports all containers under the given attempt.
	GetContainers(attemptID string) ([]ContainerReport, error)
	// MinAllocation reports the RM configured allocation granularity of
	// one resource dimension.
	MinAllocation(dim resources.Dimension) (resources.Quantity, error)
	// SubmitApplication hands the submission context to the RM.
	SubmitApplication(ctx SubmissionContext) error
	// KillApplication asks the RM to kill the given application.
	KillApplication(applicationID string) error
}

// DFSClient is the distributed file system facade. Stat returns a
// NotFound classified error when the path does not exist.
type DFSClient interface {
	Stat(path string) (FileMeta, error)
	ListDir(path string) ([]FileMeta, error)
	Put(localPath, dfsPath string) error
	MkDir(path string) error
	Delete(path string, recursive bool) error
}

// Identity supplies a "run as user" execution context for submission
// calls. The implementation owns the impersonation mechanics.
type Identity interface {
	RunAs(user string, action func() error) error
}
