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

// Package request turns abstract resource requirements into RM container
// request specs, normalizing the resource vector to the RM allocation
// granularity on the way.
package request

import (
	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/common"
	"github.com/yarnkit/yarnkit/pkg/common/resources"
	"github.com/yarnkit/yarnkit/pkg/metrics"
	"github.com/yarnkit/yarnkit/pkg/nodelabel"
)

// Constraint narrows where a container request may be placed. A nil
// Constraint means the request can land anywhere. Host affinity and node
// label constraints are mutually exclusive, the closed variant set makes
// a request carrying both unrepresentable.
type Constraint interface {
	constraintKind() string
}

// HostAffinity pins the request to a single host. It is a hint: the spec
// is built with locality relaxed so the RM can fall back to another node
// instead of hanging forever when the host is unavailable.
type HostAffinity struct {
	Host string
}

func (HostAffinity) constraintKind() string { return "host" }

// NodeLabel restricts the request to nodes matching a label expression.
// A request with a node label constraint carries no host or rack
// constraint.
type NodeLabel struct {
	Expression nodelabel.Expression
}

func (NodeLabel) constraintKind() string { return "nodeLabel" }

// NewConstraint is the boundary check for callers that still carry both
// optional fields: a non-empty host and a non-empty label at the same
// time is a contract violation, never a runtime fallback.
func NewConstraint(host, label string) (Constraint, error) {
	if host != "" && label != "" {
		return nil, common.NewContractViolation(
			"host affinity %s and node label %s are mutually exclusive", host, label)
	}
	if host != "" {
		return HostAffinity{Host: host}, nil
	}
	if label != "" {
		return NodeLabel{Expression: nodelabel.Parse(label)}, nil
	}
	return nil, nil
}

// Spec is an outbound shaped container request. Resource is always
// normalized. RelaxLocality tells the RM that any stated placement is a
// preference, not a requirement.
type Spec struct {
	Resource      resources.Descriptor
	Priority      int32
	Constraint    Constraint
	RelaxLocality bool
}

// Builder composes normalized container request specs.
type Builder struct {
	normalizer *Normalizer
}

func NewBuilder(normalizer *Normalizer) *Builder {
	return &Builder{normalizer: normalizer}
}

// Build normalizes the descriptor and assembles the spec. Constraint may
// be nil for an "anywhere" request at the given priority.
func (b *Builder) Build(res resources.Descriptor, priority int32, constraint Constraint) (Spec, error) {
	normalized, err := b.normalizer.Normalize(res)
	if err != nil {
		return Spec{}, err
	}
	kind := "none"
	if constraint != nil {
		kind = constraint.constraintKind()
	}
	metrics.ObserveContainerRequest(kind)
	return Spec{
		Resource:      normalized,
		Priority:      priority,
		Constraint:    constraint,
		RelaxLocality: true,
	}, nil
}

// FromAllocatedContainer reconstructs an outbound shaped request from an
// RM reported allocated container, used to release or re-request the
// matching capacity. The reported resource went through the RM's own
// normalization already so normalizing again is idempotent, it is done
// anyway so both sides always compare normalized values.
func (b *Builder) FromAllocatedContainer(container client.ContainerReport) (Spec, error) {
	return b.Build(container.Resource, container.Priority, HostAffinity{Host: container.Host})
}
