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

package request

import (
	"go.uber.org/zap"

	"github.com/yarnkit/yarnkit/pkg/cache"
	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/common"
	"github.com/yarnkit/yarnkit/pkg/common/resources"
	"github.com/yarnkit/yarnkit/pkg/log"
	"github.com/yarnkit/yarnkit/pkg/metrics"
)

// MinAllocationCache memoizes the RM minimum allocation per dimension.
type MinAllocationCache = cache.Loading[resources.Dimension, resources.Quantity]

// NewMinAllocationCache creates the cache the Normalizer consults. It is
// owned by the dependency injection root and shared by reference.
func NewMinAllocationCache() *MinAllocationCache {
	return cache.NewLoading[resources.Dimension, resources.Quantity]("minAllocation")
}

// Normalizer rounds resource descriptors up to the RM allocation
// granularity. The RM silently normalizes on its side, so every
// descriptor has to be normalized locally before an outbound container
// request and before comparing an allocated container against a
// requested one, otherwise requests and allocations stop matching up.
type Normalizer struct {
	rm       client.RMClient
	minAlloc *MinAllocationCache
}

func NewNormalizer(rm client.RMClient, minAlloc *MinAllocationCache) *Normalizer {
	return &Normalizer{rm: rm, minAlloc: minAlloc}
}

// MinAllocation returns the cached allocation granularity for the given
// dimension, loading it from the RM on first access. The RM only has a
// granularity for memory and vcores, asking for anything else is a
// configuration error.
func (n *Normalizer) MinAllocation(dim resources.Dimension) (resources.Quantity, error) {
	switch dim {
	case resources.Memory, resources.VCore:
		return n.minAlloc.Get(dim, n.loadMinAllocation)
	default:
		return 0, common.NewConfigurationError("not a valid dimension %s for min allocation", dim)
	}
}

func (n *Normalizer) loadMinAllocation(dim resources.Dimension) (resources.Quantity, error) {
	minAlloc, err := n.rm.MinAllocation(dim)
	metrics.ObserveRMCall("minAllocation", err)
	if err != nil {
		return 0, err
	}
	if minAlloc <= 0 {
		return 0, common.NewConfigurationError("RM reported min allocation %d for dimension %s", minAlloc, dim)
	}
	log.Named("normalizer").Info("loaded min allocation from RM",
		zap.String("dimension", string(dim)),
		zap.Int64("minAllocation", int64(minAlloc)))
	return minAlloc, nil
}

// Normalize rounds memory and vcores up to the nearest multiple of the
// RM minimum allocation and returns a new descriptor. GPU count and the
// GPU attribute mask pass through unchanged, the RM has no notion of GPU
// granularity.
func (n *Normalizer) Normalize(d resources.Descriptor) (resources.Descriptor, error) {
	minMemory, err := n.MinAllocation(resources.Memory)
	if err != nil {
		return resources.Descriptor{}, err
	}
	minVCores, err := n.MinAllocation(resources.VCore)
	if err != nil {
		return resources.Descriptor{}, err
	}
	return resources.Descriptor{
		MemoryMB:     roundUp(d.MemoryMB, minMemory),
		VCores:       roundUp(d.VCores, minVCores),
		GPUs:         d.GPUs,
		GPUAttribute: d.GPUAttribute,
	}, nil
}

// InvalidateMinAllocations clears the cached granularities, the next
// Normalize call reloads them from the RM.
func (n *Normalizer) InvalidateMinAllocations() {
	n.minAlloc.Invalidate()
}

func roundUp(value, granularity resources.Quantity) resources.Quantity {
	if value <= 0 {
		return 0
	}
	remainder := value % granularity
	if remainder == 0 {
		return value
	}
	return value + granularity - remainder
}
