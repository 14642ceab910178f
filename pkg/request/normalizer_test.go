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
	"testing"

	"gotest.tools/v3/assert"

	"github.com/yarnkit/yarnkit/pkg/common"
	"github.com/yarnkit/yarnkit/pkg/common/resources"
	"github.com/yarnkit/yarnkit/pkg/mock"
)

func newTestNormalizer(memMin, vcoreMin resources.Quantity) (*Normalizer, *mock.RMClient) {
	rm := mock.NewRMClient()
	rm.MinAllocations[resources.Memory] = memMin
	rm.MinAllocations[resources.VCore] = vcoreMin
	return NewNormalizer(rm, NewMinAllocationCache()), rm
}

func TestNormalizeRoundsUp(t *testing.T) {
	n, _ := newTestNormalizer(128, 1)

	tests := []struct {
		name string
		in   resources.Descriptor
		want resources.Descriptor
	}{
		{"round up", resources.NewDescriptor(100, 1), resources.NewDescriptor(128, 1)},
		{"aligned stays", resources.NewDescriptor(256, 1), resources.NewDescriptor(256, 1)},
		{"one above", resources.NewDescriptor(129, 1), resources.NewDescriptor(256, 1)},
		{"zero stays zero", resources.NewDescriptor(0, 0), resources.NewDescriptor(0, 0)},
		{
			"gpu passes through",
			resources.NewDescriptorWithGPU(100, 1, 3, 0b101),
			resources.NewDescriptorWithGPU(128, 1, 3, 0b101),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := n.Normalize(test.in)
			assert.NilError(t, err)
			assert.Equal(t, got, test.want)
		})
	}
}

func TestNormalizeVCoreGranularity(t *testing.T) {
	n, _ := newTestNormalizer(1024, 4)
	got, err := n.Normalize(resources.NewDescriptor(1024, 5))
	assert.NilError(t, err)
	assert.Equal(t, got.VCores, resources.Quantity(8))
}

func TestMinAllocationCached(t *testing.T) {
	n, rm := newTestNormalizer(128, 1)

	_, err := n.Normalize(resources.NewDescriptor(100, 1))
	assert.NilError(t, err)
	_, err = n.Normalize(resources.NewDescriptor(200, 2))
	assert.NilError(t, err)
	assert.Equal(t, rm.MinAllocationCalls, 2, "memory and vcore loaded once each")

	n.InvalidateMinAllocations()
	_, err = n.Normalize(resources.NewDescriptor(100, 1))
	assert.NilError(t, err)
	assert.Equal(t, rm.MinAllocationCalls, 4, "invalidation must force exactly one reload per dimension")
}

func TestMinAllocationUnknownDimension(t *testing.T) {
	n, rm := newTestNormalizer(128, 1)
	_, err := n.MinAllocation(resources.GPU)
	assert.Assert(t, common.IsConfigurationError(err), "GPU has no RM granularity")
	_, err = n.MinAllocation(resources.Dimension("disk"))
	assert.Assert(t, common.IsConfigurationError(err))
	assert.Equal(t, rm.MinAllocationCalls, 0, "RM must not be asked for unknown dimensions")
}

func TestMinAllocationInvalidValue(t *testing.T) {
	n, _ := newTestNormalizer(0, 1)
	_, err := n.Normalize(resources.NewDescriptor(100, 1))
	assert.Assert(t, common.IsConfigurationError(err), "zero granularity must be rejected")
}
