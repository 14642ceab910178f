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

package resources

import (
	"fmt"
)

// No unit defined here for better performance
type Quantity int64

// Dimension names a single resource axis of a descriptor. Memory and
// vcores have an RM enforced allocation granularity, GPUs do not.
type Dimension string

const (
	Memory Dimension = "memory"
	VCore  Dimension = "vcore"
	GPU    Dimension = "gpu"
)

// Descriptor is an immutable resource vector. Operations return a new
// value and never mutate in place. The GPU attribute mask is opaque to
// the RM and travels with the descriptor unchanged.
type Descriptor struct {
	MemoryMB     Quantity
	VCores       Quantity
	GPUs         Quantity
	GPUAttribute uint64
}

func NewDescriptor(memoryMB, vcores Quantity) Descriptor {
	return Descriptor{MemoryMB: memoryMB, VCores: vcores}
}

func NewDescriptorWithGPU(memoryMB, vcores, gpus Quantity, gpuAttribute uint64) Descriptor {
	return Descriptor{
		MemoryMB:     memoryMB,
		VCores:       vcores,
		GPUs:         gpus,
		GPUAttribute: gpuAttribute,
	}
}

func (d Descriptor) String() string {
	return fmt.Sprintf("[MemoryMB: %d, VCores: %d, GPUs: %d, GPUAttribute: %d]",
		d.MemoryMB, d.VCores, d.GPUs, d.GPUAttribute)
}

// Get returns the quantity of a single dimension.
func (d Descriptor) Get(dim Dimension) Quantity {
	switch dim {
	case Memory:
		return d.MemoryMB
	case VCore:
		return d.VCores
	case GPU:
		return d.GPUs
	default:
		return 0
	}
}

// Add returns a new descriptor with the component wise sum. The GPU
// attribute masks are combined as a union.
func Add(left, right Descriptor) Descriptor {
	return Descriptor{
		MemoryMB:     left.MemoryMB + right.MemoryMB,
		VCores:       left.VCores + right.VCores,
		GPUs:         left.GPUs + right.GPUs,
		GPUAttribute: left.GPUAttribute | right.GPUAttribute,
	}
}

// Sub returns a new descriptor with the component wise difference. This
// might return negative values for specific quantities. The left GPU
// attribute mask is kept with the right mask cleared from it.
func Sub(left, right Descriptor) Descriptor {
	return Descriptor{
		MemoryMB:     left.MemoryMB - right.MemoryMB,
		VCores:       left.VCores - right.VCores,
		GPUs:         left.GPUs - right.GPUs,
		GPUAttribute: left.GPUAttribute &^ right.GPUAttribute,
	}
}

// FitIn checks whether smaller fits in larger on every dimension,
// negative values in larger are treated as 0.
func FitIn(larger, smaller Descriptor) bool {
	for _, dim := range []Dimension{Memory, VCore, GPU} {
		largerValue := larger.Get(dim)
		if largerValue < 0 {
			largerValue = 0
		}
		if smaller.Get(dim) > largerValue {
			return false
		}
	}
	return true
}

// Equals compares all dimensions including the GPU attribute mask.
func Equals(left, right Descriptor) bool {
	return left == right
}

// IsZero reports whether every dimension is zero; the attribute mask is
// ignored as it carries no capacity.
func (d Descriptor) IsZero() bool {
	return d.MemoryMB == 0 && d.VCores == 0 && d.GPUs == 0
}
