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

// Package cache provides a memoize-on-first-access cache for expensive,
// rarely changing facts queried from external systems, such as DFS file
// metadata and RM minimum allocation settings. Entries are populated
// lazily and only ever cleared wholesale via Invalidate, there is no TTL.
package cache

import (
	"github.com/yarnkit/yarnkit/pkg/locking"
	"github.com/yarnkit/yarnkit/pkg/metrics"
)

// LoaderFunc produces the value for a missing key. Loader errors
// propagate to the caller and are never cached.
type LoaderFunc[K comparable, V any] func(key K) (V, error)

// Loading is a mutex guarded lazy cache. A single lock covers the whole
// instance, so a miss triggered loader call serializes other lookups on
// the same cache. Misses are expected to be rare (first access per
// process or right after an invalidation), which keeps this acceptable
// and the locking trivially correct.
type Loading[K comparable, V any] struct {
	name    string
	entries map[K]V

	locking.Mutex
}

// NewLoading creates an empty cache. The name labels the cache in logs
// and metrics only.
func NewLoading[K comparable, V any](name string) *Loading[K, V] {
	return &Loading[K, V]{
		name:    name,
		entries: make(map[K]V),
	}
}

// Get returns the cached value for key, invoking load synchronously on
// the first miss and storing the result. A failed load leaves the cache
// unchanged, there is no negative caching.
func (c *Loading[K, V]) Get(key K, load LoaderFunc[K, V]) (V, error) {
	c.Lock()
	defer c.Unlock()
	if value, ok := c.entries[key]; ok {
		metrics.GetCacheMetrics(c.name).Hit()
		return value, nil
	}
	metrics.GetCacheMetrics(c.name).Miss()
	value, err := load(key)
	if err != nil {
		var zero V
		return zero, err
	}
	c.entries[key] = value
	return value, nil
}

// Invalidate clears all entries atomically. Concurrent Get calls observe
// either the old or the cleared state, never a torn entry.
func (c *Loading[K, V]) Invalidate() {
	c.Lock()
	defer c.Unlock()
	c.entries = make(map[K]V)
	metrics.GetCacheMetrics(c.name).Invalidated()
}

// Len returns the number of cached entries.
func (c *Loading[K, V]) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.entries)
}
