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
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"gotest.tools/v3/assert"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	assert.NilError(t, c.Write(&m), "failed to read counter")
	return m.GetCounter().GetValue()
}

func TestCacheMetrics(t *testing.T) {
	Reset()
	cm := GetCacheMetrics("fileMetadata")
	cm.Hit()
	cm.Hit()
	cm.Miss()
	cm.Invalidated()

	assert.Equal(t, counterValue(t, cacheLookups.WithLabelValues("fileMetadata", "hit")), 2.0)
	assert.Equal(t, counterValue(t, cacheLookups.WithLabelValues("fileMetadata", "miss")), 1.0)
	assert.Equal(t, counterValue(t, cacheInvalidations.WithLabelValues("fileMetadata")), 1.0)
}

func TestObserveCallResults(t *testing.T) {
	Reset()
	ObserveRMCall("listRunningNodes", nil)
	ObserveRMCall("listRunningNodes", errors.New("boom"))
	ObserveDFSCall("stat", nil)

	assert.Equal(t, counterValue(t, rmCalls.WithLabelValues("listRunningNodes", ResultSuccess)), 1.0)
	assert.Equal(t, counterValue(t, rmCalls.WithLabelValues("listRunningNodes", ResultFailure)), 1.0)
	assert.Equal(t, counterValue(t, dfsCalls.WithLabelValues("stat", ResultSuccess)), 1.0)
}

func TestRegisterIsIdempotent(t *testing.T) {
	Register()
	Register()
}
