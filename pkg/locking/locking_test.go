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

package locking

import (
	"os"
	"testing"

	"gotest.tools/v3/assert"
)

func disableTracking() {
	_ = os.Unsetenv(EnvDeadlockDetectionEnabled)
	_ = os.Unsetenv(EnvDeadlockTimeoutSeconds)
	_ = os.Unsetenv(EnvDisableLockOrder)
	testingMode.Store(false)
	reInit()
}

func enableTracking() {
	_ = os.Setenv(EnvDeadlockDetectionEnabled, "true")
	_ = os.Setenv(EnvDeadlockTimeoutSeconds, "1")
	testingMode.Store(true)
	reInit()
}

func TestTrackingDisabledByDefault(t *testing.T) {
	disableTracking()
	assert.Assert(t, !IsTrackingEnabled(), "tracking should be off without env settings")
	assert.Equal(t, 60, GetDeadlockTimeoutSeconds(), "wrong default timeout")
}

func TestTrackingEnabled(t *testing.T) {
	enableTracking()
	defer disableTracking()
	assert.Assert(t, IsTrackingEnabled(), "tracking should be on")
	assert.Equal(t, 1, GetDeadlockTimeoutSeconds(), "timeout not read from env")
}

func TestMutexBasics(t *testing.T) {
	disableTracking()
	var m Mutex
	m.Lock()
	m.Unlock() //nolint:staticcheck
	var rw RWMutex
	rw.RLock()
	rw.RUnlock() //nolint:staticcheck
	rw.Lock()
	rw.Unlock() //nolint:staticcheck
	assert.Assert(t, !IsDeadlockDetected(), "no deadlock expected")
}
