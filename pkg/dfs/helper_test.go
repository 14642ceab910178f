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

package dfs

import (
	"errors"
	"sort"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/mock"
)

func TestUpload(t *testing.T) {
	dfs := mock.NewDFSClient()
	h := NewHelper(dfs)
	assert.NilError(t, h.Upload("/tmp/app.jar", "/user/launcher/app.jar"))
	assert.Equal(t, dfs.Puts["/user/launcher/app.jar"], "/tmp/app.jar")
}

func TestMakeDir(t *testing.T) {
	dfs := mock.NewDFSClient()
	h := NewHelper(dfs)
	assert.NilError(t, h.MakeDir("/user/launcher/staging"))
	assert.DeepEqual(t, dfs.MkDirs, []string{"/user/launcher/staging"})
}

func TestRemoveDirIdempotent(t *testing.T) {
	dfs := mock.NewDFSClient()
	dfs.AddFile(client.FileMeta{Path: "/user/launcher/staging", IsDir: true})
	h := NewHelper(dfs)

	assert.NilError(t, h.RemoveDir("/user/launcher/staging"))
	// second remove hits an absent path and must still succeed
	assert.NilError(t, h.RemoveDir("/user/launcher/staging"))
	assert.Equal(t, len(dfs.Deletes), 1)
}

func TestRemoveDirOtherErrorsPropagate(t *testing.T) {
	dfs := mock.NewDFSClient()
	dfs.Fail = errors.New("permission denied")
	h := NewHelper(dfs)
	err := h.RemoveDir("/user/launcher/staging")
	assert.Assert(t, errors.Is(err, dfs.Fail), "non NotFound errors must propagate")
}

func TestListNames(t *testing.T) {
	dfs := mock.NewDFSClient()
	dfs.AddFile(client.FileMeta{Path: "/user/launcher", IsDir: true})
	dfs.AddFile(client.FileMeta{Path: "/user/launcher/a.txt"})
	dfs.AddFile(client.FileMeta{Path: "/user/launcher/b.txt"})
	h := NewHelper(dfs)

	names, err := h.ListNames("/user/launcher")
	assert.NilError(t, err)
	sort.Strings(names)
	assert.DeepEqual(t, names, []string{"a.txt", "b.txt"})
}

func TestListNamesAbsentPath(t *testing.T) {
	dfs := mock.NewDFSClient()
	h := NewHelper(dfs)
	names, err := h.ListNames("/user/launcher/missing")
	assert.NilError(t, err, "absent path must read as empty")
	assert.Equal(t, len(names), 0)
}
