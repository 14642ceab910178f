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

package mock

import (
	"strings"

	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/common"
	"github.com/yarnkit/yarnkit/pkg/locking"
)

// DFSClient is a scripted in-memory distributed file system.
type DFSClient struct {
	Files   map[string]client.FileMeta
	Puts    map[string]string // dfsPath -> localPath
	MkDirs  []string
	Deletes []string

	// Fail, when set, is returned by every call.
	Fail error

	StatCalls map[string]int

	locking.Mutex
}

var _ client.DFSClient = &DFSClient{}

func NewDFSClient() *DFSClient {
	return &DFSClient{
		Files:     make(map[string]client.FileMeta),
		Puts:      make(map[string]string),
		StatCalls: make(map[string]int),
	}
}

// AddFile registers a file so Stat and ListDir can find it.
func (m *DFSClient) AddFile(meta client.FileMeta) {
	m.Lock()
	defer m.Unlock()
	m.Files[meta.Path] = meta
}

func (m *DFSClient) Stat(path string) (client.FileMeta, error) {
	m.Lock()
	defer m.Unlock()
	m.StatCalls[path]++
	if m.Fail != nil {
		return client.FileMeta{}, m.Fail
	}
	meta, ok := m.Files[path]
	if !ok {
		return client.FileMeta{}, common.NewNotFound("path %s does not exist", path)
	}
	return meta, nil
}

func (m *DFSClient) ListDir(path string) ([]client.FileMeta, error) {
	m.Lock()
	defer m.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	prefix := strings.TrimRight(path, "/") + "/"
	var children []client.FileMeta
	for p, meta := range m.Files {
		if strings.HasPrefix(p, prefix) && !strings.Contains(strings.TrimPrefix(p, prefix), "/") {
			children = append(children, meta)
		}
	}
	if len(children) == 0 {
		if _, ok := m.Files[strings.TrimRight(path, "/")]; !ok {
			return nil, common.NewNotFound("path %s does not exist", path)
		}
	}
	return children, nil
}

func (m *DFSClient) Put(localPath, dfsPath string) error {
	m.Lock()
	defer m.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.Puts[dfsPath] = localPath
	m.Files[dfsPath] = client.FileMeta{Path: dfsPath}
	return nil
}

func (m *DFSClient) MkDir(path string) error {
	m.Lock()
	defer m.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.MkDirs = append(m.MkDirs, path)
	m.Files[path] = client.FileMeta{Path: path, IsDir: true}
	return nil
}

func (m *DFSClient) Delete(path string, recursive bool) error {
	m.Lock()
	defer m.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	if _, ok := m.Files[path]; !ok {
		return common.NewNotFound("path %s does not exist", path)
	}
	delete(m.Files, path)
	m.Deletes = append(m.Deletes, path)
	return nil
}

// Identity records impersonated calls and runs them inline.
type Identity struct {
	Users []string
}

var _ client.Identity = &Identity{}

func (m *Identity) RunAs(user string, action func() error) error {
	m.Users = append(m.Users, user)
	return action()
}
