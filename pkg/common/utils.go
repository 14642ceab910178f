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

package common

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PathSeparator separates the segments of a DFS path. A node can be a
// file or a directory.
const PathSeparator = "/"

// JoinNodePath joins a parent path and a node name into a single DFS
// path, normalizing separators on the seam.
func JoinNodePath(parentPath, nodeName string) string {
	return strings.TrimRight(parentPath, PathSeparator) +
		PathSeparator +
		strings.TrimLeft(nodeName, PathSeparator)
}

// NodeName returns the last path segment of a DFS path, ignoring any
// trailing separators.
func NodeName(nodePath string) string {
	trimmed := strings.TrimRight(nodePath, PathSeparator)
	idx := strings.LastIndex(trimmed, PathSeparator)
	return trimmed[idx+1:]
}

// ContainerLogURL builds the address of the node manager web page serving
// the logs of a single container.
func ContainerLogURL(nodeHTTPAddress, containerID, user string) string {
	return fmt.Sprintf("http://%s/node/containerlogs/%s/%s/", nodeHTTPAddress, containerID, user)
}

// GetNewUUID returns a new UUID string, used to correlate the diagnostic
// records of a single query. The chance to generate a collision is really
// small.
func GetNewUUID() string {
	return uuid.NewString()
}
