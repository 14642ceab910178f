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

// Package configs holds the YAML configuration of the hosting service
// that this module reads at startup. The RM and DFS endpoints are owned
// by the client implementations, this module only carries them through.
package configs

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yarnkit/yarnkit/pkg/common"
)

const DefaultStagingRoot = "/user/launcher"

// LauncherConfig is the single top level configuration object:
// - the cluster name used to tag logs and traces
// - the RM and DFS endpoints handed to the client implementations
// - the DFS staging root for uploaded artifacts
// - the tracing toggle
type LauncherConfig struct {
	ClusterName string        `yaml:"clusterName"`
	RM          EndpointConf  `yaml:"resourceManager"`
	DFS         EndpointConf  `yaml:"fileSystem"`
	StagingRoot string        `yaml:"stagingRoot,omitempty"`
	Tracing     TracingConfig `yaml:"tracing,omitempty"`
}

type EndpointConf struct {
	Address string `yaml:"address"`
}

type TracingConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
	// ServiceName overrides the cluster name as the trace service name.
	ServiceName string `yaml:"serviceName,omitempty"`
}

// LoadConfig reads and validates the configuration from a YAML file.
func LoadConfig(path string) (*LauncherConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(content)
}

// ParseConfig parses and validates YAML configuration content.
func ParseConfig(content []byte) (*LauncherConfig, error) {
	conf := &LauncherConfig{}
	if err := yaml.Unmarshal(content, conf); err != nil {
		return nil, err
	}
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *LauncherConfig) validate() error {
	if c.ClusterName == "" {
		return common.NewConfigurationError("clusterName must be set")
	}
	if c.RM.Address == "" {
		return common.NewConfigurationError("resourceManager.address must be set")
	}
	if c.DFS.Address == "" {
		return common.NewConfigurationError("fileSystem.address must be set")
	}
	if c.StagingRoot == "" {
		c.StagingRoot = DefaultStagingRoot
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = c.ClusterName
	}
	return nil
}
