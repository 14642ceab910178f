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

// Package trace creates the jaeger tracer the RM and DFS facing
// operations report their spans to. When no tracer is installed the
// opentracing global noop tracer keeps span creation free.
package trace

import (
	"fmt"
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerzap "github.com/uber/jaeger-client-go/log/zap"
	"github.com/uber/jaeger-lib/metrics"

	"github.com/yarnkit/yarnkit/pkg/log"
)

// NewConstTracer returns a jaeger tracer that samples every trace and
// logs all spans, meant for tests and local runs.
func NewConstTracer(serviceName string) (opentracing.Tracer, io.Closer, error) {
	if len(serviceName) == 0 {
		return nil, nil, fmt.Errorf("service name is empty")
	}
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans: true,
		},
	}
	return cfg.NewTracer(
		jaegercfg.Logger(jaegerzap.NewLogger(log.Named(serviceName))),
		jaegercfg.Metrics(metrics.NullFactory),
	)
}

// NewTracerFromEnv returns a jaeger tracer with the sampling strategy
// taken from the JAEGER_* environment settings.
func NewTracerFromEnv(serviceName string) (opentracing.Tracer, io.Closer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, nil, err
	}
	if serviceName != "" {
		cfg.ServiceName = serviceName
	}
	return cfg.NewTracer(
		jaegercfg.Logger(jaegerzap.NewLogger(log.Named(cfg.ServiceName))),
		jaegercfg.Metrics(metrics.NullFactory),
	)
}

// InstallGlobal makes the tracer the process wide default used by all
// operations in this module. The returned closer flushes buffered spans
// and belongs to the caller.
func InstallGlobal(tracer opentracing.Tracer) {
	opentracing.SetGlobalTracer(tracer)
}
