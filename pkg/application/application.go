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

// Package application submits and kills applications on the RM. The
// submission runs under the identity of the requesting user, kills are
// idempotent and swallow not found.
package application

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"

	"github.com/yarnkit/yarnkit/pkg/client"
	"github.com/yarnkit/yarnkit/pkg/common"
	"github.com/yarnkit/yarnkit/pkg/locking"
	"github.com/yarnkit/yarnkit/pkg/log"
	"github.com/yarnkit/yarnkit/pkg/metrics"
)

// ----------------------------------
// application events
// ----------------------------------
type applicationEvent int

const (
	submitApplication applicationEvent = iota
	killApplication
)

func (ae applicationEvent) String() string {
	return [...]string{"SubmitApplication", "KillApplication"}[ae]
}

// ----------------------------------
// application states
// ----------------------------------
type applicationState int

const (
	stateNew applicationState = iota
	stateSubmitted
	stateKilled
)

func (as applicationState) String() string {
	return [...]string{"New", "Submitted", "Killed"}[as]
}

func newAppState(applicationID string) *fsm.FSM {
	return fsm.NewFSM(
		stateNew.String(), fsm.Events{
			{
				Name: submitApplication.String(),
				Src:  []string{stateNew.String()},
				Dst:  stateSubmitted.String(),
			}, {
				Name: killApplication.String(),
				Src:  []string{stateNew.String(), stateSubmitted.String(), stateKilled.String()},
				Dst:  stateKilled.String(),
			},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, event *fsm.Event) {
				log.Named("application").Debug("application state transition",
					zap.String("applicationID", applicationID),
					zap.String("source", event.Src),
					zap.String("destination", event.Dst),
					zap.String("event", event.Event))
			},
		},
	)
}

// Manager tracks the locally submitted applications and their state.
// The RM remains the source of truth, the local state only mirrors what
// this process has asked for.
type Manager struct {
	rm       client.RMClient
	identity client.Identity
	apps     map[string]*fsm.FSM

	locking.RWMutex
}

func NewManager(rm client.RMClient, identity client.Identity) *Manager {
	return &Manager{
		rm:       rm,
		identity: identity,
		apps:     make(map[string]*fsm.FSM),
	}
}

// Submit hands the submission context to the RM under the identity of
// the given user. Failures from the RM propagate unchanged.
func (m *Manager) Submit(ctx client.SubmissionContext, user string) error {
	span := opentracing.StartSpan("submitApplication")
	span.SetTag("applicationID", ctx.ApplicationID)
	defer span.Finish()

	err := m.identity.RunAs(user, func() error {
		return m.rm.SubmitApplication(ctx)
	})
	metrics.ObserveRMCall("submitApplication", err)
	if err != nil {
		return err
	}

	m.Lock()
	defer m.Unlock()
	state := newAppState(ctx.ApplicationID)
	if err = state.Event(context.Background(), submitApplication.String()); err != nil {
		// transitions out of New cannot fail, log and keep going
		log.Named("application").Warn("unexpected state machine failure",
			zap.String("applicationID", ctx.ApplicationID),
			zap.Error(err))
	}
	m.apps[ctx.ApplicationID] = state

	log.Named("application").Info("application submitted",
		zap.String("applicationID", ctx.ApplicationID),
		zap.String("user", user),
		zap.String("queue", ctx.Queue))
	return nil
}

// Kill asks the RM to kill an application. An application unknown to
// the RM counts as already gone: the kill is idempotent and succeeds.
func (m *Manager) Kill(applicationID string) error {
	span := opentracing.StartSpan("killApplication")
	span.SetTag("applicationID", applicationID)
	defer span.Finish()

	err := m.rm.KillApplication(applicationID)
	metrics.ObserveRMCall("killApplication", err)
	if err != nil && !common.IsNotFound(err) {
		return err
	}
	if common.IsNotFound(err) {
		log.Named("application").Debug("application already absent",
			zap.String("applicationID", applicationID))
	}

	m.Lock()
	defer m.Unlock()
	if state, ok := m.apps[applicationID]; ok {
		if err = state.Event(context.Background(), killApplication.String()); err != nil {
			log.Named("application").Warn("unexpected state machine failure",
				zap.String("applicationID", applicationID),
				zap.Error(err))
		}
	}
	return nil
}

// State reports the locally tracked state of an application, empty when
// the application was not submitted by this process.
func (m *Manager) State(applicationID string) string {
	m.RLock()
	defer m.RUnlock()
	if state, ok := m.apps[applicationID]; ok {
		return state.Current()
	}
	return ""
}
