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
	"errors"
	"fmt"
)

// ErrorKind classifies failures precisely enough for callers to decide
// between retry and abort. This module never retries and never downgrades
// a kind silently.
type ErrorKind int

const (
	// KindUnknown covers anything raised by an underlying client that is
	// re-raised unchanged, treat as potentially transient.
	KindUnknown ErrorKind = iota
	// KindNotFound: a path, application or container is absent. Absorbed
	// at the lowest layer where idempotence is expected (delete, kill).
	KindNotFound
	// KindContractViolation: the caller broke an API contract, for example
	// mutually exclusive constraints both set or a duplicate resource name.
	KindContractViolation
	// KindConsistency: the RM returned a view that contradicts a hard
	// invariant, such as a container listing without the AM container.
	KindConsistency
	// KindConfiguration: a resource dimension or setting the RM does not
	// recognize.
	KindConfiguration
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindContractViolation:
		return "ContractViolation"
	case KindConsistency:
		return "ConsistencyError"
	case KindConfiguration:
		return "ConfigurationError"
	default:
		return "Unknown"
	}
}

// Error carries a kind next to the message so the classification survives
// wrapping with fmt.Errorf and %w.
type Error struct {
	kind  ErrorKind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Kind() ErrorKind {
	return e.kind
}

func newError(kind ErrorKind, cause error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
}

func NewNotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, nil, format, args...)
}

func NewContractViolation(format string, args ...interface{}) *Error {
	return newError(KindContractViolation, nil, format, args...)
}

func NewConsistencyError(format string, args ...interface{}) *Error {
	return newError(KindConsistency, nil, format, args...)
}

func NewConfigurationError(format string, args ...interface{}) *Error {
	return newError(KindConfiguration, nil, format, args...)
}

// WrapNotFound keeps the underlying client error reachable via Unwrap
// while classifying it as not found.
func WrapNotFound(cause error, format string, args ...interface{}) *Error {
	return newError(KindNotFound, cause, format, args...)
}

// KindOf returns the classification of err, KindUnknown when err carries
// no classification.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsContractViolation(err error) bool {
	return KindOf(err) == KindContractViolation
}

func IsConsistencyError(err error) bool {
	return KindOf(err) == KindConsistency
}

func IsConfigurationError(err error) bool {
	return KindOf(err) == KindConfiguration
}
