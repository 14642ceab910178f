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

// Package nodelabel matches the label set of a cluster node against the
// node label expression of a request. An expression is parsed once at
// the boundary into one of three closed forms: absent, exact or fuzzy.
package nodelabel

import (
	"strings"
)

const (
	// Delimiter joins and splits the simultaneous labels inside a single
	// node label entry.
	Delimiter = "&"
	// Wildcard marks a fuzzy expression when it appears at both ends.
	Wildcard = "*"
)

type form int

const (
	formAbsent form = iota
	formExact
	formFuzzy
)

// Expression is a parsed node label expression. The zero value is the
// absent expression, which matches unlabeled nodes only.
type Expression struct {
	form  form
	label string
}

// Parse turns the raw request label into an expression:
// empty string -> absent, "*x*" -> fuzzy on x (x may be empty),
// anything else -> exact. Wildcard markers are only recognized when they
// appear at both ends, there is no partial wildcard form.
func Parse(raw string) Expression {
	if raw == "" {
		return Expression{}
	}
	if len(raw) >= 2 && strings.HasPrefix(raw, Wildcard) && strings.HasSuffix(raw, Wildcard) {
		return Expression{form: formFuzzy, label: raw[1 : len(raw)-1]}
	}
	return Expression{form: formExact, label: raw}
}

// Absent returns the expression matching unlabeled nodes only.
func Absent() Expression {
	return Expression{}
}

// Exact returns an expression matching a literal label entry.
func Exact(label string) Expression {
	if label == "" {
		return Expression{}
	}
	return Expression{form: formExact, label: label}
}

// Fuzzy returns an expression matching label as one delimiter separated
// token of any node label entry. An empty label matches every node.
func Fuzzy(label string) Expression {
	return Expression{form: formFuzzy, label: label}
}

func (e Expression) IsAbsent() bool {
	return e.form == formAbsent
}

func (e Expression) IsFuzzy() bool {
	return e.form == formFuzzy
}

// Label returns the bare label with any wildcard markers stripped.
func (e Expression) Label() string {
	return e.label
}

// String renders the expression in its raw request form.
func (e Expression) String() string {
	switch e.form {
	case formFuzzy:
		return Wildcard + e.label + Wildcard
	case formExact:
		return e.label
	default:
		return ""
	}
}

// Matches decides whether a node with the given label set is eligible
// for a request carrying this expression. The decision is deterministic
// and independent of the iteration order of nodeLabels: a fuzzy
// expression matches when ANY entry contains the token, no priority
// among multiple matching entries is inferred.
func (e Expression) Matches(nodeLabels []string) bool {
	switch e.form {
	case formAbsent:
		return len(nodeLabels) == 0
	case formFuzzy:
		// an empty fuzzy token matches every node
		if e.label == "" {
			return true
		}
		for _, entry := range nodeLabels {
			for _, token := range strings.Split(entry, Delimiter) {
				if token == e.label {
					return true
				}
			}
		}
		return false
	default:
		for _, entry := range nodeLabels {
			if entry == e.label {
				return true
			}
		}
		return false
	}
}

// Join renders a node label set for display, absence is the empty set.
func Join(nodeLabels []string) string {
	return strings.Join(nodeLabels, Delimiter)
}
