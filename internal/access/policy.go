// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package access

import (
	"sort"

	"github.com/samber/oops"
)

// Policy is a compiled set of roles and the roles assigned to each sender.
// A Policy is immutable after construction and safe for concurrent use.
type Policy struct {
	roles   map[string][]*node
	senders map[string][]string
}

// Compile builds a policy from role definitions and sender assignments.
// Returns an error if a node is malformed or a sender names an unknown role.
func Compile(roles map[string][]string, senders map[string][]string) (*Policy, error) {
	compiled := make(map[string][]*node, len(roles))
	for role, nodes := range roles {
		if role == "" {
			return nil, oops.In("access").Code("INVALID_ROLE").New("role cannot be empty")
		}
		list := make([]*node, 0, len(nodes))
		for _, raw := range nodes {
			n, err := parseNode(raw)
			if err != nil {
				return nil, oops.In("access").With("role", role).Wrap(err)
			}
			list = append(list, n)
		}
		compiled[role] = list
	}

	assigned := make(map[string][]string, len(senders))
	for sender, rs := range senders {
		if sender == "" {
			return nil, oops.In("access").Code("INVALID_SUBJECT").New("sender cannot be empty")
		}
		for _, role := range rs {
			if _, ok := compiled[role]; !ok {
				return nil, oops.In("access").
					Code("UNKNOWN_ROLE").
					With("sender", sender).
					With("role", role).
					New("unknown role")
			}
		}
		assigned[sender] = append([]string(nil), rs...)
	}

	return &Policy{roles: compiled, senders: assigned}, nil
}

// DefaultPolicy returns the default roles with no sender assignments.
//
// Panics if the default roles contain invalid nodes (configuration bug).
func DefaultPolicy() *Policy {
	p, err := Compile(DefaultRoles(), nil)
	if err != nil {
		panic("invalid permission node in DefaultRoles: " + err.Error())
	}
	return p
}

// Roles lists the defined role names in sorted order.
func (p *Policy) Roles() []string {
	out := make([]string, 0, len(p.roles))
	for r := range p.roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// HasRole reports whether a role is defined.
func (p *Policy) HasRole(role string) bool {
	_, ok := p.roles[role]
	return ok
}
