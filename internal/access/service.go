// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package access

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/samber/oops"

	"github.com/holomush/disguise/internal/disguise"
)

// Service answers permission questions for senders.
//
// Thread-safety: the compiled policy is swapped atomically as a whole.
// Runtime role assignments are protected by mu.
type Service struct {
	policy   atomic.Pointer[Policy]
	mu       sync.RWMutex
	assigned map[string]string // sender → role assigned at runtime
}

// NewService creates a service over a compiled policy.
// If p is nil, DefaultPolicy is used.
func NewService(p *Policy) *Service {
	if p == nil {
		p = DefaultPolicy()
	}
	s := &Service{assigned: make(map[string]string)}
	s.policy.Store(p)
	return s
}

// Swap installs a new policy. Views taken earlier keep the old one.
func (s *Service) Swap(p *Policy) {
	s.policy.Store(p)
}

// Policy returns the current policy.
func (s *Service) Policy() *Policy {
	return s.policy.Load()
}

// AssignRole sets a runtime role for a sender on top of its configured roles.
// Returns error if sender or role is empty, or role is unknown.
func (s *Service) AssignRole(sender, role string) error {
	if sender == "" {
		return oops.In("access").Code("INVALID_SUBJECT").New("sender cannot be empty")
	}
	if role == "" {
		return oops.In("access").Code("INVALID_ROLE").New("role cannot be empty")
	}
	if !s.Policy().HasRole(role) {
		return oops.In("access").Code("UNKNOWN_ROLE").With("role", role).New("unknown role")
	}

	s.mu.Lock()
	s.assigned[sender] = role
	s.mu.Unlock()

	return nil
}

// RevokeRole removes a sender's runtime role assignment.
// Returns error if sender is empty.
func (s *Service) RevokeRole(sender string) error {
	if sender == "" {
		return oops.In("access").Code("INVALID_SUBJECT").New("sender cannot be empty")
	}

	s.mu.Lock()
	delete(s.assigned, sender)
	s.mu.Unlock()

	return nil
}

// Roles returns the configured and runtime roles of a sender.
func (s *Service) Roles(sender string) []string {
	p := s.Policy()
	roles := append([]string(nil), p.senders[sender]...)

	s.mu.RLock()
	extra := s.assigned[sender]
	s.mu.RUnlock()

	if extra != "" && p.HasRole(extra) {
		roles = append(roles, extra)
	}
	return roles
}

// View resolves what a sender may do in a namespace. The view is read-only
// and unaffected by later swaps or assignments.
func (s *Service) View(sender, namespace string) *View {
	if sender == SubjectSystem {
		return SystemView(namespace)
	}
	namespace = strings.ToLower(namespace)
	v := &View{sender: sender, namespace: namespace}
	if sender == "" {
		return v
	}

	p := s.Policy()
	seen := make(map[string]bool)
	for _, role := range s.Roles(sender) {
		if seen[role] {
			continue
		}
		seen[role] = true
		for _, n := range p.roles[role] {
			if n.kind == nodeCloneGrant {
				v.clone = v.clone || n.value
				continue
			}
			if !n.namespace.Match(namespace) {
				continue
			}
			switch {
			case n.kind == nodeLiteral:
				v.literals = append(v.literals, n)
			case n.value:
				v.grants = append(v.grants, n)
			default:
				v.denies = append(v.denies, n)
			}
		}
	}
	slog.Debug("resolved permission view",
		"sender", sender,
		"namespace", namespace,
		"grants", len(v.grants),
		"denies", len(v.denies),
		"literals", len(v.literals))
	return v
}

// IsAllowedCategory reports whether a sender may use a category at all.
func (s *Service) IsAllowedCategory(sender, namespace string, cat disguise.Category) bool {
	return s.View(sender, namespace).AllowsCategory(cat)
}

// IsAllowedOptionSet reports whether a sender may combine the used options.
func (s *Service) IsAllowedOptionSet(sender, namespace string, cat disguise.Category, used []string) bool {
	return s.View(sender, namespace).AllowsOptions(cat, used)
}

// LiteralValuePolicy returns the literal value policy of a sender for a category.
func (s *Service) LiteralValuePolicy(sender, namespace string, cat disguise.Category) map[string]bool {
	return s.View(sender, namespace).Literals(cat)
}

// SystemView returns a view holding every permission.
func SystemView(namespace string) *View {
	return &View{sender: SubjectSystem, namespace: strings.ToLower(namespace), all: true}
}

// View is the resolved permissions of one sender in one namespace.
type View struct {
	sender    string
	namespace string
	all       bool
	clone     bool
	grants    []*node
	denies    []*node
	literals  []*node
}

// Sender returns the sender the view was resolved for.
func (v *View) Sender() string { return v.sender }

// Namespace returns the namespace the view was resolved for.
func (v *View) Namespace() string { return v.namespace }

// HasPermissions reports whether the sender may use any category at all.
func (v *View) HasPermissions() bool {
	return v.all || len(v.grants) > 0
}

// AllowsCategory reports whether a category is granted and not denied.
func (v *View) AllowsCategory(cat disguise.Category) bool {
	if v.all {
		return true
	}
	if !cat.Valid() {
		return false
	}
	for _, n := range v.denies {
		if n.category.match(cat) {
			return false
		}
	}
	for _, n := range v.grants {
		if n.category.match(cat) {
			return true
		}
	}
	return false
}

// AllowsOptions reports whether a single grant for the category covers every
// used option. Options allowed by different grants cannot be combined.
func (v *View) AllowsOptions(cat disguise.Category, used []string) bool {
	if v.all {
		return true
	}
	if !v.AllowsCategory(cat) {
		return false
	}
	for _, n := range v.grants {
		if n.category.match(cat) && n.covers(used) {
			return true
		}
	}
	return false
}

// Literals returns the literal value policy for a category. Values are
// lowercase; a denial wins over an allowance of the same value.
func (v *View) Literals(cat disguise.Category) map[string]bool {
	out := make(map[string]bool)
	if v.all || !cat.Valid() {
		return out
	}
	for _, n := range v.literals {
		if !n.category.match(cat) {
			continue
		}
		if prev, ok := out[n.literal]; ok && !prev {
			continue
		}
		out[n.literal] = n.value
	}
	return out
}

// CanClone reports whether the sender may use clone references.
func (v *View) CanClone() bool {
	return v.all || v.clone
}
