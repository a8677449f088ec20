// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package access

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/holomush/disguise/internal/disguise"
)

const (
	nodeRoot    = "disguise"
	nodeClone   = "clone"
	nodeOptions = "options"
	denyPrefix  = "!"
)

// Class groups usable as the category segment.
const (
	GroupMob    = "mob"
	GroupMisc   = "misc"
	GroupPlayer = "player"
	GroupCustom = "custom"
)

type nodeKind int

const (
	nodeCategory nodeKind = iota
	nodeLiteral
	nodeCloneGrant
)

// node is one compiled permission node.
type node struct {
	raw       string
	kind      nodeKind
	value     bool
	namespace glob.Glob
	category  categoryMatcher

	// category nodes
	allOptions bool
	allowed    map[string]bool
	denied     map[string]bool

	// literal nodes
	literal string
}

// categoryMatcher matches a category by class group or by glob over its
// permission key.
type categoryMatcher struct {
	group string
	glob  glob.Glob
}

func (m categoryMatcher) match(cat disguise.Category) bool {
	switch m.group {
	case GroupCustom:
		return cat.IsCustom()
	case GroupMob, GroupMisc, GroupPlayer:
		return string(cat.Kind().Class) == m.group
	}
	return m.glob.Match(cat.PermissionKey())
}

// covers reports whether a category node grants every option in used.
// A node listing no allowed options allows all options it does not deny.
func (n *node) covers(used []string) bool {
	for _, opt := range used {
		opt = strings.ToLower(opt)
		if n.denied[opt] {
			return false
		}
		if len(n.allowed) > 0 && !n.allOptions && !n.allowed[opt] {
			return false
		}
	}
	return true
}

func invalidNode(raw, reason string) error {
	return oops.In("access").
		Code("INVALID_PERMISSION_NODE").
		With("node", raw).
		Errorf("invalid permission node %q: %s", raw, reason)
}

// parseNode compiles one permission node string.
func parseNode(raw string) (*node, error) {
	text := strings.ToLower(strings.TrimSpace(raw))
	n := &node{raw: raw, value: true}
	if strings.HasPrefix(text, denyPrefix) {
		n.value = false
		text = strings.TrimPrefix(text, denyPrefix)
	}

	segs := strings.Split(text, ".")
	if segs[0] != nodeRoot || len(segs) < 2 {
		return nil, invalidNode(raw, "must start with "+nodeRoot+".")
	}
	for _, s := range segs {
		if s == "" {
			return nil, invalidNode(raw, "empty segment")
		}
	}

	switch {
	case len(segs) == 2 && segs[1] == nodeClone:
		n.kind = nodeCloneGrant
		return n, nil
	case segs[1] == nodeOptions:
		if len(segs) < 5 {
			return nil, invalidNode(raw, "literal nodes need a namespace, a category and a value")
		}
		n.kind = nodeLiteral
		n.literal = strings.Join(segs[4:], ".")
	case len(segs) < 3:
		return nil, invalidNode(raw, "category nodes need a namespace and a category")
	default:
		n.kind = nodeCategory
		if err := n.parseOptions(raw, segs[3:]); err != nil {
			return nil, err
		}
	}

	nsIdx, catIdx := 1, 2
	if n.kind == nodeLiteral {
		nsIdx, catIdx = 2, 3
	}
	ns, err := glob.Compile(segs[nsIdx], '.')
	if err != nil {
		return nil, oops.In("access").Code("INVALID_PERMISSION_NODE").With("node", raw).Wrap(err)
	}
	n.namespace = ns
	cat, err := compileCategory(segs[catIdx])
	if err != nil {
		return nil, oops.In("access").Code("INVALID_PERMISSION_NODE").With("node", raw).Wrap(err)
	}
	n.category = cat
	return n, nil
}

func (n *node) parseOptions(raw string, opts []string) error {
	if len(opts) == 0 {
		return nil
	}
	n.allowed = make(map[string]bool, len(opts))
	n.denied = make(map[string]bool)
	for _, opt := range opts {
		switch {
		case opt == "*":
			n.allOptions = true
		case strings.HasPrefix(opt, "-"):
			name := strings.TrimPrefix(opt, "-")
			if name == "" {
				return invalidNode(raw, "empty option denial")
			}
			n.denied[name] = true
		default:
			n.allowed[opt] = true
		}
	}
	return nil
}

func compileCategory(seg string) (categoryMatcher, error) {
	switch seg {
	case GroupMob, GroupMisc, GroupPlayer, GroupCustom:
		return categoryMatcher{group: seg}, nil
	}
	g, err := glob.Compile(seg, '.')
	if err != nil {
		return categoryMatcher{}, err //nolint:wrapcheck // wrapped by caller with node context
	}
	return categoryMatcher{glob: g}, nil
}
