// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package access decides which disguises, options and literal values a sender
// may use.
//
// Permissions are dotted nodes granted through roles:
//   - disguise.<namespace>.<category> allows a category with every option
//   - disguise.<namespace>.<category>.<opt>... allows only the listed options;
//     "-<opt>" denies an option and "*" allows all of them
//   - disguise.options.<namespace>.<category>.<value> feeds the literal value
//     policy for player names, materials and numeric ids
//   - disguise.clone allows clone references
//
// Namespace and category segments are glob patterns. A category segment may
// also name a class group: mob, misc, player or custom. A node prefixed with
// "!" carries the value false: on a category node it denies the category, on a
// literal node it blacklists the value.
package access

import "strings"

// SubjectSystem holds every permission.
const SubjectSystem = "system"

// HasLiteral applies a literal value policy to a value.
// An empty policy allows everything. An explicit entry decides on its own.
// Otherwise the value is denied when the policy holds at least one allowed
// entry (whitelist mode) and allowed when it holds only denials (blacklist mode).
func HasLiteral(policy map[string]bool, value string) bool {
	if len(policy) == 0 {
		return true
	}
	if allowed, ok := policy[strings.ToLower(value)]; ok {
		return allowed
	}
	for _, allowed := range policy {
		if allowed {
			return false
		}
	}
	return true
}
