// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package access

// Permission groups define reusable sets of nodes.
// Roles compose these groups rather than inheriting.

var mobPowers = []string{
	"disguise.*.mob",
}

var miscPowers = []string{
	"disguise.*.misc",
}

// memberPowers allow mobs without invisibility and keep falling blocks off tnt.
var memberPowers = []string{
	"disguise.*.mob.*.-setinvisible",
	"!disguise.options.*.fallingblock.tnt",
}

var playerPowers = []string{
	"disguise.*.player",
	"disguise.*.custom",
}

var adminPowers = []string{
	"disguise.*.*",
	"disguise.clone",
}

// DefaultRoles returns the default role definitions.
// Roles compose permission groups explicitly (no inheritance).
func DefaultRoles() map[string][]string {
	return map[string][]string{
		"member":  compose(memberPowers, miscPowers),
		"builder": compose(mobPowers, miscPowers, playerPowers),
		"admin":   compose(mobPowers, miscPowers, playerPowers, adminPowers),
	}
}

// compose merges multiple permission slices into one.
func compose(groups ...[]string) []string {
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	result := make([]string, 0, total)
	for _, g := range groups {
		result = append(result, g...)
	}
	return result
}
