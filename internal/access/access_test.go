// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/holomush/disguise/internal/access"
)

func TestHasLiteral(t *testing.T) {
	tests := []struct {
		name   string
		policy map[string]bool
		value  string
		want   bool
	}{
		{name: "empty allows everything", policy: map[string]bool{}, value: "B", want: true},
		{name: "nil allows everything", policy: nil, value: "B", want: true},
		{name: "whitelist denies unlisted", policy: map[string]bool{"a": true}, value: "B", want: false},
		{name: "whitelist allows listed", policy: map[string]bool{"a": true}, value: "A", want: true},
		{name: "blacklist allows unlisted", policy: map[string]bool{"a": false}, value: "B", want: true},
		{name: "blacklist denies listed", policy: map[string]bool{"a": false}, value: "a", want: false},
		{name: "mixed is whitelist", policy: map[string]bool{"a": false, "c": true}, value: "b", want: false},
		{name: "explicit deny in mixed", policy: map[string]bool{"a": false, "c": true}, value: "a", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.HasLiteral(tt.policy, tt.value))
		})
	}
}
