// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/disguise/internal/config"
	"github.com/holomush/disguise/pkg/errutil"
)

func TestGenerateSchema(t *testing.T) {
	data, err := config.GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, config.SchemaID, schema["$id"])
	assert.Equal(t, []any{"version"}, schema["required"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"version", "locale", "permissions", "custom_disguises", "clones"} {
		assert.Contains(t, props, key)
	}
}

func TestValidateSchema(t *testing.T) {
	require.NoError(t, config.ValidateSchema([]byte(sample)))

	tests := []struct {
		name string
		yaml string
		code string
	}{
		{"empty", "  \n", "EMPTY_CONFIG"},
		{"broken yaml", "version: [1.0.0", "PARSE_FAILED"},
		{"missing version", "locale: en-US\n", "SCHEMA_VIOLATION"},
		{"unknown key", "version: 1.0.0\ncolour: red\n", "SCHEMA_VIOLATION"},
		{"wrong type", "version: 1.0.0\nclones:\n  max_entries: many\n", "SCHEMA_VIOLATION"},
		{"negative capacity", "version: 1.0.0\nclones:\n  max_entries: -2\n", "SCHEMA_VIOLATION"},
		{"bad enum", "version: 1.0.0\nlog_format: xml\n", "SCHEMA_VIOLATION"},
		{"roles not lists", "version: 1.0.0\npermissions:\n  roles:\n    admin: disguise.*.*\n", "SCHEMA_VIOLATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errutil.AssertErrorCode(t, config.ValidateSchema([]byte(tt.yaml)), tt.code)
		})
	}
}
