// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema_ProducesValidJSON(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hook Plugin Manifest")
	assert.Contains(t, string(data), SchemaID)
}

func TestValidateSchema_AcceptsValidManifest(t *testing.T) {
	ResetSchemaCache()
	defer ResetSchemaCache()

	data := []byte(`
name: greeter
version: 1.0.0
type: lua
hooks: [onGreet]
lua-plugin:
  entry: entry.lua
`)
	assert.NoError(t, ValidateSchema(data))
}

func TestValidateSchema_RejectsUnknownType(t *testing.T) {
	ResetSchemaCache()
	defer ResetSchemaCache()

	data := []byte(`
name: greeter
version: 1.0.0
type: rust
hooks: [onGreet]
`)
	err := ValidateSchema(data)
	assert.Error(t, err)
}

func TestValidateSchema_EmptyData(t *testing.T) {
	assert.Error(t, ValidateSchema(nil))
}

func TestValidateSchema_CachesCompiledSchema(t *testing.T) {
	ResetSchemaCache()
	defer ResetSchemaCache()

	data := []byte(`
name: greeter
version: 1.0.0
type: lua
hooks: [onGreet]
lua-plugin:
  entry: entry.lua
`)
	require.NoError(t, ValidateSchema(data))
	require.NotNil(t, schemaCache)
	require.NoError(t, ValidateSchema(data))
}

func TestFormatSchemaError_TrimsPrefix(t *testing.T) {
	assert.Equal(t, "", FormatSchemaError(nil))

	err := assertErr("schema validation failed: name is required")
	assert.Equal(t, "name is required", FormatSchemaError(err))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
