// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf"
	"github.com/stretchr/testify/require"

	"github.com/stashkit/x/assertx"
)

func TestKoanfSchemaDefaults(t *testing.T) {
	rawSchema, err := os.ReadFile(filepath.Join("stub", "config.schema.json"))
	require.NoError(t, err)

	id, compiler, err := newCompiler(rawSchema)
	require.NoError(t, err)

	schema, err := compiler.Compile(context.Background(), id)
	require.NoError(t, err)

	def, err := NewKoanfSchemaDefaults(rawSchema, schema)
	require.NoError(t, err)

	k := koanf.New(Delimiter)
	require.NoError(t, k.Load(def, nil))

	assertx.EqualAsJSON(t, json.RawMessage(`{
  "profile": "development",
  "inventory": {
    "location": "main-stacks",
    "sync": {
      "enabled": true,
      "interval_ms": 30000
    }
  },
  "bulk": {
    "concurrency": 5,
    "delay_ms": 100,
    "stop_on_error": false
  }
}`), k.Raw())
}

func TestKoanfSchemaDefaultsRequiresSchema(t *testing.T) {
	_, err := NewKoanfSchemaDefaults([]byte(`{}`), nil)
	require.Error(t, err)
}
