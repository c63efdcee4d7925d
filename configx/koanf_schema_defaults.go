// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"github.com/knadh/koanf/maps"
	"github.com/pkg/errors"

	"github.com/ory/jsonschema/v3"

	"github.com/stashkit/x/errorx"
)

// KoanfSchemaDefaults is a koanf provider that reads the default annotations
// out of a compiled JSON schema. It is the bottom layer of the configuration:
// every other source overrides it.
type KoanfSchemaDefaults struct {
	paths []schemaPath
}

var _ koanfProvider = (*KoanfSchemaDefaults)(nil)

func NewKoanfSchemaDefaults(rawSchema []byte, schema *jsonschema.Schema) (*KoanfSchemaDefaults, error) {
	if schema == nil {
		return nil, errorx.InvalidArgumentErrorf("a compiled schema is required to derive configuration defaults")
	}

	return &KoanfSchemaDefaults{paths: schemaPaths(schema)}, nil
}

func (k *KoanfSchemaDefaults) ReadBytes() ([]byte, error) {
	return nil, errors.New("the schema defaults provider does not support this method")
}

func (k *KoanfSchemaDefaults) Read() (map[string]interface{}, error) {
	flat := map[string]interface{}{}
	for _, p := range k.paths {
		if p.Default != nil {
			flat[p.Name] = p.Default
		}
	}

	return maps.Unflatten(flat, Delimiter), nil
}
