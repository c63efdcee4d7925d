// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"bytes"
	"fmt"

	"github.com/stashkit/x/bulkx"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/ory/jsonschema/v3"
)

func newCompiler(schema []byte) (string, *jsonschema.Compiler, error) {
	id := gjson.GetBytes(schema, "$id").String()
	if id == "" {
		id = fmt.Sprintf("%s.json", uuid.Must(uuid.NewRandom()).String())
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(id, bytes.NewBuffer(schema)); err != nil {
		return "", nil, errors.WithStack(err)
	}

	// DO NOT REMOVE THIS
	compiler.ExtractAnnotations = true

	if err := bulkx.AddConfigSchema(compiler); err != nil {
		return "", nil, err
	}

	return id, compiler, nil
}

// schemaPath is one addressable property of a compiled schema: its dotted
// path, its extracted default and its JSON types.
type schemaPath struct {
	Name    string
	Default interface{}
	Types   []string
}

// schemaPaths flattens the property tree of a compiled schema, following
// refs and allOf compositions. Paths inside oneOf/anyOf branches are skipped:
// which branch applies depends on the document.
func schemaPaths(schema *jsonschema.Schema) []schemaPath {
	var out []schemaPath
	collectSchemaPaths("", schema, map[*jsonschema.Schema]bool{}, &out)
	return out
}

func collectSchemaPaths(prefix string, s *jsonschema.Schema, visiting map[*jsonschema.Schema]bool, out *[]schemaPath) {
	if s == nil || visiting[s] {
		return
	}
	// Guards cycles along the current descent only: a schema referenced from
	// two sibling paths is walked for each of them.
	visiting[s] = true
	defer delete(visiting, s)

	if s.Ref != nil {
		collectSchemaPaths(prefix, s.Ref, visiting, out)
	}
	for _, sub := range s.AllOf {
		collectSchemaPaths(prefix, sub, visiting, out)
	}

	if prefix != "" {
		*out = append(*out, schemaPath{
			Name:    prefix,
			Default: s.Default,
			Types:   s.Types,
		})
	}

	for name, prop := range s.Properties {
		path := name
		if prefix != "" {
			path = prefix + Delimiter + name
		}
		collectSchemaPaths(path, prop, visiting, out)
	}
}
