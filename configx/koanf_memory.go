// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// KoanfMemory is a koanf provider serving an in-memory JSON document. It is
// handy for tests and for programmatic configuration via WithUserProviders.
type KoanfMemory struct {
	doc json.RawMessage
}

// koanfProvider is the subset of koanf.Provider our providers implement.
type koanfProvider interface {
	ReadBytes() ([]byte, error)
	Read() (map[string]interface{}, error)
}

var _ koanfProvider = (*KoanfMemory)(nil)

func NewKoanfMemory(_ context.Context, doc json.RawMessage) *KoanfMemory {
	return &KoanfMemory{doc: doc}
}

func (f *KoanfMemory) ReadBytes() ([]byte, error) {
	return nil, errors.New("the memory provider does not support this method")
}

func (f *KoanfMemory) Read() (map[string]interface{}, error) {
	v := map[string]interface{}{}
	if err := json.Unmarshal(f.doc, &v); err != nil {
		return nil, errors.WithStack(err)
	}

	return v, nil
}
