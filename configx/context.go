// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import "context"

type contextKey int

const configOptionsContextKey contextKey = iota + 1

// ContextWithConfigOptions returns a context that carries configuration
// options which WithContext replays onto the provider.
func ContextWithConfigOptions(ctx context.Context, opts ...OptionModifier) context.Context {
	return context.WithValue(ctx, configOptionsContextKey, opts)
}

func ConfigOptionsFromContext(ctx context.Context) []OptionModifier {
	opts, ok := ctx.Value(configOptionsContextKey).([]OptionModifier)
	if !ok {
		return []OptionModifier{}
	}

	return opts
}
