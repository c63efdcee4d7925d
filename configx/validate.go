// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/knadh/koanf"
	"github.com/pkg/errors"

	"github.com/ory/jsonschema/v3"
)

// printHumanReadableValidationErrors prints the configuration document along
// with the leaf causes of a validation error, so an operator can see at a
// glance which keys to fix.
func (p *Provider) printHumanReadableValidationErrors(k *koanf.Koanf, w io.Writer, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(w, "")
	conf, innerErr := json.MarshalIndent(k.Raw(), "", "  ")
	if innerErr == nil {
		fmt.Fprintf(w, "Unable to validate configuration:\n\n%s\n\n", conf)
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		fmt.Fprintf(w, "%s\n", err)
		return
	}

	for _, cause := range leafCauses(validationErr) {
		key := strings.ReplaceAll(strings.Trim(cause.InstancePtr, "#/"), "/", Delimiter)
		if key == "" {
			key = "(root)"
		}
		fmt.Fprintf(w, "- %s: %s\n", key, cause.Message)
	}
}

func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}

	var out []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		out = append(out, leafCauses(cause)...)
	}

	return out
}
