package jsonx

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Flatten flattens a JSON object into a map of dot-notation paths to scalar
// values. Arrays are indexed by position. Returns nil if the input is not a
// JSON object.
func Flatten(raw json.RawMessage) map[string]interface{} {
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsObject() {
		return nil
	}

	flattened := make(map[string]interface{})
	flatten(parsed, nil, flattened)
	return flattened
}

func flatten(parsed gjson.Result, parents []string, flattened map[string]interface{}) {
	switch {
	case parsed.IsObject():
		parsed.ForEach(func(k, v gjson.Result) bool {
			flatten(v, append(parents, k.String()), flattened)
			return true
		})
	case parsed.IsArray():
		for i, v := range parsed.Array() {
			flatten(v, append(parents, strconv.Itoa(i)), flattened)
		}
	default:
		flattened[strings.Join(parents, ".")] = parsed.Value()
	}
}
