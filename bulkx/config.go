package bulkx

import (
	"bytes"
	_ "embed"
	"io"
	"time"
)

type Config struct {
	Concurrency int  `json:"concurrency" koanf:"concurrency"`
	DelayMs     int  `json:"delay_ms" koanf:"delay_ms"`
	StopOnError bool `json:"stop_on_error" koanf:"stop_on_error"`
}

// Options converts the configuration into executor options.
func (c *Config) Options() []Option {
	return []Option{
		WithConcurrency(c.Concurrency),
		WithDelay(time.Duration(c.DelayMs) * time.Millisecond),
		WithStopOnError(c.StopOnError),
	}
}

//go:embed config.schema.json
var ConfigSchema string

const ConfigSchemaID = "stashkit://bulk-config"

// AddConfigSchema adds the bulk schema to the compiler.
// The interface is specified instead of `jsonschema.Compiler` to allow the use of any jsonschema library fork or version.
func AddConfigSchema(c interface {
	AddResource(url string, r io.Reader) error
},
) error {
	return c.AddResource(ConfigSchemaID, bytes.NewBufferString(ConfigSchema))
}
