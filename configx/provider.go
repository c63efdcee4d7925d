// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package configx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/ory/jsonschema/v3"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/attribute"

	"github.com/stashkit/x/errorx"
	"github.com/stashkit/x/loggerx"
	"github.com/stashkit/x/watcherx"
)

const (
	// Delimiter separates the segments of nested configuration keys.
	Delimiter = "."

	// EnvPrefix is the prefix of the environment variables the provider
	// reads. STASHKIT_BULK_DELAY_MS addresses the bulk.delay_ms key.
	EnvPrefix = "STASHKIT_"
)

type tuple struct {
	Key   string
	Value interface{}
}

// Provider loads, validates and serves the process configuration. Sources
// merge in a fixed order, each overriding the one before it: schema defaults,
// base values, config files, user providers, environment variables, command
// line flags and finally forced values. The merged document is validated
// against the JSON schema handed to New.
type Provider struct {
	lock sync.RWMutex
	*koanf.Koanf

	schema    []byte
	schemaID  string
	validator *jsonschema.Schema
	envPaths  map[string]schemaPath

	files               []string
	immutables          []string
	flags               *pflag.FlagSet
	logger              *loggerx.Logger
	skipValidation      bool
	disableFileWatching bool
	disableEnvLoading   bool
	forcedValues        []tuple
	baseValues          []tuple
	userProviders       []koanf.Provider
	onChanges           []func(event watcherx.Event, err error)
	onValidationError   func(k *koanf.Koanf, err error)
}

// ImmutableError is returned when a change would alter a key registered with
// WithImmutables.
type ImmutableError struct {
	Key  string
	From interface{}
	To   interface{}
}

func NewImmutableError(key string, from, to interface{}) *ImmutableError {
	return &ImmutableError{Key: key, From: from, To: to}
}

func (e *ImmutableError) Error() string {
	return fmt.Sprintf("immutable configuration key %q can not change from %v to %v", e.Key, e.From, e.To)
}

// New compiles the given JSON schema, loads the configuration from all
// configured sources and, unless file watching is disabled, keeps reloading
// it whenever one of the config files changes. Watching stops when ctx is
// canceled.
func New(ctx context.Context, schema []byte, modifiers ...OptionModifier) (*Provider, error) {
	schemaID, compiler, err := newCompiler(schema)
	if err != nil {
		return nil, err
	}

	validator, err := compiler.Compile(ctx, schemaID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	paths := schemaPaths(validator)
	envPaths := make(map[string]schemaPath, len(paths))
	for _, sp := range paths {
		key := normalizeEnvKey(sp.Name)
		if _, ok := envPaths[key]; !ok {
			envPaths[key] = sp
		}
	}

	p := &Provider{
		schema:    schema,
		schemaID:  schemaID,
		validator: validator,
		envPaths:  envPaths,
		logger:    &loggerx.Logger{Logger: slog.New(slog.DiscardHandler)},
	}

	modifiers = append([]OptionModifier{WithStderrValidationReporter()}, modifiers...)
	for _, m := range modifiers {
		m(p)
	}

	k, err := p.newKoanf(ctx)
	if err != nil {
		return nil, err
	}
	p.replaceKoanf(k)

	if !p.disableFileWatching && len(p.files) > 0 {
		if err := p.watchForFileChanges(ctx); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Provider) replaceKoanf(k *koanf.Koanf) {
	p.Koanf = k
}

func (p *Provider) newKoanf(ctx context.Context) (*koanf.Koanf, error) {
	k := koanf.New(Delimiter)

	defaults, err := NewKoanfSchemaDefaults(p.schema, p.validator)
	if err != nil {
		return nil, err
	}

	if err := k.Load(defaults, nil); err != nil {
		return nil, errors.WithStack(err)
	}

	for _, t := range p.baseValues {
		if err := k.Load(confmap.Provider(map[string]interface{}{t.Key: t.Value}, Delimiter), nil); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	for _, path := range p.files {
		if err := p.loadFile(k, path); err != nil {
			return nil, err
		}
	}

	for _, provider := range p.userProviders {
		if err := k.Load(provider, nil, koanf.WithMergeFunc(MergeAllTypes)); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if !p.disableEnvLoading {
		if err := k.Load(env.ProviderWithValue(EnvPrefix, Delimiter, p.parseEnv), nil); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if p.flags != nil {
		if err := k.Load(posflag.Provider(p.flags, Delimiter, k), nil); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	for _, t := range p.forcedValues {
		if err := k.Load(confmap.Provider(map[string]interface{}{t.Key: t.Value}, Delimiter), nil); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if err := p.validate(k); err != nil {
		return nil, err
	}

	return k, nil
}

func (p *Provider) loadFile(k *koanf.Koanf, path string) error {
	fp := file.Provider(path)
	switch e := filepath.Ext(path); e {
	case ".json":
		return errors.WithStack(k.Load(fp, kjson.Parser(), koanf.WithMergeFunc(MergeAllTypes)))
	case ".yaml", ".yml":
		return errors.WithStack(k.Load(fp, yaml.Parser(), koanf.WithMergeFunc(MergeAllTypes)))
	case ".toml":
		return errors.WithStack(k.Load(fp, toml.Parser(), koanf.WithMergeFunc(MergeAllTypes)))
	default:
		return errorx.InvalidArgumentErrorf("unsupported config file extension %q, expected .json, .yaml, .yml or .toml", e)
	}
}

// parseEnv maps an environment variable onto its schema path and coerces the
// raw value to the path's JSON type. Variables matching no schema path are
// ignored.
func (p *Provider) parseEnv(key, value string) (string, interface{}) {
	sp, ok := p.envPaths[normalizeEnvKey(strings.TrimPrefix(key, EnvPrefix))]
	if !ok {
		return "", nil
	}

	return sp.Name, coerceValue(sp.Types, value)
}

func normalizeEnvKey(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, Delimiter, "")
}

func coerceValue(types []string, value string) interface{} {
	for _, t := range types {
		switch t {
		case "integer":
			if v, err := cast.ToInt64E(value); err == nil {
				return v
			}
		case "number":
			if v, err := cast.ToFloat64E(value); err == nil {
				return v
			}
		case "boolean":
			if v, err := cast.ToBoolE(value); err == nil {
				return v
			}
		}
	}

	return value
}

func (p *Provider) validate(k *koanf.Koanf) error {
	if p.skipValidation {
		return nil
	}

	out, err := json.Marshal(k.Raw())
	if err != nil {
		return errors.WithStack(err)
	}

	if err := p.validator.Validate(bytes.NewBuffer(out)); err != nil {
		if p.onValidationError != nil {
			p.onValidationError(k, err)
		}
		return err
	}

	return nil
}

func (p *Provider) watchForFileChanges(ctx context.Context) error {
	for _, path := range p.files {
		c := make(watcherx.EventChannel)
		if err := watcherx.WatchFile(ctx, path, c); err != nil {
			return err
		}

		go func() {
			for e := range c {
				p.reload(ctx, e)
			}
		}()
	}

	return nil
}

// reload rebuilds the configuration after a file event. When the rebuilt
// configuration fails validation or changes an immutable key, the previous
// revision stays in place.
func (p *Provider) reload(ctx context.Context, e watcherx.Event) {
	var err error
	if ee, ok := e.(*watcherx.ErrorEvent); ok {
		err = ee
	} else {
		err = p.replaceFromSources(ctx)
	}

	if err != nil {
		p.logger.WithError(err).Warn(ctx, "keeping the last working configuration revision", attribute.String("file", e.Source()))
	}

	p.runOnChanges(e, err)
}

func (p *Provider) replaceFromSources(ctx context.Context) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	k, err := p.newKoanf(ctx)
	if err != nil {
		return err
	}

	for _, key := range p.immutables {
		from := p.Koanf.Get(key)
		to := k.Get(key)
		if !reflect.DeepEqual(from, to) {
			return NewImmutableError(key, from, to)
		}
	}

	p.replaceKoanf(k)
	return nil
}

func (p *Provider) runOnChanges(e watcherx.Event, err error) {
	for k := range p.onChanges {
		p.onChanges[k](e, err)
	}
}

// Set adds a runtime override for key and rebuilds the configuration. The
// override behaves like any other forced value on later reloads. Immutable
// keys can not be set.
func (p *Provider) Set(ctx context.Context, key string, value interface{}) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	for _, immutable := range p.immutables {
		if key == immutable || strings.HasPrefix(key, immutable+Delimiter) {
			return NewImmutableError(key, p.Koanf.Get(key), value)
		}
	}

	p.forcedValues = append(p.forcedValues, tuple{Key: key, Value: value})

	k, err := p.newKoanf(ctx)
	if err != nil {
		p.forcedValues = p.forcedValues[:len(p.forcedValues)-1]
		return err
	}

	p.replaceKoanf(k)
	return nil
}

func (p *Provider) Get(key string) interface{} {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.Koanf.Get(key)
}

func (p *Provider) Exists(key string) bool {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.Koanf.Exists(key)
}

func (p *Provider) String(key string) string {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.Koanf.String(key)
}

func (p *Provider) Strings(key string) []string {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.Koanf.Strings(key)
}

func (p *Provider) Int(key string) int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.Koanf.Int(key)
}

func (p *Provider) Bool(key string) bool {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.Koanf.Bool(key)
}

func (p *Provider) Duration(key string) time.Duration {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.Koanf.Duration(key)
}

func (p *Provider) All() map[string]interface{} {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.Koanf.All()
}

// Unmarshal decodes the subtree at path into o.
func (p *Provider) Unmarshal(path string, o interface{}) error {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return errors.WithStack(p.Koanf.Unmarshal(path, o))
}
