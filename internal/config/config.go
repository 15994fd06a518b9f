package config

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/strref/internal/config/loader"
	"github.com/dshills/strref/internal/engine/strbuf"
)

// DefaultEnvPrefix is the prefix of environment variables read by Load.
const DefaultEnvPrefix = "STRREF_"

// Config holds every strref setting.
type Config struct {
	Log     LogConfig    `toml:"log" yaml:"log"`
	Buffers BufferConfig `toml:"buffers" yaml:"buffers"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// Format is text (human readable) or json.
	Format string `toml:"format" yaml:"format"`
	// NoColor disables ANSI colors in text output.
	NoColor bool `toml:"no_color" yaml:"no_color"`
}

// BufferConfig controls the shared buffer pool.
type BufferConfig struct {
	// Checked poisons released storage and turns misuse into panics.
	Checked bool `toml:"checked" yaml:"checked"`
	// MaxRetained is the largest storage capacity kept for reuse; 0 disables reuse.
	MaxRetained int `toml:"max_retained" yaml:"max_retained"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Buffers: BufferConfig{
			MaxRetained: strbuf.DefaultMaxRetained,
		},
	}
}

// Options controls where Load reads settings from.
type Options struct {
	// Path is an optional config file. A missing file is an error only when
	// Path is set explicitly.
	Path string
	// FS overrides the file system used to read Path.
	FS loader.FileSystem
	// EnvPrefix overrides DefaultEnvPrefix. Set SkipEnv to ignore the environment.
	EnvPrefix string
	SkipEnv   bool
}

// Load merges defaults, the config file and the environment into a Config.
func Load(opts Options) (*Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	if opts.Path != "" {
		l, err := loader.ForPath(opts.FS, opts.Path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		if file == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoFile, opts.Path)
		}
		merged = loader.DeepMerge(merged, file)
	}

	if !opts.SkipEnv {
		prefix := opts.EnvPrefix
		if prefix == "" {
			prefix = DefaultEnvPrefix
		}
		env, err := loader.NewEnvLoader(prefix).Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg, err := decode(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toMap converts c into the generic layer representation.
func toMap(c Config) (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}
	return m, nil
}

// decode strictly converts merged layers into a Config.
func decode(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		var missing *toml.StrictMissingError
		if errors.As(err, &missing) {
			keys := make([]string, 0, len(missing.Errors))
			for _, e := range missing.Errors {
				keys = append(keys, strings.Join(e.Key(), "."))
			}
			return nil, &SettingError{
				Key:    strings.Join(keys, ", "),
				Reason: "unknown setting",
				Kind:   KindUnknownKey,
			}
		}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			return nil, &SettingError{
				Key:    strings.Join(de.Key(), "."),
				Reason: de.Error(),
				Kind:   KindWrongType,
			}
		}
		return nil, &SettingError{Reason: err.Error(), Kind: KindWrongType}
	}
	return &cfg, nil
}

// Validate checks that every setting holds an allowed value.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.Log.Level) {
		return &SettingError{
			Key:    "log.level",
			Reason: "must be one of " + strings.Join(logLevels, ", "),
			Value:  c.Log.Level,
			Kind:   KindNotAllowed,
		}
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return &SettingError{
			Key:    "log.format",
			Reason: "must be one of " + strings.Join(logFormats, ", "),
			Value:  c.Log.Format,
			Kind:   KindNotAllowed,
		}
	}
	if c.Buffers.MaxRetained < 0 {
		return &SettingError{
			Key:    "buffers.max_retained",
			Reason: "must not be negative",
			Value:  c.Buffers.MaxRetained,
			Kind:   KindOutOfRange,
		}
	}
	return nil
}
