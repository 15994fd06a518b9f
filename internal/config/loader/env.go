package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader turns prefixed environment variables into a config layer.
//
// STRREF_LOG_LEVEL maps to log.level and STRREF_BUFFERS_MAX_RETAINED to
// buffers.max_retained. The first word after the prefix names the section;
// the remaining words, joined by underscores, name the setting. A variable
// with no second word becomes a top-level key.
type EnvLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvLoader reads variables starting with prefix, which should include
// the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, environ: os.Environ}
}

// Load collects every matching variable. Empty values are kept as empty
// strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	layer := make(map[string]any)
	for _, kv := range l.environ() {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		section, setting, ok := l.split(name)
		if !ok {
			continue
		}
		value := parseValue(raw)
		if setting == "" {
			layer[section] = value
			continue
		}
		sub, isMap := layer[section].(map[string]any)
		if !isMap {
			sub = make(map[string]any)
			layer[section] = sub
		}
		sub[setting] = value
	}
	return layer, nil
}

// split maps STRREF_BUFFERS_MAX_RETAINED to ("buffers", "max_retained").
func (l *EnvLoader) split(name string) (section, setting string, ok bool) {
	rest, found := strings.CutPrefix(name, l.prefix)
	if !found || rest == "" {
		return "", "", false
	}
	section, setting, _ = strings.Cut(strings.ToLower(rest), "_")
	return section, setting, true
}

// parseValue recognizes booleans spelled true/yes/on or false/no/off and
// base-10 integers. Everything else stays a string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}
