package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML parses documents with yaml.v3.
var YAML Format = yamlFormat{}

type yamlFormat struct{}

func (yamlFormat) Name() string { return "yaml" }

func (yamlFormat) Parse(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	err := yaml.Unmarshal(data, &m)
	if err == nil {
		return m, nil
	}
	return nil, &ParseError{Path: source, Format: "yaml", Line: yamlLine(err.Error()), Err: err}
}

// yamlLine extracts the line from a yaml.v3 syntax error message, which is
// the only place the decoder reports it. Other messages yield 0.
func yamlLine(msg string) int {
	var line int
	if n, err := fmt.Sscanf(msg, "yaml: line %d:", &line); err != nil || n != 1 || line < 1 {
		return 0
	}
	return line
}
