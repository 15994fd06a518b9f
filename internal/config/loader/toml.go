package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOML parses documents with go-toml.
var TOML Format = tomlFormat{}

type tomlFormat struct{}

func (tomlFormat) Name() string { return "toml" }

func (tomlFormat) Parse(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	err := toml.Unmarshal(data, &m)
	if err == nil {
		return m, nil
	}
	pe := &ParseError{Path: source, Format: "toml", Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
	}
	return nil, pe
}
