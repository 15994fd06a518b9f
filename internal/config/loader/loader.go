// Package loader reads strref configuration layers.
//
// Files are parsed as TOML or YAML depending on their extension, and
// environment variables with a common prefix form a further layer. Every
// loader returns a plain map so layers can be merged with DeepMerge before
// being decoded into typed settings.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader produces one configuration layer. A source that does not exist
// yields nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// Format decodes the raw contents of a config file.
type Format interface {
	Name() string
	Parse(source string, data []byte) (map[string]any, error)
}

// FileSystem is the subset of file access the file loader needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// DefaultFS reads from the real file system.
func DefaultFS() FileSystem { return osFS{} }

// File loads a single config file in a fixed format.
type File struct {
	fs     FileSystem
	path   string
	format Format
}

// NewFile returns a loader for path. A nil fsys means DefaultFS.
func NewFile(fsys FileSystem, path string, format Format) *File {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &File{fs: fsys, path: path, format: format}
}

// Format reports the format the file is parsed as.
func (f *File) Format() Format { return f.format }

// Load reads and parses the file. A missing file yields nil, nil.
func (f *File) Load() (map[string]any, error) {
	data, err := f.fs.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", f.path, err)
	}
	return f.format.Parse(f.path, data)
}

// Parse decodes a config document read from r.
func Parse(format Format, r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return format.Parse("<reader>", data)
}

// ForPath picks the format from path's extension.
func ForPath(fsys FileSystem, path string) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewFile(fsys, path, TOML), nil
	case ".yaml", ".yml":
		return NewFile(fsys, path, YAML), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// ParseError locates a syntax error in a config document. Line and Column
// are 1-based and zero when the decoder does not report them.
type ParseError struct {
	Path   string
	Format string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: invalid %s", e.Path, e.Format)
	switch {
	case e.Column > 0:
		fmt.Fprintf(&b, " at %d:%d", e.Line, e.Column)
	case e.Line > 0:
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// DeepMerge merges src into dst and returns dst. Nested maps merge key by
// key; any other src value replaces the dst value.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, v := range src {
		sub, ok := v.(map[string]any)
		if cur, isMap := dst[key].(map[string]any); ok && isMap {
			dst[key] = DeepMerge(cur, sub)
			continue
		}
		dst[key] = v
	}
	return dst
}

var (
	_ Loader = (*File)(nil)
	_ Loader = (*EnvLoader)(nil)
)
