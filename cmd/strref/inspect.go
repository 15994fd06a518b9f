package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/strref/internal/engine/strref"
)

// InspectCmd describes a view over its input text.
type InspectCmd struct {
	Text   string `arg:"" help:"Text to inspect, or - to read standard input."`
	Start  int    `help:"Start offset of the slice to inspect." default:"0"`
	Length int    `help:"Length of the slice; negative means to the end." default:"-1"`
	Own    bool   `help:"Copy the input into an owned buffer before slicing."`
	JSON   bool   `help:"Print the report as JSON." short:"j"`
}

// viewReport is what inspect prints about a view.
type viewReport struct {
	Text         string `json:"text"`
	Size         int    `json:"size"`
	Characters   int    `json:"characters"`
	Source       string `json:"source"`
	Ownership    string `json:"ownership"`
	Substring    bool   `json:"substring"`
	Materialized string `json:"materialized"`
}

func (c *InspectCmd) Run(env *runEnv) error {
	data, err := readText(c.Text, env.stdin)
	if err != nil {
		return err
	}

	src := strref.FromRange(data, len(data))
	if c.Own {
		s := env.pool.FromBytes(src.Bytes())
		src = strref.Adopt(&s)
	}
	defer src.Release()

	length := c.Length
	if length < 0 {
		length = src.Size()
	}
	view := src.Substr(c.Start, length)
	defer view.Release()
	env.log.Debug("slice", "start", c.Start, "length", length, "view", view)

	report := viewReport{
		Text:       view.Text(),
		Size:       view.Size(),
		Characters: view.NumberOfCharacters(),
		Source:     src.Ownership().String(),
		Ownership:  view.Ownership().String(),
		Substring:  view.IsSubstring(),
	}

	wasOwned := view.IsOwned()
	view.Materialize()
	report.Materialized = "in place"
	if view.IsOwned() && !wasOwned {
		report.Materialized = "copied"
	}

	if c.JSON {
		enc := json.NewEncoder(env.out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return writeReport(env.out, &view, report)
}

func writeReport(w io.Writer, view *strref.View, r viewReport) error {
	if _, err := io.WriteString(w, "text:         "); err != nil {
		return err
	}
	if _, err := view.WriteTo(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nsize:         %d\ncharacters:   %d\nsource:       %s\nownership:    %s\nsubstring:    %t\nmaterialized: %s\n",
		r.Size, r.Characters, r.Source, r.Ownership, r.Substring, r.Materialized)
	return err
}

// readText returns arg itself, or all of r when arg is "-". The result is
// followed by a NUL byte in its spare capacity, like a C string.
func readText(arg string, r io.Reader) ([]byte, error) {
	if arg != "-" {
		return terminate([]byte(arg)), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading standard input: %w", err)
	}
	return terminate(data), nil
}

func terminate(p []byte) []byte {
	out := make([]byte, len(p), len(p)+1)
	copy(out, p)
	return out[: len(p) : len(p)+1]
}
