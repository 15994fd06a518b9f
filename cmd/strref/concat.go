package main

import (
	"fmt"

	"github.com/dshills/strref/internal/engine/strref"
)

// ConcatCmd joins its arguments through the appender.
type ConcatCmd struct {
	Parts []string `arg:"" help:"Texts to join in order; - reads standard input."`
	Count bool     `help:"Print the size and character count instead of the text."`
}

func (c *ConcatCmd) Run(env *runEnv) error {
	var acc strref.View
	defer acc.Release()

	for _, part := range c.Parts {
		data, err := readText(part, env.stdin)
		if err != nil {
			return err
		}
		joined := strref.Concat(acc, strref.FromRange(data, len(data)))
		next := strref.Adopt(&joined)
		acc.Assign(next)
		next.Release()
	}
	env.log.Debug("concatenated", "parts", len(c.Parts), "result", acc)

	if c.Count {
		_, err := fmt.Fprintf(env.out, "%d bytes, %d characters\n", acc.Size(), acc.NumberOfCharacters())
		return err
	}
	if _, err := acc.WriteTo(env.out); err != nil {
		return err
	}
	_, err := fmt.Fprintln(env.out)
	return err
}
