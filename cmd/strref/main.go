// Package main is the entry point for the strref command.
//
// strref inspects and combines text views from the command line. It is a
// thin shell over internal/engine/strref that makes ownership, substring
// status and buffer pool behavior visible.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/dshills/strref/internal/config"
	"github.com/dshills/strref/internal/engine/strbuf"
	"github.com/dshills/strref/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// CLI is the command line grammar.
type CLI struct {
	Config   string           `help:"Path to a TOML or YAML config file." short:"c" type:"path"`
	LogLevel string           `help:"Override the configured log level (debug, info, warn, error)." name:"log-level"`
	Checked  bool             `help:"Poison released buffers and panic on misuse."`
	Version  kong.VersionFlag `help:"Print version information and exit."`

	Inspect InspectCmd `cmd:"" help:"Describe a text view and print its bytes."`
	Concat  ConcatCmd  `cmd:"" help:"Concatenate texts into a new owned string."`
}

// runEnv carries the shared services handed to every command.
type runEnv struct {
	log   *slog.Logger
	pool  *strbuf.Pool
	stdin io.Reader
	out   io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("strref"),
		kong.Description("Inspect borrowed and owned text views."),
		kong.Vars{"version": fmt.Sprintf("%s (%s)", version, commit)},
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
		kong.Exit(func(code int) { panic(exitRequest(code)) }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	kctx, err := parseArgs(parser, args)
	var req exitRequest
	if errors.As(err, &req) {
		return int(req)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(&cli)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if !isTerminal(stderr) {
		cfg.Log.NoColor = true
	}
	logger, err := logging.New(stderr, cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	pool := newPool(cfg.Buffers, logger)
	prev := strbuf.Default()
	strbuf.SetDefault(pool)
	defer strbuf.SetDefault(prev)

	env := &runEnv{log: logger, pool: pool, stdin: stdin, out: stdout}
	if err := kctx.Run(env); err != nil {
		logger.Error("command failed", "command", kctx.Command(), "error", err)
		return 1
	}

	return reportPool(logger, pool)
}

// exitRequest carries the status of an exit kong asks for after printing
// help or the version, so run can return it instead of leaving the process.
type exitRequest int

func (e exitRequest) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func parseArgs(parser *kong.Kong, args []string) (kctx *kong.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			req, ok := r.(exitRequest)
			if !ok {
				panic(r)
			}
			kctx, err = nil, req
		}
	}()
	return parser.Parse(args)
}

// loadConfig reads the configured layers and applies command line overrides.
func loadConfig(cli *CLI) (*config.Config, error) {
	cfg, err := config.Load(config.Options{Path: cli.Config})
	if err != nil {
		return nil, err
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.Checked {
		cfg.Buffers.Checked = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isTerminal reports whether w is a terminal that can render colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newPool(cfg config.BufferConfig, logger *slog.Logger) *strbuf.Pool {
	return strbuf.NewPool(
		strbuf.WithMaxRetained(cfg.MaxRetained),
		strbuf.WithChecked(cfg.Checked),
		strbuf.WithLogger(logger.With("component", "strbuf")),
	)
}

// reportPool logs the pool counters and fails the run if a buffer leaked.
func reportPool(logger *slog.Logger, pool *strbuf.Pool) int {
	stats := pool.Stats()
	logger.Debug("buffer pool",
		"allocated", stats.Allocated,
		"released", stats.Released,
		"recycled", stats.Recycled,
		"live", stats.Live,
	)
	if stats.Live != 0 {
		logger.Warn("buffers still referenced at exit", "live", stats.Live)
		return 3
	}
	return 0
}
