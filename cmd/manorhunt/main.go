// Manorhunt is a turn-based pursuit game: players roam a manor and try to
// catch its owner alone.
// Usage: manorhunt [flags] <manor file>
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/nathoo/manorhunt/cli"
	"github.com/nathoo/manorhunt/engine"
	"github.com/nathoo/manorhunt/loader"
	"github.com/nathoo/manorhunt/render"
	"github.com/nathoo/manorhunt/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `Usage: manorhunt [flags] <manor file (.txt or .lua)>

Flags:
  --version            Print the version and exit
  --plain              Use the line-based interface instead of the TUI
  --script <file>      Play commands from a file (implies --plain)
  --trace              Show turn and event traces
  --player <spec>      Add a player: name[:room[:capacity[:computer]]] (repeatable)
  --max-turns <n>      Turns before the target escapes (default 50)
  --seed <n>           Seed for computer players (default: current time)
  --static-pet         Keep the pet where it is moved instead of wandering
  --map <file>         Write the starting map as PNG and exit
  --cell <n>           Pixel size of a map cell (default 20)
  --log <file>         Write a JSON game log to file
`

type options struct {
	plain     bool
	trace     bool
	staticPet bool
	script    string
	mapFile   string
	logFile   string
	manor     string
	maxTurns  int
	cell      int
	seed      int64
	players   []string
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, usage)
		os.Exit(1)
	}
	if opts == nil {
		return // --version
	}

	logger, err := newLogger(opts.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	def, err := loader.Load(opts.manor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading manor: %v\n", err)
		os.Exit(1)
	}
	for _, w := range loader.Warnings(def) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	cfg := engine.DefaultConfig()
	cfg.MaxTurns = opts.maxTurns
	cfg.Seed = opts.seed
	cfg.PetWanders = !opts.staticPet
	cfg.Logger = logger

	eng, err := engine.New(def, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, p := range opts.players {
		spec, err := cli.ParsePlayerSpec(p)
		if err == nil {
			_, err = cli.AddPlayer(eng, spec)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding player: %v\n", err)
			os.Exit(1)
		}
	}

	if opts.mapFile != "" {
		if err := render.SavePNG(opts.mapFile, eng.Snapshot(), opts.cell); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s.\n", opts.mapFile)
		return
	}

	// Script mode: open file, force plain, echo commands.
	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = opts.trace
		c.MapCell = opts.cell
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if opts.plain || !isTerminal() {
		c := cli.New(eng)
		c.Trace = opts.trace
		c.MapCell = opts.cell
		c.Color = isTerminal()
		c.Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs reads the command line. It returns nil options after printing
// the version.
func parseArgs(args []string) (*options, error) {
	opts := &options{
		maxTurns: engine.DefaultConfig().MaxTurns,
		cell:     render.DefaultCell,
		seed:     time.Now().UnixNano(),
	}

	value := func(i *int, flag string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		*i++
		return args[*i], nil
	}
	number := func(i *int, flag string) (int64, error) {
		v, err := value(i, flag)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", flag, v)
		}
		return n, nil
	}

	for i := 0; i < len(args); i++ {
		var err error
		var n int64
		switch args[i] {
		case "--version":
			fmt.Printf("manorhunt %s (commit %s, built %s)\n", version, commit, date)
			return nil, nil
		case "--plain":
			opts.plain = true
		case "--trace":
			opts.trace = true
		case "--static-pet":
			opts.staticPet = true
		case "--script":
			opts.script, err = value(&i, "--script")
		case "--map":
			opts.mapFile, err = value(&i, "--map")
		case "--log":
			opts.logFile, err = value(&i, "--log")
		case "--player":
			var p string
			if p, err = value(&i, "--player"); err == nil {
				opts.players = append(opts.players, p)
			}
		case "--max-turns":
			n, err = number(&i, "--max-turns")
			opts.maxTurns = int(n)
		case "--cell":
			n, err = number(&i, "--cell")
			opts.cell = int(n)
		case "--seed":
			opts.seed, err = number(&i, "--seed")
		default:
			if opts.manor != "" {
				return nil, fmt.Errorf("unexpected argument %q", args[i])
			}
			opts.manor = args[i]
		}
		if err != nil {
			return nil, err
		}
	}

	if opts.manor == "" {
		return nil, fmt.Errorf("missing manor file")
	}
	return opts, nil
}

// newLogger returns a JSON file logger, or a no-op logger when path is empty.
// The game owns the terminal, so nothing is logged to stdout or stderr.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	return cfg.Build()
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
