package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"hexpop/pkg/engine/terminal"
	"hexpop/pkg/game/config"
	"hexpop/pkg/game/devtools"
	"hexpop/pkg/game/gameplay"
	"hexpop/pkg/game/locale"
	"hexpop/pkg/game/renderer"
	"hexpop/pkg/game/renderer/ebiten"
	"hexpop/pkg/game/renderer/tui"
	"hexpop/pkg/game/state"
	"hexpop/pkg/game/telemetry"
)

// options are the command line flags
type options struct {
	configPath   string
	writeConfig  string
	seed         int64
	rendererName string
	telemetry    string
	logLevel     string
	logFile      string
	board        string
	outDir       string
	localePath   string
	printBoard   bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("hexpop", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "YAML file overriding the built-in configuration")
	fs.StringVar(&o.writeConfig, "write-config", "", "write the effective configuration to this path and exit")
	fs.Int64Var(&o.seed, "seed", 0, "random seed (0 picks one from the clock)")
	fs.StringVar(&o.rendererName, "renderer", "tui", "display backend: tui or ebiten")
	fs.StringVar(&o.telemetry, "telemetry", "", "write every popped bubble to this CSV file on exit")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&o.logFile, "log-file", "", "log to this file (the tui discards logs otherwise)")
	fs.StringVar(&o.board, "board", "", "start on a developer board ("+strings.Join(devtools.DevBoardNames(), ", ")+")")
	fs.StringVar(&o.outDir, "out", ".", "directory for grid dumps and screenshots")
	fs.StringVar(&o.localePath, "locale", "", ".po file replacing the built-in English text")
	fs.BoolVar(&o.printBoard, "print", false, "print the starting board as pattern rows and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// newLogger builds the process logger. The terminal renderer owns stdout, so
// without a log file its logs are dropped.
func newLogger(o options) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(o.logLevel)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f
	case o.rendererName == "tui" && !o.printBoard && o.writeConfig == "":
		w = io.Discard
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}

func newRenderer(name string, logger *slog.Logger) (renderer.Renderer, error) {
	switch name {
	case "tui":
		return tui.New(logger), nil
	case "ebiten":
		return ebiten.New(logger), nil
	default:
		return nil, fmt.Errorf("unknown renderer %q (want tui or ebiten)", name)
	}
}

// newSession builds the game and the player's session from the options
func newSession(o options, cfg *config.Config, logger *slog.Logger, rec *telemetry.Recorder) (*gameplay.Session, error) {
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting", "seed", seed, "width", cfg.Grid.Width, "renderer", o.rendererName)

	opts := state.Options{
		Rand:    rand.New(rand.NewSource(seed)),
		Logger:  logger,
		Effects: rec,
	}
	if o.board != "" {
		gen, err := devtools.DevBoard(o.board)
		if err != nil {
			return nil, err
		}
		opts.Generator = gen
	}

	g := state.NewGame(cfg, opts)
	s := gameplay.NewSession(g, rand.New(rand.NewSource(seed+1)), logger.With("component", "session"))
	s.OutputDir = o.outDir
	return s, nil
}

// run is main without the exit
func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(o)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.writeConfig != "" {
		return cfg.WriteYAML(o.writeConfig)
	}
	if o.localePath != "" {
		if err := locale.LoadFile(o.localePath); err != nil {
			return err
		}
	}

	rec := telemetry.NewRecorder(nil)
	s, err := newSession(o, cfg, logger, rec)
	if err != nil {
		return err
	}

	if o.printBoard {
		fmt.Fprintln(stdout, devtools.PatternText(s.Game()))
		return nil
	}

	if o.rendererName == "tui" && !terminal.IsTerminal(os.Stdin) {
		return errors.New("the tui renderer needs an interactive terminal")
	}
	r, err := newRenderer(o.rendererName, logger)
	if err != nil {
		return err
	}
	if err := r.Init(); err != nil {
		return fmt.Errorf("initializing %s renderer: %w", r.Name(), err)
	}
	runErr := r.Run(ctx, s)
	if err := r.Close(); err != nil {
		logger.Warn("closing renderer", "err", err)
	}

	v := s.View()
	logger.Info("finished", "score", v.Score, "pops", v.Pops, "status", v.Status)

	if o.telemetry != "" {
		if err := rec.WriteFile(o.telemetry); err != nil {
			return err
		}
		logger.Info("telemetry written", "path", o.telemetry, "pops", rec.Len())
	}
	return runErr
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "hexpop:", err)
		os.Exit(1)
	}
}
