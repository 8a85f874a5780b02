// shelline is the demo binary wiring the interactive reader core
// together: it owns the terminal, the raw-mode key loop, and the
// external-collaborator stand-ins (parser, completion source) that
// §1 places out of the core's scope.
//
// Usage:
//
//	shelline [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: ~/.config/shelline/config.toml)
//	-history string   History name (default: "fish")
//	-verbose          Enable debug logging
//	-version          Print version and exit
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/shelline/pkg/color"
	"gitlab.com/tinyland/lab/shelline/pkg/config"
	"gitlab.com/tinyland/lab/shelline/pkg/editor"
	"gitlab.com/tinyland/lab/shelline/pkg/escape"
	"gitlab.com/tinyland/lab/shelline/pkg/expand"
	"gitlab.com/tinyland/lab/shelline/pkg/history"
	"gitlab.com/tinyland/lab/shelline/pkg/screen"
	"gitlab.com/tinyland/lab/shelline/pkg/worker"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		historyName = flag.String("history", "fish", "History name")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("shelline %s (%s)\n", version, commit)
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "err", err)
		cfg = config.DefaultConfig()
	}

	if err := run(cfg, *historyName, logger); err != nil {
		logger.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func run(cfg *config.Config, historyName string, logger *slog.Logger) error {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return runBatch(os.Stdin, logger)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = 80
	}

	hist := history.Named(historyName, historyPath(cfg))
	hist.IncorporateExternalChanges()
	defer hist.Save()

	gen := &worker.Counter{}
	pool := worker.New(gen, 64)

	profile, support := color.DetectProfile()
	env := color.NewEnvironmentWith(func(key string) (string, bool) {
		for role, tok := range cfg.Colors {
			if "fish_color_"+role == key {
				return tok, true
			}
		}
		for role, tok := range cfg.PagerColors {
			if "fish_pager_color_"+role == key {
				return tok, true
			}
		}
		return os.LookupEnv(key)
	})

	caps := screen.DefaultTermCaps()
	escapeCaps := escape.NewCapabilities(
		"\x1b[1m", "\x1b[4m", "\x1b[3m", "\x1b[2m", "\x1b[7m",
		"\x1b[22m", "\x1b[23m", "\x1b[24m", "\x1b[27m",
	)
	layoutCache := escape.NewLayoutCache(escapeCaps, 12)

	scr := screen.New(os.Stdout, width, caps, profile, support, env)

	ed := editor.New(gen, pool, hist, scr, expand.Abbreviations(cfg.Abbreviations), demoParser{}, demoCompletionSource{})
	ed.Highlight = demoHighlighter{}
	ed.Suggest = demoAutosuggester{history: hist}
	ed.FileDetector = pathDetector{}

	prompts := editor.Prompts{Left: "shelline> ", Right: ""}

	return readEvalPrintLoop(ed, scr, escapeCaps, layoutCache, prompts, width, logger, hist)
}

func historyPath(cfg *config.Config) string {
	if cfg.General.HistoryFile != "" {
		return cfg.General.HistoryFile
	}
	home, _ := os.UserHomeDir()
	dir := filepath.Join(home, ".local", "share", "shelline")
	os.MkdirAll(dir, 0o700)
	return filepath.Join(dir, "history.yml")
}

// runBatch is the non-interactive fallback: stdin is not a terminal, so
// there is no prompt, no line editing, no highlighting — each line is
// simply executed. The real batch path (mentioned but not specified in
// §1) would additionally handle heredocs and multi-line constructs via
// the external parser; this is a narrow stand-in.
func runBatch(r io.Reader, logger *slog.Logger) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := runCommand(line); err != nil {
			logger.Debug("command exited non-zero", "err", err, "line", line)
		}
	}
	return scanner.Err()
}

// readEvalPrintLoop is the foreground editor loop (§4.8, §5): it reads
// one key at a time, dispatches it to ed, drains worker results each
// tick, and repaints through the screen diff engine. It never blocks on
// anything but the next key read, a transferred-away command
// execution, or a flush.
func readEvalPrintLoop(ed *editor.Editor, scr *screen.Screen, caps *escape.Capabilities, cache *escape.LayoutCache, prompts editor.Prompts, width int, logger *slog.Logger, hist *history.Store) error {
	r := bufio.NewReader(os.Stdin)

	repaint := func() {
		grid := ed.BuildDesiredGrid(caps, cache, prompts, ed.CurrentSuggestion(), width)
		scr.Update(grid, ed.Line.Text())
		scr.Flush()
	}
	repaint()

	for {
		for _, res := range ed.Workers.Drain() {
			ed.DeliverWorkerResult(res)
		}

		key, err := readKey(r)
		if err != nil {
			return nil
		}

		events := editor.TranslateKey(key)
		if len(events) == 0 {
			logger.Debug("unrecognized input", "key", key.String())
		}
		for _, ev := range events {
			ed.Update(ev)
			if ed.Finished() {
				break
			}
		}

		if ed.Finished() && ed.Canceled() {
			return nil
		}

		if ed.Finished() {
			repaint()
			fmt.Fprint(os.Stdout, "\r\n")
			text := ed.Line.Text()
			if text != "" {
				if err := runCommand(text); err != nil {
					logger.Debug("command exited non-zero", "err", err)
					hist.DiscardPending()
				} else {
					hist.ResolvePending()
				}
				scr.NeedClear()
			} else {
				hist.ResolvePending()
			}
			hist.Save()
			ed.Reset()
		}

		if ed.RepaintNeeded() {
			repaint()
		}
	}
}
