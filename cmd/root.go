// Package cmd is the process surface: flag parsing, input loading, and
// handing the document to the interactive UI or the printer.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hjens/json-explorer/internal/config"
	"github.com/hjens/json-explorer/internal/limiter"
	"github.com/hjens/json-explorer/internal/ui"
	"github.com/hjens/json-explorer/pkg/document"
	"github.com/hjens/json-explorer/pkg/logger"
)

// version is replaced at release time via
// -ldflags "-X github.com/hjens/json-explorer/cmd.version=v1.2.3".
var version = "dev"

var (
	themeName     string
	configFile    string
	debugLogFile  string
	printMode     bool
	limitRecords  int
	offsetRecords int
	tailRecords   int
	collapseDepth int
)

// Seams for tests and for platforms where the real terminal is unavailable.
var (
	stdinIsPiped     = func() bool { stat, _ := os.Stdin.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	openTerminalIOFn = openTerminalIO
	termGetSize      = term.GetSize
	newResizeTicker  = func(d time.Duration) resizeTicker { return realResizeTicker{Ticker: time.NewTicker(d)} }
	sendWindowSize   = func(p *tea.Program, msg tea.WindowSizeMsg) { p.Send(msg) }
	exitFn           = os.Exit
)

type resizeTicker interface {
	C() <-chan time.Time
	Stop()
}

type realResizeTicker struct {
	*time.Ticker
}

func (t realResizeTicker) C() <-chan time.Time { return t.Ticker.C }

var rootCmd = &cobra.Command{
	Use:   "jx [file]",
	Short: "interactive JSON explorer for the terminal",
	Long: `jx shows a JSON document (YAML, TOML, NDJSON and JWT inputs are
auto-detected) as a collapsible tree you can navigate, search, and query
with expressions. With no file argument the document is read from stdin
and the interface attaches to the terminal directly.`,
	Example: "\n  jx examples/orders.json\n  curl -s https://api.example.com/orders | jx\n  jx --print --limit 20 orders.ndjson\n  jx --theme dark --collapse-depth 2 big.json",
	Args:    cobra.ArbitraryArgs,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if debugLogFile == "" {
			return
		}
		if err := logger.Setup(debugLogFile, version); err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitFn(2)
			return
		}
		logger.Get().Info("starting", "command", cmd.Name())
	},
	Run: func(cmd *cobra.Command, args []string) {
		if code := runRoot(cmd, args); code != 0 {
			exitFn(code)
		}
	},
}

func init() { //nolint:gochecknoinits
	rootCmd.Flags().StringVar(&themeName, "theme", "", "theme name (default from config; dark or light)")
	rootCmd.Flags().StringVar(&configFile, "config", "", "path to a YAML config file (default $XDG_CONFIG_HOME/jx/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&debugLogFile, "debug-log", "", "append structured debug logs to FILE")
	rootCmd.Flags().BoolVar(&printMode, "print", false, "pretty-print the document to stdout and exit (implied when stdout is not a terminal)")
	rootCmd.Flags().IntVar(&limitRecords, "limit", 0, "print at most N top-level records")
	rootCmd.Flags().IntVar(&offsetRecords, "offset", 0, "skip the first N top-level records")
	rootCmd.Flags().IntVar(&tailRecords, "tail", 0, "print the last N top-level records (mutually exclusive with --limit)")
	rootCmd.Flags().IntVar(&collapseDepth, "collapse-depth", 0, "start with every container at this depth or deeper collapsed")
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
	configCmd.Flags().StringVar(&configFile, "config", "", "path to a YAML config file (default $XDG_CONFIG_HOME/jx/config.yaml)")
	configCmd.Flags().BoolVar(&configShowDefault, "default", false, "print the embedded default config instead of the merged one")
	rootCmd.AddCommand(configCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// runRoot drives the root command and returns the process exit code. It is
// split from Run so tests can exercise failure paths without os.Exit.
func runRoot(cmd *cobra.Command, args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stdout, "Usage: %s\n", cmd.UseLine())
		return 2
	}

	limitCfg := limiter.Config{Limit: limitRecords, Offset: offsetRecords, Tail: tailRecords}
	if err := limitCfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "record limiting error: %v\n", err)
		return 2
	}

	doc, name, err := loadDocument(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if printMode || !stdoutIsTerminal() {
		if err := printDocument(os.Stdout, doc, limitCfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	themeCfg, err := cfg.ThemeNamed(themeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	opts := ui.Options{
		Filename: name,
		Config:   &cfg,
		Theme:    ui.ThemeFromConfig(themeCfg),
	}
	if cmd.Flags().Changed("collapse-depth") {
		depth := collapseDepth
		opts.CollapseDepth = &depth
	} else if depth, ok := cfg.CollapseDepth(); ok {
		opts.CollapseDepth = &depth
	}

	ctx := logger.WithLogger(context.Background(), logger.Get())
	progOpts, cleanup := getProgramOptions(ctx)
	defer cleanup()
	if err := ui.Run(ui.NewModel(doc, opts), progOpts...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// loadDocument reads the document from the file argument, or from stdin
// when no argument is given. The returned name is what the title shows.
func loadDocument(args []string) (*document.Node, string, error) {
	if len(args) == 1 {
		n, err := document.LoadFile(args[0])
		return n, args[0], err
	}
	if !stdinIsPiped() {
		return nil, "", fmt.Errorf("no input: pass a file argument or pipe a document to stdin")
	}
	n, err := document.LoadReader(os.Stdin)
	return n, "(stdin)", err
}

// printDocument renders the document as indented JSON, bounded by the
// record-limiting flags.
func printDocument(w io.Writer, doc *document.Node, limit limiter.Config) error {
	_, err := w.Write(document.EncodeJSON(limit.Apply(doc)))
	return err
}

// versionString builds the version line for --version and `jx version`.
func versionString() string {
	return fmt.Sprintf("jx %s (%s)", version, runtime.Version())
}

// getProgramOptions reattaches the program to the real terminal when the
// document came in over a pipe: stdin carries the document, so keyboard
// input and resize events need their own handles. Falls back to the
// defaults when no terminal can be opened (CI, some containers).
func getProgramOptions(ctx context.Context) ([]tea.ProgramOption, func()) {
	cleanup := func() {}
	if !stdinIsPiped() {
		return nil, cleanup
	}

	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		return nil, cleanup
	}
	cleanup = func() {
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithInput(ttyIn)}
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut), withTTYResizeWatcher(ctx, ttyOut))
	}

	return opts, func() {
		cancel()
		cleanup()
	}
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)

	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}

	if out == "" || out == in {
		return input, input, nil
	}

	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, err
	}

	return input, output, nil
}

func terminalDeviceNames(goos string) (input string, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}

	return "/dev/tty", "/dev/tty"
}

// withTTYResizeWatcher polls the terminal size and sends resize messages:
// with piped stdin, resize signals are not delivered reliably on every
// platform. Best-effort; stops when the context is cancelled.
func withTTYResizeWatcher(ctx context.Context, out *os.File) tea.ProgramOption {
	return func(p *tea.Program) {
		if ctx == nil || out == nil {
			return
		}

		go func() {
			t := newResizeTicker(250 * time.Millisecond)
			defer t.Stop()

			lastW, lastH := 0, 0
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C():
					w, h, err := termGetSize(int(out.Fd()))
					if err != nil {
						continue
					}
					if w == lastW && h == lastH {
						continue
					}
					lastW, lastH = w, h
					logger.FromContext(ctx).V(1).Info("terminal resized", "width", w, "height", h)
					sendWindowSize(p, tea.WindowSizeMsg{Width: w, Height: h})
				}
			}
		}()
	}
}
