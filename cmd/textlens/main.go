// Package main provides the CLI entrypoint for textlens.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/textlens/internal/config"
	"github.com/verte-zerg/textlens/internal/controller"
	"github.com/verte-zerg/textlens/internal/historyui"
	"github.com/verte-zerg/textlens/internal/logging"
	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/stats"
	"github.com/verte-zerg/textlens/internal/store"
	"github.com/verte-zerg/textlens/internal/tui"
	"github.com/verte-zerg/textlens/internal/watcher"
)

const (
	sourceSample = "sample"
	sourceStdin  = "stdin"
)

// analysisFlags are shared by the TUI and analyze commands.
type analysisFlags struct {
	excludeSpaces bool
	charLimit     int
	wpm           int
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.excludeSpaces, "exclude-spaces", false, "exclude whitespace from the character count")
	cmd.Flags().IntVar(&f.charLimit, "char-limit", 0, "character limit (0 disables)")
	cmd.Flags().IntVar(&f.wpm, "wpm", model.DefaultWordsPerMinute, "reading speed in words per minute")
}

var (
	rootFlags     analysisFlags
	rootTheme     string
	rootWatch     bool
	rootNoHistory bool

	analyzeFlags  analysisFlags
	analyzeFormat string
	analyzeSave   bool

	historySince  string
	historyLast   int
	historyBrowse bool

	logLevel string
	logFile  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "textlens [FILE]",
		Short:         "Real-time text analysis in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRootCmd,
	}
	rootFlags.register(rootCmd)
	rootCmd.Flags().StringVar(&rootTheme, "theme", "", "color theme: dark or light")
	rootCmd.Flags().BoolVar(&rootWatch, "watch", false, "follow FILE and re-analyze on change")
	rootCmd.Flags().BoolVar(&rootNoHistory, "no-history", false, "disable snapshot history")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func runRootCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	analysis, err := rootFlags.resolve(cmd, fileCfg.Analysis)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "theme", &rootTheme, fileCfg.UI.Theme)
	theme, err := model.ParseTheme(rootTheme)
	if err != nil {
		return err
	}
	if rootWatch && len(args) == 0 {
		return fmt.Errorf("--watch requires a FILE argument")
	}

	logger, closeLog, err := openLogger(cmd, fileCfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	opts := tui.Options{
		Config: analysis,
		Theme:  theme,
		Logger: logger,
	}
	stdinPiped := false
	switch {
	case len(args) == 1 && rootWatch:
		w, err := watcher.New(args[0], 0)
		if err != nil {
			return err
		}
		text, err := w.Start(ctx)
		if err != nil {
			return fmt.Errorf("failed to watch file: %w", err)
		}
		defer func() {
			cancel()
			w.Wait()
		}()
		opts.Text, opts.Source = text, w.Path()
		opts.Changes, opts.WatchErrors = w.Events(), w.Errors()
	case len(args) == 1:
		text, err := readFile(args[0])
		if err != nil {
			return err
		}
		opts.Text, opts.Source = text, args[0]
	case !isTerminal(os.Stdin):
		text, err := readAll(os.Stdin)
		if err != nil {
			return err
		}
		opts.Text, opts.Source = text, sourceStdin
		stdinPiped = true
	default:
		opts.Text, opts.Source = controller.SampleText, sourceSample
	}

	if !rootNoHistory {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Error("close db", "error", cerr)
			}
		}()
		opts.Store = st
	}

	logger.Info("starting", "source", opts.Source, "chars", len(opts.Text), "watch", rootWatch)
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if stdinPiped {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	program := tea.NewProgram(tui.NewModel(opts), programOpts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [FILE]",
		Short: "Print statistics for a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyzeCmd,
	}
	analyzeFlags.register(cmd)
	cmd.Flags().StringVar(&analyzeFormat, "format", stats.FormatText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&analyzeSave, "save", false, "record a snapshot in history")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	analysis, err := analyzeFlags.resolve(cmd, fileCfg.Analysis)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cmd, fileCfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	var text, source string
	if len(args) == 1 {
		text, err = readFile(args[0])
		source = args[0]
	} else {
		text, err = readAll(cmd.InOrStdin())
		source = sourceStdin
	}
	if err != nil {
		return err
	}

	derived := stats.Recompute(text, analysis)
	if err := stats.RenderStats(cmd.OutOrStdout(), analyzeFormat, derived, analysis); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !analyzeSave {
		return nil
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("close db", "error", cerr)
		}
	}()
	snap, letters := stats.SnapshotOf(derived, analysis, source, time.Now())
	id, err := st.InsertSnapshot(cmd.Context(), snap, letters)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	logger.Info("snapshot saved", "id", id, "source", source)
	logErrf("Saved snapshot #%d\n", id)
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved snapshots",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N snapshots")
	cmd.Flags().BoolVar(&historyBrowse, "browse", false, "open the interactive history browser")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfig(historySince, historyLast)
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if historyBrowse {
		p := tea.NewProgram(historyui.NewModel(st, cfg), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run history browser: %w", err)
		}
		return nil
	}
	h, err := stats.BuildHistory(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := stats.RenderHistory(cmd.OutOrStdout(), h); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func historyConfig(since string, last int) (model.HistoryConfig, error) {
	if last < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--last must be >= 0")
	}
	cfg := model.HistoryConfig{Last: last}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if _, err := config.EnsureFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolve merges flags with config file values. Explicit flags win.
func (f *analysisFlags) resolve(cmd *cobra.Command, fileCfg config.AnalysisConfig) (model.AnalysisConfig, error) {
	applyBoolConfig(cmd, "exclude-spaces", &f.excludeSpaces, fileCfg.ExcludeSpaces)
	applyIntConfig(cmd, "char-limit", &f.charLimit, fileCfg.CharLimit)
	applyIntConfig(cmd, "wpm", &f.wpm, fileCfg.WordsPerMinute)

	if f.wpm <= 0 {
		return model.AnalysisConfig{}, fmt.Errorf("--wpm must be > 0")
	}
	if f.charLimit < 0 {
		return model.AnalysisConfig{}, fmt.Errorf("--char-limit must be >= 0")
	}
	cfg := model.AnalysisConfig{ExcludeSpaces: f.excludeSpaces, WordsPerMinute: f.wpm}
	if f.charLimit > 0 {
		limit := f.charLimit
		cfg.CharLimit = &limit
	}
	return cfg, nil
}

func openLogger(cmd *cobra.Command, fileCfg config.LogConfig) (*slog.Logger, func(), error) {
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.File)
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	format := ""
	if fileCfg.Format != nil {
		format = *fileCfg.Format
	}
	logFormat, err := logging.ParseFormat(format)
	if err != nil {
		return nil, nil, err
	}
	path := logFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	logger, closer, err := logging.New(logging.Config{
		Level:     level,
		Format:    logFormat,
		FilePath:  path,
		Component: cmd.Name(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log: %w", err)
	}
	return logger, func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}, nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
