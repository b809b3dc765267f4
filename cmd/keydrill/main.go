// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keydrill/internal/catalog"
	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/engine"
	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/logging"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/store"
	"github.com/verte-zerg/keydrill/internal/tui"
)

var (
	configPath string
	dbPath     string
	logPath    string
	logLevel   string

	practiceDifficulty string
	practiceMode       string
	practiceTimeLimit  int
	practiceTarget     int
	practiceLight      bool
	practiceMute       bool
	practiceNoKeyboard bool

	itemsDifficulty string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := model.DefaultSettings()
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "TUI keyboard drill trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "settings file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "history database")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", config.DefaultLogPath(), "log file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.Flags().StringVar(&practiceDifficulty, "difficulty", defaults.Difficulty.String(), "difficulty ("+difficultyNames()+")")
	rootCmd.Flags().StringVar(&practiceMode, "mode", defaults.Mode.String(), "mode ("+modeNames()+")")
	rootCmd.Flags().IntVar(&practiceTimeLimit, "time-limit", defaults.TimeLimitSeconds, "timed mode limit in seconds")
	rootCmd.Flags().IntVar(&practiceTarget, "target", defaults.TargetRounds, "challenge mode target rounds")
	rootCmd.Flags().BoolVar(&practiceLight, "light", false, "use the light palette")
	rootCmd.Flags().BoolVar(&practiceMute, "mute", false, "disable the bell")
	rootCmd.Flags().BoolVar(&practiceNoKeyboard, "no-keyboard", false, "hide the virtual keyboard")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newItemsCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", "err", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	history, err := st.ListSessions(ctx, model.HistoryConfig{Last: model.MaxHistoryRecords})
	if err != nil {
		logger.Warn("failed to load history", "err", err)
		history = nil
	}

	eng := engine.New(engine.Options{
		Settings: settings,
		History:  history,
		Catalog:  catalog.Build(),
		Picker:   generator.New(),
		Sounder:  tui.Bell{W: os.Stderr},
		Recorder: st,
		Logger:   logger,
	})

	program := tea.NewProgram(
		tui.NewModel(eng, configPath, logger),
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	watchSettings(ctx, program, logger)
	stopSignals := forwardCloseSignals(program)
	defer stopSignals()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveSettings merges defaults, the settings file and explicit flags.
func resolveSettings(cmd *cobra.Command) (model.Settings, error) {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	settings, err := fileCfg.Apply(model.DefaultSettings())
	if err != nil {
		logErrf("ignoring invalid config values: %v\n", err)
	}
	if err := applySettingsFlags(cmd, &settings); err != nil {
		return model.Settings{}, err
	}
	return settings.Clamped(), nil
}

func applySettingsFlags(cmd *cobra.Command, s *model.Settings) error {
	if cmd.Flags().Changed("difficulty") {
		d, err := model.ParseDifficulty(practiceDifficulty)
		if err != nil {
			return fmt.Errorf("invalid --difficulty: %w", err)
		}
		s.Difficulty = d
	}
	if cmd.Flags().Changed("mode") {
		m, err := model.ParseMode(practiceMode)
		if err != nil {
			return fmt.Errorf("invalid --mode: %w", err)
		}
		s.Mode = m
	}
	applyIntFlag(cmd, "time-limit", &s.TimeLimitSeconds, practiceTimeLimit)
	applyIntFlag(cmd, "target", &s.TargetRounds, practiceTarget)
	applyBoolFlag(cmd, "light", &s.DarkTheme, !practiceLight)
	applyBoolFlag(cmd, "mute", &s.Sound, !practiceMute)
	applyBoolFlag(cmd, "no-keyboard", &s.ShowKeyboard, !practiceNoKeyboard)
	return nil
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyBoolFlag(cmd *cobra.Command, name string, target *bool, value bool) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func watchSettings(ctx context.Context, program *tea.Program, logger *slog.Logger) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		logger.Warn("settings watch disabled", "err", err)
		return
	}
	onChange := func(fc config.FileConfig) {
		settings, err := fc.Apply(model.DefaultSettings())
		if err != nil {
			logger.Warn("ignoring invalid config values", "err", err)
		}
		program.Send(tui.SettingsChangedMsg{Settings: settings})
	}
	onErr := func(err error) {
		logger.Warn("settings reload failed", "err", err)
	}
	if err := config.Watch(ctx, configPath, onChange, onErr); err != nil {
		logger.Warn("settings watch disabled", "err", err)
	}
}

// forwardCloseSignals turns termination signals into close requests so the
// practice screen can refuse them mid-session.
func forwardCloseSignals(program *tea.Program) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigs:
				program.Send(tui.CloseRequestMsg{})
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

func openLogger() (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.OpenFile(logPath, level)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		return logging.Discard(), func() {}, nil
	}
	return logger, func() {
		if cerr := closer.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open settings file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := config.SaveSettings(path, model.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
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

func newItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the drill items for a difficulty",
		Args:  cobra.NoArgs,
		RunE:  runItemsCmd,
	}
	cmd.Flags().StringVar(&itemsDifficulty, "difficulty", "", "difficulty ("+difficultyNames()+"; default: from settings)")
	return cmd
}

func runItemsCmd(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		logErrf("ignoring invalid config: %v\n", err)
	}
	if itemsDifficulty != "" {
		d, err := model.ParseDifficulty(itemsDifficulty)
		if err != nil {
			return fmt.Errorf("invalid --difficulty: %w", err)
		}
		settings.Difficulty = d
	}
	return writeItems(cmd.OutOrStdout(), catalog.Filter(catalog.Build(), settings.Difficulty, settings.Custom))
}

func writeItems(w io.Writer, items []catalog.Item) error {
	for _, it := range items {
		if _, err := fmt.Fprintf(w, "%-9s %-14s %s\n", it.Kind, it.Label, it.MinDifficulty); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	counts := catalog.CountByKind(items)
	_, err := fmt.Fprintf(w, "\n%d items (single %d, special %d, combo %d, sequence %d)\n",
		len(items), counts[catalog.SingleKey], counts[catalog.SpecialKey], counts[catalog.Combo], counts[catalog.Sequence])
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func difficultyNames() string {
	var names []string
	for _, d := range model.Difficulties() {
		names = append(names, d.String())
	}
	return strings.Join(names, ", ")
}

func modeNames() string {
	var names []string
	for _, m := range model.Modes() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
