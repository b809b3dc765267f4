package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/keydrill/internal/historyui"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/store"
)

var (
	historyDifficulty string
	historyMode       string
	historySince      string
	historyLast       int

	resetYes     bool
	exportFormat string
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show session history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.PersistentFlags().StringVar(&historyDifficulty, "difficulty", "", "difficulty filter ("+difficultyNames()+")")
	cmd.PersistentFlags().StringVar(&historyMode, "mode", "", "mode filter ("+modeNames()+")")
	cmd.PersistentFlags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.PersistentFlags().IntVar(&historyLast, "last", historyui.DefaultLast, "limit to last N sessions")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryResetCmd,
	}
	reset.Flags().BoolVarP(&resetYes, "yes", "y", false, "do not ask for confirmation")

	export := &cobra.Command{
		Use:   "export",
		Short: "Write sessions as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE:  runHistoryExportCmd,
	}
	export.Flags().StringVar(&exportFormat, "format", "yaml", "output format (yaml or json)")

	cmd.AddCommand(reset, export)
	return cmd
}

func historyConfigFromFlags() (model.HistoryConfig, error) {
	cfg := model.HistoryConfig{Last: historyLast}
	if historyDifficulty != "" {
		d, err := model.ParseDifficulty(historyDifficulty)
		if err != nil {
			return cfg, fmt.Errorf("invalid --difficulty: %w", err)
		}
		cfg.Difficulty = &d
	}
	if historyMode != "" {
		m, err := model.ParseMode(historyMode)
		if err != nil {
			return cfg, fmt.Errorf("invalid --mode: %w", err)
		}
		cfg.Mode = &m
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if cfg.Last < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	return cfg, nil
}

func withStore(fn func(st *store.Store) error) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return fn(st)
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfigFromFlags()
	if err != nil {
		return err
	}
	return withStore(func(st *store.Store) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return writeHistoryReport(context.Background(), cmd.OutOrStdout(), st, cfg)
		}
		program := tea.NewProgram(historyui.NewModel(st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run history TUI: %w", err)
		}
		return nil
	})
}

func writeHistoryReport(ctx context.Context, w io.Writer, src stats.Source, cfg model.HistoryConfig) error {
	report, err := stats.BuildReport(ctx, src, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := stats.RenderSummary(w, report.Records); err != nil {
		return err
	}
	if len(report.Records) == 0 {
		return nil
	}
	return stats.RenderHistoryTable(w, report.Records, len(report.Records))
}

func runHistoryResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Delete all stored sessions? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return withStore(func(st *store.Store) error {
		if err := st.ClearSessions(context.Background()); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		logErrf("History cleared.\n")
		return nil
	})
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func runHistoryExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfigFromFlags()
	if err != nil {
		return err
	}
	return withStore(func(st *store.Store) error {
		records, err := st.ListSessions(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		return exportRecords(cmd.OutOrStdout(), records, exportFormat)
	})
}

type exportDoc struct {
	Sessions []model.SessionRecord `json:"sessions" yaml:"sessions"`
}

func exportRecords(w io.Writer, records []model.SessionRecord, format string) error {
	if records == nil {
		records = []model.SessionRecord{}
	}
	doc := exportDoc{Sessions: records}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown --format %q (use yaml or json)", format)
	}
}
