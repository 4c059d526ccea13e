package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pasteflow/pasteflow/internal/cli"
	"github.com/pasteflow/pasteflow/internal/config"
	"github.com/pasteflow/pasteflow/internal/model"
	"github.com/pasteflow/pasteflow/internal/paste"
	"github.com/pasteflow/pasteflow/internal/rules"
	"github.com/pasteflow/pasteflow/internal/storage"
	"github.com/pasteflow/pasteflow/internal/tui"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse pasted tabular text into line items",
		Long: `Parse tabular text from a file (or stdin) into structured line items.

Column roles are inferred automatically. High-confidence parses are accepted
directly; anything below the threshold opens an interactive preview.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().Bool("fix", false, "Apply auto-fixes (default units, rounding, duplicate merge)")
	cmd.Flags().Bool("save", false, "Persist accepted rows to the import history")
	cmd.Flags().Bool("no-preview", false, "Never open the interactive preview")
	cmd.Flags().BoolP("yes", "y", false, "Accept the parse without confirmation")

	_ = viper.BindPFlag("parse.fix", cmd.Flags().Lookup("fix"))
	_ = viper.BindPFlag("parse.save", cmd.Flags().Lookup("save"))
	_ = viper.BindPFlag("parse.no_preview", cmd.Flags().Lookup("no-preview"))
	_ = viper.BindPFlag("parse.yes", cmd.Flags().Lookup("yes"))

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts := config.FromViper()

	text, err := readInput(args)
	if err != nil {
		return err
	}

	result := paste.Parse(text, opts)
	warnings := rules.Validate(result.Rows, opts)

	displayParseSummary(result, warnings)

	if len(result.Rows) == 0 {
		slog.Info(cli.FormatWarning("No usable rows found in input"))
		return nil
	}

	rows := result.Rows
	applyFixes := viper.GetBool("parse.fix")

	accepted := true
	autoApplied := false
	switch {
	case viper.GetBool("parse.yes"):
		autoApplied = true
	case result.Confidence >= opts.AutoInsertThreshold && len(rows) <= opts.MaxDirectInsertRows:
		autoApplied = true
	case viper.GetBool("parse.no_preview") || !isatty.IsTerminal(os.Stdout.Fd()):
		slog.Info(cli.FormatWarning("Low confidence parse; re-run with --yes to accept or use the preview"))
		accepted = false
	default:
		outcome, err := tui.Run(rows, warnings, result.Confidence)
		if err != nil {
			return err
		}
		accepted = outcome != tui.OutcomeCancelled
		applyFixes = applyFixes || outcome == tui.OutcomeAcceptedWithFixes
	}
	if !accepted {
		slog.Info("Parse cancelled")
		return nil
	}

	if applyFixes {
		patches, report := rules.GenerateFixes(rows, opts)
		rows = rules.ApplyFixes(rows, patches)
		slog.Info(cli.FormatSuccess("Auto-fix: " + report.Summary()))

		// Warnings reference pre-fix row indices; re-derive them.
		warnings = rules.Validate(rows, opts)
		for _, w := range warnings {
			slog.Warn("remaining warning", "type", string(w.Type), "row", w.RowIndex+1, "detail", w.Message)
		}
	}

	if !viper.GetBool("parse.save") {
		displayRows(rows)
		return nil
	}

	store, err := storage.NewSQLiteStorage(defaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.Default(int64(len(rows)), "saving")
	id, err := store.SaveImport(ctx, model.ImportRecord{
		SourceFormat: result.DetectedFormat,
		Confidence:   result.Confidence,
		Skipped:      result.Skipped,
		AutoApplied:  autoApplied,
		FixesApplied: applyFixes,
	}, rows, func(done, _ int) {
		_ = bar.Set(done)
	})
	if err != nil {
		return fmt.Errorf("failed to save import: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Saved %d rows as import %s", len(rows), id)))
	return nil
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func displayParseSummary(result model.ParseResult, warnings []model.ValidationWarning) {
	format := result.DetectedFormat
	if format == "" {
		format = "none"
	}

	content := fmt.Sprintf(`Rows: %d
Skipped: %d
Confidence: %.0f%%
Delimiter: %s
Warnings: %d`,
		len(result.Rows), result.Skipped, result.Confidence*100, format, len(warnings))

	slog.Info(cli.RenderBox("Parse Summary", content))

	for _, w := range warnings {
		slog.Warn("validation warning", "type", string(w.Type), "row", w.RowIndex+1, "detail", w.Message)
	}
}

func displayRows(rows []model.ParsedRow) {
	var b strings.Builder
	for i, r := range rows {
		fmt.Fprintf(&b, "%d. %s", i+1, r.PartName)
		if r.Description != "" {
			fmt.Fprintf(&b, " (%s)", r.Description)
		}
		fmt.Fprintf(&b, " — %v %s @ %v", r.Quantity, r.Unit, r.UnitPrice)
		if r.Currency != "" {
			fmt.Fprintf(&b, " %s", r.Currency)
		}
		b.WriteString("\n")
	}
	slog.Info(cli.RenderBox("Line Items", b.String()))
}

func defaultDBPath() string {
	if p := viper.GetString("storage.path"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pasteflow.db"
	}
	return filepath.Join(home, ".config", "pasteflow", "pasteflow.db")
}
