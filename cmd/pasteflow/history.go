package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pasteflow/pasteflow/internal/cli"
	"github.com/pasteflow/pasteflow/internal/storage"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent paste imports",
		Long:  `List recent imports from the local history database, newest first.`,
		RunE:  runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of imports to show")
	cmd.Flags().String("show", "", "Show the line items of one import by id")

	_ = viper.BindPFlag("history.limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("history.show", cmd.Flags().Lookup("show"))

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := storage.NewSQLiteStorage(defaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if id := viper.GetString("history.show"); id != "" {
		rows, err := store.GetImportRows(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load import %s: %w", id, err)
		}
		displayRows(rows)
		return nil
	}

	records, err := store.ListImports(ctx, viper.GetInt("history.limit"))
	if err != nil {
		return fmt.Errorf("failed to list imports: %w", err)
	}
	if len(records) == 0 {
		slog.Info(cli.FormatWarning("No imports recorded yet"))
		return nil
	}

	var b strings.Builder
	for _, rec := range records {
		age := time.Since(rec.CreatedAt).Round(time.Minute)
		mode := "preview"
		if rec.AutoApplied {
			mode = "auto"
		}
		fmt.Fprintf(&b, "%s  %s ago  %d rows  %.0f%%  %s  %s\n",
			rec.ID, age, rec.RowCount, rec.Confidence*100, rec.SourceFormat, mode)
	}
	slog.Info(cli.RenderBox(fmt.Sprintf("Last %d Imports", len(records)), b.String()))
	return nil
}
