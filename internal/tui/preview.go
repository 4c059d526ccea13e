// Package tui implements the manual-review preview shown when a parse is not
// confident enough to auto-apply.
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pasteflow/pasteflow/internal/model"
)

// Outcome is the user's decision after previewing a parse.
type Outcome int

const (
	// OutcomeCancelled means the user rejected the parse.
	OutcomeCancelled Outcome = iota
	// OutcomeAccepted means the rows should be inserted as shown.
	OutcomeAccepted
	// OutcomeAcceptedWithFixes means auto-fixes should run before inserting.
	OutcomeAcceptedWithFixes
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C9EF5"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
)

// PreviewModel renders parsed rows with warning markers and collects the
// user's accept/fix/cancel decision.
type PreviewModel struct {
	table      table.Model
	confidence float64
	warnings   int
	applyFixes bool
	outcome    Outcome
	done       bool
}

// NewPreviewModel builds the preview for a parse result and its warnings.
func NewPreviewModel(rows []model.ParsedRow, warnings []model.ValidationWarning, confidence float64) PreviewModel {
	flagged := map[int]bool{}
	for _, w := range warnings {
		flagged[w.RowIndex] = true
	}

	columns := []table.Column{
		{Title: " ", Width: 2},
		{Title: "#", Width: 4},
		{Title: "Part", Width: 24},
		{Title: "Description", Width: 28},
		{Title: "Qty", Width: 8},
		{Title: "Unit", Width: 6},
		{Title: "Price", Width: 10},
	}

	tableRows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		marker := " "
		if flagged[i] {
			marker = "!"
		}
		tableRows = append(tableRows, table.Row{
			marker,
			strconv.Itoa(i + 1),
			r.PartName,
			r.Description,
			formatFloat(r.Quantity),
			r.Unit,
			formatFloat(r.UnitPrice),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(min(len(tableRows)+1, 15)),
	)

	return PreviewModel{
		table:      t,
		confidence: confidence,
		warnings:   len(warnings),
	}
}

// Init implements tea.Model.
func (m PreviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "a":
			if m.applyFixes {
				m.outcome = OutcomeAcceptedWithFixes
			} else {
				m.outcome = OutcomeAccepted
			}
			m.done = true
			return m, tea.Quit
		case "f":
			m.applyFixes = !m.applyFixes
			return m, nil
		case "q", "esc", "ctrl+c":
			m.outcome = OutcomeCancelled
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m PreviewModel) View() string {
	if m.done {
		return ""
	}

	header := headerStyle.Render(fmt.Sprintf("Preview — %d rows, confidence %.0f%%", len(m.table.Rows()), m.confidence*100))
	if m.warnings > 0 {
		header += "  " + warnStyle.Render(fmt.Sprintf("%d warnings", m.warnings))
	}

	fixState := "off"
	if m.applyFixes {
		fixState = "on"
	}
	help := helpStyle.Render(fmt.Sprintf("enter accept · f auto-fix [%s] · q cancel", fixState))

	return lipgloss.JoinVertical(lipgloss.Left, header, m.table.View(), help)
}

// Outcome returns the user's decision once the program has finished.
func (m PreviewModel) Outcome() Outcome {
	return m.outcome
}

// Run shows the preview and blocks until the user decides.
func Run(rows []model.ParsedRow, warnings []model.ValidationWarning, confidence float64) (Outcome, error) {
	p := tea.NewProgram(NewPreviewModel(rows, warnings, confidence))
	final, err := p.Run()
	if err != nil {
		return OutcomeCancelled, fmt.Errorf("preview failed: %w", err)
	}
	m, ok := final.(PreviewModel)
	if !ok {
		return OutcomeCancelled, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Outcome(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
