// Package paste implements the tabular paste-import pipeline: tokenization,
// structural analysis, column inference, value coercion and confidence
// scoring. The pipeline is a pure transform over the pasted text; it never
// returns an error and never touches I/O.
package paste

import (
	"strings"

	"golang.org/x/text/width"
)

// RawRow is one logical row of raw cell strings. Rows are ephemeral: they
// exist only between tokenization and coercion.
type RawRow []string

// Format names the cell delimiter detected in the paste.
type Format string

const (
	// FormatTab is tab-separated input (the spreadsheet paste signature).
	FormatTab Format = "tab"
	// FormatComma is comma-separated input.
	FormatComma Format = "comma"
	// FormatSemicolon is semicolon-separated input.
	FormatSemicolon Format = "semicolon"
	// FormatSpaces is input delimited by runs of two or more spaces.
	FormatSpaces Format = "spaces"
	// FormatNone means no delimiter was found (one cell per line).
	FormatNone Format = ""
)

// Tokenize splits raw pasted text into logical rows and cells. Double-quoted
// spans may contain delimiters and literal newlines; both are preserved inside
// the cell. Lines yielding zero non-empty cells are dropped silently (they are
// not data-row attempts). Full-width punctuation and digits are folded to
// their ASCII forms first, so pastes from Chinese spreadsheets tokenize the
// same way as Latin ones.
func Tokenize(text string) ([]RawRow, Format) {
	text = width.Fold.String(text)

	lines := splitRows(text)
	hasTab := strings.Contains(text, "\t")

	var rows []RawRow
	counts := map[Format]int{}
	for _, line := range lines {
		delim := FormatNone
		if hasTab {
			delim = FormatTab
		} else {
			delim = rowDelimiter(line)
		}

		cells := splitCells(line, delim)
		row := make(RawRow, 0, len(cells))
		nonEmpty := 0
		for _, c := range cells {
			c = unquoteCell(strings.TrimSpace(c))
			row = append(row, c)
			if c != "" {
				nonEmpty++
			}
		}
		if nonEmpty == 0 {
			continue
		}
		rows = append(rows, row)
		if delim != FormatNone {
			counts[delim]++
		}
	}

	return rows, dominantFormat(counts)
}

// splitRows breaks text on \n and \r\n outside double-quoted spans.
func splitRows(text string) []string {
	var lines []string
	var b strings.Builder
	inQuote := false

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '\n' && !inQuote:
			lines = append(lines, strings.TrimSuffix(b.String(), "\r"))
			b.Reset()
		default:
			b.WriteByte(ch)
		}
	}
	if b.Len() > 0 {
		lines = append(lines, strings.TrimSuffix(b.String(), "\r"))
	}
	return lines
}

// rowDelimiter picks the delimiter for one row when the input carries no tab:
// comma, then semicolon, then a run of ≥2 spaces, whichever appears first in
// that preference order outside quotes.
func rowDelimiter(line string) Format {
	inQuote := false
	hasComma, hasSemi, hasSpaces := false, false, false
	spaceRun := 0
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch == '"' {
			inQuote = !inQuote
		}
		if inQuote {
			spaceRun = 0
			continue
		}
		switch ch {
		case ',':
			hasComma = true
		case ';':
			hasSemi = true
		case ' ':
			spaceRun++
			if spaceRun >= 2 {
				hasSpaces = true
			}
		}
		if ch != ' ' {
			spaceRun = 0
		}
	}
	switch {
	case hasComma:
		return FormatComma
	case hasSemi:
		return FormatSemicolon
	case hasSpaces:
		return FormatSpaces
	default:
		return FormatNone
	}
}

// splitCells splits one row on the chosen delimiter, honoring quoted spans.
func splitCells(line string, delim Format) []string {
	if delim == FormatNone {
		return []string{line}
	}

	var cells []string
	var b strings.Builder
	inQuote := false
	flush := func() {
		cells = append(cells, b.String())
		b.Reset()
	}

	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch == '"' {
			inQuote = !inQuote
			b.WriteByte(ch)
			continue
		}
		if inQuote {
			b.WriteByte(ch)
			continue
		}
		switch delim {
		case FormatTab:
			if ch == '\t' {
				flush()
				continue
			}
		case FormatComma:
			if ch == ',' {
				flush()
				continue
			}
		case FormatSemicolon:
			if ch == ';' {
				flush()
				continue
			}
		case FormatSpaces:
			if ch == ' ' && i+1 < len(line) && line[i+1] == ' ' {
				for i+1 < len(line) && line[i+1] == ' ' {
					i++
				}
				flush()
				continue
			}
		}
		b.WriteByte(ch)
	}
	flush()
	return cells
}

// unquoteCell strips one pair of wrapping double quotes and decodes "" to a
// literal quote. Unwrapped cells pass through unchanged.
func unquoteCell(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
		return strings.ReplaceAll(s, `""`, `"`)
	}
	return s
}

func dominantFormat(counts map[Format]int) Format {
	best, bestN := FormatNone, 0
	for _, f := range []Format{FormatTab, FormatComma, FormatSemicolon, FormatSpaces} {
		if counts[f] > bestN {
			best, bestN = f, counts[f]
		}
	}
	return best
}
