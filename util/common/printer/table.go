package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/harness/pomwatch/internal/style"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
)

// ColumnMapping defines a mapping between original field names and display names
type ColumnMapping [][]string

// parseTableData converts a JSON string + column mapping into headers and string rows.
func parseTableData(jsonStr string, mapping ColumnMapping) ([]string, [][]string, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &rows); err != nil {
		return nil, nil, fmt.Errorf("parse json: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var header []string
	if len(mapping) > 0 {
		for _, m := range mapping {
			if len(m) >= 2 {
				header = append(header, m[1])
			}
		}
	} else {
		for k := range rows[0] {
			header = append(header, k)
		}
		sort.Strings(header)
	}

	var tableRows [][]string
	for _, r := range rows {
		row := make([]string, len(header))
		for i := range header {
			field := header[i]
			if len(mapping) > 0 {
				field = mapping[i][0]
			}
			val, ok := r[field]
			if !ok || val == nil {
				row[i] = "-"
				continue
			}
			row[i] = fmt.Sprint(val)
		}
		tableRows = append(tableRows, row)
	}

	return header, tableRows, nil
}

// renderStyledTable renders a table using lipgloss/table with the project's colour theme.
// cellStyle, when set, picks the style of a body cell.
func renderStyledTable(headers []string, rows [][]string, cellStyle func(row, col int) lipgloss.Style) string {
	dimCellStyle := lipgloss.NewStyle().
		Foreground(style.Dim).
		Padding(0, 1)

	t := lgtable.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(style.Subtle)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return style.TableHeader
			}
			if cellStyle != nil {
				return cellStyle(row, col)
			}
			if row%2 == 0 {
				return style.TableCell
			}
			return dimCellStyle
		})

	for _, r := range rows {
		t = t.Row(r...)
	}

	return t.Render()
}

// renderPtermTable renders a table using the pterm renderer (for non-TTY / no-color).
func renderPtermTable(headers []string, rows [][]string) (string, error) {
	data := pterm.TableData{headers}
	for _, r := range rows {
		data = append(data, r)
	}
	return pterm.DefaultTable.
		WithHasHeader().
		WithBoxed(true).
		WithData(data).
		Srender()
}

// renderTable picks the lipgloss or the pterm renderer depending on style.Enabled.
func renderTable(w io.Writer, headers []string, rows [][]string, cellStyle func(row, col int) lipgloss.Style) error {
	if style.Enabled {
		_, err := fmt.Fprintln(w, renderStyledTable(headers, rows, cellStyle))
		return err
	}
	out, err := renderPtermTable(headers, rows)
	if err != nil {
		log.Error().Msgf("failed to render table: %v", err)
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// TableOptions provides configuration for table output
type TableOptions struct {
	// ColumnMapping defines custom column ordering and display names
	// Format: [["originalField", "Display Name"], ...]
	ColumnMapping ColumnMapping

	// Footer is printed dimmed below the table when not empty
	Footer string
}

// PrintTableWithOptions prints res, a slice of JSON-marshalable values, as a table.
// When colour is enabled (TTY), it renders using lipgloss/table with the project theme.
// Otherwise it falls back to the pterm boxed table for plain-text environments.
func PrintTableWithOptions(w io.Writer, res any, options TableOptions) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	headers, rows, err := parseTableData(string(raw), options.ColumnMapping)
	if err != nil {
		log.Error().Msgf("failed to parse table data: %v", err)
		return err
	}

	if headers == nil {
		// No data to display
		return nil
	}

	if err := renderTable(w, headers, rows, nil); err != nil {
		return err
	}
	printFooter(w, options.Footer)
	return nil
}

// BadgeTable is a table whose cells may carry a badge colour name
// ("success", "warning", "danger", "secondary", "light").
type BadgeTable struct {
	Headers []string
	Rows    [][]string
	// Badges has the shape of Rows; an empty name means a plain cell.
	Badges [][]string
	Footer string
}

// PrintBadgeTable prints t with each badge cell coloured by the theme.
// Without colour the table is plain and badge names are not shown.
func PrintBadgeTable(w io.Writer, t BadgeTable) error {
	if len(t.Headers) == 0 {
		return nil
	}
	cellStyle := func(row, col int) lipgloss.Style {
		if row >= 0 && row < len(t.Badges) && col < len(t.Badges[row]) && t.Badges[row][col] != "" {
			return style.Badge(t.Badges[row][col])
		}
		return style.TableCell
	}
	if err := renderTable(w, t.Headers, t.Rows, cellStyle); err != nil {
		return err
	}
	printFooter(w, t.Footer)
	return nil
}

func printFooter(w io.Writer, footer string) {
	if footer == "" {
		return
	}
	if style.Enabled {
		fmt.Fprintln(w, style.DimText.Render(footer))
	} else {
		fmt.Fprintln(w, footer)
	}
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
