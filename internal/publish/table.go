package publish

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kingrea/texkeep/internal/latex"
)

// Table is a tabular dataset to be published as a LaTeX table.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Formatter renders one cell value as LaTeX text.
type Formatter func(value any) string

// QuantityFormatter returns a Formatter wrapping numeric cells in siunitx
// macros: \SI{v}{unit} when unit is non-empty, \num{v} otherwise.
func QuantityFormatter(unit string, opts map[string]string) Formatter {
	return func(value any) string {
		return latex.Quantity(toFloat(value), unit, opts)
	}
}

// TableDesc carries the caption metadata for a published table.
type TableDesc struct {
	Caption  latex.Caption
	Label    string
	Position string
}

// TableOptions are the LaTeX-specific rendering options.
type TableOptions struct {
	// ArrayStretch scales the row spacing; 0 uses the configured default.
	ArrayStretch float64

	// ColumnFormat overrides the tabular column specification with
	// single-letter measures, e.g. "llr" or "lSSS". The "S" measure
	// requires the siunitx package.
	ColumnFormat string

	// ColumnMeasures overrides the specification with user-defined
	// measures, e.g. {"p{3cm}", "p{4.5cm}"}. Takes precedence over
	// ColumnFormat.
	ColumnMeasures []string

	// TopCaption places the caption above the table instead of below.
	TopCaption bool
}

// columnSpecPattern matches the column specification of the first tabular
// environment so an override can be substituted in.
var columnSpecPattern = regexp.MustCompile(`(tabular\}\{)[^}]*\}`)

// measureWidthPattern extracts the numeric width from a user-defined
// column measure like "p{3.5cm}".
var measureWidthPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// renderTabular produces the table environment in the fixed layout the
// rewrite step depends on: \begin{table}, \centering, \caption, \label,
// then the tabular body. The caption sits on the 3rd line and the label on
// the 4th; relocating them for bottom captions is a fixed-line edit.
func renderTabular(table Table, desc TableDesc, formatters map[string]Formatter) string {
	var b strings.Builder
	if desc.Position != "" {
		fmt.Fprintf(&b, "\\begin{table}[%s]\n", desc.Position)
	} else {
		b.WriteString("\\begin{table}\n")
	}
	b.WriteString("\\centering\n")
	if desc.Caption.Short != "" {
		fmt.Fprintf(&b, "\\caption[%s]{%s}\n", desc.Caption.Short, desc.Caption.Long)
	} else {
		fmt.Fprintf(&b, "\\caption{%s}\n", desc.Caption.Long)
	}
	fmt.Fprintf(&b, "\\label{tab:%s}\n", desc.Label)
	fmt.Fprintf(&b, "\\begin{tabular}{%s}\n", strings.Repeat("l", len(table.Columns)))
	b.WriteString("\\toprule\n")
	b.WriteString(strings.Join(table.Columns, " & ") + " \\\\\n")
	b.WriteString("\\midrule\n")
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = formatCell(table, i, value, formatters)
		}
		b.WriteString(strings.Join(cells, " & ") + " \\\\\n")
	}
	b.WriteString("\\bottomrule\n")
	b.WriteString("\\end{tabular}\n")
	b.WriteString("\\end{table}\n")
	return b.String()
}

func formatCell(table Table, col int, value any, formatters map[string]Formatter) string {
	if col < len(table.Columns) {
		if f, ok := formatters[table.Columns[col]]; ok {
			return f(value)
		}
	}
	return fmt.Sprintf("%v", value)
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
