package latex

import (
	"fmt"
	"sort"
	"strings"
)

// Quantity renders a numeric value as a siunitx macro: \SI{v}{unit} when a
// unit is supplied, \num{v} otherwise. Options are emitted as key=value
// lines inside the optional argument, sorted by key. Values render with a
// fixed 6-decimal format.
//
// The unit parameter can often be neglected since the unit of a table
// column is usually written once in the column header.
func Quantity(value float64, unit string, opts map[string]string) string {
	num := fmt.Sprintf("%.6f", value)
	macro := "\\num"
	suffix := ""
	if unit != "" {
		macro = "\\SI"
		suffix = "{" + unit + "}"
	}
	if len(opts) == 0 {
		return macro + "{" + num + "}" + suffix
	}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var optArgs strings.Builder
	optArgs.WriteString("\n")
	for _, k := range keys {
		optArgs.WriteString(k + "=" + opts[k] + "\n")
	}
	return macro + "[" + optArgs.String() + "]{" + num + "}" + suffix
}
