package interpreter

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"educode-lang/impl/internal/evaluator"
)

// WriteVars renders env as a name/kind/value table, sorted by name.
func WriteVars(w io.Writer, env *evaluator.Env) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Kind", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, name := range env.Names() {
		v, _ := env.Get(name)
		table.Append([]string{name, v.Kind().String(), v.String()})
	}
	table.Render()
}
