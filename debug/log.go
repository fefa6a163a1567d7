package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/plainform/go-plain/ir"
)

type Plain struct{ *ir.Node }

func (y Plain) String() string {
	d, err := ir.ToJSON(y.Node, ir.WithIndent("  "))
	if err != nil {
		return fmt.Sprintf("[raw node] %v", y.Node)
	}
	return string(d)
}

var warnf = func() func(string, ...any) string {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return color.New(color.FgYellow).Sprintf
	}
	return fmt.Sprintf
}()

// Logf writes a formatted diagnostic line to stderr, rendering plain
// nodes and generic JSON-ish args in readable form.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			args[i] = Plain{x}.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprint(os.Stderr, warnf(msg, args...))
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
