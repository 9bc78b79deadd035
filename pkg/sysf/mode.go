package sysf

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Mode selects how far the pipeline goes and how much it prints.
type Mode int

const (
	// Parse prints the parsed program and stops.
	Parse Mode = iota
	// Eval type checks, evaluates and prints the result.
	Eval
	// Verbose also prints the program's type before the result.
	Verbose
	// VeryVerbose also prints every reduction step.
	VeryVerbose
)

var modeNames = []string{"Parse", "Eval", "Verbose", "VeryVerbose"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return strcase.ToKebab(modeNames[m])
}

// Modes lists every mode, in order.
func Modes() []Mode {
	return []Mode{Parse, Eval, Verbose, VeryVerbose}
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	want := strcase.ToKebab(s)
	var names []string
	for _, m := range Modes() {
		if m.String() == want {
			return m, nil
		}
		names = append(names, m.String())
	}
	return 0, fmt.Errorf("unknown mode %q (want one of %s)", s, strings.Join(names, ", "))
}
