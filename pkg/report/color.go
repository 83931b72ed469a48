package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled resolves a color mode for the given destination. In auto
// mode color is used only when out is a terminal and NO_COLOR is unset.
func ColorEnabled(mode string, out io.Writer) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := out.(*os.File)
		if !ok {
			return false, nil
		}
		return term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown color mode: %s", mode)
	}
}

// styles holds color formatters for human output
type styles struct {
	path       *color.Color
	lineNumber *color.Color
	match      *color.Color
	errPath    *color.Color
}

// newStyles creates color formatters. Each formatter is forced on or off so
// output does not depend on the package-level color.NoColor.
func newStyles(enabled bool) *styles {
	s := &styles{
		path:       color.New(color.Bold, color.FgMagenta),
		lineNumber: color.New(color.FgBlue),
		match:      color.New(color.Bold, color.FgRed),
		errPath:    color.New(color.FgGreen),
	}

	for _, c := range []*color.Color{s.path, s.lineNumber, s.match, s.errPath} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}
