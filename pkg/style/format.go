package style

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how a Printer decorates its output
type Format int

const (
	// FormatAuto resolves to FormatTerminal or FormatText per writer
	FormatAuto Format = iota
	// FormatTerminal uses prefixes, colours and markup styles
	FormatTerminal
	// FormatText strips markup and writes bare lines
	FormatText
)

var formatNames = map[Format]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
}

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat accepts the names printed by String and a few aliases,
// ignoring case.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s)
}

// DetectFormat picks FormatTerminal only for a colour capable terminal that
// has not opted out through NO_COLOR. Writers that are not files are text.
func DetectFormat(w io.Writer) Format {
	f, ok := w.(*os.File)
	if !ok {
		return FormatText
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return FormatText
	}
	out := termenv.NewOutput(f)
	if out.EnvNoColor() || out.EnvColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
