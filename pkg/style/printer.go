package style

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/pterm/pterm"
)

// Printer writes user-facing progress lines. Messages may carry markup; in
// FormatText the tags are stripped and lines are written without prefixes.
type Printer struct {
	out    io.Writer
	format Format
}

// NewPrinter returns a printer writing to out. FormatAuto is resolved once,
// here, with DetectFormat.
func NewPrinter(out io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = DetectFormat(out)
	}
	return &Printer{out: out, format: format}
}

// Format returns the resolved output format.
func (p *Printer) Format() Format {
	return p.format
}

// Infof prints a progress line.
func (p *Printer) Infof(format string, args ...interface{}) {
	p.print(pterm.Info, format, args...)
}

// Successf prints a completion line.
func (p *Printer) Successf(format string, args ...interface{}) {
	p.print(pterm.Success, format, args...)
}

// Warningf prints a non-fatal problem.
func (p *Printer) Warningf(format string, args ...interface{}) {
	p.print(pterm.Warning, format, args...)
}

// Error prints err as rendered by RenderError.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(p.out, p.RenderError(err))
}

func (p *Printer) print(prefix pterm.PrefixPrinter, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if p.format == FormatText {
		fmt.Fprintln(p.out, Strip(msg))
		return
	}
	prefix.WithWriter(p.out).Println(Render(msg))
}

// RenderError renders an error followed by its details, one per line.
func (p *Printer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	label := "Error:"
	if p.format != FormatText {
		label = palette["error"].Render(label)
	}
	fmt.Fprintf(&b, "%s %s", label, err.Error())

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		line := fmt.Sprintf("%s: %v", key, details[key])
		if p.format != FormatText {
			line = palette["muted"].Render(line)
		}
		b.WriteString("\n" + Indent(line, 1))
	}
	return b.String()
}
