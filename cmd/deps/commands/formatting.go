package commands

import (
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/deps/pkg/style"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// helpTemplateFuncs are the extra funcs available to the usage template.
// Headings are only emphasised when stdout is a styled terminal.
func helpTemplateFuncs() template.FuncMap {
	emphasis := func(s string) string {
		if style.DetectFormat(os.Stdout) != style.FormatTerminal {
			return s
		}
		return pterm.Bold.Sprint(s)
	}
	return template.FuncMap{
		"bold": emphasis,
		"boldUpper": func(s string) string {
			return emphasis(strings.ToUpper(s))
		},
	}
}

func initTemplateFormatting() {
	cobra.AddTemplateFuncs(helpTemplateFuncs())
}
