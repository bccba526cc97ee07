package commands

import (
	"embed"
	"io"

	"github.com/arthur-debert/deps/pkg/logging"
	"github.com/arthur-debert/deps/pkg/style"
	"github.com/arthur-debert/deps/pkg/topics"
	"github.com/spf13/cobra"
)

//go:embed help/*.md
var helpFS embed.FS

// topicRenderer picks glamour or plain text from the --format flag, which
// is only known once flags are parsed.
type topicRenderer struct {
	opts *options
	out  func() io.Writer
}

func (r topicRenderer) Render(content, ext string) string {
	printer, err := r.opts.printer(r.out())
	if err != nil || printer.Format() == style.FormatText {
		return content
	}
	return topics.NewGlamourRenderer().Render(content, ext)
}

func installTopics(root *cobra.Command, opts *options) {
	renderer := topicRenderer{opts: opts, out: root.OutOrStdout}
	if _, err := topics.Install(root, helpFS, "help", topics.Options{Renderer: renderer}); err != nil {
		logger := logging.GetLogger("commands")
		logger.Warn().Err(err).Msg("help topics unavailable")
	}
}
