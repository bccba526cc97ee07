package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for display. ext is the topic file
// extension, including the dot.
type Renderer interface {
	Render(content, ext string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render returns content as is
func (PlainRenderer) Render(content, _ string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour
type GlamourRenderer struct {
	// Style is a glamour style name ("dark", "light", "notty") or a path to
	// a style file. Empty or "auto" detects from the terminal.
	Style string
	// Width wraps output at this many columns; 0 keeps glamour's default.
	Width int
}

// NewGlamourRenderer returns a renderer with terminal style detection
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render converts markdown to styled terminal output. Other formats, and any
// glamour failure, return content unchanged.
func (r *GlamourRenderer) Render(content, ext string) string {
	if ext != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style == "" || r.Style == "auto" {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}
