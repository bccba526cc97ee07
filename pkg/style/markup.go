package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with lipgloss styles
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser returns a parser that knows every palette tag
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   map[string]lipgloss.Style{},
		patterns: map[string]*regexp.Regexp{},
	}
	for tag, style := range palette {
		p.AddStyle(tag, style)
	}
	return p
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
	p.patterns[tag] = regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render processes markup text and returns styled output
func (p *MarkupParser) Render(text string) string {
	return p.apply(text, func(tag, content string) string {
		return p.styles[tag].Render(content)
	})
}

// Strip removes markup tags, keeping their content
func (p *MarkupParser) Strip(text string) string {
	return p.apply(text, func(_, content string) string {
		return content
	})
}

func (p *MarkupParser) apply(text string, replace func(tag, content string) string) string {
	tags := make([]string, 0, len(p.patterns))
	for tag := range p.patterns {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	// nested tags need several passes
	result := text
	for {
		previous := result
		for _, tag := range tags {
			pattern := p.patterns[tag]
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				return replace(tag, pattern.FindStringSubmatch(match)[1])
			})
		}
		if result == previous {
			return result
		}
	}
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
