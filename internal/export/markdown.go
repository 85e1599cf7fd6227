package export

import (
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer converts task notes to HTML.
type MarkdownRenderer interface {
	Render(w io.Writer, source string) error
}

type goldmarkRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer returns a MarkdownRenderer backed by goldmark with
// GitHub flavored extensions. Raw HTML in notes is passed through.
func NewMarkdownRenderer() MarkdownRenderer {
	return &goldmarkRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

func (r *goldmarkRenderer) Render(w io.Writer, source string) error {
	if err := r.md.Convert([]byte(source), w); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	return nil
}
