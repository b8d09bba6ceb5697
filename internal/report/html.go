package report

import (
	stdhtml "html"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"godist/domain/stats"
	"godist/internal/errors"
)

// HTML converts the markdown report into a standalone page. Raw HTML in
// the document is dropped and the page title is escaped, since the report
// name comes from the caller.
func (r *Renderer) HTML(w io.Writer, rep *stats.Report) error {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage | html.SkipHTML | html.Safelink,
		Title: stdhtml.EscapeString(plainTitle(rep)),
	})

	page := markdown.ToHTML([]byte(markdownDocument(rep)), p, renderer)
	if _, err := w.Write(page); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	return nil
}
