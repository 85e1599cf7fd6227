package export

import (
	"io"
	"strings"

	"github.com/valter-silva-au/burrito/pkg/models"
)

// WriteReport assembles an HTML document from the sections cfg selects, in
// the order table of contents, calendar, task list. Non-empty cfg.Warnings are
// appended in a section of their own before the footer.
func WriteReport(w io.Writer, tasks models.TaskMap, cfg models.ExportConfig, md MarkdownRenderer) error {
	p := &printer{w: w}
	p.line(strings.Replace(htmlHeader, "%HEAD%", cfg.HeadPrefix, 1))

	if cfg.IncludeTOC && p.err == nil {
		p.err = WriteTableOfContents(w, tasks, cfg.FoldTOC)
		p.line("<hr>")
	}
	if cfg.IncludeCalendar && p.err == nil {
		p.err = WriteCalendar(w, tasks)
		p.line("<hr>")
	}
	if cfg.IncludeSummary && p.err == nil {
		p.err = WriteTaskList(w, tasks, md)
	}

	if len(cfg.Warnings) > 0 {
		p.printf("<hr><h1>Warnings</h1><pre>%s</pre>\n", escape(strings.Join(cfg.Warnings, "\n")))
	}

	p.line(strings.Replace(htmlFooter, "%TAIL%", cfg.BodySuffix, 1))
	return p.err
}

// reportExporter renders the HTML report with a fixed choice of sections.
// The summary and folding stay under the caller's control.
type reportExporter struct {
	toc      bool
	calendar bool
	md       MarkdownRenderer
}

func (e *reportExporter) Export(w io.Writer, tasks models.TaskMap, cfg models.ExportConfig) error {
	cfg.IncludeTOC = e.toc
	cfg.IncludeCalendar = e.calendar
	return WriteReport(w, tasks, cfg, e.md)
}
