package logsheet

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/roadlog/roadlog/pkg/eldlog"
)

// AssembleDocument renders one page per daily log, sorted ascending by date.
// A log missing its timeline or summary gets a placeholder page instead of a
// sheet; a single bad day never aborts the whole export. Every page carries a
// "Page X of N" footer where N counts the logs actually present.
func (r *Renderer) AssembleDocument(logs []eldlog.DailyLog) Document {
	sorted := slices.Clone(logs)
	// Dates are YYYY-MM-DD, so lexicographic order is chronological order.
	slices.SortStableFunc(sorted, func(a, b eldlog.DailyLog) int {
		return strings.Compare(a.Date, b.Date)
	})

	doc := Document{Pages: make([]Page, 0, len(sorted))}
	for i, dailyLog := range sorted {
		page, err := r.RenderPage(dailyLog)
		if err != nil {
			if !errors.Is(err, ErrMissingLogData) {
				log.Errorf("unexpected render failure for %s: %v", dailyLog.Date, err)
			}
			log.Warnf("emitting placeholder page for %s: %v", dailyLog.Date, err)
			page = placeholderPage(dailyLog.Date)
		}
		page.Number = i + 1
		page.Total = len(sorted)
		page.Primitives = append(page.Primitives, pageFooter(i+1, len(sorted)))
		doc.Pages = append(doc.Pages, page)
	}
	return doc
}

func placeholderPage(date string) Page {
	if date == "" {
		date = "unknown date"
	}
	return Page{
		Date:        date,
		Placeholder: true,
		Primitives: []Primitive{
			text(10, 10, fmt.Sprintf("Log data missing for %s", date), 10),
		},
	}
}

func pageFooter(number, total int) Primitive {
	footer := text(PageWidth-Margin, PageHeight-Margin+5, fmt.Sprintf("Page %d of %d", number, total), 8)
	footer.Align = AlignRight
	return footer
}
