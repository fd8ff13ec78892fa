package logsheet

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadlog/roadlog/pkg/eldlog"
)

func TestAssembleDocument(t *testing.T) {
	t.Run("should emit a placeholder page for a day with missing data", func(t *testing.T) {
		first := sampleLog()
		first.Date = "2025-03-14"
		third := sampleLog()
		third.Date = "2025-03-16"
		// Day two has a timeline but no hours summary.
		second := eldlog.DailyLog{
			Date:           "2025-03-15",
			StatusTimeline: []eldlog.StatusInterval{{Status: eldlog.StatusOffDuty, StartTime: "00:00", EndTime: "23:59"}},
		}

		doc := testRenderer().AssembleDocument([]eldlog.DailyLog{first, second, third})

		require.Len(t, doc.Pages, 3)
		assert.False(t, doc.Pages[0].Placeholder)
		assert.True(t, doc.Pages[1].Placeholder)
		assert.False(t, doc.Pages[2].Placeholder)
		assert.NotEmpty(t, findTexts(doc.Pages[1], "Log data missing for 2025-03-15"))

		for i, page := range doc.Pages {
			assert.Equal(t, i+1, page.Number)
			assert.Equal(t, 3, page.Total)
			assert.NotEmpty(t, findTexts(page, fmt.Sprintf("Page %d of 3", i+1)))
		}
	})

	t.Run("should sort pages ascending by date without mutating input", func(t *testing.T) {
		a := sampleLog()
		a.Date = "2025-03-16"
		b := sampleLog()
		b.Date = "2025-03-14"
		logs := []eldlog.DailyLog{a, b}

		doc := testRenderer().AssembleDocument(logs)

		require.Len(t, doc.Pages, 2)
		assert.Equal(t, "2025-03-14", doc.Pages[0].Date)
		assert.Equal(t, "2025-03-16", doc.Pages[1].Date)
		assert.Equal(t, "2025-03-16", logs[0].Date)
	})

	t.Run("should produce an empty document for no logs", func(t *testing.T) {
		doc := testRenderer().AssembleDocument(nil)
		assert.Empty(t, doc.Pages)
	})
}
