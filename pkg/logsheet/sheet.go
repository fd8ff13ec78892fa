package logsheet

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/roadlog/roadlog/pkg/eldlog"
)

// ErrMissingLogData marks a daily log that cannot be rendered as a sheet
// because its timeline or hours summary is absent. The document assembler
// recovers from it with a placeholder page.
var ErrMissingLogData = errors.New("daily log is missing status timeline or hours summary")

const (
	gridStartY   = 72.0
	gridHeight   = 40.0
	rowHeight    = gridHeight / 4
	totalsColW   = 18.0
	gridWidth    = ContentWidth - totalsColW - 2
	gridEndX     = Margin + gridWidth
	totalsColX   = gridEndX + 2

	remarksLabelY = gridStartY + gridHeight + 6
	remarksBoxY   = remarksLabelY + 5
	remarksHeight = 25.0
	remarksPitch  = 3.5
)

var remarksLineSpace float64 = remarksHeight - 2

var maxRemarkLines = int(remarksLineSpace / remarksPitch)

// Renderer turns a DailyLog into the drawing primitives of a standard
// one-day duty-status sheet. It holds no state between calls; RenderPage is a
// pure function of its input and safe for concurrent use.
type Renderer struct {
	styles eldlog.StyleTable
}

func NewRenderer(styles eldlog.StyleTable) *Renderer {
	return &Renderer{styles: styles}
}

// RenderPage renders one daily log as a full sheet. The supplied hours
// summary is authoritative for the totals column; it is not recomputed here.
func (r *Renderer) RenderPage(dailyLog eldlog.DailyLog) (Page, error) {
	if dailyLog.StatusTimeline == nil || dailyLog.HoursSummary == nil {
		return Page{}, fmt.Errorf("%w: date %s", ErrMissingLogData, dailyLog.Date)
	}

	page := Page{Date: dailyLog.Date}
	page.Primitives = append(page.Primitives, r.sheetStructure(dailyLog.Date)...)
	page.Primitives = append(page.Primitives, r.statusLines(dailyLog.StatusTimeline)...)
	page.Primitives = append(page.Primitives, r.totalHours(dailyLog.HoursSummary)...)
	page.Primitives = append(page.Primitives, r.remarks(dailyLog.StatusTimeline)...)
	return page, nil
}

// sheetStructure draws the static form: header fields, the 24x4 grid with
// quarter-hour ticks, the totals column, and the remarks/recap blocks. The
// geometry reproduces the standard paper form layout.
func (r *Renderer) sheetStructure(date string) []Primitive {
	var prims []Primitive
	y := Margin

	title := text(PageWidth/2, y, "Driver's Daily Log", 14)
	title.Bold = true
	title.Align = AlignCenter
	prims = append(prims, title)
	y += 5
	subtitle := text(PageWidth/2, y, "(24 hours)", 9)
	subtitle.Align = AlignCenter
	prims = append(prims, subtitle)
	y += 6

	prims = append(prims, r.dateFields(date, y)...)

	originDupX := PageWidth - Margin - 68
	prims = append(prims,
		text(originDupX, y-4, "Original - File at home terminal.", 7),
		text(originDupX, y, "Duplicate - Driver retains in his/her possession for 8 days.", 7),
	)
	y += 6

	fromToWidth := (ContentWidth - 10) / 2
	prims = append(prims,
		text(Margin, y, "From:", 9),
		line(Margin+12, y+1, Margin+12+fromToWidth, y+1, 0.2),
		text(Margin+17+fromToWidth, y, "To:", 9),
		line(Margin+24+fromToWidth, y+1, Margin+24+2*fromToWidth, y+1, 0.2),
	)
	y += 7

	prims = append(prims, r.mileageAndCarrier(y)...)
	y += 10

	prims = append(prims,
		text(Margin, y, "Truck/Tractor and Trailer Numbers or", 9),
		text(Margin, y+4, "License Plate(s)/State (show each unit)", 9),
		rect(Margin, y+6, 90, 10, 0.2),
	)

	prims = append(prims, r.grid()...)
	prims = append(prims, r.totalsColumn()...)
	prims = append(prims, r.remarksBlock()...)
	prims = append(prims, r.recapBlock()...)
	return prims
}

func (r *Renderer) dateFields(date string, y float64) []Primitive {
	year, month, day := "____", "__", "__"
	if date != "" {
		parts := strings.SplitN(date, "-", 3)
		year = parts[0]
		if len(parts) > 1 && parts[1] != "" {
			month = parts[1]
		}
		if len(parts) > 2 && parts[2] != "" {
			day = parts[2]
		}
	}

	x := Margin + 12
	return []Primitive{
		text(Margin, y, "Date:", 9),
		text(x+3, y, month, 9),
		line(x+2, y+1, x+9, y+1, 0.2),
		text(x+10, y, "/", 9),
		text(x+12, y, day, 9),
		line(x+11, y+1, x+17, y+1, 0.2),
		text(x+18, y, "/", 9),
		text(x+20, y, year, 9),
		line(x+19, y+1, x+30, y+1, 0.2),
		text(x+3, y+3, "(month)", 7),
		text(x+12, y+3, "(day)", 7),
		text(x+21, y+3, "(year)", 7),
	}
}

func (r *Renderer) mileageAndCarrier(y float64) []Primitive {
	const boxW, boxH = 45.0, 8.0
	milesLabel := text(Margin+boxW/2, y+5, "Total Miles Driving Today", 9)
	milesLabel.Align = AlignCenter
	mileageLabel := text(Margin+boxW+5+boxW/2, y+5, "Total Mileage Today", 9)
	mileageLabel.Align = AlignCenter

	carrierX := Margin + 2*boxW + 15
	carrierEndX := PageWidth - Margin
	return []Primitive{
		rect(Margin, y, boxW, boxH, 0.2),
		milesLabel,
		rect(Margin+boxW+5, y, boxW, boxH, 0.2),
		mileageLabel,
		text(carrierX, y+3, "Name of Carrier or Carriers:", 9),
		line(carrierX+45, y+1, carrierEndX, y+1, 0.2),
		text(carrierX, y+8, "Main Office Address:", 9),
		line(carrierX+35, y+9, carrierEndX, y+9, 0.2),
		text(carrierX, y+13, "Home Terminal Address:", 9),
		line(carrierX+40, y+14, carrierEndX, y+14, 0.2),
	}
}

func (r *Renderer) grid() []Primitive {
	prims := []Primitive{rect(Margin, gridStartY, gridWidth, gridHeight, 0.1)}

	// Row labels, right-aligned against the grid's left edge. The On Duty row
	// carries a two-line label like the paper form.
	labelX := Margin - 1
	for i, status := range eldlog.RowOrder {
		rowLabel := r.styles[status].RowLabel
		baseY := gridStartY + rowHeight*float64(i) + rowHeight/2
		if status == eldlog.StatusOnDuty {
			for j, part := range []string{rowLabel, "(not driving)"} {
				t := text(labelX, baseY+1+float64(j)*2.5, part, 7)
				t.Bold = true
				t.Align = AlignRight
				t.MaxWidth = 50
				prims = append(prims, t)
			}
		} else {
			t := text(labelX, baseY+2, rowLabel, 7)
			t.Bold = true
			t.Align = AlignRight
			t.MaxWidth = 50
			prims = append(prims, t)
		}
		if i < 3 {
			sepY := gridStartY + rowHeight*float64(i+1)
			prims = append(prims, line(Margin, sepY, gridEndX, sepY, 0.1))
		}
	}

	prims = append(prims, line(Margin, gridStartY, gridEndX, gridStartY, 0.1))

	hourWidth := gridWidth / 24
	headerY := gridStartY - 4
	for hour := 0; hour <= 24; hour++ {
		x := Margin + float64(hour)*hourWidth
		isMajor := hour%3 == 0
		if isMajor {
			prims = append(prims, line(x, gridStartY, x, gridStartY+gridHeight, 0.2))
		} else {
			prims = append(prims, dashedLine(x, gridStartY, x, gridStartY+gridHeight, 0.1))
		}

		label := ""
		switch {
		case hour == 0 || hour == 24:
			label = "Mid"
		case hour == 12:
			label = "Noon"
		case isMajor:
			label = fmt.Sprintf("%d", hour%12)
		}
		if label != "" {
			t := text(x, headerY, label, 7)
			t.Align = AlignCenter
			prims = append(prims, t)
		}

		if hour < 24 {
			for q := 1; q <= 3; q++ {
				qx := x + float64(q)*hourWidth/4
				for row := 0; row < 4; row++ {
					rowY := gridStartY + rowHeight*float64(row)
					prims = append(prims, dashedLine(qx, rowY+rowHeight-1.5, qx, rowY+rowHeight, 0.1))
				}
			}
		}
	}
	return prims
}

func (r *Renderer) totalsColumn() []Primitive {
	headerY := gridStartY - 4
	totalLabel := text(totalsColX+totalsColW/2, headerY, "Total", 7)
	totalLabel.Align = AlignCenter
	hoursLabel := text(totalsColX+totalsColW/2, headerY+3, "Hours", 7)
	hoursLabel.Align = AlignCenter

	prims := []Primitive{
		totalLabel,
		hoursLabel,
		rect(totalsColX, gridStartY, totalsColW, gridHeight, 0.2),
	}
	for i := 0; i < 4; i++ {
		y := gridStartY + rowHeight*float64(i) + rowHeight/2 + 1
		prims = append(prims, line(totalsColX, y, totalsColX+totalsColW, y, 0.2))
	}
	// Heavier rule under the column for the grand total.
	prims = append(prims, line(totalsColX, gridStartY+gridHeight+1, totalsColX+totalsColW, gridStartY+gridHeight+1, 0.4))
	return prims
}

func (r *Renderer) remarksBlock() []Primitive {
	return []Primitive{
		text(Margin, remarksLabelY, "Remarks", 10),
		rect(Margin, remarksLabelY+2, ContentWidth, remarksHeight, 0.2),
		text(Margin+1, remarksLabelY+4, "Location Changes/Remarks:", 8),
	}
}

func (r *Renderer) recapBlock() []Primitive {
	y := remarksLabelY + remarksHeight + 4
	shipX := Margin + 95
	prims := []Primitive{
		text(Margin, y, "Shipping Documents:", 9),
		line(Margin+40, y+1, shipX-5, y+1, 0.2),
		text(Margin, y+4, "DVIR or Manifest No. or", 9),
		text(Margin, y+8, "Shipper & Commodity", 9),
		line(Margin+40, y+9, shipX-5, y+9, 0.2),
	}
	y += 12

	instruction := text(Margin, y,
		"Enter name of place you reported and where released from work and when and where each change of duty occurred. Use time standard of home terminal.", 8)
	instruction.MaxWidth = ContentWidth
	prims = append(prims, instruction)
	y += 7

	prims = append(prims, line(Margin, y, Margin+ContentWidth, y, 0.2))
	y += 4
	prims = append(prims, text(Margin, y, "Recap: Complete at end of day", 9))

	recapY := y + 6
	col1 := Margin + 35.0
	const colW = 50.0
	col2 := col1 + colW + 5
	col3 := col2 + colW + 5

	prims = append(prims,
		text(Margin, recapY+3, "On duty hours", 8),
		text(Margin, recapY+6, "today. Total", 8),
		text(Margin, recapY+9, "lines 3 & 4", 8),
		line(col1-8, recapY+10, col1-2, recapY+10, 0.2),

		text(col1, recapY, "70 Hour / 8 Day", 8),
		text(col1, recapY+6, "A. Total hrs on duty last 7", 8),
		text(col1, recapY+9, "   days including today.", 8),
		line(col1+colW-8, recapY+10, col1+colW-2, recapY+10, 0.2),
		text(col1, recapY+15, "B. Total hours available", 8),
		text(col1, recapY+18, "   tomorrow (70 hr. - A*)", 8),
		line(col1+colW-8, recapY+19, col1+colW-2, recapY+19, 0.2),

		text(col2, recapY, "60 Hour / 7 Day", 8),
		text(col2, recapY+6, "A. Total hrs on duty last 6", 8),
		text(col2, recapY+9, "   days including today.", 8),
		line(col2+colW-8, recapY+10, col2+colW-2, recapY+10, 0.2),
		text(col2, recapY+15, "B. Total hours available", 8),
		text(col2, recapY+18, "   tomorrow (60 hr. - A*)", 8),
		line(col2+colW-8, recapY+19, col2+colW-2, recapY+19, 0.2),

		text(col3, recapY, "*If you took 34", 8),
		text(col3, recapY+3, "consecutive", 8),
		text(col3, recapY+6, "hours off duty", 8),
		text(col3, recapY+9, "you have 60/70", 8),
		text(col3, recapY+12, "hours available", 8),
	)
	return prims
}

// statusLines draws one horizontal segment per interval in the row of its
// status, with a vertical transition mark at every duty-status change that
// does not start at the grid's left edge. The end-of-day sentinel is
// normalized here so a runs-to-midnight segment reaches the right edge.
func (r *Renderer) statusLines(timeline []eldlog.StatusInterval) []Primitive {
	var prims []Primitive
	for i, interval := range timeline {
		startMin, err := eldlog.ParseClock(interval.StartTime)
		if err != nil {
			log.Debugf("sheet: skipping interval %d with unparsable start %q", i, interval.StartTime)
			continue
		}
		endMin, err := eldlog.NormalizeEndOfDay(interval.EndTime)
		if err != nil {
			log.Debugf("sheet: skipping interval %d with unparsable end %q", i, interval.EndTime)
			continue
		}
		startMin = clampMinutes(startMin)
		endMin = clampMinutes(endMin)
		if endMin <= startMin {
			continue
		}

		row := eldlog.Row(interval.Status)
		if row < 0 {
			log.Debugf("sheet: skipping interval %d with unknown status %q", i, interval.Status)
			continue
		}

		startX := Margin + float64(startMin)/eldlog.MinutesPerDay*gridWidth
		endX := Margin + float64(endMin)/eldlog.MinutesPerDay*gridWidth
		y := gridStartY + float64(row)*rowHeight + rowHeight/2
		prims = append(prims, line(startX, y, endX, y, 0.5))

		if startX > Margin {
			prims = append(prims, line(startX, gridStartY, startX, gridStartY+gridHeight, 0.1))
		}
	}
	return prims
}

func (r *Renderer) totalHours(summary map[eldlog.DutyStatus]float64) []Primitive {
	textX := totalsColX + totalsColW/2
	var prims []Primitive
	grandTotal := 0.0
	for i, status := range eldlog.RowOrder {
		hours := summary[status]
		grandTotal += hours
		t := text(textX, gridStartY+rowHeight*float64(i)+rowHeight/2+1.5, fmt.Sprintf("%.1f", hours), 9)
		t.Align = AlignCenter
		prims = append(prims, t)
	}
	total := text(textX, gridStartY+gridHeight+3, fmt.Sprintf("%.1f", grandTotal), 9)
	total.Align = AlignCenter
	total.Bold = true
	return append(prims, total)
}

// remarks lists, in timeline order, every interval with a location that is
// not off duty. The region is a hard one-page capacity: entries past
// maxRemarkLines are dropped, not wrapped onto another region.
func (r *Renderer) remarks(timeline []eldlog.StatusInterval) []Primitive {
	var prims []Primitive
	lineCount := 0
	for _, interval := range timeline {
		if lineCount >= maxRemarkLines {
			break
		}
		if interval.Location == "" || interval.Status == eldlog.StatusOffDuty {
			continue
		}
		remark := fmt.Sprintf("%s - Stat %s @ %s",
			eldlog.DisplayClock(interval.StartTime), interval.Status, interval.Location)
		t := text(Margin+1, remarksBoxY+2+float64(lineCount)*remarksPitch, remark, 8)
		t.MaxWidth = ContentWidth - 2
		prims = append(prims, t)
		lineCount++
	}
	return prims
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	if m > eldlog.MinutesPerDay {
		return eldlog.MinutesPerDay
	}
	return m
}
