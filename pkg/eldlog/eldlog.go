package eldlog

// DutyStatus is one of the four duty-status lines of a driver's daily log.
type DutyStatus string

const (
	StatusOffDuty      DutyStatus = "OFF"
	StatusSleeperBerth DutyStatus = "SB"
	StatusDriving      DutyStatus = "D"
	StatusOnDuty       DutyStatus = "ON"
)

// RowOrder is the fixed top-to-bottom row order of the paper log grid.
var RowOrder = [4]DutyStatus{StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDuty}

type StatusInterval struct {
	Status    DutyStatus `json:"status"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Location  string     `json:"location,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// DailyLog is one calendar day of duty-status records. It is read-only input
// for every renderer in this module: HoursSummary may come from the data
// source, but can always be regenerated from StatusTimeline with Summarize.
type DailyLog struct {
	Date           string                 `json:"date"`
	StatusTimeline []StatusInterval       `json:"status_timeline"`
	HoursSummary   map[DutyStatus]float64 `json:"hours_summary"`
}

// StatusStyle is the presentation configuration for a single duty status.
type StatusStyle struct {
	Label    string
	RowLabel string
	Color    string
}

// StyleTable maps every duty status to its presentation configuration.
// Renderers receive one via their constructor instead of reaching for globals.
type StyleTable map[DutyStatus]StatusStyle

// DefaultStyles returns a fresh copy of the standard style table, so callers
// can adjust their own copy without affecting anyone else.
func DefaultStyles() StyleTable {
	return StyleTable{
		StatusOffDuty:      {Label: "Off Duty", RowLabel: "1. Off Duty", Color: "#718096"},
		StatusSleeperBerth: {Label: "Sleeper Berth", RowLabel: "2. Sleeper Berth", Color: "#ED8936"},
		StatusDriving:      {Label: "Driving", RowLabel: "3. Driving", Color: "#3182CE"},
		StatusOnDuty:       {Label: "On Duty (not driving)", RowLabel: "4. On Duty", Color: "#48BB78"},
	}
}

// Row returns the grid row index (0-3) for a status, or -1 for an unknown one.
func Row(status DutyStatus) int {
	for i, s := range RowOrder {
		if s == status {
			return i
		}
	}
	return -1
}
