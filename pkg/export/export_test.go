package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadlog/roadlog/pkg/eldlog"
	"github.com/roadlog/roadlog/pkg/trip"
)

func sampleTrip() trip.Trip {
	start := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)
	return trip.Trip{
		ID:                    7,
		UID:                   "5f6e2c1a-0000-0000-0000-000000000000",
		CurrentLocation:       "Chicago, IL",
		PickupLocation:        "Milwaukee, WI",
		DropoffLocation:       "Minneapolis, MN",
		CurrentCycleUsedHours: 12.5,
		CreatedAt:             start,
		Segments: []trip.RouteSegment{
			{
				ID:               1,
				Type:             trip.SegmentDrive,
				StartLocation:    "Chicago, IL",
				EndLocation:      "Milwaukee, WI",
				StartCoordinates: &trip.Coordinates{-87.63, 41.88},
				EndCoordinates:   &trip.Coordinates{-87.91, 43.04},
				DistanceMiles:    92.5,
				DurationHours:    1.68,
				StartTime:        start,
				EndTime:          start.Add(101 * time.Minute),
			},
			{
				ID:            2,
				Type:          trip.SegmentPickup,
				StartLocation: "Milwaukee, WI",
				EndLocation:   "Milwaukee, WI",
				DurationHours: 1,
				StartTime:     start.Add(101 * time.Minute),
				EndTime:       start.Add(161 * time.Minute),
			},
		},
		Logs: []eldlog.DailyLog{
			{
				Date: "2025-06-01",
				StatusTimeline: []eldlog.StatusInterval{
					{Status: eldlog.StatusDriving, StartTime: "06:00", EndTime: "07:41"},
				},
				HoursSummary: map[eldlog.DutyStatus]float64{eldlog.StatusDriving: 1.68},
			},
		},
	}
}

func TestSerialize(t *testing.T) {
	t.Run("should render segments as CSV with the fixed column order", func(t *testing.T) {
		// given
		exportedTrip := sampleTrip()

		// when
		payload, contentType, err := Serialize(exportedTrip, FormatCSV)

		// then
		require.NoError(t, err)
		assert.Equal(t, "text/csv", contentType)

		records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, csvHeader, records[0])
		assert.Equal(t, "1", records[1][0])
		assert.Equal(t, "DRIVE", records[1][1])
		assert.Equal(t, "Chicago, IL", records[1][2])
		assert.Equal(t, "92.5", records[1][4])
		assert.Equal(t, "2025-06-01T06:00:00Z", records[1][6])
		assert.Equal(t, "-87.63", records[1][8])
		assert.Equal(t, "41.88", records[1][9])
	})

	t.Run("should leave coordinate columns empty when a segment has none", func(t *testing.T) {
		// given
		exportedTrip := sampleTrip()

		// when
		payload, _, err := Serialize(exportedTrip, FormatCSV)

		// then
		require.NoError(t, err)
		records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
		require.NoError(t, err)
		pickupRecord := records[2]
		assert.Equal(t, "", pickupRecord[8])
		assert.Equal(t, "", pickupRecord[9])
		assert.Equal(t, "", pickupRecord[10])
		assert.Equal(t, "", pickupRecord[11])
	})

	t.Run("should render the whole trip as JSON", func(t *testing.T) {
		// given
		exportedTrip := sampleTrip()

		// when
		payload, contentType, err := Serialize(exportedTrip, FormatJSON)

		// then
		require.NoError(t, err)
		assert.Equal(t, "application/json", contentType)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(payload, &decoded))
		assert.Equal(t, exportedTrip.UID, decoded["uid"])
		assert.Len(t, decoded["segments"], 2)
		assert.Len(t, decoded["eld_logs"], 1)
		assert.Equal(t, 12.5, decoded["current_cycle_used"])
	})

	t.Run("should reject an unknown format", func(t *testing.T) {
		// when
		_, _, err := Serialize(sampleTrip(), Format("xml"))

		// then
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("should reject a trip without segments or logs", func(t *testing.T) {
		// given
		emptyTrip := trip.Trip{ID: 3, UID: "empty"}

		// when
		_, _, err := Serialize(emptyTrip, FormatCSV)

		// then
		assert.ErrorIs(t, err, ErrEmptyTripData)
	})
}

func TestFilename(t *testing.T) {
	t.Run("should derive filenames from the trip id", func(t *testing.T) {
		exportedTrip := sampleTrip()
		assert.Equal(t, "trip-7_segments.csv", Filename(exportedTrip, FormatCSV))
		assert.Equal(t, "trip-7.json", Filename(exportedTrip, FormatJSON))
		assert.Equal(t, "trip-7_logsheets.json", LogsheetFilename(exportedTrip))
	})

	t.Run("should fall back to a generic name for an unsaved trip", func(t *testing.T) {
		assert.Equal(t, "trip-details_segments.csv", Filename(trip.Trip{}, FormatCSV))
		assert.Equal(t, "trip-details_logsheets.json", LogsheetFilename(trip.Trip{}))
	})
}
