package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"github.com/roadlog/roadlog/pkg/trip"
)

// Format selects the serialization of a trip export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var (
	// ErrEmptyTripData means the trip has nothing to export: no segments
	// and no daily logs.
	ErrEmptyTripData = errors.New("trip has no data to export")
	// ErrUnsupportedFormat means the requested export format is not one of
	// the Format constants.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// csvHeader is the fixed column order of the segment export. Downstream
// spreadsheets key on these names, do not reorder.
var csvHeader = []string{
	"Segment ID",
	"Type",
	"Start Location",
	"End Location",
	"Distance (miles)",
	"Duration (hours)",
	"Start Time",
	"End Time",
	"Start Lon",
	"Start Lat",
	"End Lon",
	"End Lat",
}

// Serialize renders a trip in the requested format and returns the payload
// with its MIME content type.
func Serialize(t trip.Trip, format Format) ([]byte, string, error) {
	if len(t.Segments) == 0 && len(t.Logs) == 0 {
		return nil, "", ErrEmptyTripData
	}
	switch format {
	case FormatCSV:
		payload, err := serializeCSV(t)
		return payload, "text/csv", err
	case FormatJSON:
		payload, err := serializeJSON(t)
		return payload, "application/json", err
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Filename names the download for a trip export, matching the convention
// the web client historically used.
func Filename(t trip.Trip, format Format) string {
	base := "trip-details"
	if t.ID != 0 {
		base = fmt.Sprintf("trip-%d", t.ID)
	}
	switch format {
	case FormatCSV:
		return base + "_segments.csv"
	case FormatJSON:
		return base + ".json"
	default:
		return base
	}
}

// LogsheetFilename names the download of the rendered daily log document.
func LogsheetFilename(t trip.Trip) string {
	if t.ID != 0 {
		return fmt.Sprintf("trip-%d_logsheets.json", t.ID)
	}
	return "trip-details_logsheets.json"
}

func serializeCSV(t trip.Trip) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, segment := range t.Segments {
		startLon, startLat := coordinateFields(segment.StartCoordinates)
		endLon, endLat := coordinateFields(segment.EndCoordinates)
		record := []string{
			strconv.Itoa(segment.ID),
			string(segment.Type),
			segment.StartLocation,
			segment.EndLocation,
			strconv.FormatFloat(segment.DistanceMiles, 'f', -1, 64),
			strconv.FormatFloat(segment.DurationHours, 'f', -1, 64),
			segment.StartTime.Format(time.RFC3339),
			segment.EndTime.Format(time.RFC3339),
			startLon,
			startLat,
			endLon,
			endLat,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func serializeJSON(t trip.Trip) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(t, "", "  ")
}

func coordinateFields(c *trip.Coordinates) (string, string) {
	if c == nil {
		return "", ""
	}
	return strconv.FormatFloat(c[0], 'f', -1, 64), strconv.FormatFloat(c[1], 'f', -1, 64)
}
