package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"checkin-server/models"
)

// Timestamp layouts observed in the dataset: the Foursquare export uses
// the Twitter-style layout; RFC3339 is accepted as a fallback for
// re-exported files.
var timestampLayouts = []string{
	"Mon Jan 02 15:04:05 -0700 2006",
	time.RFC3339,
}

var csvColumns = []string{
	"userId", "venueId", "venueCategoryId", "venueCategory",
	"latitude", "longitude", "timezoneOffset", "utcTimestamp",
}

// ReadCheckinsFromCSV bulk-loads check-in records from a TSMC2014-shaped
// CSV file. Rows with malformed coordinates or timestamps are skipped and
// counted rather than failing the whole load.
func ReadCheckinsFromCSV(filePath string) ([]models.CheckinRecord, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %q: %w", filePath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(csvColumns)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []models.CheckinRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset row: %w", err)
		}

		record, err := parseRow(row, columns)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, *record)
	}

	log.Printf("[Loader] Read %d check-ins from %s (%d rows skipped)", len(records), filePath, skipped)
	return records, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range csvColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("dataset header is missing column %q", name)
		}
	}
	return columns, nil
}

func parseRow(row []string, columns map[string]int) (*models.CheckinRecord, error) {
	lat, err := strconv.ParseFloat(row[columns["latitude"]], 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(row[columns["longitude"]], 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude: %w", err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("coordinates out of range: %f, %f", lat, lon)
	}

	ts, err := parseTimestamp(row[columns["utcTimestamp"]])
	if err != nil {
		return nil, err
	}

	// The offset column is informational; a missing value is tolerated.
	offset, _ := strconv.Atoi(row[columns["timezoneOffset"]])

	return &models.CheckinRecord{
		UserID:          row[columns["userId"]],
		VenueID:         row[columns["venueId"]],
		VenueCategoryID: row[columns["venueCategoryId"]],
		VenueCategory:   row[columns["venueCategory"]],
		Latitude:        lat,
		Longitude:       lon,
		TimezoneOffset:  offset,
		Timestamp:       ts.UTC(),
	}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}
