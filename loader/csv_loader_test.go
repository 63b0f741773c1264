package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const datasetHeader = "userId,venueId,venueCategoryId,venueCategory,latitude,longitude,timezoneOffset,utcTimestamp\n"

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checkins.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture CSV: %v", err)
	}
	return path
}

func TestReadCheckinsFromCSV_ParsesRows(t *testing.T) {
	csv := datasetHeader +
		"470,49bbd6c0f964a520f4531fe3,4bf58dd8d48988d127951735,Arts & Crafts Store,35.70590159,139.61967086,540,Tue Apr 03 18:00:09 +0000 2012\n" +
		"979,4b5b1d59f964a520900929e3,4bf58dd8d48988d1df941735,Bridge,35.68777897,139.76862044,540,2012-04-03T18:00:25Z\n"

	records, err := ReadCheckinsFromCSV(writeTempCSV(t, csv))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.UserID != "470" {
		t.Errorf("Expected user 470, got %s", first.UserID)
	}
	if first.VenueCategory != "Arts & Crafts Store" {
		t.Errorf("Unexpected category: %s", first.VenueCategory)
	}
	if first.Latitude != 35.70590159 || first.Longitude != 139.61967086 {
		t.Errorf("Unexpected coordinates: %f, %f", first.Latitude, first.Longitude)
	}
	if first.TimezoneOffset != 540 {
		t.Errorf("Expected offset 540, got %d", first.TimezoneOffset)
	}

	want, _ := time.Parse(time.RFC3339, "2012-04-03T18:00:09Z")
	if !first.Timestamp.Equal(want) {
		t.Errorf("Expected timestamp %v, got %v", want, first.Timestamp)
	}
	if records[1].Timestamp.Hour() != 18 {
		t.Errorf("Expected RFC3339 fallback to parse, got %v", records[1].Timestamp)
	}
}

func TestReadCheckinsFromCSV_SkipsMalformedRows(t *testing.T) {
	csv := datasetHeader +
		"1,v1,c1,Cafe,35.68,139.65,540,Tue Apr 03 10:00:00 +0000 2012\n" +
		"2,v2,c2,Cafe,not-a-number,139.65,540,Tue Apr 03 10:00:00 +0000 2012\n" +
		"3,v3,c3,Cafe,95.0,139.65,540,Tue Apr 03 10:00:00 +0000 2012\n" +
		"4,v4,c4,Cafe,35.68,139.65,540,yesterday\n"

	records, err := ReadCheckinsFromCSV(writeTempCSV(t, csv))
	if err != nil {
		t.Fatalf("Expected malformed rows to be skipped, got error %v", err)
	}
	if len(records) != 1 || records[0].VenueID != "v1" {
		t.Errorf("Expected only the valid row to survive, got %+v", records)
	}
}

func TestReadCheckinsFromCSV_MissingColumn(t *testing.T) {
	csv := "userId,venueId\n1,v1\n"
	if _, err := ReadCheckinsFromCSV(writeTempCSV(t, csv)); err == nil {
		t.Error("Expected an error for a header missing required columns")
	}
}

func TestReadCheckinsFromCSV_MissingFile(t *testing.T) {
	if _, err := ReadCheckinsFromCSV(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("Expected an error for a missing dataset file")
	}
}
