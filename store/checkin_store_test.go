package store

import (
	"testing"
	"time"

	"checkin-server/models"
)

func checkinAt(user, venue, category string, lat, lon float64, ts string) models.CheckinRecord {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return models.CheckinRecord{
		UserID:        user,
		VenueID:       venue,
		VenueCategory: category,
		Latitude:      lat,
		Longitude:     lon,
		Timestamp:     parsed.UTC(),
	}
}

func testStore() *Store {
	return NewStore([]models.CheckinRecord{
		checkinAt("u1", "v1", "Cafe", 35.68, 139.65, "2012-04-03T10:00:00Z"),
		checkinAt("u1", "v2", "Cafe", 35.69, 139.66, "2012-04-03T10:30:00Z"),
		checkinAt("u2", "v1", "Cafe", 35.68, 139.65, "2012-04-03T18:15:00Z"),
		checkinAt("u2", "v3", "Bar", 35.70, 139.70, "2012-04-03T10:45:00Z"),
		checkinAt("u3", "v4", "Bar", 40.71, -74.00, "2012-04-03T10:50:00Z"),
	})
}

func TestStore_SelectComposesFilters(t *testing.T) {
	s := testStore()

	tests := []struct {
		name    string
		filters []Filter
		want    int
	}{
		{"No filters", nil, 5},
		{"By category", []Filter{ByCategory("Cafe")}, 3},
		{"By venue", []Filter{ByVenue("v1")}, 2},
		{"By hour", []Filter{ByHour(10)}, 4},
		{"Category and hour", []Filter{ByCategory("Cafe"), ByHour(10)}, 2},
		{"Bounding box", []Filter{InBoundingBox(models.BoundingBox{
			LatMin: 35.4, LatMax: 35.8, LonMin: 139.4, LonMax: 139.9,
		})}, 4},
		{"Unknown category", []Filter{ByCategory("Museum")}, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := s.Select(test.filters...)
			if len(got) != test.want {
				t.Errorf("Expected %d records, got %d", test.want, len(got))
			}
		})
	}
}

func TestStore_AfterWithin(t *testing.T) {
	s := testStore()
	start, _ := time.Parse(time.RFC3339, "2012-04-03T10:00:00Z")

	got := s.Select(AfterWithin(start, 2*time.Hour))
	if len(got) != 3 {
		t.Fatalf("Expected 3 records inside window, got %d", len(got))
	}
	for _, r := range got {
		if !r.Timestamp.After(start) {
			t.Errorf("Record at %v is not strictly after the window start", r.Timestamp)
		}
	}

	// The record exactly at the window start must be excluded (strictly
	// later), a record exactly at the deadline included.
	atDeadline := s.Select(AfterWithin(start, 30*time.Minute))
	if len(atDeadline) != 1 {
		t.Errorf("Expected exactly the 10:30 record, got %d records", len(atDeadline))
	}
}

func TestStore_UserTimelineSorted(t *testing.T) {
	s := NewStore([]models.CheckinRecord{
		checkinAt("u1", "v2", "Cafe", 35.69, 139.66, "2012-04-03T12:00:00Z"),
		checkinAt("u1", "v1", "Cafe", 35.68, 139.65, "2012-04-03T09:00:00Z"),
		checkinAt("u1", "v3", "Bar", 35.70, 139.70, "2012-04-03T10:00:00Z"),
	})

	timeline := s.UserTimeline("u1")
	if len(timeline) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(timeline))
	}
	for i := 1; i < len(timeline); i++ {
		if timeline[i].Timestamp.Before(timeline[i-1].Timestamp) {
			t.Errorf("Timeline not sorted at position %d", i)
		}
	}

	if got := s.UserTimeline("unknown"); len(got) != 0 {
		t.Errorf("Expected empty timeline for unknown user, got %d records", len(got))
	}
}

func TestStore_VenueCheckinsAndHasVenue(t *testing.T) {
	s := testStore()

	if got := s.VenueCheckins("v1"); len(got) != 2 {
		t.Errorf("Expected 2 check-ins at v1, got %d", len(got))
	}
	if !s.HasVenue("v1") {
		t.Error("Expected HasVenue(v1) to be true")
	}
	if s.HasVenue("missing") {
		t.Error("Expected HasVenue(missing) to be false")
	}
}

func TestStore_CategoryCounts(t *testing.T) {
	s := testStore()

	counts := s.CategoryCounts()
	if counts["Cafe"] != 3 || counts["Bar"] != 2 {
		t.Errorf("Unexpected category counts: %v", counts)
	}

	// The returned map is a copy; mutating it must not affect the store.
	counts["Cafe"] = 0
	if s.CategoryCounts()["Cafe"] != 3 {
		t.Error("CategoryCounts returned a shared map")
	}
}

func TestStore_DistinctVenues(t *testing.T) {
	s := testStore()

	venues := s.DistinctVenues("Cafe")
	if len(venues) != 2 {
		t.Fatalf("Expected 2 distinct Cafe venues, got %d", len(venues))
	}

	byID := make(map[string]int)
	for _, v := range venues {
		byID[v.VenueID] = v.CheckinCount
	}
	if byID["v1"] != 2 {
		t.Errorf("Expected v1 to have 2 check-ins, got %d", byID["v1"])
	}
	if byID["v2"] != 1 {
		t.Errorf("Expected v2 to have 1 check-in, got %d", byID["v2"])
	}
}
