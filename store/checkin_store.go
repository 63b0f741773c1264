package store

import (
	"log"
	"sort"
	"time"

	"checkin-server/models"
)

// Filter is a read-only predicate over a check-in record. Filters passed
// together to Select compose with logical AND.
type Filter func(r *models.CheckinRecord) bool

// Store holds the immutable check-in dataset plus the read-only indexes
// derived from it at construction time. Once NewStore returns, nothing in
// the store is ever mutated, so concurrent readers need no locking.
type Store struct {
	records []models.CheckinRecord

	byVenue        map[string][]int
	byUser         map[string][]int // positions sorted by timestamp ascending
	categoryCounts map[string]int
}

// NewStore builds a store over the given records. The slice is owned by
// the store after the call and must not be modified by the caller.
func NewStore(records []models.CheckinRecord) *Store {
	s := &Store{
		records:        records,
		byVenue:        make(map[string][]int),
		byUser:         make(map[string][]int),
		categoryCounts: make(map[string]int),
	}

	for i := range records {
		r := &records[i]
		s.byVenue[r.VenueID] = append(s.byVenue[r.VenueID], i)
		s.byUser[r.UserID] = append(s.byUser[r.UserID], i)
		s.categoryCounts[r.VenueCategory]++
	}

	// User timelines are scanned by timestamp windows; sort them once here.
	for _, positions := range s.byUser {
		sort.Slice(positions, func(a, b int) bool {
			return records[positions[a]].Timestamp.Before(records[positions[b]].Timestamp)
		})
	}

	log.Printf("[Store] Loaded %d check-ins (%d venues, %d users, %d categories)",
		len(records), len(s.byVenue), len(s.byUser), len(s.categoryCounts))

	return s
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns the full dataset. The returned slice is shared and
// read-only.
func (s *Store) Records() []models.CheckinRecord {
	return s.records
}

// Select returns every record matching all of the given filters, in
// dataset order.
func (s *Store) Select(filters ...Filter) []models.CheckinRecord {
	var out []models.CheckinRecord
	for i := range s.records {
		r := &s.records[i]
		if matchAll(r, filters) {
			out = append(out, *r)
		}
	}
	return out
}

func matchAll(r *models.CheckinRecord, filters []Filter) bool {
	for _, f := range filters {
		if !f(r) {
			return false
		}
	}
	return true
}

// VenueCheckins returns every check-in at the given venue ID, in dataset
// order. Empty when the venue is unknown.
func (s *Store) VenueCheckins(venueID string) []models.CheckinRecord {
	positions := s.byVenue[venueID]
	out := make([]models.CheckinRecord, 0, len(positions))
	for _, i := range positions {
		out = append(out, s.records[i])
	}
	return out
}

// HasVenue reports whether at least one record carries the venue ID.
func (s *Store) HasVenue(venueID string) bool {
	return len(s.byVenue[venueID]) > 0
}

// UserTimeline returns the user's check-ins sorted by timestamp ascending.
func (s *Store) UserTimeline(userID string) []models.CheckinRecord {
	positions := s.byUser[userID]
	out := make([]models.CheckinRecord, 0, len(positions))
	for _, i := range positions {
		out = append(out, s.records[i])
	}
	return out
}

// CategoryCounts returns the total check-in count per category label.
func (s *Store) CategoryCounts() map[string]int {
	out := make(map[string]int, len(s.categoryCounts))
	for c, n := range s.categoryCounts {
		out[c] = n
	}
	return out
}

// DistinctVenues groups the category's records by venue identity and
// returns one VenueCount per distinct venue, in unspecified order.
func (s *Store) DistinctVenues(category string) []models.VenueCount {
	counts := make(map[models.VenueIdentity]int)
	for i := range s.records {
		r := &s.records[i]
		if r.VenueCategory == category {
			counts[r.Identity()]++
		}
	}

	out := make([]models.VenueCount, 0, len(counts))
	for identity, n := range counts {
		out = append(out, models.VenueCount{VenueIdentity: identity, CheckinCount: n})
	}
	return out
}

// ByCategory filters records carrying the given category label.
func ByCategory(category string) Filter {
	return func(r *models.CheckinRecord) bool {
		return r.VenueCategory == category
	}
}

// ByVenue filters records carrying the given venue ID.
func ByVenue(venueID string) Filter {
	return func(r *models.CheckinRecord) bool {
		return r.VenueID == venueID
	}
}

// ByHour filters records whose timestamp's hour-of-day (UTC) equals hour.
func ByHour(hour int) Filter {
	return func(r *models.CheckinRecord) bool {
		return r.Timestamp.UTC().Hour() == hour
	}
}

// AfterWithin filters records strictly later than start and no more than
// window after it.
func AfterWithin(start time.Time, window time.Duration) Filter {
	deadline := start.Add(window)
	return func(r *models.CheckinRecord) bool {
		return r.Timestamp.After(start) && !r.Timestamp.After(deadline)
	}
}

// InBoundingBox filters records whose coordinates fall inside the box.
func InBoundingBox(box models.BoundingBox) Filter {
	return func(r *models.CheckinRecord) bool {
		return box.Contains(r.Latitude, r.Longitude)
	}
}
