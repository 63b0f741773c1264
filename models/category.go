package models

// CategoryCount is a category label with its total check-in count across
// the dataset.
type CategoryCount struct {
	VenueCategory string `json:"venue_category"`
	CheckinCount  int    `json:"checkin_count"`
}

// PopularCategory is one entry of the popular-categories-by-hour ranking:
// a category, its check-in count in the requested hour, and its top venues.
type PopularCategory struct {
	VenueCategory string       `json:"venue_category"`
	CheckinCount  int          `json:"checkin_count"`
	TopVenues     []VenueCount `json:"top_venues"`
}
