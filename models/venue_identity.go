package models

import "fmt"

// VenueIdentity identifies a distinct venue occurrence. Two records belong
// to the same venue when all four fields match.
type VenueIdentity struct {
	VenueID       string  `json:"venue_id"`
	VenueCategory string  `json:"venue_category"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

func (v *VenueIdentity) ToString() string {
	return fmt.Sprintf("Venue(id=%s, category=%s, lat=%f, lon=%f)",
		v.VenueID, v.VenueCategory, v.Latitude, v.Longitude)
}

// NearestVenue is a venue annotated with its great-circle distance (meters)
// from a query point.
type NearestVenue struct {
	VenueIdentity
	Distance float64 `json:"distance"`
}

// VenueCount is a venue annotated with a check-in count, used for
// per-category venue rankings.
type VenueCount struct {
	VenueIdentity
	CheckinCount int `json:"checkin_count"`
}
