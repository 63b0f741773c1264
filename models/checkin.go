package models

import (
	"fmt"
	"time"
)

// CheckinRecord is a single observed visit from the check-in dataset.
// Records are immutable once loaded.
type CheckinRecord struct {
	UserID          string    `json:"user_id"`
	VenueID         string    `json:"venue_id"`
	VenueCategoryID string    `json:"venue_category_id,omitempty"`
	VenueCategory   string    `json:"venue_category"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	TimezoneOffset  int       `json:"timezone_offset_minutes,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Identity returns the grouping key that collapses repeated check-ins
// into one place.
func (r *CheckinRecord) Identity() VenueIdentity {
	return VenueIdentity{
		VenueID:       r.VenueID,
		VenueCategory: r.VenueCategory,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
	}
}

func (r *CheckinRecord) ToString() string {
	return fmt.Sprintf("Checkin(user=%s, venue=%s, category=%s, at=%s)",
		r.UserID, r.VenueID, r.VenueCategory, r.Timestamp.Format(time.RFC3339))
}
