package models

// FlowEdge aggregates user transitions from a start venue to one
// destination venue within a bounded time window.
type FlowEdge struct {
	VenueIdentity
	FlowCount   int `json:"flow_count"`
	UniqueUsers int `json:"unique_users"`
}

// VenueFlowResult is the full answer to a venue-flow query: the resolved
// start venue plus its ranked next destinations.
type VenueFlowResult struct {
	StartVenue       VenueIdentity `json:"start_venue"`
	NextDestinations []FlowEdge    `json:"next_destinations"`
}
