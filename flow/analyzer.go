package flow

import (
	"sort"
	"time"

	"checkin-server/models"
	"checkin-server/store"
)

// Analyzer computes next-destination flow: where visitors of a starting
// venue checked in afterwards, within a bounded time window.
type Analyzer struct {
	store *store.Store
}

// NewAnalyzer creates an Analyzer over the given store.
func NewAnalyzer(s *store.Store) *Analyzer {
	return &Analyzer{store: s}
}

// VenueFlow returns the start venue's identity and the top k destination
// venues visited within windowHours after a check-in at the start venue,
// ranked by flow count descending, ties broken by venue ID ascending.
//
// Every (start visit, qualifying later visit) pair counts once: repeat
// visits to the start venue produce overlapping windows and all of them
// contribute, including later re-visits to the start venue itself.
func (a *Analyzer) VenueFlow(venueID string, windowHours, k int) (*models.VenueFlowResult, error) {
	startCheckins := a.store.VenueCheckins(venueID)
	if len(startCheckins) == 0 {
		return nil, models.NewNotFoundError("venue", venueID)
	}

	// All records sharing a venue ID share its identity; any one resolves it.
	startVenue := startCheckins[0].Identity()

	window := time.Duration(windowHours) * time.Hour
	flowCounts := make(map[models.VenueIdentity]int)
	flowUsers := make(map[models.VenueIdentity]map[string]struct{})

	for i := range startCheckins {
		start := &startCheckins[i]
		timeline := a.store.UserTimeline(start.UserID)

		// First record strictly after the start visit, then scan forward
		// until the window closes.
		from := sort.Search(len(timeline), func(j int) bool {
			return timeline[j].Timestamp.After(start.Timestamp)
		})
		deadline := start.Timestamp.Add(window)

		for j := from; j < len(timeline); j++ {
			next := &timeline[j]
			if next.Timestamp.After(deadline) {
				break
			}
			destination := next.Identity()
			flowCounts[destination]++
			if flowUsers[destination] == nil {
				flowUsers[destination] = make(map[string]struct{})
			}
			flowUsers[destination][next.UserID] = struct{}{}
		}
	}

	edges := make([]models.FlowEdge, 0, len(flowCounts))
	for destination, count := range flowCounts {
		edges = append(edges, models.FlowEdge{
			VenueIdentity: destination,
			FlowCount:     count,
			UniqueUsers:   len(flowUsers[destination]),
		})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].FlowCount != edges[j].FlowCount {
			return edges[i].FlowCount > edges[j].FlowCount
		}
		return edges[i].VenueID < edges[j].VenueID
	})
	if len(edges) > k {
		edges = edges[:k]
	}

	return &models.VenueFlowResult{
		StartVenue:       startVenue,
		NextDestinations: edges,
	}, nil
}
