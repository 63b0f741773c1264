package temporal

import (
	"sort"

	"checkin-server/config"
	"checkin-server/models"
	"checkin-server/store"
)

// Aggregator answers hour-of-day and category-level aggregation queries.
// All grouping is explicit map accumulation followed by a deterministic
// sort, computed per query over the immutable store.
type Aggregator struct {
	store *store.Store
}

// NewAggregator creates an Aggregator over the given store.
func NewAggregator(s *store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// Categories returns the catalog of category labels whose total check-in
// count is strictly greater than the minimum support threshold, sorted
// ascending. Categories below the threshold are statistically unreliable
// and are not offered as query parameters.
func (a *Aggregator) Categories() []models.CategoryCount {
	out := []models.CategoryCount{}
	for category, count := range a.store.CategoryCounts() {
		if count > config.MIN_CATEGORY_SUPPORT {
			out = append(out, models.CategoryCount{
				VenueCategory: category,
				CheckinCount:  count,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].VenueCategory < out[j].VenueCategory
	})
	return out
}

// PopularCategories returns the topN most checked-in categories during the
// given hour of day inside the metro bounding box, descending by count,
// ties broken by label ascending. Each category carries its top venues for
// the same hour and box.
func (a *Aggregator) PopularCategories(hour, topN int) []models.PopularCategory {
	matched := a.store.Select(
		store.ByHour(hour),
		store.InBoundingBox(config.METRO_BOUNDING_BOX),
	)

	categoryCounts := make(map[string]int)
	venueCounts := make(map[string]map[models.VenueIdentity]int)
	for i := range matched {
		r := &matched[i]
		categoryCounts[r.VenueCategory]++
		if venueCounts[r.VenueCategory] == nil {
			venueCounts[r.VenueCategory] = make(map[models.VenueIdentity]int)
		}
		venueCounts[r.VenueCategory][r.Identity()]++
	}

	ranked := make([]models.PopularCategory, 0, len(categoryCounts))
	for category, count := range categoryCounts {
		ranked = append(ranked, models.PopularCategory{
			VenueCategory: category,
			CheckinCount:  count,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].CheckinCount != ranked[j].CheckinCount {
			return ranked[i].CheckinCount > ranked[j].CheckinCount
		}
		return ranked[i].VenueCategory < ranked[j].VenueCategory
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	for i := range ranked {
		ranked[i].TopVenues = topVenues(venueCounts[ranked[i].VenueCategory], config.POPULAR_TOP_VENUES_N)
	}
	return ranked
}

func topVenues(counts map[models.VenueIdentity]int, n int) []models.VenueCount {
	venues := make([]models.VenueCount, 0, len(counts))
	for identity, count := range counts {
		venues = append(venues, models.VenueCount{
			VenueIdentity: identity,
			CheckinCount:  count,
		})
	}

	sort.Slice(venues, func(i, j int) bool {
		if venues[i].CheckinCount != venues[j].CheckinCount {
			return venues[i].CheckinCount > venues[j].CheckinCount
		}
		return venues[i].VenueID < venues[j].VenueID
	})

	if len(venues) > n {
		venues = venues[:n]
	}
	return venues
}
