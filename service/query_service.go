package services

import (
	"fmt"
	"log"

	"checkin-server/config"
	"checkin-server/dao/redis"
	"checkin-server/flow"
	"checkin-server/models"
	"checkin-server/spatial"
	"checkin-server/temporal"
)

// QueryService is the single entry surface for analytical queries. It
// validates every parameter up front (all-or-nothing: no component runs
// until validation passes), dispatches to the analytical components, and
// optionally consults the Redis result cache. queryCache may be nil, in
// which case every query recomputes.
type QueryService struct {
	spatialIndex *spatial.Index
	aggregator   *temporal.Aggregator
	flowAnalyzer *flow.Analyzer
	queryCache   *redis.RedisQueryCache
}

// NewQueryService constructs a QueryService over the analytical components.
func NewQueryService(
	spatialIndex *spatial.Index,
	aggregator *temporal.Aggregator,
	flowAnalyzer *flow.Analyzer,
	queryCache *redis.RedisQueryCache) *QueryService {

	return &QueryService{
		spatialIndex: spatialIndex,
		aggregator:   aggregator,
		flowAnalyzer: flowAnalyzer,
		queryCache:   queryCache,
	}
}

// ListCategories returns the selectable category catalog: labels whose
// total check-in count exceeds the minimum support threshold, ascending.
func (qs *QueryService) ListCategories() ([]models.CategoryCount, error) {
	var cached []models.CategoryCount
	if qs.cacheGet("categories", &cached) {
		return cached, nil
	}

	result := qs.aggregator.Categories()
	qs.cacheSet("categories", result)
	return result, nil
}

// NearestVenues returns the k nearest distinct venues of the category to
// the point, ascending by distance in meters.
func (qs *QueryService) NearestVenues(lat, lon float64, category string, k int) ([]models.NearestVenue, error) {
	if lat < -90 || lat > 90 {
		return nil, models.NewValidationError("latitude", "must be in [-90, 90]")
	}
	if lon < -180 || lon > 180 {
		return nil, models.NewValidationError("longitude", "must be in [-180, 180]")
	}
	if category == "" {
		return nil, models.NewValidationError("category", "must not be empty")
	}
	if k < 1 {
		return nil, models.NewValidationError("k", "must be at least 1")
	}

	fingerprint := fmt.Sprintf("nearest:%f:%f:%s:%d", lat, lon, category, k)
	var cached []models.NearestVenue
	if qs.cacheGet(fingerprint, &cached) {
		return cached, nil
	}

	result := qs.spatialIndex.NearestVenues(lat, lon, category, k)
	qs.cacheSet(fingerprint, result)
	return result, nil
}

// PopularCategoriesByHour returns the topN most active categories during
// the given hour of day inside the metro bounding box, each with its top
// venues. A topN of 0 selects the default.
func (qs *QueryService) PopularCategoriesByHour(hour, topN int) ([]models.PopularCategory, error) {
	if hour < 0 || hour > 23 {
		return nil, models.NewValidationError("hour", "must be in [0, 23]")
	}
	if topN == 0 {
		topN = config.DEFAULT_POPULAR_TOP_N
	}
	if topN < 1 {
		return nil, models.NewValidationError("top", "must be at least 1")
	}

	fingerprint := fmt.Sprintf("popular:%d:%d", hour, topN)
	var cached []models.PopularCategory
	if qs.cacheGet(fingerprint, &cached) {
		return cached, nil
	}

	result := qs.aggregator.PopularCategories(hour, topN)
	qs.cacheSet(fingerprint, result)
	return result, nil
}

// VenueFlow returns the start venue and the top k destinations visitors
// traveled to within windowHours after checking in there. Fails with
// NotFoundError when the venue ID does not appear in the dataset.
func (qs *QueryService) VenueFlow(venueID string, windowHours, k int) (*models.VenueFlowResult, error) {
	if venueID == "" {
		return nil, models.NewValidationError("venue_id", "must not be empty")
	}
	if windowHours < config.FLOW_WINDOW_MIN_HOURS || windowHours > config.FLOW_WINDOW_MAX_HOURS {
		return nil, models.NewValidationError("hours", fmt.Sprintf("must be in [%d, %d]",
			config.FLOW_WINDOW_MIN_HOURS, config.FLOW_WINDOW_MAX_HOURS))
	}
	if k < 1 {
		return nil, models.NewValidationError("k", "must be at least 1")
	}

	fingerprint := fmt.Sprintf("flow:%s:%d:%d", venueID, windowHours, k)
	var cached models.VenueFlowResult
	if qs.cacheGet(fingerprint, &cached) {
		return &cached, nil
	}

	result, err := qs.flowAnalyzer.VenueFlow(venueID, windowHours, k)
	if err != nil {
		return nil, err
	}
	qs.cacheSet(fingerprint, result)
	return result, nil
}

func (qs *QueryService) cacheGet(fingerprint string, value interface{}) bool {
	if qs.queryCache == nil {
		return false
	}
	hit, err := qs.queryCache.GetResult(fingerprint, value)
	if err != nil {
		log.Printf("[QueryService] Cache read failed for %s: %v", fingerprint, err)
		return false
	}
	return hit
}

func (qs *QueryService) cacheSet(fingerprint string, value interface{}) {
	if qs.queryCache == nil {
		return
	}
	if err := qs.queryCache.SetResult(fingerprint, value); err != nil {
		log.Printf("[QueryService] Cache write failed for %s: %v", fingerprint, err)
	}
}
