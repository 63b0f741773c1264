package spatial

import (
	"log"
	"math"
	"sort"

	cmap "github.com/orcaman/concurrent-map/v2"

	"checkin-server/geo"
	"checkin-server/models"
	"checkin-server/store"
)

// Grid geometry. Cells are cellSizeDeg x cellSizeDeg in degree space,
// roughly 1.1km of latitude per cell.
const cellSizeDeg = 0.01

// Categories at or below this venue count skip the grid and scan directly.
const bruteForceThreshold = 64

const initialSearchRadiusMeters = 500.0

// Meters per degree of latitude (minimum over the WGS84 ellipsoid) and per
// degree of longitude at the equator. Used to over-cover a metric radius
// with a degree-space bounding box.
const metersPerLatDegree = 110574.0
const metersPerLonDegreeEquator = 111320.0

// Index answers category-scoped k-nearest-venue queries. Per-category
// structures are built lazily on first access and memoized; concurrent
// first callers may build redundantly, with a single winner published.
type Index struct {
	store      *store.Store
	byCategory cmap.ConcurrentMap[string, *categoryIndex]
}

// NewIndex creates an Index over the given store.
func NewIndex(s *store.Store) *Index {
	return &Index{
		store:      s,
		byCategory: cmap.New[*categoryIndex](),
	}
}

// NearestVenues returns the k nearest distinct venues of the category to
// the query point, ascending by great-circle distance, ties broken by
// venue ID ascending. Fewer than k venues yields all of them; an unknown
// category yields an empty result.
func (idx *Index) NearestVenues(lat, lon float64, category string, k int) []models.NearestVenue {
	ci := idx.categoryIndex(category)
	return ci.nearest(lat, lon, k)
}

// Warm builds and publishes the category's index if not already present.
func (idx *Index) Warm(category string) {
	idx.categoryIndex(category)
}

func (idx *Index) categoryIndex(category string) *categoryIndex {
	if ci, ok := idx.byCategory.Get(category); ok {
		return ci
	}

	ci := buildCategoryIndex(idx.store.DistinctVenues(category))
	idx.byCategory.SetIfAbsent(category, ci)

	// Read back the published value: a concurrent builder may have won.
	winner, _ := idx.byCategory.Get(category)
	return winner
}

type cellKey struct {
	Row int
	Col int
}

// categoryIndex holds one category's distinct venues bucketed into a
// degree grid. Immutable after build.
type categoryIndex struct {
	venues []models.VenueCount
	cells  map[cellKey][]int

	rowMin, rowMax int
	colMin, colMax int
}

func buildCategoryIndex(venues []models.VenueCount) *categoryIndex {
	sort.Slice(venues, func(a, b int) bool {
		if venues[a].VenueID != venues[b].VenueID {
			return venues[a].VenueID < venues[b].VenueID
		}
		if venues[a].Latitude != venues[b].Latitude {
			return venues[a].Latitude < venues[b].Latitude
		}
		return venues[a].Longitude < venues[b].Longitude
	})

	ci := &categoryIndex{
		venues: venues,
		cells:  make(map[cellKey][]int),
	}

	for i := range venues {
		key := cellOf(venues[i].Latitude, venues[i].Longitude)
		ci.cells[key] = append(ci.cells[key], i)
		if len(ci.cells) == 1 {
			ci.rowMin, ci.rowMax = key.Row, key.Row
			ci.colMin, ci.colMax = key.Col, key.Col
			continue
		}
		ci.rowMin = min(ci.rowMin, key.Row)
		ci.rowMax = max(ci.rowMax, key.Row)
		ci.colMin = min(ci.colMin, key.Col)
		ci.colMax = max(ci.colMax, key.Col)
	}

	if len(venues) > 0 {
		log.Printf("[SpatialIndex] Built index for %q: %d venues in %d cells",
			venues[0].VenueCategory, len(venues), len(ci.cells))
	}

	return ci
}

func cellOf(lat, lon float64) cellKey {
	return cellKey{
		Row: int(math.Floor(lat / cellSizeDeg)),
		Col: int(math.Floor(lon / cellSizeDeg)),
	}
}

func (ci *categoryIndex) nearest(lat, lon float64, k int) []models.NearestVenue {
	if len(ci.venues) == 0 {
		return []models.NearestVenue{}
	}
	if len(ci.venues) <= bruteForceThreshold {
		return ci.rankAll(lat, lon, k)
	}

	// Radius-doubling search: gather candidates from all cells overlapping
	// a degree box that over-covers the metric radius, then verify the
	// k-th best distance is actually covered before answering.
	for radius := initialSearchRadiusMeters; ; radius *= 2 {
		candidates, coveredAll := ci.candidatesWithin(lat, lon, radius)
		if coveredAll {
			return ci.rankAll(lat, lon, k)
		}
		if len(candidates) < k {
			continue
		}
		result := rank(ci.venues, candidates, lat, lon, k)
		if result[len(result)-1].Distance <= radius {
			return result
		}
	}
}

// candidatesWithin returns venue positions in every cell overlapping the
// degree box covering the radius, and whether that box spans the whole
// grid extent.
func (ci *categoryIndex) candidatesWithin(lat, lon, radius float64) ([]int, bool) {
	dLat := radius / metersPerLatDegree

	cosLat := math.Cos(lat * math.Pi / 180)
	var dLon float64
	if cosLat < 0.01 {
		// Near the poles a longitude degree shrinks to nothing; take the
		// full longitude range instead of dividing by ~zero.
		dLon = 360
	} else {
		dLon = radius / (metersPerLonDegreeEquator * cosLat)
	}

	lo := cellOf(lat-dLat, lon-dLon)
	hi := cellOf(lat+dLat, lon+dLon)

	coveredAll := lo.Row <= ci.rowMin && hi.Row >= ci.rowMax &&
		lo.Col <= ci.colMin && hi.Col >= ci.colMax

	var candidates []int
	for row := lo.Row; row <= hi.Row; row++ {
		for col := lo.Col; col <= hi.Col; col++ {
			candidates = append(candidates, ci.cells[cellKey{Row: row, Col: col}]...)
		}
	}
	return candidates, coveredAll
}

func (ci *categoryIndex) rankAll(lat, lon float64, k int) []models.NearestVenue {
	all := make([]int, len(ci.venues))
	for i := range all {
		all[i] = i
	}
	return rank(ci.venues, all, lat, lon, k)
}

func rank(venues []models.VenueCount, candidates []int, lat, lon float64, k int) []models.NearestVenue {
	ranked := make([]models.NearestVenue, 0, len(candidates))
	for _, i := range candidates {
		v := &venues[i]
		ranked = append(ranked, models.NearestVenue{
			VenueIdentity: v.VenueIdentity,
			Distance:      geo.HaversineDistance(lat, lon, v.Latitude, v.Longitude),
		})
	}

	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].Distance != ranked[b].Distance {
			return ranked[a].Distance < ranked[b].Distance
		}
		return ranked[a].VenueID < ranked[b].VenueID
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
