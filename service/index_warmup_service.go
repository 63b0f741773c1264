package services

import (
	"log"
	"time"

	"checkin-server/spatial"
	"checkin-server/temporal"
)

// IndexWarmupService pre-builds the per-category spatial indexes in the
// background so first queries do not pay the build cost. Building is
// idempotent and safe against concurrent first queries, so the warmup can
// run while the server is already accepting traffic.
type IndexWarmupService struct {
	spatialIndex *spatial.Index
	aggregator   *temporal.Aggregator
}

// NewIndexWarmupService constructs a new warmup service with dependencies.
func NewIndexWarmupService(
	spatialIndex *spatial.Index,
	aggregator *temporal.Aggregator,
) *IndexWarmupService {
	return &IndexWarmupService{
		spatialIndex: spatialIndex,
		aggregator:   aggregator,
	}
}

// Start launches the warmup in a background goroutine.
func (ws *IndexWarmupService) Start() {
	go ws.warmAll()
}

// WarmAll builds the spatial index for every catalog category, returning
// the number of categories warmed.
func (ws *IndexWarmupService) WarmAll() int {
	categories := ws.aggregator.Categories()
	for _, c := range categories {
		ws.spatialIndex.Warm(c.VenueCategory)
	}
	return len(categories)
}

func (ws *IndexWarmupService) warmAll() {
	log.Println("[IndexWarmupService] Starting spatial index warmup.")
	started := time.Now()
	warmed := ws.WarmAll()
	log.Printf("[IndexWarmupService] Warmed %d category indexes in %v", warmed, time.Since(started))
}
