package redis

import (
	"context"
	"testing"

	"checkin-server/db"
	"checkin-server/models"
)

func TestRedisQueryCache_SetAndGetResult(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	cache := NewRedisQueryCache(mockClient)

	want := []models.CategoryCount{
		{VenueCategory: "Bar", CheckinCount: 120},
		{VenueCategory: "Cafe", CheckinCount: 300},
	}
	if err := cache.SetResult("categories", want); err != nil {
		t.Fatalf("SetResult failed: %v", err)
	}

	var got []models.CategoryCount
	hit, err := cache.GetResult("categories", &got)
	if err != nil {
		t.Fatalf("GetResult failed: %v", err)
	}
	if !hit {
		t.Fatal("Expected a cache hit")
	}
	if len(got) != 2 || got[0].VenueCategory != "Bar" || got[1].CheckinCount != 300 {
		t.Errorf("Unexpected cached value: %+v", got)
	}

	// Keys are versioned under the cache prefix.
	if _, err := mockClient.Get("query_cache_v1:categories"); err != nil {
		t.Errorf("Expected versioned cache key, got error: %v", err)
	}
}

func TestRedisQueryCache_MissIsNotAnError(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	cache := NewRedisQueryCache(mockClient)

	var got []models.CategoryCount
	hit, err := cache.GetResult("absent", &got)
	if err != nil {
		t.Fatalf("Expected miss without error, got %v", err)
	}
	if hit {
		t.Error("Expected a cache miss")
	}
}

func TestRedisQueryCache_Flush(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	cache := NewRedisQueryCache(mockClient)

	_ = cache.SetResult("a", 1)
	_ = cache.SetResult("b", 2)

	if err := cache.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	var got int
	if hit, _ := cache.GetResult("a", &got); hit {
		t.Error("Expected flushed entry to miss")
	}
}
