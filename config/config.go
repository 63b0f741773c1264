package config

import (
	"os"
	"path/filepath"

	"checkin-server/models"
)

// Server config
const SERVER_ADDRESS = ":8080"
const SERVER_ADDRESS_ENV = "SERVER_ADDRESS"

// Redis config. Redis is optional: when unreachable at startup the query
// result cache is simply disabled.
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_ADDRESS_ENV = "REDIS_ADDRESS"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Analytics config
const MIN_CATEGORY_SUPPORT = 50
const DEFAULT_POPULAR_TOP_N = 5
const POPULAR_TOP_VENUES_N = 3
const FLOW_WINDOW_MIN_HOURS = 1
const FLOW_WINDOW_MAX_HOURS = 24

// METRO_BOUNDING_BOX bounds the popular-by-hour aggregation to the Tokyo
// metropolitan area covered by the dataset.
var METRO_BOUNDING_BOX = models.BoundingBox{
	LatMin: 35.4,
	LatMax: 35.8,
	LonMin: 139.4,
	LonMax: 139.9,
}

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const DATASET_RESOURCE = "dataset_TSMC2014_TKY.csv"
const DATASET_PATH_ENV = "DATASET_PATH"

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}

// GetDatasetPath returns the dataset location, honoring the env override.
func GetDatasetPath() string {
	if p := os.Getenv(DATASET_PATH_ENV); p != "" {
		return p
	}
	return GetResourcePath(DATASET_RESOURCE)
}

// GetServerAddress returns the listen address, honoring the env override.
func GetServerAddress() string {
	if a := os.Getenv(SERVER_ADDRESS_ENV); a != "" {
		return a
	}
	return SERVER_ADDRESS
}

// GetRedisAddress returns the redis address, honoring the env override.
func GetRedisAddress() string {
	if a := os.Getenv(REDIS_DB_ADDRESS_ENV); a != "" {
		return a
	}
	return REDIS_DB_ADDRESS
}
