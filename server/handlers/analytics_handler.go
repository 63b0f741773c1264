package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"checkin-server/models"
	services "checkin-server/service"
	"checkin-server/util"
)

const (
	LAT_QUERY_ARG      = "lat"
	LON_QUERY_ARG      = "lon"
	CATEGORY_QUERY_ARG = "category"
	K_QUERY_ARG        = "k"
	HOUR_QUERY_ARG     = "hour"
	TOP_QUERY_ARG      = "top"
	VENUE_ID_QUERY_ARG = "venue_id"
	HOURS_QUERY_ARG    = "hours"
)

// AnalyticsHandler exposes the analytical query operations over HTTP.
type AnalyticsHandler struct {
	queryService *services.QueryService
}

func NewAnalyticsHandler(queryService *services.QueryService) *AnalyticsHandler {
	return &AnalyticsHandler{queryService: queryService}
}

// ListCategories handles GET /v1/categories
func (h *AnalyticsHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryService.ListCategories()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, result)
}

// GetNearestVenues handles GET /v1/venues/nearest
func (h *AnalyticsHandler) GetNearestVenues(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()

	lat, err := parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		writeError(w, err)
		return
	}
	lon, err := parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		writeError(w, err)
		return
	}
	category := vals.Get(CATEGORY_QUERY_ARG)
	k, err := parseArgInt(vals, K_QUERY_ARG)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.queryService.NearestVenues(lat, lon, category, k)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, result)
}

// GetPopularCategories handles GET /v1/categories/popular
func (h *AnalyticsHandler) GetPopularCategories(w http.ResponseWriter, r *http.Request) {
	hour, top, err := parsePopularArgs(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.queryService.PopularCategoriesByHour(hour, top)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, result)
}

// GetVenueFlow handles GET /v1/venues/flow
func (h *AnalyticsHandler) GetVenueFlow(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()

	venueID := vals.Get(VENUE_ID_QUERY_ARG)
	hours, err := parseArgInt(vals, HOURS_QUERY_ARG)
	if err != nil {
		writeError(w, err)
		return
	}
	k, err := parseArgInt(vals, K_QUERY_ARG)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.queryService.VenueFlow(venueID, hours, k)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, result)
}

// PlotPopularCategories handles GET /v1/plots/popular-categories and
// renders the ranking as an HTML bar chart.
func (h *AnalyticsHandler) PlotPopularCategories(w http.ResponseWriter, r *http.Request) {
	hour, top, err := parsePopularArgs(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.queryService.PopularCategoriesByHour(hour, top)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.PlotPopularCategories(w, hour, result); err != nil {
		log.Println("Error rendering popular categories chart:", err)
	}
}

// Ping handles GET /ping
func (h *AnalyticsHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "pong"})
}

func parsePopularArgs(vals url.Values) (hour, top int, err error) {
	hour, err = parseArgInt(vals, HOUR_QUERY_ARG)
	if err != nil {
		return 0, 0, err
	}
	// top is optional; zero lets the service apply its default.
	top = 0
	if vals.Get(TOP_QUERY_ARG) != "" {
		top, err = parseArgInt(vals, TOP_QUERY_ARG)
		if err != nil {
			return 0, 0, err
		}
	}
	return hour, top, nil
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	if s == "" {
		return 0, models.NewValidationError(name, "is required")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, models.NewValidationError(name, "must be a number")
	}
	return f, nil
}

func parseArgInt(vals url.Values, name string) (int, error) {
	s := vals.Get(name)
	if s == "" {
		return 0, models.NewValidationError(name, "is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, models.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case models.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case models.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Println("Internal error serving query:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
