package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// MockAnalyticsHandler is a mock implementation of the analytics handler
// surface that tags each response with the route that served it.
type MockAnalyticsHandler struct{}

func respond(w http.ResponseWriter, tag string) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"route": "` + tag + `"}`))
}

func (h *MockAnalyticsHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respond(w, "categories")
}

func (h *MockAnalyticsHandler) GetNearestVenues(w http.ResponseWriter, r *http.Request) {
	respond(w, "nearest")
}

func (h *MockAnalyticsHandler) GetPopularCategories(w http.ResponseWriter, r *http.Request) {
	respond(w, "popular")
}

func (h *MockAnalyticsHandler) GetVenueFlow(w http.ResponseWriter, r *http.Request) {
	respond(w, "flow")
}

func (h *MockAnalyticsHandler) PlotPopularCategories(w http.ResponseWriter, r *http.Request) {
	respond(w, "plot")
}

func (h *MockAnalyticsHandler) Ping(w http.ResponseWriter, r *http.Request) {
	respond(w, "ping")
}

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	mockHandler := &MockAnalyticsHandler{}
	router := mux.NewRouter()
	appRouter := NewRouter(mockHandler, router)
	appRouter.RegisterRoutes()

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{
			name:       "List Categories",
			method:     "GET",
			path:       "/v1/categories",
			statusCode: http.StatusOK,
			response:   `{"route": "categories"}`,
		},
		{
			name:       "Nearest Venues",
			method:     "GET",
			path:       "/v1/venues/nearest",
			statusCode: http.StatusOK,
			response:   `{"route": "nearest"}`,
		},
		{
			name:       "Popular Categories",
			method:     "GET",
			path:       "/v1/categories/popular",
			statusCode: http.StatusOK,
			response:   `{"route": "popular"}`,
		},
		{
			name:       "Venue Flow",
			method:     "GET",
			path:       "/v1/venues/flow",
			statusCode: http.StatusOK,
			response:   `{"route": "flow"}`,
		},
		{
			name:       "Popular Categories Plot",
			method:     "GET",
			path:       "/v1/plots/popular-categories",
			statusCode: http.StatusOK,
			response:   `{"route": "plot"}`,
		},
		{
			name:       "Ping Route",
			method:     "GET",
			path:       "/ping",
			statusCode: http.StatusOK,
			response:   `{"route": "ping"}`,
		},
		{
			name:       "Invalid Route",
			method:     "GET",
			path:       "/invalid",
			statusCode: http.StatusNotFound,
		},
		{
			name:       "Wrong Method",
			method:     "POST",
			path:       "/v1/categories",
			statusCode: http.StatusMethodNotAllowed,
		},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			// Assert status code
			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}

			// Assert response body, if applicable
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}
