package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// AnalyticsHandlers is the handler surface the router binds routes to.
type AnalyticsHandlers interface {
	ListCategories(w http.ResponseWriter, r *http.Request)
	GetNearestVenues(w http.ResponseWriter, r *http.Request)
	GetPopularCategories(w http.ResponseWriter, r *http.Request)
	GetVenueFlow(w http.ResponseWriter, r *http.Request)
	PlotPopularCategories(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	analyticsHandler AnalyticsHandlers
	router           *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	analyticsHandler AnalyticsHandlers,
	router *mux.Router) *Router {
	return &Router{
		analyticsHandler: analyticsHandler,
		router:           router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/v1/categories", r.analyticsHandler.ListCategories).Methods("GET")

	// expects ?lat={latitude}&lon={longitude}&category={label}&k={count}
	r.router.HandleFunc("/v1/venues/nearest", r.analyticsHandler.GetNearestVenues).Methods("GET")

	// expects ?hour={0-23}&top={count, optional}
	r.router.HandleFunc("/v1/categories/popular", r.analyticsHandler.GetPopularCategories).Methods("GET")

	// expects ?venue_id={id}&hours={1-24}&k={count}
	r.router.HandleFunc("/v1/venues/flow", r.analyticsHandler.GetVenueFlow).Methods("GET")

	r.router.HandleFunc("/v1/plots/popular-categories", r.analyticsHandler.PlotPopularCategories).Methods("GET")

	r.router.HandleFunc("/ping", r.analyticsHandler.Ping).Methods("GET")
}
