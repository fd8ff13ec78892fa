package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Trips
	r.HandleFunc("/api/trip", deps.TripHandler.Create).Methods("POST")
	r.HandleFunc("/api/trip", deps.TripHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/trip/{tripUid}", deps.TripHandler.Get).Methods("GET")
	r.HandleFunc("/api/trip/{tripUid}", deps.TripHandler.Delete).Methods("DELETE")

	// Daily log views
	r.HandleFunc("/api/trip/{tripUid}/log/{date}/summary", deps.TripHandler.GetLogSummary).Methods("GET")
	r.HandleFunc("/api/trip/{tripUid}/log/{date}/layout", deps.TripHandler.GetLogLayout).Methods("GET")

	// Exports
	r.HandleFunc("/api/trip/{tripUid}/export", deps.ExportHandler.Export).Queries("format", "{format}").Methods("GET")
	r.HandleFunc("/api/trip/{tripUid}/logsheet", deps.ExportHandler.Logsheet).Methods("GET")
}
