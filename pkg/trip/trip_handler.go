package trip

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/roadlog/roadlog/pkg/eldlog"
)

// LogSummaryDTO carries the recomputed hour totals for one day, the shape
// the daily log status cards consume.
type LogSummaryDTO struct {
	Date         string                        `json:"date"`
	HoursSummary map[eldlog.DutyStatus]float64 `json:"hours_summary"`
	TotalHours   float64                       `json:"total_hours"`
	Percentages  map[eldlog.DutyStatus]float64 `json:"percentages"`
}

// LayoutPointDTO is one positioned timeline bar plus its human readable
// duration label.
type LayoutPointDTO struct {
	eldlog.LayoutPoint
	DurationLabel string `json:"duration_label"`
}

type TripHandler struct {
	tripService Service
}

func NewTripHandler(tripService Service) *TripHandler {
	return &TripHandler{tripService}
}

func (handler *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new trip")
	w.Header().Set("Content-Type", "application/json")

	var request TripRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	createdTrip, err := handler.tripService.Create(r.Context(), request)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(createdTrip); err != nil {
		log.Errorf("Failed to encode trip: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (handler *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	trip, ok := handler.findTrip(w, r)
	if !ok {
		return
	}
	if err := json.NewEncoder(w).Encode(trip); err != nil {
		log.Errorf("Failed to encode trip: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (handler *TripHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	trips, err := handler.tripService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(trips); err != nil {
		log.Errorf("Failed to encode trips: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (handler *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["tripUid"]

	deleted, err := handler.tripService.Delete(r.Context(), uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Trip not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLogSummary recomputes the per-status hour totals for one day from its
// timeline, rather than trusting the stored summary.
func (handler *TripHandler) GetLogSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	dailyLog, ok := handler.findDailyLog(w, r)
	if !ok {
		return
	}

	summary := eldlog.Summarize(dailyLog.StatusTimeline)
	percentages := make(map[eldlog.DutyStatus]float64, len(eldlog.RowOrder))
	for _, status := range eldlog.RowOrder {
		percentages[status] = eldlog.PercentageOf(status, summary)
	}
	dto := LogSummaryDTO{
		Date:         dailyLog.Date,
		HoursSummary: summary.HoursByStatus(),
		TotalHours:   summary.TotalHours(),
		Percentages:  percentages,
	}

	if err := json.NewEncoder(w).Encode(dto); err != nil {
		log.Errorf("Failed to encode log summary: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// GetLogLayout returns the percent-positioned timeline bars for one day.
func (handler *TripHandler) GetLogLayout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	dailyLog, ok := handler.findDailyLog(w, r)
	if !ok {
		return
	}

	points := eldlog.Layout(dailyLog.StatusTimeline)
	dtos := make([]LayoutPointDTO, 0, len(points))
	for _, point := range points {
		dtos = append(dtos, LayoutPointDTO{
			LayoutPoint:   point,
			DurationLabel: eldlog.FormatDuration(point.DurationMinutes),
		})
	}

	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("Failed to encode log layout: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (handler *TripHandler) findTrip(w http.ResponseWriter, r *http.Request) (*Trip, bool) {
	uid := mux.Vars(r)["tripUid"]

	trip, err := handler.tripService.Get(r.Context(), uid)
	if errors.Is(err, ErrTripNotFound) {
		http.Error(w, "Trip not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return trip, true
}

func (handler *TripHandler) findDailyLog(w http.ResponseWriter, r *http.Request) (*eldlog.DailyLog, bool) {
	trip, ok := handler.findTrip(w, r)
	if !ok {
		return nil, false
	}

	date := mux.Vars(r)["date"]
	dailyLog := trip.LogForDate(date)
	if dailyLog == nil {
		http.Error(w, "No log for date "+date, http.StatusNotFound)
		return nil, false
	}
	return dailyLog, true
}
