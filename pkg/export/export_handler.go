package export

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/roadlog/roadlog/pkg/logsheet"
	"github.com/roadlog/roadlog/pkg/trip"
)

type ExportHandler struct {
	tripService trip.Service
	renderer    *logsheet.Renderer
}

func NewExportHandler(tripService trip.Service, renderer *logsheet.Renderer) *ExportHandler {
	return &ExportHandler{tripService: tripService, renderer: renderer}
}

// Export streams a trip in the format named by the "format" query parameter
// as a file download.
func (handler *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	exportedTrip, ok := handler.findTrip(w, r)
	if !ok {
		return
	}

	format := Format(r.URL.Query().Get("format"))
	payload, contentType, err := Serialize(*exportedTrip, format)
	if errors.Is(err, ErrUnsupportedFormat) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, ErrEmptyTripData) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		log.Errorf("Failed to serialize trip %s: %v", exportedTrip.UID, err)
		http.Error(w, "Failed to serialize trip", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename(*exportedTrip, format)))
	if _, err := w.Write(payload); err != nil {
		log.Errorf("Failed to write export payload: %v", err)
	}
}

// Logsheet renders the trip's daily logs into the paginated grid sheet
// document and returns it as JSON drawing instructions.
func (handler *ExportHandler) Logsheet(w http.ResponseWriter, r *http.Request) {
	exportedTrip, ok := handler.findTrip(w, r)
	if !ok {
		return
	}
	if len(exportedTrip.Logs) == 0 {
		http.Error(w, ErrEmptyTripData.Error(), http.StatusUnprocessableEntity)
		return
	}

	document := handler.renderer.AssembleDocument(exportedTrip.Logs)
	payload, err := sonic.ConfigStd.Marshal(document)
	if err != nil {
		log.Errorf("Failed to serialize logsheet document: %v", err)
		http.Error(w, "Failed to serialize logsheet document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", LogsheetFilename(*exportedTrip)))
	if _, err := w.Write(payload); err != nil {
		log.Errorf("Failed to write logsheet payload: %v", err)
	}
}

func (handler *ExportHandler) findTrip(w http.ResponseWriter, r *http.Request) (*trip.Trip, bool) {
	uid := mux.Vars(r)["tripUid"]

	found, err := handler.tripService.Get(r.Context(), uid)
	if errors.Is(err, trip.ErrTripNotFound) {
		http.Error(w, "Trip not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return found, true
}
