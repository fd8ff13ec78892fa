package app

import (
	"database/sql"

	"github.com/roadlog/roadlog/internal/config"
	"github.com/roadlog/roadlog/internal/utils"
	"github.com/roadlog/roadlog/pkg/eldlog"
	"github.com/roadlog/roadlog/pkg/export"
	"github.com/roadlog/roadlog/pkg/logsheet"
	"github.com/roadlog/roadlog/pkg/planner"
	"github.com/roadlog/roadlog/pkg/trip"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	GeoClient      planner.GeoClient
	PlannerService *planner.ServiceImpl

	TripRepo    trip.Repository
	TripService trip.Service
	TripHandler *trip.TripHandler

	LogsheetRenderer *logsheet.Renderer
	ExportHandler    *export.ExportHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.GeoClient = planner.NewGeoapifyClient(cfg.Geoapify.ApiKey)
	deps.PlannerService = planner.NewService(deps.GeoClient)

	deps.TripRepo = trip.NewRepository(db)
	deps.TripService = trip.NewService(deps.TripRepo, deps.PlannerService, deps.Clock)
	deps.TripHandler = trip.NewTripHandler(deps.TripService)

	deps.LogsheetRenderer = logsheet.NewRenderer(eldlog.DefaultStyles())
	deps.ExportHandler = export.NewExportHandler(deps.TripService, deps.LogsheetRenderer)

	return deps
}
