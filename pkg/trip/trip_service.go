package trip

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/roadlog/roadlog/internal/utils"
)

// TripRequest is the input of trip creation. Field names match the shape
// submitted by the web client.
type TripRequest struct {
	CurrentLocation       string  `json:"current_location"`
	PickupLocation        string  `json:"pickup_location"`
	DropoffLocation       string  `json:"dropoff_location"`
	CurrentCycleUsedHours float64 `json:"current_cycle_used"`
}

func (r TripRequest) validate() error {
	if r.CurrentLocation == "" || r.PickupLocation == "" || r.DropoffLocation == "" {
		return fmt.Errorf("current, pickup and dropoff locations are all required")
	}
	if r.CurrentCycleUsedHours < 0 || r.CurrentCycleUsedHours > 70 {
		return fmt.Errorf("current cycle used must be between 0 and 70 hours")
	}
	return nil
}

type Service interface {
	Create(ctx context.Context, request TripRequest) (Trip, error)
	Get(ctx context.Context, uid string) (*Trip, error)
	GetAll(ctx context.Context) ([]Trip, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	repo    Repository
	planner Planner
	clock   utils.Clock
}

func NewService(repo Repository, planner Planner, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, planner: planner, clock: clock}
}

// Create plans the route for the request, generates the daily logs and
// stores the resulting trip under a fresh UID.
func (s *ServiceImpl) Create(ctx context.Context, request TripRequest) (Trip, error) {
	if err := request.validate(); err != nil {
		return Trip{}, err
	}

	now := s.clock.Now()
	plan, err := s.planner.PlanRoute(ctx,
		request.CurrentLocation,
		request.PickupLocation,
		request.DropoffLocation,
		request.CurrentCycleUsedHours,
		now,
	)
	if err != nil {
		return Trip{}, fmt.Errorf("trip planning failed: %w", err)
	}

	trip := Trip{
		UID:                   uuid.NewString(),
		CurrentLocation:       request.CurrentLocation,
		PickupLocation:        request.PickupLocation,
		DropoffLocation:       request.DropoffLocation,
		CurrentCycleUsedHours: request.CurrentCycleUsedHours,
		CreatedAt:             now,
		Segments:              plan.Segments,
		Logs:                  s.planner.GenerateLogs(plan.Segments),
	}

	stored, err := s.repo.Store(ctx, trip)
	if err != nil {
		return Trip{}, err
	}
	log.Infof("Created trip %s with %d segments over %d days", stored.UID, len(stored.Segments), len(stored.Logs))
	return stored, nil
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (*Trip, error) {
	trip, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	return trip, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Trip, error) {
	return s.repo.FindAll(ctx)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("trip not deleted, probably because it does not exist (%s)", uid)
	}
	return deleted, nil
}
