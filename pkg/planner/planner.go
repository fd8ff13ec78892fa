package planner

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/roadlog/roadlog/pkg/trip"
)

// FMCSA property-carrying hours-of-service limits, plus the operating
// assumptions the simulation runs on.
const (
	MaxDrivingHoursPerDay = 11.0
	MaxDutyHoursPerDay    = 14.0
	RequiredRestHours     = 10.0
	DrivingHoursPerBreak  = 8.0
	BreakDurationHours    = 0.5
	CycleLimitHours       = 70.0
	AverageSpeedMph       = 55.0
	FuelStopDurationHours = 0.75
	FuelRangeMiles        = 1000.0
	StopDurationHours     = 1.0
	maxPlanningIterations = 100
	hoursEpsilon          = 0.01
)

// ServiceImpl plans routes under the hours-of-service limits above.
// It implements trip.Planner.
type ServiceImpl struct {
	geo GeoClient
}

func NewService(geo GeoClient) *ServiceImpl {
	return &ServiceImpl{geo: geo}
}

// hosState tracks the simulated driver between segments.
type hosState struct {
	now              time.Time
	position         Place
	dailyDriving     float64
	dailyDuty        float64
	cycleRemaining   float64
	drivingSinceBreak float64
	milesSinceFuel   float64
}

func (s *hosState) advance(hours float64) {
	s.now = s.now.Add(time.Duration(hours * float64(time.Hour)))
}

// PlanRoute geocodes the three locations, routes the deadhead leg and the
// loaded leg, and simulates driving both under the duty limits, inserting
// rest, break and fuel segments where the limits force them.
func (s *ServiceImpl) PlanRoute(ctx context.Context, currentLocation, pickupLocation, dropoffLocation string, cycleUsedHours float64, startTime time.Time) (trip.RoutePlan, error) {
	current, err := s.geo.Geocode(ctx, currentLocation)
	if err != nil {
		return trip.RoutePlan{}, err
	}
	pickup, err := s.geo.Geocode(ctx, pickupLocation)
	if err != nil {
		return trip.RoutePlan{}, err
	}
	dropoff, err := s.geo.Geocode(ctx, dropoffLocation)
	if err != nil {
		return trip.RoutePlan{}, err
	}

	state := &hosState{
		now:            startTime,
		position:       current,
		dailyDriving:   MaxDrivingHoursPerDay,
		dailyDuty:      MaxDutyHoursPerDay,
		cycleRemaining: CycleLimitHours - cycleUsedHours,
	}

	var segments []trip.RouteSegment

	toPickup, err := s.geo.Route(ctx, current, pickup)
	if err != nil {
		return trip.RoutePlan{}, err
	}
	if err := s.planLeg(state, pickup, toPickup, &segments); err != nil {
		return trip.RoutePlan{}, err
	}
	s.appendStop(state, trip.SegmentPickup, StopDurationHours, &segments)

	toDropoff, err := s.geo.Route(ctx, pickup, dropoff)
	if err != nil {
		return trip.RoutePlan{}, err
	}
	if err := s.planLeg(state, dropoff, toDropoff, &segments); err != nil {
		return trip.RoutePlan{}, err
	}
	s.appendStop(state, trip.SegmentDropoff, StopDurationHours, &segments)

	plan := trip.RoutePlan{
		Segments:           segments,
		TotalDistanceMiles: toPickup.DistanceMiles + toDropoff.DistanceMiles,
	}
	for _, segment := range segments {
		plan.TotalDurationHours += segment.DurationHours
	}

	log.Infof("Planned route %s -> %s -> %s: %.1f miles, %.2f hours, %d segments",
		currentLocation, pickupLocation, dropoffLocation,
		plan.TotalDistanceMiles, plan.TotalDurationHours, len(segments))
	return plan, nil
}

// planLeg drives one leg of the route, splitting the distance into DRIVE
// segments bounded by the daily, cycle and break limits and inserting the
// stops the limits require. The iteration cap guards against a state where
// no rule makes forward progress.
func (s *ServiceImpl) planLeg(state *hosState, target Place, route Route, segments *[]trip.RouteSegment) error {
	covered := 0.0
	for iterations := 0; covered < route.DistanceMiles; iterations++ {
		if iterations >= maxPlanningIterations {
			return fmt.Errorf("route planning did not converge after %d iterations towards %q", maxPlanningIterations, target.Name)
		}

		if state.dailyDriving <= hoursEpsilon || state.dailyDuty <= hoursEpsilon || state.cycleRemaining <= hoursEpsilon {
			s.appendRest(state, segments)
			continue
		}

		beforeBreak := math.Max(0, DrivingHoursPerBreak-state.drivingSinceBreak)
		drivableHours := math.Min(math.Min(state.dailyDriving, state.dailyDuty), math.Min(state.cycleRemaining, beforeBreak))
		if drivableHours <= hoursEpsilon {
			if beforeBreak <= hoursEpsilon {
				s.appendBreak(state, segments)
			} else {
				s.appendRest(state, segments)
			}
			continue
		}

		remainingMiles := math.Max(0, route.DistanceMiles-covered)
		milesBeforeFuel := math.Max(0, FuelRangeMiles-state.milesSinceFuel)
		possibleMiles := math.Min(drivableHours*AverageSpeedMph, remainingMiles)

		driveMiles := possibleMiles
		if milesBeforeFuel < possibleMiles {
			driveMiles = math.Min(milesBeforeFuel, remainingMiles)
		}
		if driveMiles <= hoursEpsilon {
			s.appendBreak(state, segments)
			continue
		}

		driveHours := driveMiles / AverageSpeedMph
		covered += driveMiles

		final := covered >= route.DistanceMiles-1e-6
		endPlace := Place{
			Name:        fmt.Sprintf("Point approx. %.1f miles driven towards %s", covered, target.Name),
			Coordinates: state.position.Coordinates,
		}
		if final {
			endPlace = target
		} else if point := pointAlongRoute(route.Geometry, covered/route.DistanceMiles); point != nil {
			endPlace.Coordinates = *point
		}

		segment := trip.RouteSegment{
			Type:             trip.SegmentDrive,
			StartLocation:    state.position.Name,
			EndLocation:      endPlace.Name,
			StartCoordinates: coordinatesPtr(state.position.Coordinates),
			EndCoordinates:   coordinatesPtr(endPlace.Coordinates),
			DistanceMiles:    driveMiles,
			DurationHours:    driveHours,
			StartTime:        state.now,
			EndTime:          state.now.Add(time.Duration(driveHours * float64(time.Hour))),
		}
		*segments = append(*segments, segment)

		state.advance(driveHours)
		state.position = endPlace
		state.dailyDriving -= driveHours
		state.dailyDuty -= driveHours
		state.cycleRemaining -= driveHours
		state.drivingSinceBreak += driveHours
		state.milesSinceFuel += driveMiles

		if state.milesSinceFuel >= FuelRangeMiles-0.1 && !final {
			s.appendStop(state, trip.SegmentFuel, FuelStopDurationHours, segments)
			state.milesSinceFuel = 0
		} else if state.drivingSinceBreak >= DrivingHoursPerBreak-hoursEpsilon && !final {
			s.appendBreak(state, segments)
		}
	}
	return nil
}

// appendRest inserts the 10-hour off-duty reset and restores the daily
// limits. Off-duty rest does not count against the 70-hour cycle.
func (s *ServiceImpl) appendRest(state *hosState, segments *[]trip.RouteSegment) {
	s.appendSegment(state, trip.SegmentRest, RequiredRestHours, segments)
	state.dailyDriving = MaxDrivingHoursPerDay
	state.dailyDuty = MaxDutyHoursPerDay
	state.drivingSinceBreak = 0
}

// appendBreak inserts the 30-minute break required after 8 hours of driving.
// The break is on duty for cycle purposes.
func (s *ServiceImpl) appendBreak(state *hosState, segments *[]trip.RouteSegment) {
	s.appendSegment(state, trip.SegmentRest, BreakDurationHours, segments)
	state.dailyDuty -= BreakDurationHours
	state.cycleRemaining -= BreakDurationHours
	state.drivingSinceBreak = 0
}

// appendStop inserts an on-duty stop (fuel, pickup, dropoff) that consumes
// duty and cycle hours.
func (s *ServiceImpl) appendStop(state *hosState, segmentType trip.SegmentType, hours float64, segments *[]trip.RouteSegment) {
	s.appendSegment(state, segmentType, hours, segments)
	state.dailyDuty -= hours
	state.cycleRemaining -= hours
}

func (s *ServiceImpl) appendSegment(state *hosState, segmentType trip.SegmentType, hours float64, segments *[]trip.RouteSegment) {
	segment := trip.RouteSegment{
		Type:             segmentType,
		StartLocation:    state.position.Name,
		EndLocation:      state.position.Name,
		StartCoordinates: coordinatesPtr(state.position.Coordinates),
		EndCoordinates:   coordinatesPtr(state.position.Coordinates),
		DurationHours:    hours,
		StartTime:        state.now,
		EndTime:          state.now.Add(time.Duration(hours * float64(time.Hour))),
	}
	*segments = append(*segments, segment)
	state.advance(hours)
}

// pointAlongRoute linearly interpolates a coordinate at the given fraction
// of the polyline, between the two bracketing points. Returns nil when there
// is no usable geometry.
func pointAlongRoute(geometry []trip.Coordinates, ratio float64) *trip.Coordinates {
	if len(geometry) == 0 {
		return nil
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	position := ratio * float64(len(geometry)-1)
	index := int(position)
	if index >= len(geometry)-1 {
		point := geometry[len(geometry)-1]
		return &point
	}
	first := geometry[index]
	second := geometry[index+1]
	fraction := position - float64(index)
	return &trip.Coordinates{
		first[0] + (second[0]-first[0])*fraction,
		first[1] + (second[1]-first[1])*fraction,
	}
}

func coordinatesPtr(c trip.Coordinates) *trip.Coordinates {
	point := c
	return &point
}
