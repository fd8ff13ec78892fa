package planner

import (
	"context"
	"fmt"

	"github.com/roadlog/roadlog/pkg/trip"
)

type StubGeoClient struct {
	places map[string]Place
	routes map[string]Route
}

func NewStubGeoClient() *StubGeoClient {
	return &StubGeoClient{
		places: map[string]Place{},
		routes: map[string]Route{},
	}
}

func (s *StubGeoClient) AddPlace(location string, name string, lon, lat float64) {
	s.places[location] = Place{Name: name, Coordinates: trip.Coordinates{lon, lat}}
}

func (s *StubGeoClient) AddRoute(originName, destinationName string, distanceMiles float64, geometry []trip.Coordinates) {
	s.routes[originName+"|"+destinationName] = Route{
		DistanceMiles: distanceMiles,
		DurationHours: distanceMiles / AverageSpeedMph,
		Geometry:      geometry,
	}
}

func (s *StubGeoClient) Geocode(ctx context.Context, location string) (Place, error) {
	place, ok := s.places[location]
	if !ok {
		return Place{}, fmt.Errorf("could not geocode location %q: no matches", location)
	}
	return place, nil
}

func (s *StubGeoClient) Route(ctx context.Context, origin, destination Place) (Route, error) {
	route, ok := s.routes[origin.Name+"|"+destination.Name]
	if !ok {
		return Route{}, fmt.Errorf("could not route from %q to %q: no path found", origin.Name, destination.Name)
	}
	return route, nil
}
