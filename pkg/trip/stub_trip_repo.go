package trip

import (
	"context"
)

type StubTripRepo struct {
	nextId int
	data   map[string]Trip
}

func NewStubTripRepo() *StubTripRepo {
	return &StubTripRepo{nextId: 0, data: map[string]Trip{}}
}

func (s *StubTripRepo) Store(ctx context.Context, trip Trip) (Trip, error) {
	s.nextId++
	trip.ID = s.nextId
	for i := range trip.Segments {
		trip.Segments[i].ID = i + 1
	}
	s.data[trip.UID] = trip
	return trip, nil
}

func (s *StubTripRepo) FindByUID(ctx context.Context, uid string) (*Trip, error) {
	trip, ok := s.data[uid]
	if !ok {
		return nil, nil
	}
	return &trip, nil
}

func (s *StubTripRepo) FindAll(ctx context.Context) ([]Trip, error) {
	trips := make([]Trip, 0, len(s.data))
	for _, trip := range s.data {
		trips = append(trips, trip)
	}
	return trips, nil
}

func (s *StubTripRepo) Delete(ctx context.Context, uid string) (bool, error) {
	if _, ok := s.data[uid]; !ok {
		return false, nil
	}
	delete(s.data, uid)
	return true, nil
}

func (s *StubTripRepo) Cleanup() {
	s.data = map[string]Trip{}
}
