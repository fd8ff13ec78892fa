package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/roadlog/roadlog/pkg/trip"
)

const defaultBaseURL = "https://api.geoapify.com/v1"

var ErrMissingAPIKey = fmt.Errorf("geoapify API key is not configured")

// Place is a geocoded location.
type Place struct {
	Name        string
	Coordinates trip.Coordinates
}

// Route is the drivable path between two places, with the polyline the
// planner interpolates intermediate stop coordinates from.
type Route struct {
	DistanceMiles float64
	DurationHours float64
	Geometry      []trip.Coordinates
}

// GeoClient resolves location names and routes between them.
type GeoClient interface {
	Geocode(ctx context.Context, location string) (Place, error)
	Route(ctx context.Context, origin, destination Place) (Route, error)
}

// GeoapifyClient is the production GeoClient backed by the Geoapify
// geocoding and routing APIs.
type GeoapifyClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGeoapifyClient(apiKey string) *GeoapifyClient {
	return &GeoapifyClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *GeoapifyClient) Geocode(ctx context.Context, location string) (Place, error) {
	if c.apiKey == "" {
		return Place{}, ErrMissingAPIKey
	}
	if strings.TrimSpace(location) == "" {
		return Place{}, fmt.Errorf("location cannot be empty")
	}

	query := url.Values{}
	query.Set("text", location)
	query.Set("apiKey", c.apiKey)
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/geocode/search?"+query.Encode(), nil)
	if err != nil {
		log.Errorf("Failed to create geocoding request: %v", err)
		return Place{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute geocoding request: %v", err)
		return Place{}, fmt.Errorf("network error during geocoding of %q: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("geocoding API returned non-OK status %d for %q", resp.StatusCode, location)
		log.Error(err)
		return Place{}, err
	}

	var response struct {
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties struct {
				Formatted    string `json:"formatted"`
				AddressLine1 string `json:"address_line1"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode geocoding response: %v", err)
		return Place{}, err
	}
	if len(response.Features) == 0 {
		return Place{}, fmt.Errorf("could not geocode location %q: no matches", location)
	}

	feature := response.Features[0]
	if len(feature.Geometry.Coordinates) != 2 {
		return Place{}, fmt.Errorf("invalid coordinate format received for %q", location)
	}

	name := feature.Properties.Formatted
	if name == "" {
		name = feature.Properties.AddressLine1
	}
	if name == "" {
		name = location
	}

	return Place{
		Name:        name,
		Coordinates: trip.Coordinates{feature.Geometry.Coordinates[0], feature.Geometry.Coordinates[1]},
	}, nil
}

func (c *GeoapifyClient) Route(ctx context.Context, origin, destination Place) (Route, error) {
	if c.apiKey == "" {
		return Route{}, ErrMissingAPIKey
	}

	// Waypoints are latitude,longitude pairs.
	waypoints := fmt.Sprintf("%f,%f|%f,%f",
		origin.Coordinates[1], origin.Coordinates[0],
		destination.Coordinates[1], destination.Coordinates[0])

	query := url.Values{}
	query.Set("waypoints", waypoints)
	query.Set("mode", "drive")
	query.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/routing?"+query.Encode(), nil)
	if err != nil {
		log.Errorf("Failed to create routing request: %v", err)
		return Route{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute routing request: %v", err)
		return Route{}, fmt.Errorf("network error during routing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("routing API returned non-OK status %d", resp.StatusCode)
		log.Error(err)
		return Route{}, err
	}

	var response struct {
		Features []struct {
			Geometry struct {
				Type        string      `json:"type"`
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties struct {
				Distance *float64 `json:"distance"`
				Time     *float64 `json:"time"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode routing response: %v", err)
		return Route{}, err
	}
	if len(response.Features) == 0 {
		return Route{}, fmt.Errorf("could not route from %q to %q: no path found", origin.Name, destination.Name)
	}

	feature := response.Features[0]
	if feature.Properties.Distance == nil || feature.Properties.Time == nil {
		return Route{}, fmt.Errorf("routing response missing distance or time properties")
	}

	route := Route{
		DistanceMiles: *feature.Properties.Distance * 0.000621371,
		DurationHours: *feature.Properties.Time / 3600,
	}
	if feature.Geometry.Type == "LineString" {
		for _, point := range feature.Geometry.Coordinates {
			if len(point) == 2 {
				route.Geometry = append(route.Geometry, trip.Coordinates{point[0], point[1]})
			}
		}
	}

	log.Debugf("Routed %q to %q: %.1f miles, %.2f hours", origin.Name, destination.Name, route.DistanceMiles, route.DurationHours)
	return route, nil
}
