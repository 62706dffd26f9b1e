package facility

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/carelane/carelane/backend/internal/config"
	"github.com/carelane/carelane/backend/internal/model/facility"
)

// DefaultRadius is the search radius in meters when the caller omits one.
const DefaultRadius = 5000

// maxResults caps how many upstream results are normalized per lookup.
const maxResults = 20

// Error kinds for upstream failures, so callers can tell a dead network
// from a rejected request from garbage JSON.
var (
	ErrNoCredential    = errors.New("GOOGLE_MAPS_API_KEY not set")
	ErrUpstreamNetwork = errors.New("places upstream unreachable")
	ErrUpstreamStatus  = errors.New("places upstream rejected request")
	ErrUpstreamDecode  = errors.New("places upstream returned malformed payload")
)

// Service wraps the Places Nearby Search endpoint.
type Service struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewService builds the lookup gateway. The upstream call uses a fixed
// timeout; no retries.
func NewService(cfg config.PlacesConfig) *Service {
	return &Service{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// nearbyResponse mirrors the slice of the upstream payload we consume.
type nearbyResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name             *string  `json:"name"`
		Vicinity         *string  `json:"vicinity"`
		FormattedAddress *string  `json:"formatted_address"`
		Rating           *float64 `json:"rating"`
		UserRatingsTotal *int     `json:"user_ratings_total"`
		OpeningHours     *struct {
			OpenNow *bool `json:"open_now"`
		} `json:"opening_hours"`
		Geometry *struct {
			Location *struct {
				Lat *float64 `json:"lat"`
				Lng *float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		PlaceID *string `json:"place_id"`
	} `json:"results"`
}

// Search maps typeKey to an upstream category, queries nearby places and
// normalizes at most the first 20 results. Missing nested fields stay nil.
func (s *Service) Search(ctx context.Context, typeKey string, lat, lng float64, radius int) ([]facility.Facility, error) {
	if s.apiKey == "" {
		return nil, ErrNoCredential
	}
	if radius <= 0 {
		radius = DefaultRadius
	}

	category, keyword := facility.Resolve(typeKey)

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("location", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(radius))
	params.Set("type", category)
	if keyword != "" {
		params.Set("keyword", keyword)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamNetwork, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var payload nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamDecode, err)
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrUpstreamStatus, payload.Status, payload.ErrorMessage)
		}
		return nil, fmt.Errorf("%w: %s", ErrUpstreamStatus, payload.Status)
	}

	results := payload.Results
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	out := make([]facility.Facility, 0, len(results))
	for _, p := range results {
		rec := facility.Facility{
			Name:             p.Name,
			Address:          p.Vicinity,
			Rating:           p.Rating,
			UserRatingsTotal: p.UserRatingsTotal,
			PlaceID:          p.PlaceID,
		}
		if rec.Address == nil {
			rec.Address = p.FormattedAddress
		}
		if p.OpeningHours != nil {
			rec.OpenNow = p.OpeningHours.OpenNow
		}
		if p.Geometry != nil && p.Geometry.Location != nil {
			rec.Lat = p.Geometry.Location.Lat
			rec.Lng = p.Geometry.Location.Lng
		}
		out = append(out, rec)
	}
	return out, nil
}
