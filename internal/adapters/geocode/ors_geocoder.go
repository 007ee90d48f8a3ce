package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/platform/obs"
	"freight-tracking-service/internal/ports"
)

// ORSGeocoder implements Geocoder using the OpenRouteService geocode
// search endpoint, with an optional persistent cache in front of it.
//
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	cache   *SQLGeocodeCache
}

func NewORSGeocoder(apiKey string, cache *SQLGeocodeCache) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		cache:   cache,
	}, nil
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves one address. Empty result sets map onto
// ErrAddressNotFound; cache write failures are logged, not surfaced.
func (g *ORSGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Coordinate{}, errors.New("geocode: address must be non-empty")
	}

	if g.cache != nil {
		coord, ok, err := g.cache.Get(ctx, norm)
		if err != nil {
			return domain.Coordinate{}, fmt.Errorf("geocode cache: %w", err)
		}
		if ok {
			return coord, nil
		}
	}

	endpoint := g.baseURL + "/geocode/search"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("get geocode request: %w", err)
	}
	req.Header.Set("Authorization", g.apiKey)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("text", norm)
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := g.session.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinate{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w", address, ports.ErrAddressNotFound)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinate{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	coord, err := domain.NewCoordinate(coords[1], coords[0])
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w", address, err)
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, norm, coord); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coord, nil
}
