package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/platform/obs"
	"freight-tracking-service/internal/ports"
)

// ORSProvider implements RouteProvider using OpenRouteService
// directions. The premium, traffic-aware backend: authenticated with an
// API key and subject to rate limits, which doWithRetry absorbs.
//
// The provider is safe for concurrent use.
type ORSProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

func NewORSProvider(apiKey string) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-hgv",
	}, nil
}

type orsDirectionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Units       string      `json:"units"`
}

type orsDirectionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
			Segments []struct {
				Steps []struct {
					Distance    float64 `json:"distance"`
					Duration    float64 `json:"duration"`
					Type        int     `json:"type"`
					Instruction string  `json:"instruction"`
					Name        string  `json:"name"`
					WayPoints   []int   `json:"way_points"`
				} `json:"steps"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

// Fetch a route via /v2/directions. Failures collapse into
// ErrRouteUnavailable for uniform failover handling.
func (o *ORSProvider) FetchRoute(
	ctx context.Context,
	origin, destination domain.Coordinate,
) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "ors.FetchRoute")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)

	payload, err := json.Marshal(orsDirectionsRequest{
		Coordinates: [][]float64{origin.CoordsToList(), destination.CoordsToList()},
		Units:       "m",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := doWithRetry(ctx, o.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", o.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("ors directions request: %w: %w", ports.ErrRouteUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded orsDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w: %w", ports.ErrRouteUnavailable, err)
	}

	if len(decoded.Features) == 0 {
		return nil, fmt.Errorf("ors returned no routes: %w", ports.ErrRouteUnavailable)
	}

	feature := decoded.Features[0]

	polyline := make([]domain.Coordinate, 0, len(feature.Geometry.Coordinates))
	for _, pair := range feature.Geometry.Coordinates {
		c, err := coordFromLonLat(pair)
		if err != nil {
			return nil, fmt.Errorf("ors geometry: %w: %w", ports.ErrRouteUnavailable, err)
		}
		polyline = append(polyline, c)
	}

	var steps []domain.RouteStep
	for _, segment := range feature.Properties.Segments {
		for _, s := range segment.Steps {
			start, end, err := stepEndpoints(polyline, s.WayPoints)
			if err != nil {
				return nil, fmt.Errorf("ors step waypoints: %w: %w", ports.ErrRouteUnavailable, err)
			}

			steps = append(steps, domain.RouteStep{
				Instruction:     s.Instruction,
				Maneuver:        normalizeORSManeuver(s.Type),
				Start:           start,
				End:             end,
				DistanceMeters:  s.Distance,
				DurationSeconds: s.Duration,
				RoadName:        s.Name,
			})
		}
	}

	if len(steps) == 0 {
		return nil, fmt.Errorf("ors route has no steps: %w", ports.ErrRouteUnavailable)
	}

	return &domain.RoutePlan{
		TotalDistanceMeters:  feature.Properties.Summary.Distance,
		TotalDurationSeconds: feature.Properties.Summary.Duration,
		Steps:                steps,
		Polyline:             polyline,
		FetchedAt:            time.Now(),
	}, nil
}

// stepEndpoints resolves a step's way_points index pair against the
// route geometry.
func stepEndpoints(polyline []domain.Coordinate, wayPoints []int) (domain.Coordinate, domain.Coordinate, error) {
	if len(wayPoints) != 2 {
		return domain.Coordinate{}, domain.Coordinate{}, fmt.Errorf("expected 2 way points, got %d", len(wayPoints))
	}
	first, last := wayPoints[0], wayPoints[1]
	if first < 0 || last < first || last >= len(polyline) {
		return domain.Coordinate{}, domain.Coordinate{}, fmt.Errorf(
			"way points [%d,%d] out of range for %d geometry points", first, last, len(polyline))
	}
	return polyline[first], polyline[last], nil
}

// normalizeORSManeuver maps ORS numeric instruction types onto the
// shared enum. Unknown codes degrade to straight.
func normalizeORSManeuver(typ int) domain.Maneuver {
	switch typ {
	case 0:
		return domain.ManeuverTurnLeft
	case 1:
		return domain.ManeuverTurnRight
	case 2:
		return domain.ManeuverSharpLeft
	case 3:
		return domain.ManeuverSharpRight
	case 4:
		return domain.ManeuverSlightLeft
	case 5:
		return domain.ManeuverSlightRight
	case 6:
		return domain.ManeuverStraight
	case 7, 8:
		return domain.ManeuverRoundabout
	case 9:
		return domain.ManeuverUTurn
	case 10:
		return domain.ManeuverArrive
	case 11:
		return domain.ManeuverDepart
	case 12:
		return domain.ManeuverSlightLeft
	case 13:
		return domain.ManeuverSlightRight
	}
	return domain.ManeuverStraight
}
