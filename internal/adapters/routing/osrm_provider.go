package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/platform/obs"
	"freight-tracking-service/internal/ports"
)

// OSRMProvider implements RouteProvider against an OSRM instance
// (public demo server or self-hosted). The free/public backend: no API
// key, no traffic awareness.
//
// The provider is safe for concurrent use.
type OSRMProvider struct {
	session *http.Client
	baseURL string
	profile string
}

func NewOSRMProvider(baseURL string) *OSRMProvider {
	return &OSRMProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		profile: "driving",
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Steps []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
				Name     string  `json:"name"`
				Maneuver struct {
					Type     string    `json:"type"`
					Modifier string    `json:"modifier"`
					Location []float64 `json:"location"`
				} `json:"maneuver"`
				Geometry struct {
					Coordinates [][]float64 `json:"coordinates"`
				} `json:"geometry"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Fetch a route via /route/v1. Any failure to produce a usable route
// collapses into ErrRouteUnavailable so the failover chain treats all
// providers uniformly.
func (o *OSRMProvider) FetchRoute(
	ctx context.Context,
	origin, destination domain.Coordinate,
) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "osrm.FetchRoute")(&err)

	url := fmt.Sprintf(
		"%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson&steps=true",
		o.baseURL, o.profile,
		origin.Lon, origin.Lat, destination.Lon, destination.Lat,
	)

	resp, err := doWithRetry(ctx, o.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("osrm route request: %w: %w", ports.ErrRouteUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode osrm response: %w: %w", ports.ErrRouteUnavailable, err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("osrm returned code %q with %d routes: %w",
			decoded.Code, len(decoded.Routes), ports.ErrRouteUnavailable)
	}

	route := decoded.Routes[0]

	polyline := make([]domain.Coordinate, 0, len(route.Geometry.Coordinates))
	for _, pair := range route.Geometry.Coordinates {
		if len(pair) != 2 {
			return nil, fmt.Errorf("osrm geometry has malformed pair: %w", ports.ErrRouteUnavailable)
		}
		c, err := domain.NewCoordinate(pair[1], pair[0])
		if err != nil {
			return nil, fmt.Errorf("osrm geometry: %w: %w", ports.ErrRouteUnavailable, err)
		}
		polyline = append(polyline, c)
	}

	var steps []domain.RouteStep
	for _, leg := range route.Legs {
		for _, s := range leg.Steps {
			start, err := coordFromLonLat(s.Maneuver.Location)
			if err != nil {
				return nil, fmt.Errorf("osrm step location: %w: %w", ports.ErrRouteUnavailable, err)
			}

			end := start
			if n := len(s.Geometry.Coordinates); n > 0 {
				end, err = coordFromLonLat(s.Geometry.Coordinates[n-1])
				if err != nil {
					return nil, fmt.Errorf("osrm step geometry: %w: %w", ports.ErrRouteUnavailable, err)
				}
			}

			maneuver := normalizeOSRMManeuver(s.Maneuver.Type, s.Maneuver.Modifier)
			steps = append(steps, domain.RouteStep{
				Instruction:     instructionText(maneuver, s.Name),
				Maneuver:        maneuver,
				Start:           start,
				End:             end,
				DistanceMeters:  s.Distance,
				DurationSeconds: s.Duration,
				RoadName:        s.Name,
			})
		}
	}

	if len(steps) == 0 {
		return nil, fmt.Errorf("osrm route has no steps: %w", ports.ErrRouteUnavailable)
	}

	return &domain.RoutePlan{
		TotalDistanceMeters:  route.Distance,
		TotalDurationSeconds: route.Duration,
		Steps:                steps,
		Polyline:             polyline,
		FetchedAt:            time.Now(),
	}, nil
}

func coordFromLonLat(pair []float64) (domain.Coordinate, error) {
	if len(pair) != 2 {
		return domain.Coordinate{}, fmt.Errorf("expected [lon, lat], got %d values", len(pair))
	}
	return domain.NewCoordinate(pair[1], pair[0])
}

// normalizeOSRMManeuver maps OSRM's type+modifier vocabulary onto the
// shared enum. Unknown combinations degrade to straight rather than
// failing the whole plan.
func normalizeOSRMManeuver(typ, modifier string) domain.Maneuver {
	switch typ {
	case "depart":
		return domain.ManeuverDepart
	case "arrive":
		return domain.ManeuverArrive
	case "merge", "on ramp":
		return domain.ManeuverMerge
	case "fork", "off ramp":
		return domain.ManeuverFork
	case "roundabout", "rotary", "roundabout turn", "exit roundabout", "exit rotary":
		return domain.ManeuverRoundabout
	}

	switch modifier {
	case "left":
		return domain.ManeuverTurnLeft
	case "right":
		return domain.ManeuverTurnRight
	case "slight left":
		return domain.ManeuverSlightLeft
	case "slight right":
		return domain.ManeuverSlightRight
	case "sharp left":
		return domain.ManeuverSharpLeft
	case "sharp right":
		return domain.ManeuverSharpRight
	case "uturn":
		return domain.ManeuverUTurn
	}

	return domain.ManeuverStraight
}
