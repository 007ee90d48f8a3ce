package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"freight-tracking-service/internal/adapters/routing"
	"freight-tracking-service/internal/domain"
)

// The simulator drives a tracking session the way a driver app would:
// it creates the session over the API, fetches the road geometry from
// OSRM and replays the polyline as timed GPS fixes.
func main() {
	server := flag.String("server", "http://localhost:8080", "tracking API base URL")
	osrmURL := flag.String("osrm", "https://router.project-osrm.org", "OSRM base URL")
	pickup := flag.String("pickup", "52.5200,13.4050", "pickup as lat,lon")
	dropoff := flag.String("dropoff", "52.3906,13.0645", "dropoff as lat,lon")
	class := flag.String("class", "truck", "vehicle class: economy, van or truck")
	interval := flag.Duration("interval", 2*time.Second, "delay between fixes")
	flag.Parse()

	origin, err := parseCoord(*pickup)
	if err != nil {
		log.Fatalf("pickup: %v", err)
	}
	dest, err := parseCoord(*dropoff)
	if err != nil {
		log.Fatalf("dropoff: %v", err)
	}

	ctx := context.Background()

	plan, err := routing.NewOSRMProvider(*osrmURL).FetchRoute(ctx, origin, dest)
	if err != nil {
		log.Fatalf("route fetch: %v", err)
	}
	log.Printf("route points=%d distance=%.0fm", len(plan.Polyline), plan.TotalDistanceMeters)

	sessionID, err := createSession(*server, origin, dest, *class)
	if err != nil {
		log.Fatalf("create session: %v", err)
	}
	log.Printf("session=%s created", sessionID)

	for i, pt := range plan.Polyline {
		if err := postFix(*server, sessionID, pt); err != nil {
			log.Printf("fix %d/%d failed: %v", i+1, len(plan.Polyline), err)
		} else {
			log.Printf("fix %d/%d pos=%.5f,%.5f", i+1, len(plan.Polyline), pt.Lat, pt.Lon)
		}
		time.Sleep(*interval)
	}

	log.Printf("session=%s playback complete", sessionID)
}

// parseCoord reads "lat,lon".
func parseCoord(s string) (domain.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coordinate{}, fmt.Errorf("want lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("longitude: %w", err)
	}
	return domain.NewCoordinate(lat, lon)
}

func createSession(server string, origin, dest domain.Coordinate, class string) (string, error) {
	body, _ := json.Marshal(map[string]any{
		"pickup":        map[string]float64{"lat": origin.Lat, "lon": origin.Lon},
		"dropoff":       map[string]float64{"lat": dest.Lat, "lon": dest.Lon},
		"vehicle_class": class,
		"status":        "inTransit",
	})

	resp, err := http.Post(server+"/sessions", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var res struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", err
	}
	return res.SessionID, nil
}

func postFix(server, sessionID string, pt domain.Coordinate) error {
	now := time.Now().UTC()
	body, _ := json.Marshal(map[string]any{
		"lat":         pt.Lat,
		"lon":         pt.Lon,
		"recorded_at": now.Format(time.RFC3339Nano),
	})

	resp, err := http.Post(
		server+"/sessions/"+sessionID+"/fixes",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}
