package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"freight-tracking-service/internal/adapters/events"
	"freight-tracking-service/internal/adapters/geocode"
	"freight-tracking-service/internal/adapters/livestate"
	"freight-tracking-service/internal/adapters/repositories"
	"freight-tracking-service/internal/adapters/routing"
	"freight-tracking-service/internal/api"
	"freight-tracking-service/internal/platform/db"
	"freight-tracking-service/internal/ports"
	"freight-tracking-service/internal/tracking"
)

// main is the application composition root.
// It wires concrete adapters (SQL, OSRM, ORS, Redis, AMQP) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")
	dbDriver := getEnv("DB_DRIVER", "sqlite")
	dbDSN := getEnv("DB_DSN", "data/tracking.db")
	osrmBaseURL := getEnv("OSRM_BASE_URL", "https://router.project-osrm.org")

	database, err := db.Open(dbDriver, dbDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := repositories.InitSchema(database); err != nil {
		log.Fatal(err)
	}

	cfg := tracking.DefaultConfig()
	cfg.RoadFactor = getEnvFloat("ROAD_FACTOR", cfg.RoadFactor)
	cfg.AssumedSpeedKmh = getEnvFloat("ASSUMED_SPEED_KMH", cfg.AssumedSpeedKmh)
	cfg.AdvanceRadiusMeters = getEnvFloat("ADVANCE_RADIUS_M", cfg.AdvanceRadiusMeters)
	cfg.ArrivalRadiusMeters = getEnvFloat("ARRIVAL_RADIUS_M", cfg.ArrivalRadiusMeters)
	cfg.RouteStaleAfter = getEnvDuration("ROUTE_STALE_AFTER", cfg.RouteStaleAfter)
	cfg.ProximityThresholdsKm = getEnvFloats("PROXIMITY_THRESHOLDS_KM", cfg.ProximityThresholdsKm)

	// OSRM is the primary route source. With an ORS key configured the
	// premium provider takes over on unavailability and serves geocoding;
	// without one the service is coordinate-only.
	osrm := routing.NewOSRMProvider(osrmBaseURL)

	var fallback ports.RouteProvider
	var geocoder ports.Geocoder
	if orsKey := strings.TrimSpace(os.Getenv("ORS_API_KEY")); orsKey != "" {
		ors, err := routing.NewORSProvider(orsKey)
		if err != nil {
			log.Fatal(err)
		}
		fallback = ors

		geocoder, err = geocode.NewORSGeocoder(orsKey, geocode.NewSQLGeocodeCache(database))
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("ORS_API_KEY not set: no route fallback, address geocoding disabled")
	}
	provider := routing.NewFailoverProvider(osrm, fallback, cfg.RouteAttemptTimeout, cfg.RouteStaleAfter)

	// Fix persistence is write-behind so a slow disk never stalls the
	// tracking pipeline.
	fixWriter := repositories.NewAsyncFixWriter(repositories.NewSQLFixRepository(database), 256)
	defer fixWriter.Close()

	var snapshots ports.SnapshotStore
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		snapshots = livestate.NewRedisSnapshotStore(addr, time.Hour)
		log.Printf("snapshot store=redis addr=%s", addr)
	}

	var publisher ports.EventPublisher = events.LogPublisher{}
	if url := os.Getenv("AMQP_URL"); url != "" {
		amqpPub, err := events.NewAMQPPublisher(url)
		if err != nil {
			log.Fatal(err)
		}
		defer amqpPub.Close()
		publisher = amqpPub
		log.Println("event publisher=amqp")
	}

	manager := tracking.NewManager(cfg, geocoder, tracking.SessionDeps{
		Provider:  provider,
		Fixes:     fixWriter,
		Events:    publisher,
		Snapshots: snapshots,
	})
	defer manager.StopAll()

	router := api.NewRouter(manager)

	// WriteTimeout stays 0 so websocket snapshot feeds are not cut off.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening addr=:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("%s: invalid float %q", key, v)
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s: invalid duration %q", key, v)
	}
	return d
}

// getEnvFloats reads a comma-separated descending list, e.g. "5,1,0.5".
func getEnvFloats(key string, fallback []float64) []float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			log.Fatalf("%s: invalid float %q", key, p)
		}
		out = append(out, f)
	}
	return out
}
