package geocode

import (
	"context"
	"database/sql"
	"testing"

	"freight-tracking-service/internal/adapters/repositories"
	"freight-tracking-service/internal/domain"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := repositories.InitSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return conn
}

func TestGeocodeCachePutGet(t *testing.T) {
	cache := NewSQLGeocodeCache(openTestDB(t))
	ctx := context.Background()

	coord := domain.Coordinate{Lat: 33.4484, Lon: -112.074}
	if err := cache.Put(ctx, "1901 W Madison St, Phoenix, AZ", coord); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := cache.Get(ctx, "1901 W Madison St, Phoenix, AZ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got != coord {
		t.Fatalf("got %+v, want %+v", got, coord)
	}
}

func TestGeocodeCacheMiss(t *testing.T) {
	cache := NewSQLGeocodeCache(openTestDB(t))

	_, ok, err := cache.Get(context.Background(), "nowhere in particular")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected a miss for an unknown address")
	}
}

func TestGeocodeCacheUpsert(t *testing.T) {
	cache := NewSQLGeocodeCache(openTestDB(t))
	ctx := context.Background()

	if err := cache.Put(ctx, "addr", domain.Coordinate{Lat: 1, Lon: 1}); err != nil {
		t.Fatalf("put: %v", err)
	}
	updated := domain.Coordinate{Lat: 2, Lon: 2}
	if err := cache.Put(ctx, "addr", updated); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, ok, err := cache.Get(ctx, "addr")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != updated {
		t.Fatalf("got %+v, want the updated coordinate", got)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	if got := normalize("  12  Main   St "); got != "12 Main St" {
		t.Fatalf("normalize = %q", got)
	}
}
