package geocode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/platform/obs"
)

// SQLGeocodeCache is a SQL-backed persistent cache of address ->
// coordinate lookups, consulted before any network geocode call.
// Placeholders use the $N style, which both the sqlite and postgres
// drivers accept.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch a cached coordinate for an address. The bool reports a hit.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ domain.Coordinate, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinate{}, false, errors.New("geocode cache: db is nil")
	}
	if address == "" {
		return domain.Coordinate{}, false, errors.New("get geocode cache: address must not be empty")
	}

	q := `SELECT lat, lon FROM geocode_cache WHERE address = $1;`

	var lat, lon float64
	switch err := s.DB.QueryRowContext(ctx, q, address).Scan(&lat, &lon); {
	case errors.Is(err, sql.ErrNoRows):
		return domain.Coordinate{}, false, nil
	case err != nil:
		return domain.Coordinate{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	coord, err := domain.NewCoordinate(lat, lon)
	if err != nil {
		// A corrupt row should not poison lookups; treat as a miss.
		return domain.Coordinate{}, false, nil
	}
	return coord, true, nil
}

// Store one resolved address.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, coord domain.Coordinate) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if address == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}
	if !coord.Valid() {
		return fmt.Errorf("insert geocode cache: invalid coordinate for %q", address)
	}

	q := `
	INSERT INTO geocode_cache (address, lat, lon)
	VALUES ($1, $2, $3)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`

	if _, err := s.DB.ExecContext(ctx, q, address, coord.Lat, coord.Lon); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}
	return nil
}
