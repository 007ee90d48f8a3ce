package ports

import (
	"context"
	"errors"

	"freight-tracking-service/internal/domain"
)

// ErrAddressNotFound is returned when the geocoder has no result for an
// address. Fatal to session creation: without coordinates there is no
// origin/destination to route between.
var ErrAddressNotFound = errors.New("address not found")

// Contract for resolving a street address into coordinates. Used only
// before the first route fetch; everything after runs on raw fixes.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinate, error)
}
