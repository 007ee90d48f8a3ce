package routing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/ports"
)

// FailoverProvider tries a primary provider and falls back to a
// secondary on ErrRouteUnavailable or timeout. Results are never
// partially merged: a plan comes wholly from one provider.
//
// Successful plans are memoized per (origin, destination) pair so a
// session fetches at most once per pair until the plan is explicitly
// invalidated (deviation) or older than the staleness threshold.
type FailoverProvider struct {
	primary   ports.RouteProvider
	secondary ports.RouteProvider // may be nil

	attemptTimeout time.Duration
	staleAfter     time.Duration

	mu     sync.Mutex
	plans  map[pairKey]*domain.RoutePlan
	single map[pairKey]*sync.Mutex
}

type pairKey struct {
	originLat, originLon float64
	destLat, destLon     float64
}

func NewFailoverProvider(
	primary, secondary ports.RouteProvider,
	attemptTimeout, staleAfter time.Duration,
) *FailoverProvider {
	return &FailoverProvider{
		primary:        primary,
		secondary:      secondary,
		attemptTimeout: attemptTimeout,
		staleAfter:     staleAfter,
		plans:          make(map[pairKey]*domain.RoutePlan),
		single:         make(map[pairKey]*sync.Mutex),
	}
}

// FetchRoute returns a memoized fresh plan when one exists, otherwise
// runs the provider chain. Concurrent fetches for the same pair are
// serialized so the chain runs once; different pairs proceed in
// parallel.
func (f *FailoverProvider) FetchRoute(
	ctx context.Context,
	origin, destination domain.Coordinate,
) (*domain.RoutePlan, error) {
	key := pairKey{origin.Lat, origin.Lon, destination.Lat, destination.Lon}

	f.mu.Lock()
	lock, ok := f.single[key]
	if !ok {
		lock = &sync.Mutex{}
		f.single[key] = lock
	}
	f.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	f.mu.Lock()
	cached := f.plans[key]
	f.mu.Unlock()

	if cached != nil && !cached.StaleAfter(time.Now(), f.staleAfter) {
		return cached, nil
	}

	plan, err := f.fetchChain(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.plans[key] = plan
	f.mu.Unlock()

	return plan, nil
}

func (f *FailoverProvider) fetchChain(
	ctx context.Context,
	origin, destination domain.Coordinate,
) (*domain.RoutePlan, error) {
	plan, primaryErr := f.attempt(ctx, f.primary, origin, destination)
	if primaryErr == nil {
		return plan, nil
	}

	if !fallbackWorthy(primaryErr) {
		return nil, fmt.Errorf("primary provider: %w", primaryErr)
	}

	if f.secondary == nil {
		return nil, fmt.Errorf("primary provider (no fallback configured): %w", primaryErr)
	}

	log.Printf("route=fallback origin=%.5f,%.5f dest=%.5f,%.5f primary_err=%v",
		origin.Lat, origin.Lon, destination.Lat, destination.Lon, primaryErr)

	plan, secondaryErr := f.attempt(ctx, f.secondary, origin, destination)
	if secondaryErr == nil {
		return plan, nil
	}

	return nil, fmt.Errorf("all providers failed: %w (primary: %v)", secondaryErr, primaryErr)
}

// attempt bounds one provider call. Exceeding the attempt timeout is
// treated as ErrRouteUnavailable, not an indefinite wait.
func (f *FailoverProvider) attempt(
	ctx context.Context,
	provider ports.RouteProvider,
	origin, destination domain.Coordinate,
) (*domain.RoutePlan, error) {
	attemptCtx := ctx
	if f.attemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, f.attemptTimeout)
		defer cancel()
	}

	plan, err := provider.FetchRoute(attemptCtx, origin, destination)
	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("attempt timed out after %s: %w", f.attemptTimeout, ports.ErrRouteUnavailable)
		}
		return nil, err
	}
	return plan, nil
}

// fallbackWorthy reports whether the secondary should be tried: route
// unavailability and timeouts, but not caller cancellation.
func fallbackWorthy(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, ports.ErrRouteUnavailable) || errors.Is(err, context.DeadlineExceeded)
}

// Invalidate drops the memoized plan for a pair, forcing the next fetch
// to hit the providers again (deviation refetch path).
func (f *FailoverProvider) Invalidate(origin, destination domain.Coordinate) {
	key := pairKey{origin.Lat, origin.Lon, destination.Lat, destination.Lon}
	f.mu.Lock()
	delete(f.plans, key)
	f.mu.Unlock()
}
