package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/ports"
)

// ErrSessionNotFound is returned for lookups of unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoGeocoder is returned for address-based creation when the
// deployment has no geocoding provider configured.
var ErrNoGeocoder = errors.New("no geocoder configured")

// Manager is the registry of live tracking sessions. Sessions are fully
// independent of one another; the routing client behind deps.Provider
// is the only shared resource and tolerates concurrent calls.
type Manager struct {
	cfg      Config
	geocoder ports.Geocoder
	deps     SessionDeps

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(cfg Config, geocoder ports.Geocoder, deps SessionDeps) *Manager {
	return &Manager{
		cfg:      cfg,
		geocoder: geocoder,
		deps:     deps,
		sessions: make(map[string]*Session),
	}
}

// CreateParams describe a new delivery to track. Addresses are resolved
// through the geocoder before the first route fetch.
type CreateParams struct {
	PickupAddress  string
	DropoffAddress string
	VehicleClass   domain.VehicleClass
	Status         domain.DeliveryStatus
}

// CreateSession geocodes the endpoints, registers a session and starts
// its worker. Geocode failure is fatal: the session never starts.
func (m *Manager) CreateSession(ctx context.Context, p CreateParams) (*Session, error) {
	if m.geocoder == nil {
		return nil, fmt.Errorf("create session: %w", ErrNoGeocoder)
	}

	origin, err := m.geocoder.Geocode(ctx, p.PickupAddress)
	if err != nil {
		return nil, fmt.Errorf("create session: geocode pickup %q: %w", p.PickupAddress, err)
	}

	destination, err := m.geocoder.Geocode(ctx, p.DropoffAddress)
	if err != nil {
		return nil, fmt.Errorf("create session: geocode dropoff %q: %w", p.DropoffAddress, err)
	}

	return m.CreateSessionAt(origin, destination, p.Status, p.VehicleClass), nil
}

// CreateSessionAt starts a session for already-resolved coordinates.
func (m *Manager) CreateSessionAt(
	origin, destination domain.Coordinate,
	status domain.DeliveryStatus,
	class domain.VehicleClass,
) *Session {
	s := NewSession(uuid.NewString(), origin, destination, status, class, m.cfg, m.deps)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	s.Start()
	return s
}

// Get returns a session by id, including finished ones: a terminal
// session's final snapshot stays inspectable.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	return s, nil
}

// Stop ends one session.
func (m *Manager) Stop(id string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	s.Stop()
	return nil
}

// StopAll ends every live session (shutdown path).
func (m *Manager) StopAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.sessions {
		s.Stop()
	}
}

// Snapshots returns the current snapshot of every known session.
func (m *Manager) Snapshots() []domain.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Snapshot, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Snapshot())
	}
	return out
}
