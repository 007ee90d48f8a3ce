package tracking

import (
	"context"
	"log"
	"sync"
	"time"

	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/geo"
	"freight-tracking-service/internal/ports"
)

// SessionDeps are the collaborators a session drives. Fixes and Events
// must never block the pipeline for long; wrap slow sinks accordingly
// (see repositories.AsyncFixWriter). Snapshots is optional.
type SessionDeps struct {
	Provider  ports.RouteProvider
	Fixes     ports.FixRepository
	Events    ports.EventPublisher
	Snapshots ports.SnapshotStore
}

// routeInvalidator is the optional capability of dropping a memoized
// plan, used on deviation refetch. The failover provider implements it.
type routeInvalidator interface {
	Invalidate(origin, destination domain.Coordinate)
}

// Session owns one mover's navigation state for one delivery. All
// mutable state is confined to the worker goroutine; fixes are handled
// strictly one at a time in arrival order through the fix channel, so
// the matcher/progress/notifier/announcer pipeline always reads the
// previous stage's fresh output.
type Session struct {
	ID string

	cfg         Config
	origin      domain.Coordinate
	destination domain.Coordinate
	class       domain.VehicleClass

	deps SessionDeps

	fixCh   chan domain.LocationFix
	routeCh chan routeResult
	stopCh  chan struct{}
	done    chan struct{}
	outbox  chan dispatchItem

	stopOnce sync.Once

	// Worker-owned navigation state. Never touched outside run().
	state            domain.SessionState
	activeRoute      *domain.RoutePlan
	currentStepIndex int
	ann              announcer
	firedThresholds  map[float64]bool
	currentPosition  *domain.Coordinate
	lastFixAt        time.Time
	initialMeters    float64
	remainingMeters  float64
	etaSeconds       float64
	progress         float64
	routeUnavailable bool
	offRouteStreak   int
	refetchInFlight  bool

	// Shared with readers.
	mu     sync.RWMutex
	status domain.DeliveryStatus
	muted  bool
	last   domain.Snapshot
	subs   map[int]chan domain.Snapshot
	nextID int
	closed bool
}

type routeResult struct {
	plan    *domain.RoutePlan
	err     error
	initial bool
}

type dispatchItem struct {
	event    domain.Event
	snapshot *domain.Snapshot
}

func NewSession(
	id string,
	origin, destination domain.Coordinate,
	status domain.DeliveryStatus,
	class domain.VehicleClass,
	cfg Config,
	deps SessionDeps,
) *Session {
	bufSize := cfg.FixBufferSize
	if bufSize <= 0 {
		bufSize = 16
	}

	s := &Session{
		ID:              id,
		cfg:             cfg,
		origin:          origin,
		destination:     destination,
		class:           class,
		deps:            deps,
		fixCh:           make(chan domain.LocationFix, bufSize),
		routeCh:         make(chan routeResult, 1),
		stopCh:          make(chan struct{}),
		done:            make(chan struct{}),
		outbox:          make(chan dispatchItem, 64),
		state:           domain.StateIdle,
		ann:             newAnnouncer(),
		firedThresholds: make(map[float64]bool),
		status:          status,
		muted:           cfg.Muted,
		subs:            make(map[int]chan domain.Snapshot),
	}
	s.last = s.buildSnapshot()
	return s
}

// Start kicks off the route fetch and the worker. The session enters
// AwaitingRoute; fixes arriving before the plan lands buffer in the fix
// channel (bounded, newest wins) and replay once the fetch resolves.
func (s *Session) Start() {
	s.state = domain.StateAwaitingRoute
	s.publishSnapshot()
	go s.dispatchLoop()
	go s.fetchRoute(true)
	go s.run()
}

// Ingest hands a fix to the session. Non-blocking: when the buffer is
// full the oldest buffered fix is evicted, since only the latest
// position matters. Fixes offered after the session ended are ignored.
func (s *Session) Ingest(fix domain.LocationFix) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.fixCh <- fix:
		return
	default:
	}

	// Buffer full: evict one, then offer again.
	select {
	case <-s.fixCh:
	default:
	}
	select {
	case s.fixCh <- fix:
	default:
	}
}

// Stop ends the session. Effective immediately for future fixes;
// already-emitted side effects are not recalled. Idempotent.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Snapshot returns the last published state. Still available after the
// session reached a terminal state.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Subscribe registers a snapshot feed. Delivery is at-least-once with a
// small buffer; a slow subscriber misses intermediate snapshots rather
// than stalling the pipeline. The returned cancel is idempotent and the
// channel closes when the session ends.
func (s *Session) Subscribe() (<-chan domain.Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan domain.Snapshot, 8)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// SetMuted toggles instruction announcements. Step bookkeeping is
// unaffected, so unmuting does not replay passed steps.
func (s *Session) SetMuted(muted bool) {
	s.mu.Lock()
	s.muted = muted
	s.mu.Unlock()
}

// SetDeliveryStatus updates the macro-status anchor used by the
// progress blend. Owned by the marketplace, consumed here.
func (s *Session) SetDeliveryStatus(status domain.DeliveryStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// Done closes when the session reached a terminal state.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) run() {
	for {
		// Stop wins over buffered work.
		select {
		case <-s.stopCh:
			s.finish(domain.StateStopped)
			return
		default:
		}

		if s.state == domain.StateAwaitingRoute {
			// Fixes keep buffering in fixCh until the fetch resolves.
			select {
			case <-s.stopCh:
				s.finish(domain.StateStopped)
				return
			case res := <-s.routeCh:
				s.handleRouteResult(res)
			}
			continue
		}

		select {
		case <-s.stopCh:
			s.finish(domain.StateStopped)
			return
		case res := <-s.routeCh:
			s.handleRouteResult(res)
		case fix := <-s.fixCh:
			s.handleFix(fix)
			if s.state == domain.StateArrived {
				s.finish(domain.StateArrived)
				return
			}
		}
	}
}

func (s *Session) fetchRoute(initial bool) {
	ctx := context.Background()
	plan, err := s.deps.Provider.FetchRoute(ctx, s.origin, s.destination)

	select {
	case s.routeCh <- routeResult{plan: plan, err: err, initial: initial}:
	case <-s.done:
	}
}

func (s *Session) handleRouteResult(res routeResult) {
	s.refetchInFlight = false

	if res.err != nil {
		// One event per failed fetch attempt chain; the provider already
		// exhausted its fallbacks internally.
		log.Printf("session=%s route=unavailable err=%v", s.ID, res.err)
		s.routeUnavailable = true
		s.emit(domain.RouteUnavailable{Reason: res.err.Error()})
		if s.state == domain.StateAwaitingRoute {
			// Stream stays open; progress computation is blocked until a
			// later refetch succeeds.
			s.state = domain.StateTracking
		}
		s.publishSnapshot()
		return
	}

	// Wholesale replacement: index and announcer reset, fired proximity
	// thresholds survive for the session's lifetime.
	s.activeRoute = res.plan
	s.currentStepIndex = 0
	s.ann.reset()
	s.routeUnavailable = false
	s.offRouteStreak = 0
	if s.state == domain.StateAwaitingRoute || s.state == domain.StateIdle {
		s.state = domain.StateTracking
	}
	s.publishSnapshot()
}

// handleFix runs the pipeline for one fix: validate, step matcher,
// progress calculator, proximity notifier, announcer, persist, publish.
// Order is fixed; later stages read earlier stages' updated state.
func (s *Session) handleFix(fix domain.LocationFix) {
	if !fix.Valid() {
		return
	}
	// The session's notion of "now" only moves forward.
	if !s.lastFixAt.IsZero() && fix.RecordedAt.Before(s.lastFixAt) {
		return
	}

	s.lastFixAt = fix.RecordedAt
	pos := fix.Coordinate
	s.currentPosition = &pos

	if s.activeRoute != nil {
		s.advance(pos)
	}

	if s.deps.Fixes != nil {
		if err := s.deps.Fixes.Append(context.Background(), s.ID, fix); err != nil {
			log.Printf("session=%s persist=failed err=%v", s.ID, err)
		}
	}

	s.publishSnapshot()
}

func (s *Session) advance(pos domain.Coordinate) {
	dest := s.activeRoute.Destination()

	idx, advanced, nearest := matchStep(pos, s.activeRoute.Steps, s.currentStepIndex, s.cfg.AdvanceRadiusMeters)
	s.currentStepIndex = idx

	straight := geo.Haversine(pos, dest)
	s.remainingMeters = geo.RoadDistance(straight, s.cfg.RoadFactor)
	if s.initialMeters == 0 {
		s.initialMeters = s.remainingMeters
	}
	s.etaSeconds = geo.EtaSeconds(s.remainingMeters, s.cfg.speedFor(s.class))

	s.mu.RLock()
	status := s.status
	muted := s.muted
	s.mu.RUnlock()

	s.progress = progressPercent(status, s.remainingMeters, s.initialMeters)

	if t, ok := crossThresholds(s.firedThresholds, s.cfg.ProximityThresholdsKm, s.remainingMeters/1000); ok {
		s.emit(domain.ProximityCrossed{ThresholdKm: t, RemainingMeters: s.remainingMeters})
	}

	if advanced && s.ann.observe(idx) && !muted {
		step := s.activeRoute.Steps[idx]
		s.emit(domain.AnnounceInstruction{
			StepIndex:      idx,
			Instruction:    step.Instruction,
			DistanceMeters: step.DistanceMeters,
		})
	}

	if straight <= s.cfg.ArrivalRadiusMeters {
		s.progress = 100
		s.state = domain.StateArrived
		s.emit(domain.Arrived{RemainingMeters: straight})
		return
	}

	s.checkDeviation(nearest)
}

// checkDeviation counts consecutive fixes far from every remaining step
// endpoint and triggers one refetch per streak. The session keeps
// tracking on the old plan until the new one lands.
func (s *Session) checkDeviation(nearestMeters float64) {
	if nearestMeters > s.cfg.DeviationRadiusMeters {
		s.offRouteStreak++
	} else {
		s.offRouteStreak = 0
		return
	}

	if s.offRouteStreak < s.cfg.DeviationFixLimit || s.refetchInFlight {
		return
	}

	log.Printf("session=%s route=deviation streak=%d refetching", s.ID, s.offRouteStreak)
	if inv, ok := s.deps.Provider.(routeInvalidator); ok {
		inv.Invalidate(s.origin, s.destination)
	}
	s.refetchInFlight = true
	s.offRouteStreak = 0
	go s.fetchRoute(false)
}

func (s *Session) buildSnapshot() domain.Snapshot {
	return domain.Snapshot{
		SessionID:              s.ID,
		State:                  s.state,
		CurrentPosition:        s.currentPosition,
		CurrentStepIndex:       s.currentStepIndex,
		RemainingDistanceMeter: s.remainingMeters,
		EtaSeconds:             s.etaSeconds,
		ProgressPercent:        s.progress,
		RouteUnavailable:       s.routeUnavailable,
		UpdatedAt:              time.Now().UTC(),
	}
}

func (s *Session) publishSnapshot() {
	snap := s.buildSnapshot()

	s.mu.Lock()
	s.last = snap
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
	s.mu.Unlock()

	if s.deps.Snapshots != nil {
		select {
		case s.outbox <- dispatchItem{snapshot: &snap}:
		default:
		}
	}
}

func (s *Session) emit(ev domain.Event) {
	select {
	case s.outbox <- dispatchItem{event: ev}:
	default:
		log.Printf("session=%s event=%s dropped reason=outbox_full", s.ID, ev.Kind())
	}
}

// dispatchLoop delivers events and snapshot-store writes off the fix
// path. Failures are logged; they never reach the state machine.
func (s *Session) dispatchLoop() {
	for item := range s.outbox {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if item.event != nil && s.deps.Events != nil {
			if err := s.deps.Events.Publish(ctx, s.ID, item.event); err != nil {
				log.Printf("session=%s event=%s publish=failed err=%v", s.ID, item.event.Kind(), err)
			}
		}
		if item.snapshot != nil && s.deps.Snapshots != nil {
			if err := s.deps.Snapshots.Put(ctx, *item.snapshot); err != nil {
				log.Printf("session=%s snapshot=store_failed err=%v", s.ID, err)
			}
		}

		cancel()
	}
}

func (s *Session) finish(state domain.SessionState) {
	if !s.state.Terminal() {
		s.state = state
	}
	snap := s.buildSnapshot()

	s.mu.Lock()
	s.last = snap
	for id, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
		close(ch)
		delete(s.subs, id)
	}
	s.closed = true
	s.mu.Unlock()

	if s.deps.Snapshots != nil {
		select {
		case s.outbox <- dispatchItem{snapshot: &snap}:
		default:
		}
	}

	close(s.outbox)
	close(s.done)
}
