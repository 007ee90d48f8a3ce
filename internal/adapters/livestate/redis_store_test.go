package livestate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"freight-tracking-service/internal/domain"
)

func newTestStore(t *testing.T) *RedisSnapshotStore {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisSnapshotStoreFromClient(client, time.Hour)
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pos := domain.Coordinate{Lat: 33.44, Lon: -112.07}
	snapshot := domain.Snapshot{
		SessionID:              "sess-1",
		State:                  domain.StateTracking,
		CurrentPosition:        &pos,
		CurrentStepIndex:       3,
		RemainingDistanceMeter: 4200,
		EtaSeconds:             252,
		ProgressPercent:        61.5,
		UpdatedAt:              time.Now().UTC().Truncate(time.Second),
	}

	if err := store.Put(ctx, snapshot); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentStepIndex != 3 || got.State != domain.StateTracking {
		t.Fatalf("got %+v", got)
	}
	if got.CurrentPosition == nil || *got.CurrentPosition != pos {
		t.Fatalf("position = %+v, want %+v", got.CurrentPosition, pos)
	}
}

func TestSnapshotMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("err = %v, want ErrNoSnapshot", err)
	}
}

func TestPutOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := domain.Snapshot{SessionID: "sess-1", State: domain.StateTracking, CurrentStepIndex: 1}
	second := domain.Snapshot{SessionID: "sess-1", State: domain.StateArrived, CurrentStepIndex: 9}

	if err := store.Put(ctx, first); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, second); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != domain.StateArrived || got.CurrentStepIndex != 9 {
		t.Fatalf("got %+v, want the second snapshot", got)
	}
}
