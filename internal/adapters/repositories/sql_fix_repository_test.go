package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

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

	if err := InitSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return conn
}

func TestFixRepositoryAppendAndCount(t *testing.T) {
	repo := NewSQLFixRepository(openTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		fix := domain.LocationFix{
			Coordinate: domain.Coordinate{Lat: 33.44 + float64(i)*0.01, Lon: -112.07},
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
			Accuracy:   5,
		}
		if err := repo.Append(ctx, "sess-1", fix); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	n, err := repo.CountBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}

	last, err := repo.LastRecordedAt(ctx, "sess-1")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if !last.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("last = %v, want %v", last, base.Add(2*time.Minute))
	}
}

func TestFixRepositoryRejectsInvalidFix(t *testing.T) {
	repo := NewSQLFixRepository(openTestDB(t))

	bad := domain.LocationFix{
		Coordinate: domain.Coordinate{Lat: 91, Lon: 0},
		RecordedAt: time.Now(),
	}
	if err := repo.Append(context.Background(), "sess-1", bad); err == nil {
		t.Fatal("expected an error for an out-of-range coordinate")
	}
}

func TestAsyncFixWriterFlushesOnClose(t *testing.T) {
	repo := NewSQLFixRepository(openTestDB(t))
	writer := NewAsyncFixWriter(repo, 16)

	fix := domain.LocationFix{
		Coordinate: domain.Coordinate{Lat: 33.44, Lon: -112.07},
		RecordedAt: time.Now(),
	}
	for i := 0; i < 5; i++ {
		if err := writer.Append(context.Background(), "sess-async", fix); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	writer.Close()

	n, err := repo.CountBySession(context.Background(), "sess-async")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 5 {
		t.Fatalf("count = %d, want 5", n)
	}
}
