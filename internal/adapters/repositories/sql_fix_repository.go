package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"freight-tracking-service/internal/domain"
)

// SQLFixRepository persists accepted fixes to the append-only
// location_fixes table.
type SQLFixRepository struct {
	DB *sql.DB
}

func NewSQLFixRepository(db *sql.DB) *SQLFixRepository {
	return &SQLFixRepository{DB: db}
}

// Append one accepted fix. Rows are never updated or deleted.
func (r *SQLFixRepository) Append(ctx context.Context, sessionID string, fix domain.LocationFix) error {
	if r.DB == nil {
		return errors.New("fix repository: db is nil")
	}
	if sessionID == "" {
		return errors.New("append fix: sessionID must not be empty")
	}
	if !fix.Valid() {
		return fmt.Errorf("append fix: invalid fix for session %q", sessionID)
	}

	q := `
	INSERT INTO location_fixes (session_id, lat, lon, accuracy, recorded_at)
	VALUES ($1, $2, $3, $4, $5);
	`

	var accuracy any
	if fix.Accuracy > 0 {
		accuracy = fix.Accuracy
	}

	if _, err := r.DB.ExecContext(ctx, q,
		sessionID, fix.Coordinate.Lat, fix.Coordinate.Lon, accuracy, fix.RecordedAt.UTC(),
	); err != nil {
		return fmt.Errorf("append fix session=%q: %w", sessionID, err)
	}
	return nil
}

// CountBySession returns the number of persisted fixes for a session.
func (r *SQLFixRepository) CountBySession(ctx context.Context, sessionID string) (int, error) {
	if r.DB == nil {
		return 0, errors.New("fix repository: db is nil")
	}

	q := `SELECT COUNT(*) FROM location_fixes WHERE session_id = $1;`

	var n int
	if err := r.DB.QueryRowContext(ctx, q, sessionID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count fixes session=%q: %w", sessionID, err)
	}
	return n, nil
}

// LastRecordedAt returns the newest persisted fix timestamp for a
// session, or the zero time when none exist.
func (r *SQLFixRepository) LastRecordedAt(ctx context.Context, sessionID string) (time.Time, error) {
	if r.DB == nil {
		return time.Time{}, errors.New("fix repository: db is nil")
	}

	q := `SELECT MAX(recorded_at) FROM location_fixes WHERE session_id = $1;`

	var last sql.NullTime
	if err := r.DB.QueryRowContext(ctx, q, sessionID).Scan(&last); err != nil {
		return time.Time{}, fmt.Errorf("last fix session=%q: %w", sessionID, err)
	}
	if !last.Valid {
		return time.Time{}, nil
	}
	return last.Time, nil
}
