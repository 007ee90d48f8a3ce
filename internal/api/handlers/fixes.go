package handlers

import (
	"net/http"
	"time"

	"freight-tracking-service/internal/api/dto"
	"freight-tracking-service/internal/domain"
)

// Ingest accepts one GPS fix for a session. The fix is handed to the
// session's worker and processed asynchronously; 202 means queued, not
// applied. Invalid or stale fixes are dropped downstream.
func (h *SessionHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.FixRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	coord, err := domain.NewCoordinate(req.Lat, req.Lon)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	recorded := time.Now().UTC()
	if req.RecordedAt != nil {
		recorded = *req.RecordedAt
	}

	s.Ingest(domain.LocationFix{
		Coordinate: coord,
		RecordedAt: recorded,
		Accuracy:   req.Accuracy,
	})

	w.WriteHeader(http.StatusAccepted)
}
