package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"freight-tracking-service/internal/api/dto"
	"freight-tracking-service/internal/domain"
	"freight-tracking-service/internal/ports"
	"freight-tracking-service/internal/tracking"
)

type SessionHandler struct {
	Manager *tracking.Manager
}

// Create registers a tracking session. The route fetch happens in the
// background; the response snapshot is usually still awaitingRoute.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	class, err := dto.ParseVehicleClass(req.VehicleClass)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	status, err := dto.ParseDeliveryStatus(req.Status)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var s *tracking.Session
	switch {
	case req.Pickup != nil && req.Dropoff != nil:
		origin, err := domain.NewCoordinate(req.Pickup.Lat, req.Pickup.Lon)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "pickup: "+err.Error())
			return
		}
		dest, err := domain.NewCoordinate(req.Dropoff.Lat, req.Dropoff.Lon)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "dropoff: "+err.Error())
			return
		}
		s = h.Manager.CreateSessionAt(origin, dest, status, class)

	case strings.TrimSpace(req.PickupAddress) != "" && strings.TrimSpace(req.DropoffAddress) != "":
		s, err = h.Manager.CreateSession(r.Context(), tracking.CreateParams{
			PickupAddress:  req.PickupAddress,
			DropoffAddress: req.DropoffAddress,
			VehicleClass:   class,
			Status:         status,
		})
		if errors.Is(err, ports.ErrAddressNotFound) {
			writeError(w, r, http.StatusUnprocessableEntity, "address could not be resolved")
			return
		}
		if errors.Is(err, tracking.ErrNoGeocoder) {
			writeError(w, r, http.StatusServiceUnavailable, "geocoding is not configured; pass coordinates")
			return
		}
		if err != nil {
			log.Printf("create session failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}

	default:
		writeError(w, r, http.StatusBadRequest, "pickup and dropoff coordinates or addresses are required")
		return
	}

	res := dto.CreateSessionResponse{SessionID: s.ID, Snapshot: s.Snapshot()}
	writeJSON(w, r, http.StatusCreated, res)
}

// List returns the current snapshot of every known session.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	res := dto.ListSessionsResponse{Sessions: h.Manager.Snapshots()}
	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one session's snapshot, terminal sessions included.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, s.Snapshot())
}

// Stop ends the session and returns the final snapshot. Stopping twice
// is a no-op.
func (h *SessionHandler) Stop(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	s.Stop()
	select {
	case <-s.Done():
	case <-r.Context().Done():
	}
	writeJSON(w, r, http.StatusOK, s.Snapshot())
}

// Mute toggles instruction announcements without losing step tracking.
func (h *SessionHandler) Mute(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.MuteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	s.SetMuted(req.Muted)
	writeJSON(w, r, http.StatusOK, map[string]bool{"muted": req.Muted})
}

// Status updates the delivery's macro-status used for progress blending.
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	status, err := dto.ParseDeliveryStatus(req.Status)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s.SetDeliveryStatus(status)
	writeJSON(w, r, http.StatusOK, map[string]string{"status": string(status)})
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*tracking.Session, bool) {
	s, err := h.Manager.Get(r.PathValue("id"))
	if errors.Is(err, tracking.ErrSessionNotFound) {
		writeError(w, r, http.StatusNotFound, "session not found")
		return nil, false
	}
	if err != nil {
		log.Printf("session lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	return s, true
}
