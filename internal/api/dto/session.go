package dto

import (
	"fmt"
	"strings"
	"time"

	"freight-tracking-service/internal/domain"
)

type CoordinateRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CreateSessionRequest accepts either resolved coordinates or street
// addresses. Coordinates win when both are present.
type CreateSessionRequest struct {
	PickupAddress  string             `json:"pickup_address"`
	DropoffAddress string             `json:"dropoff_address"`
	Pickup         *CoordinateRequest `json:"pickup"`
	Dropoff        *CoordinateRequest `json:"dropoff"`
	VehicleClass   string             `json:"vehicle_class"`
	Status         string             `json:"status"`
}

type FixRequest struct {
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	RecordedAt *time.Time `json:"recorded_at"`
	Accuracy   float64    `json:"accuracy_meters"`
}

type MuteRequest struct {
	Muted bool `json:"muted"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type CreateSessionResponse struct {
	SessionID string          `json:"session_id"`
	Snapshot  domain.Snapshot `json:"snapshot"`
}

type ListSessionsResponse struct {
	Sessions []domain.Snapshot `json:"sessions"`
}

// ParseVehicleClass maps the wire value onto a known class, defaulting
// to economy for an empty field.
func ParseVehicleClass(s string) (domain.VehicleClass, error) {
	switch domain.VehicleClass(strings.TrimSpace(s)) {
	case "":
		return domain.ClassEconomy, nil
	case domain.ClassEconomy:
		return domain.ClassEconomy, nil
	case domain.ClassVan:
		return domain.ClassVan, nil
	case domain.ClassTruck:
		return domain.ClassTruck, nil
	}
	return "", fmt.Errorf("unknown vehicle_class %q", s)
}

// ParseDeliveryStatus maps the wire value onto a known status,
// defaulting to created for an empty field.
func ParseDeliveryStatus(s string) (domain.DeliveryStatus, error) {
	switch domain.DeliveryStatus(strings.TrimSpace(s)) {
	case "":
		return domain.StatusCreated, nil
	case domain.StatusCreated:
		return domain.StatusCreated, nil
	case domain.StatusAccepted:
		return domain.StatusAccepted, nil
	case domain.StatusInTransit:
		return domain.StatusInTransit, nil
	case domain.StatusDelivered:
		return domain.StatusDelivered, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}
