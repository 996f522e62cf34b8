package models

import (
	"time"

	"github.com/google/uuid"
)

// EventKind - тип уведомления
type EventKind string

const (
	EventBroadcastOpened  EventKind = "broadcast_opened"
	EventBroadcastClosed  EventKind = "broadcast_closed"
	EventRequestAccepted  EventKind = "request_accepted"
	EventRequestCancelled EventKind = "request_cancelled"
	EventRequestExpired   EventKind = "request_expired"
)

// RecipientKind - кому адресовано уведомление
type RecipientKind string

const (
	RecipientCustomer RecipientKind = "customer"
	RecipientWorkshop RecipientKind = "workshop"
)

// Notification - событие для шлюза уведомлений
type Notification struct {
	ID            uuid.UUID        `json:"id"`
	RecipientID   string           `json:"recipient_id"`
	RecipientKind RecipientKind    `json:"recipient_kind"`
	Event         EventKind        `json:"event"`
	RequestID     uuid.UUID        `json:"request_id"`
	Payload       NotificationBody `json:"payload"`
	CreatedAt     time.Time        `json:"created_at"`
}

// NotificationBody - данные, которые получатель показывает пользователю
type NotificationBody struct {
	EmergencyType           EmergencyType `json:"emergency_type,omitempty"`
	City                    string        `json:"city,omitempty"`
	Location                *Location     `json:"location,omitempty"`
	Phone                   string        `json:"phone,omitempty"`
	VehicleDescription      string        `json:"vehicle_description,omitempty"`
	Description             string        `json:"description,omitempty"`
	ExpiresAt               *time.Time    `json:"expires_at,omitempty"`
	AcceptedWorkshopID      string        `json:"accepted_workshop_id,omitempty"`
	EstimatedArrivalMinutes int           `json:"estimated_arrival_minutes,omitempty"`
	Reason                  string        `json:"reason,omitempty"`
}
