package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// EmergencyType - вид неисправности, о которой сообщает клиент
type EmergencyType string

const (
	EmergencyTypeAccident  EmergencyType = "accident"
	EmergencyTypeBreakdown EmergencyType = "breakdown"
	EmergencyTypeFlatTire  EmergencyType = "flat_tire"
	EmergencyTypeFuel      EmergencyType = "fuel"
	EmergencyTypeBattery   EmergencyType = "battery"
	EmergencyTypeEngine    EmergencyType = "engine"
	EmergencyTypeOther     EmergencyType = "other"
)

func (t EmergencyType) Valid() bool {
	switch t {
	case EmergencyTypeAccident, EmergencyTypeBreakdown, EmergencyTypeFlatTire,
		EmergencyTypeFuel, EmergencyTypeBattery, EmergencyTypeEngine, EmergencyTypeOther:
		return true
	}
	return false
}

// ResponseKind - ответ мастерской на рассылку
type ResponseKind string

const (
	ResponseAccept  ResponseKind = "accept"
	ResponseDecline ResponseKind = "decline"
)

func (k ResponseKind) Valid() bool {
	return k == ResponseAccept || k == ResponseDecline
}

// Причины отмены заявки
const (
	CancelReasonNoCoverage           = "no_coverage"
	CancelReasonDirectoryUnavailable = "directory_unavailable"
	CancelReasonBroadcastFailed      = "broadcast_failed"
	CancelReasonCustomer             = "customer_cancelled"
)

// SystemActor записывается в resolved_by, когда переход выполнил сам сервис
const SystemActor = "system"

// Location - точные координаты клиента
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid проверяет, что координаты лежат в допустимых диапазонах.
// Нулевая точка считается незаполненной.
func (l Location) Valid() bool {
	if l.Lat == 0 && l.Lng == 0 {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// WorkshopResponse - ответ одной мастерской на рассылку
type WorkshopResponse struct {
	WorkshopID              string       `json:"workshopId"`
	Kind                    ResponseKind `json:"kind"`
	EstimatedArrivalMinutes int          `json:"estimatedArrivalMinutes,omitempty"`
	Message                 string       `json:"message,omitempty"`
	RespondedAt             time.Time    `json:"respondedAt"`
}

// EmergencyRequest - заявка на экстренную помощь на дороге
type EmergencyRequest struct {
	ID                   uuid.UUID          `json:"id"`
	CustomerID           string             `json:"customerId"`
	EmergencyType        EmergencyType      `json:"emergencyType"`
	Description          string             `json:"description,omitempty"`
	Phone                string             `json:"phone"`
	VehicleDescription   string             `json:"vehicleDescription"`
	City                 string             `json:"city"`
	PreciseLocation      Location           `json:"preciseLocation"`
	Status               Status             `json:"status"`
	CandidateWorkshopIDs []string           `json:"candidateWorkshopIds"`
	AcceptedWorkshopID   *string            `json:"acceptedWorkshopId"`
	Responses            []WorkshopResponse `json:"responses"`
	CancelReason         string             `json:"cancelReason,omitempty"`
	ResolvedBy           string             `json:"resolvedBy,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
	BroadcastAt          *time.Time         `json:"broadcastAt"`
	AcceptedAt           *time.Time         `json:"acceptedAt"`
	ResolvedAt           *time.Time         `json:"resolvedAt"`
	ExpiresAt            time.Time          `json:"expiresAt"`
	ArchivedAt           *time.Time         `json:"archivedAt,omitempty"`
}

// IsCandidate сообщает, входила ли мастерская в список рассылки
func (r *EmergencyRequest) IsCandidate(workshopID string) bool {
	return slices.Contains(r.CandidateWorkshopIDs, workshopID)
}

// HasResponded сообщает, отвечала ли мастерская на заявку
func (r *EmergencyRequest) HasResponded(workshopID string) bool {
	for _, resp := range r.Responses {
		if resp.WorkshopID == workshopID {
			return true
		}
	}
	return false
}

// AcceptedBy возвращает мастерскую-победителя или пустую строку
func (r *EmergencyRequest) AcceptedBy() string {
	if r.AcceptedWorkshopID == nil {
		return ""
	}
	return *r.AcceptedWorkshopID
}

// Clone возвращает глубокую копию заявки
func (r *EmergencyRequest) Clone() *EmergencyRequest {
	c := *r
	c.CandidateWorkshopIDs = slices.Clone(r.CandidateWorkshopIDs)
	c.Responses = slices.Clone(r.Responses)
	c.AcceptedWorkshopID = clonePtr(r.AcceptedWorkshopID)
	c.BroadcastAt = clonePtr(r.BroadcastAt)
	c.AcceptedAt = clonePtr(r.AcceptedAt)
	c.ResolvedAt = clonePtr(r.ResolvedAt)
	c.ArchivedAt = clonePtr(r.ArchivedAt)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// StatusCount - количество заявок в статусе
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}
