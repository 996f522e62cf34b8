package v1

import (
	"time"

	"github.com/google/uuid"
)

// LocationDTO - координаты WGS84
// @Description Координаты точки вызова
type LocationDTO struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// CreateEmergencyRequest DTO для создания экстренной заявки
// @Description DTO для создания экстренной заявки
type CreateEmergencyRequest struct {
	CustomerID         string       `json:"customerId" validate:"required,max=255"`
	EmergencyType      string       `json:"emergencyType" validate:"required,oneof=accident breakdown flat_tire fuel battery engine other"`
	Description        string       `json:"description,omitempty" validate:"max=2000"`
	Phone              string       `json:"phone" validate:"required,max=32"`
	VehicleDescription string       `json:"vehicleDescription" validate:"required,max=255"`
	City               string       `json:"city" validate:"required,max=128"`
	PreciseLocation    *LocationDTO `json:"preciseLocation" validate:"required"`
}

// SubmitResponseRequest DTO ответа мастерской на рассылку
// @Description DTO ответа мастерской на рассылку
type SubmitResponseRequest struct {
	WorkshopID              string `json:"workshopId" validate:"required"`
	Kind                    string `json:"kind" validate:"required,oneof=accept decline"`
	EstimatedArrivalMinutes int    `json:"estimatedArrivalMinutes,omitempty" validate:"required_if=Kind accept,gte=0"`
	Message                 string `json:"message,omitempty" validate:"max=1000"`
}

// CompleteRequest DTO завершения обслуживания
// @Description DTO завершения обслуживания
type CompleteRequest struct {
	By string `json:"by" validate:"required"`
}

// CancelRequest DTO отмены заявки клиентом
// @Description DTO отмены заявки клиентом
type CancelRequest struct {
	By     string `json:"by" validate:"required"`
	Reason string `json:"reason,omitempty" validate:"max=255"`
}

// WorkshopResponseDTO - ответ мастерской в составе заявки
type WorkshopResponseDTO struct {
	WorkshopID              string    `json:"workshopId"`
	Kind                    string    `json:"kind"`
	EstimatedArrivalMinutes int       `json:"estimatedArrivalMinutes,omitempty"`
	Message                 string    `json:"message,omitempty"`
	RespondedAt             time.Time `json:"respondedAt"`
}

// EmergencyResponse DTO для ответа с информацией о заявке
// @Description DTO для ответа с информацией о заявке
type EmergencyResponse struct {
	ID                   uuid.UUID             `json:"id"`
	CustomerID           string                `json:"customerId"`
	EmergencyType        string                `json:"emergencyType"`
	Description          string                `json:"description,omitempty"`
	Phone                string                `json:"phone"`
	VehicleDescription   string                `json:"vehicleDescription"`
	City                 string                `json:"city"`
	PreciseLocation      LocationDTO           `json:"preciseLocation"`
	Status               string                `json:"status"`
	CandidateWorkshopIDs []string              `json:"candidateWorkshopIds"`
	AcceptedWorkshopID   *string               `json:"acceptedWorkshopId"`
	Responses            []WorkshopResponseDTO `json:"responses"`
	CancelReason         string                `json:"cancelReason,omitempty"`
	ResolvedBy           string                `json:"resolvedBy,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
	BroadcastAt          *time.Time            `json:"broadcastAt"`
	AcceptedAt           *time.Time            `json:"acceptedAt"`
	ResolvedAt           *time.Time            `json:"resolvedAt"`
	ExpiresAt            time.Time             `json:"expiresAt"`
	ArchivedAt           *time.Time            `json:"archivedAt,omitempty"`
}

// ResponseOutcomeDTO - итог ответа мастерской
// @Description Итог ответа мастерской
type ResponseOutcomeDTO struct {
	Outcome string             `json:"outcome"`
	Request *EmergencyResponse `json:"request"`
}

// StatusCountDTO - количество заявок в статусе
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	WindowMinutes int              `json:"windowMinutes"`
	ByStatus      []StatusCountDTO `json:"byStatus"`
}

// SweepResponse DTO результата очистки просроченных заявок
type SweepResponse struct {
	Transitioned int `json:"transitioned"`
}

// ErrorResponse - тело ответа с ошибкой
// @Description Тело ответа с ошибкой
type ErrorResponse struct {
	Kind               string `json:"kind"`
	Message            string `json:"message"`
	AcceptedWorkshopID string `json:"acceptedWorkshopId,omitempty"`
}
