package v1

import (
	"github.com/shenikar/roadside_dispatch/internal/models"
	"github.com/shenikar/roadside_dispatch/internal/service"
)

// DTOToCreateInput преобразует DTO создания во входные данные сервиса
func DTOToCreateInput(dto CreateEmergencyRequest) service.CreateEmergencyInput {
	input := service.CreateEmergencyInput{
		CustomerID:         dto.CustomerID,
		EmergencyType:      models.EmergencyType(dto.EmergencyType),
		Description:        dto.Description,
		Phone:              dto.Phone,
		VehicleDescription: dto.VehicleDescription,
		City:               dto.City,
	}
	if dto.PreciseLocation != nil {
		input.PreciseLocation = &models.Location{
			Lat: dto.PreciseLocation.Lat,
			Lng: dto.PreciseLocation.Lng,
		}
	}
	return input
}

// DTOToResponseInput преобразует ответ мастерской во входные данные сервиса
func DTOToResponseInput(dto SubmitResponseRequest) service.ResponseInput {
	return service.ResponseInput{
		Kind:                    models.ResponseKind(dto.Kind),
		EstimatedArrivalMinutes: dto.EstimatedArrivalMinutes,
		Message:                 dto.Message,
	}
}

// ModelToEmergencyResponse преобразует доменную модель в DTO для ответа
func ModelToEmergencyResponse(model *models.EmergencyRequest) *EmergencyResponse {
	responses := make([]WorkshopResponseDTO, len(model.Responses))
	for i, r := range model.Responses {
		responses[i] = WorkshopResponseDTO{
			WorkshopID:              r.WorkshopID,
			Kind:                    string(r.Kind),
			EstimatedArrivalMinutes: r.EstimatedArrivalMinutes,
			Message:                 r.Message,
			RespondedAt:             r.RespondedAt,
		}
	}
	candidates := model.CandidateWorkshopIDs
	if candidates == nil {
		candidates = []string{}
	}

	return &EmergencyResponse{
		ID:                   model.ID,
		CustomerID:           model.CustomerID,
		EmergencyType:        string(model.EmergencyType),
		Description:          model.Description,
		Phone:                model.Phone,
		VehicleDescription:   model.VehicleDescription,
		City:                 model.City,
		PreciseLocation:      LocationDTO{Lat: model.PreciseLocation.Lat, Lng: model.PreciseLocation.Lng},
		Status:               string(model.Status),
		CandidateWorkshopIDs: candidates,
		AcceptedWorkshopID:   model.AcceptedWorkshopID,
		Responses:            responses,
		CancelReason:         model.CancelReason,
		ResolvedBy:           model.ResolvedBy,
		CreatedAt:            model.CreatedAt,
		BroadcastAt:          model.BroadcastAt,
		AcceptedAt:           model.AcceptedAt,
		ResolvedAt:           model.ResolvedAt,
		ExpiresAt:            model.ExpiresAt,
		ArchivedAt:           model.ArchivedAt,
	}
}

// ModelsToEmergencyResponses преобразует слайс моделей в слайс DTO
func ModelsToEmergencyResponses(models []*models.EmergencyRequest) []*EmergencyResponse {
	responses := make([]*EmergencyResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToEmergencyResponse(model)
	}
	return responses
}

// OutcomeToDTO преобразует итог SubmitResponse в DTO
func OutcomeToDTO(outcome *service.ResponseOutcome) *ResponseOutcomeDTO {
	return &ResponseOutcomeDTO{
		Outcome: string(outcome.Outcome),
		Request: ModelToEmergencyResponse(outcome.Request),
	}
}

// StatsToDTO преобразует статистику по статусам в DTO
func StatsToDTO(counts []models.StatusCount, windowMinutes int) StatsResponse {
	byStatus := make([]StatusCountDTO, len(counts))
	for i, c := range counts {
		byStatus[i] = StatusCountDTO{Status: string(c.Status), Count: c.Count}
	}
	return StatsResponse{WindowMinutes: windowMinutes, ByStatus: byStatus}
}
