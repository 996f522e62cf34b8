package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/roadside_dispatch/internal/config"
	"github.com/shenikar/roadside_dispatch/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	emergencyService service.EmergencyService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(emergencyService service.EmergencyService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		emergencyService: emergencyService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// @Summary Create an emergency request
// @Description Create an emergency request and broadcast it to emergency-capable workshops in the city. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param emergency body CreateEmergencyRequest true "Emergency creation request"
// @Success 201 {object} EmergencyResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} ErrorResponse "Workshop directory unavailable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /emergencies [post]
func (h *Handler) createEmergency(c *gin.Context) {
	var input CreateEmergencyRequest
	log := h.logger.WithField("method", "createEmergency")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		badRequest(c, "invalid request body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		badRequest(c, err.Error())
		return
	}

	req, err := h.emergencyService.CreateAndBroadcast(c.Request.Context(), DTOToCreateInput(input))
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToEmergencyResponse(req))
}

// @Summary List customer emergencies
// @Description Get a paginated list of a customer's emergency requests, newest first. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param customerId query string true "Customer ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} EmergencyResponse
// @Failure 400 {object} ErrorResponse "Missing customer ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /emergencies [get]
func (h *Handler) listEmergencies(c *gin.Context) {
	log := h.logger.WithField("method", "listEmergencies")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	requests, err := h.emergencyService.ListCustomerEmergencies(c.Request.Context(), c.Query("customerId"), page, pageSize)
	if err != nil {
		writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToEmergencyResponses(requests))
}

// @Summary Get emergency by ID
// @Description Get a single emergency request by its ID. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Success 200 {object} EmergencyResponse
// @Failure 400 {object} ErrorResponse "Invalid emergency ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} ErrorResponse "Emergency not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /emergencies/{id} [get]
func (h *Handler) getEmergency(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid emergency ID")
		return
	}
	log := h.logger.WithField("method", "getEmergency").WithField("id", id)

	req, err := h.emergencyService.GetEmergency(c.Request.Context(), id)
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEmergencyResponse(req))
}

// @Summary Respond to a broadcast
// @Description Accept or decline a broadcast emergency. Only the first acceptance wins. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Param response body SubmitResponseRequest true "Workshop response"
// @Success 200 {object} ResponseOutcomeDTO
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} ErrorResponse "Workshop was not part of the broadcast"
// @Failure 404 {object} ErrorResponse "Emergency not found"
// @Failure 409 {object} ErrorResponse "Already accepted or resolved"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /emergencies/{id}/responses [post]
func (h *Handler) submitResponse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid emergency ID")
		return
	}
	log := h.logger.WithField("method", "submitResponse").WithField("id", id)

	var input SubmitResponseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		badRequest(c, "invalid request body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		badRequest(c, err.Error())
		return
	}

	outcome, err := h.emergencyService.SubmitResponse(c.Request.Context(), id, input.WorkshopID, DTOToResponseInput(input))
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, OutcomeToDTO(outcome))
}

// @Summary Complete service
// @Description Mark an accepted emergency as completed. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Param body body CompleteRequest true "Who completes the request"
// @Success 200 {object} EmergencyResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} ErrorResponse "Emergency not found"
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /emergencies/{id}/complete [post]
func (h *Handler) completeEmergency(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid emergency ID")
		return
	}
	log := h.logger.WithField("method", "completeEmergency").WithField("id", id)

	var input CompleteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		badRequest(c, "invalid request body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		badRequest(c, err.Error())
		return
	}

	req, err := h.emergencyService.CompleteService(c.Request.Context(), id, input.By)
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEmergencyResponse(req))
}

// @Summary Cancel an emergency
// @Description Cancel a broadcasting or accepted emergency on behalf of the customer. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Param body body CancelRequest true "Cancellation request"
// @Success 200 {object} EmergencyResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} ErrorResponse "Emergency not found"
// @Failure 409 {object} ErrorResponse "Invalid transition"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /emergencies/{id}/cancel [post]
func (h *Handler) cancelEmergency(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid emergency ID")
		return
	}
	log := h.logger.WithField("method", "cancelEmergency").WithField("id", id)

	var input CancelRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		badRequest(c, "invalid request body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		badRequest(c, err.Error())
		return
	}

	req, err := h.emergencyService.Cancel(c.Request.Context(), id, input.By, input.Reason)
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEmergencyResponse(req))
}

// @Summary Archive an emergency
// @Description Archive a terminal emergency request. Active requests cannot be archived. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid emergency ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} ErrorResponse "Emergency not found"
// @Failure 409 {object} ErrorResponse "Request is still active"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /emergencies/{id} [delete]
func (h *Handler) archiveEmergency(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid emergency ID")
		return
	}
	log := h.logger.WithField("method", "archiveEmergency").WithField("id", id)

	if err := h.emergencyService.Archive(c.Request.Context(), id); err != nil {
		writeError(c, log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List open broadcasts for a workshop
// @Description Get broadcasting emergencies the workshop was offered and has not answered yet. Requires API key.
// @Tags Workshops
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param workshopId path string true "Workshop ID"
// @Success 200 {array} EmergencyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /workshops/{workshopId}/emergencies [get]
func (h *Handler) listWorkshopEmergencies(c *gin.Context) {
	workshopID := c.Param("workshopId")
	log := h.logger.WithField("method", "listWorkshopEmergencies").WithField("workshop_id", workshopID)

	requests, err := h.emergencyService.ListOpenForWorkshop(c.Request.Context(), workshopID)
	if err != nil {
		writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToEmergencyResponses(requests))
}

// @Summary Expire stale broadcasts
// @Description Run the expiry sweep immediately. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SweepResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /emergencies/sweep [post]
func (h *Handler) sweepExpired(c *gin.Context) {
	log := h.logger.WithField("method", "sweepExpired")

	count, err := h.emergencyService.SweepExpired(c.Request.Context(), time.Now())
	if err != nil {
		writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, SweepResponse{Transitioned: count})
}

// @Summary Get emergency statistics
// @Description Get request counts by status within the statistics window. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /emergencies/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	counts, err := h.emergencyService.GetStats(c.Request.Context())
	if err != nil {
		writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, StatsToDTO(counts, h.cfg.StatsTimeWindowMinutes))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
