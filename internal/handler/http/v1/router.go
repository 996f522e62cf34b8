package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	secured := api.Group("")
	secured.Use(APIKeyAuthMiddleware(h.cfg, h.logger))

	// Экстренные заявки
	emergencies := secured.Group("/emergencies")
	{
		emergencies.POST("", h.createEmergency)
		emergencies.GET("", h.listEmergencies)
		emergencies.GET("/stats", h.getStats)
		emergencies.POST("/sweep", h.sweepExpired)
		emergencies.GET("/:id", h.getEmergency)
		emergencies.DELETE("/:id", h.archiveEmergency)
		emergencies.POST("/:id/responses", h.submitResponse)
		emergencies.POST("/:id/complete", h.completeEmergency)
		emergencies.POST("/:id/cancel", h.cancelEmergency)
	}

	// Открытые рассылки мастерской
	secured.GET("/workshops/:workshopId/emergencies", h.listWorkshopEmergencies)
}
