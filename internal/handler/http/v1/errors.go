package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/roadside_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

var statusByKind = map[models.ErrorKind]int{
	models.KindInvalidRequest:       http.StatusBadRequest,
	models.KindNotFound:             http.StatusNotFound,
	models.KindNotACandidate:        http.StatusForbidden,
	models.KindAlreadyResolved:      http.StatusConflict,
	models.KindAlreadyAccepted:      http.StatusConflict,
	models.KindInvalidTransition:    http.StatusConflict,
	models.KindDirectoryUnavailable: http.StatusServiceUnavailable,
	models.KindNotificationFailure:  http.StatusBadGateway,
}

// writeError отвечает клиенту доменной ошибкой.
// Ошибки вне таксономии наружу не раскрываются.
func writeError(c *gin.Context, log *logrus.Entry, err error) {
	if domainErr, ok := models.AsError(err); ok {
		status, known := statusByKind[domainErr.Kind]
		if known {
			log.WithError(err).Warn("Request rejected by service")
			c.JSON(status, ErrorResponse{
				Kind:               string(domainErr.Kind),
				Message:            domainErr.Message,
				AcceptedWorkshopID: domainErr.AcceptedWorkshopID,
			})
			return
		}
	}

	log.WithError(err).Error("Unexpected service error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Kind: "Internal", Message: "internal server error"})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Kind: string(models.KindInvalidRequest), Message: message})
}
