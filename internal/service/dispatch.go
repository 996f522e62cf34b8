package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/roadside_dispatch/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// dispatch запускает рассылку в фоне и сразу возвращает управление.
// Переход уже зафиксирован, ошибка доставки одному получателю только логируется.
func (s *emergencyService) dispatch(ctx context.Context, notifications []models.Notification) {
	if len(notifications) == 0 {
		return
	}
	// отмена запроса клиента не должна обрывать рассылку
	ctx = context.WithoutCancel(ctx)

	s.pending.Go(func() {
		var g errgroup.Group
		g.SetLimit(s.fanOutConcurrency)
		for _, n := range notifications {
			g.Go(func() error {
				if err := s.notifier.Notify(ctx, n); err != nil {
					failure := models.WrapError(models.KindNotificationFailure, err, "could not deliver %s", n.Event)
					s.logger.WithError(failure).WithFields(logrus.Fields{
						"request_id":   n.RequestID,
						"recipient_id": n.RecipientID,
						"event":        n.Event,
					}).Warn("Notification delivery failed")
				}
				return nil
			})
		}
		_ = g.Wait()
	})
}

// Drain ждёт завершения начатых рассылок или отмены ctx
func (s *emergencyService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("service: pending notifications not drained: %w", ctx.Err())
	}
}

func (s *emergencyService) customerNotification(req *models.EmergencyRequest, event models.EventKind, body models.NotificationBody) models.Notification {
	return models.Notification{
		ID:            uuid.New(),
		RecipientID:   req.CustomerID,
		RecipientKind: models.RecipientCustomer,
		Event:         event,
		RequestID:     req.ID,
		Payload:       body,
		CreatedAt:     s.now().UTC(),
	}
}

func (s *emergencyService) workshopNotification(req *models.EmergencyRequest, workshopID string, event models.EventKind, body models.NotificationBody) models.Notification {
	return models.Notification{
		ID:            uuid.New(),
		RecipientID:   workshopID,
		RecipientKind: models.RecipientWorkshop,
		Event:         event,
		RequestID:     req.ID,
		Payload:       body,
		CreatedAt:     s.now().UTC(),
	}
}

// broadcastBody - данные заявки, которые видит мастерская
func broadcastBody(req *models.EmergencyRequest) models.NotificationBody {
	location := req.PreciseLocation
	expiresAt := req.ExpiresAt
	return models.NotificationBody{
		EmergencyType:      req.EmergencyType,
		City:               req.City,
		Location:           &location,
		Phone:              req.Phone,
		VehicleDescription: req.VehicleDescription,
		Description:        req.Description,
		ExpiresAt:          &expiresAt,
	}
}
