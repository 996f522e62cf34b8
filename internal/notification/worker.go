package notification

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/roadside_dispatch/internal/config"
	"github.com/shenikar/roadside_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	signatureHeader = "X-Webhook-Signature"
	eventHeader     = "X-Notification-Event"
	idHeader        = "X-Notification-ID"
)

// Worker забирает уведомления из очереди Redis и доставляет их вебхуком
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *resty.Client
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *Worker {
	client := resty.New().
		SetTimeout(cfg.WebhookTimeout).
		SetHeader("Content-Type", "application/json")

	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient:  client,
	}
}

// Start запускает горутину для обработки очереди уведомлений
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting notification worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping notification worker.")
				return
			default:
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, notificationQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue // Контекст отменен, но не ошибка Redis
					}
					w.logger.WithError(err).Error("Failed to pop notification from Redis")
					time.Sleep(w.cfg.WebhookTimeout) // Ждем перед повторной попыткой
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var n models.Notification
				if err := json.Unmarshal([]byte(payload), &n); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal notification from Redis")
					continue
				}

				w.processNotification(ctx, n, payload)
			}
		}
	}()
}

func (w *Worker) processNotification(ctx context.Context, n models.Notification, rawPayload string) {
	log := w.logger.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"request_id":      n.RequestID,
		"recipient_id":    n.RecipientID,
		"event":           n.Event,
	})
	log.Debug("Processing notification...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping notification delivery.")
		return
	}

	attempts := w.cfg.WebhookMaxRetries + 1
	delay := w.cfg.WebhookBaseDelay
	for i := 0; i < attempts; i++ {
		err := w.deliver(ctx, n, rawPayload)
		if err == nil {
			log.Info("Notification delivered successfully.")
			return
		}
		if !isRetryable(err) || i == attempts-1 {
			log.WithError(err).Errorf("Failed to deliver notification after %d attempts.", i+1)
			return
		}

		log.WithError(err).Warnf("Notification delivery failed. Retrying in %v. Retries left: %d", delay, attempts-1-i)
		select {
		case <-ctx.Done():
			log.Warn("Worker stopped before notification was delivered.")
			return
		case <-time.After(delay):
		}
		delay *= 2 // Экспоненциальная задержка
	}
}

// deliveryError - неуспешный ответ получателя вебхука
type deliveryError struct {
	statusCode int
}

func (e *deliveryError) Error() string {
	return fmt.Sprintf("webhook delivery failed with status code %d", e.statusCode)
}

// isRetryable: сетевые ошибки, 429 и 5xx повторяем, остальные коды - нет
func isRetryable(err error) bool {
	var de *deliveryError
	if !errors.As(err, &de) {
		return true
	}
	return de.statusCode == http.StatusTooManyRequests || de.statusCode >= http.StatusInternalServerError
}

// deliver выполняет одну попытку доставки уведомления
func (w *Worker) deliver(ctx context.Context, n models.Notification, rawPayload string) error {
	req := w.httpClient.R().
		SetContext(ctx).
		SetHeader(eventHeader, string(n.Event)).
		SetHeader(idHeader, n.ID.String()).
		SetBody(rawPayload)

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.SetHeader(signatureHeader, generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := req.Post(w.cfg.WebhookURL)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return &deliveryError{statusCode: resp.StatusCode()}
	}
	return nil
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
