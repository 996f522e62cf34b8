package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/roadside_dispatch/internal/config"
	"github.com/shenikar/roadside_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=emergency.go -destination=mocks/mock_emergency.go -package=mocks

// EmergencyRepository определяет контракт хранилища заявок.
// Все изменения статуса проходят через Transition, который выполняется атомарно.
type EmergencyRepository interface {
	Create(ctx context.Context, req *models.EmergencyRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.EmergencyRequest, error)
	SetCandidates(ctx context.Context, id uuid.UUID, candidates []string, broadcastAt time.Time) error
	Transition(ctx context.Context, id uuid.UUID, t models.Transition) (*models.TransitionResult, error)
	AppendResponse(ctx context.Context, id uuid.UUID, resp models.WorkshopResponse) error
	ListDueForExpiry(ctx context.Context, now time.Time, limit int) ([]*models.EmergencyRequest, error)
	ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*models.EmergencyRequest, error)
	ListOpenForWorkshop(ctx context.Context, workshopID string, now time.Time) ([]*models.EmergencyRequest, error)
	Archive(ctx context.Context, id uuid.UUID, at time.Time) error
	CountByStatus(ctx context.Context, since time.Time) ([]models.StatusCount, error)

	GetFromCache(ctx context.Context, id uuid.UUID) (*models.EmergencyRequest, error)
	SetCache(ctx context.Context, req *models.EmergencyRequest) error
	InvalidateCache(ctx context.Context, id uuid.UUID) error
}

// WorkshopDirectory возвращает мастерские, готовые выехать на экстренный вызов
type WorkshopDirectory interface {
	FindEmergencyCapableWorkshops(ctx context.Context, city string, location models.Location, limit int) ([]string, error)
}

// Notifier - шлюз уведомлений. Доставка best-effort.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// EmergencyService определяет контракт диспетчера экстренных заявок
type EmergencyService interface {
	CreateAndBroadcast(ctx context.Context, input CreateEmergencyInput) (*models.EmergencyRequest, error)
	SubmitResponse(ctx context.Context, requestID uuid.UUID, workshopID string, input ResponseInput) (*ResponseOutcome, error)
	CompleteService(ctx context.Context, requestID uuid.UUID, by string) (*models.EmergencyRequest, error)
	Cancel(ctx context.Context, requestID uuid.UUID, by, reason string) (*models.EmergencyRequest, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)

	GetEmergency(ctx context.Context, id uuid.UUID) (*models.EmergencyRequest, error)
	ListCustomerEmergencies(ctx context.Context, customerID string, page, pageSize int) ([]*models.EmergencyRequest, error)
	ListOpenForWorkshop(ctx context.Context, workshopID string) ([]*models.EmergencyRequest, error)
	Archive(ctx context.Context, id uuid.UUID) error
	GetStats(ctx context.Context) ([]models.StatusCount, error)

	// Drain ждёт отправки уведомлений, поставленных операциями выше
	Drain(ctx context.Context) error
}

// CreateEmergencyInput - данные новой заявки от клиента
type CreateEmergencyInput struct {
	CustomerID         string
	EmergencyType      models.EmergencyType
	Description        string
	Phone              string
	VehicleDescription string
	City               string
	PreciseLocation    *models.Location
}

// ResponseInput - ответ мастерской на рассылку
type ResponseInput struct {
	Kind                    models.ResponseKind
	EstimatedArrivalMinutes int
	Message                 string
}

// OutcomeKind - результат SubmitResponse
type OutcomeKind string

const (
	OutcomeDeclined OutcomeKind = "declined"
	OutcomeAccepted OutcomeKind = "accepted"
)

// ResponseOutcome - итог обработки ответа мастерской
type ResponseOutcome struct {
	Outcome OutcomeKind
	Request *models.EmergencyRequest
}

// Option настраивает emergencyService
type Option func(*emergencyService)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(s *emergencyService) {
		s.now = now
	}
}

// WithFanOutConcurrency ограничивает число одновременных отправок при рассылке
func WithFanOutConcurrency(n int) Option {
	return func(s *emergencyService) {
		if n > 0 {
			s.fanOutConcurrency = n
		}
	}
}

type emergencyService struct {
	repo      EmergencyRepository
	directory WorkshopDirectory
	notifier  Notifier
	logger    *logrus.Logger
	cfg       *config.Config

	now               func() time.Time
	fanOutConcurrency int
	// pending - фоновые рассылки, которые ещё не завершены
	pending sync.WaitGroup
}

func NewEmergencyService(
	repo EmergencyRepository,
	directory WorkshopDirectory,
	notifier Notifier,
	logger *logrus.Logger,
	cfg *config.Config,
	opts ...Option,
) EmergencyService {
	s := &emergencyService{
		repo:              repo,
		directory:         directory,
		notifier:          notifier,
		logger:            logger,
		cfg:               cfg,
		now:               time.Now,
		fanOutConcurrency: 8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAndBroadcast сохраняет заявку и рассылает её мастерским города
func (s *emergencyService) CreateAndBroadcast(ctx context.Context, input CreateEmergencyInput) (*models.EmergencyRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "emergency",
		"method":      "CreateAndBroadcast",
		"customer_id": input.CustomerID,
		"city":        input.City,
	})
	log.Info("Attempting to create an emergency request")

	if err := validateCreateInput(input); err != nil {
		log.WithError(err).Warn("Emergency request rejected")
		return nil, err
	}

	now := s.now().UTC()
	req := &models.EmergencyRequest{
		ID:                   uuid.New(),
		CustomerID:           input.CustomerID,
		EmergencyType:        input.EmergencyType,
		Description:          input.Description,
		Phone:                input.Phone,
		VehicleDescription:   input.VehicleDescription,
		City:                 input.City,
		PreciseLocation:      *input.PreciseLocation,
		Status:               models.StatusBroadcasting,
		CandidateWorkshopIDs: []string{},
		Responses:            []models.WorkshopResponse{},
		CreatedAt:            now,
		ExpiresAt:            now.Add(s.cfg.BroadcastTimeout()),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		log.WithError(err).Error("Failed to create emergency request in repository")
		return nil, fmt.Errorf("service: could not create emergency request: %w", err)
	}
	log = log.WithField("request_id", req.ID)

	candidates, err := s.directory.FindEmergencyCapableWorkshops(ctx, req.City, req.PreciseLocation, s.cfg.MaxFanOut)
	if err != nil {
		log.WithError(err).Error("Workshop directory unavailable, closing request")
		s.abandon(ctx, log, req.ID, now, models.CancelReasonDirectoryUnavailable)
		return nil, models.WrapError(models.KindDirectoryUnavailable, err, "workshop directory unavailable")
	}
	candidates = capCandidates(candidates, s.cfg.MaxFanOut)

	if len(candidates) == 0 {
		log.Warn("No emergency-capable workshops in city, cancelling request")
		res, err := s.repo.Transition(ctx, req.ID, models.Transition{
			From:   []models.Status{models.StatusBroadcasting},
			To:     models.StatusCancelled,
			At:     now,
			Reason: models.CancelReasonNoCoverage,
			By:     models.SystemActor,
		})
		if err != nil {
			log.WithError(err).Error("Failed to cancel request without coverage")
			return nil, fmt.Errorf("service: could not cancel request without coverage: %w", err)
		}
		s.dispatch(ctx, []models.Notification{
			s.customerNotification(res.Request, models.EventRequestCancelled, models.NotificationBody{
				Reason: models.CancelReasonNoCoverage,
			}),
		})
		return res.Request, nil
	}

	if err := s.repo.SetCandidates(ctx, req.ID, candidates, now); err != nil {
		if errors.Is(err, models.ErrConditionFailed) {
			// заявку успели закрыть до рассылки, рассылать некому
			log.Warn("Request left broadcasting before candidates were set")
			return s.reload(ctx, req.ID)
		}
		log.WithError(err).Error("Failed to store broadcast candidates, closing request")
		s.abandon(ctx, log, req.ID, now, models.CancelReasonBroadcastFailed)
		return nil, fmt.Errorf("service: could not store broadcast candidates: %w", err)
	}
	req.CandidateWorkshopIDs = candidates
	req.BroadcastAt = &now

	body := broadcastBody(req)
	notifications := make([]models.Notification, 0, len(candidates))
	for _, workshopID := range candidates {
		notifications = append(notifications, s.workshopNotification(req, workshopID, models.EventBroadcastOpened, body))
	}
	s.dispatch(ctx, notifications)

	log.WithField("candidates", len(candidates)).Info("Emergency request broadcast")
	return req, nil
}

// SubmitResponse обрабатывает ответ мастерской. Принять заявку может только одна мастерская.
func (s *emergencyService) SubmitResponse(ctx context.Context, requestID uuid.UUID, workshopID string, input ResponseInput) (*ResponseOutcome, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "emergency",
		"method":      "SubmitResponse",
		"request_id":  requestID,
		"workshop_id": workshopID,
		"kind":        input.Kind,
	})
	log.Info("Processing workshop response")

	if err := validateResponseInput(workshopID, input); err != nil {
		log.WithError(err).Warn("Workshop response rejected")
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, s.lookupError(log, requestID, err)
	}
	if !req.IsCandidate(workshopID) {
		log.Warn("Workshop is not a candidate for this request")
		return nil, models.NewError(models.KindNotACandidate, "workshop %s was not part of the broadcast", workshopID)
	}
	if req.Status != models.StatusBroadcasting {
		return nil, rejection(req, input.Kind)
	}

	now := s.now().UTC()
	response := models.WorkshopResponse{
		WorkshopID:              workshopID,
		Kind:                    input.Kind,
		EstimatedArrivalMinutes: input.EstimatedArrivalMinutes,
		Message:                 input.Message,
		RespondedAt:             now,
	}

	if input.Kind == models.ResponseDecline {
		if err := s.repo.AppendResponse(ctx, requestID, response); err != nil {
			return nil, s.responseError(ctx, log, requestID, input.Kind, err)
		}
		s.invalidate(ctx, requestID)
		req.Responses = append(req.Responses, response)
		log.Info("Workshop declined request")
		return &ResponseOutcome{Outcome: OutcomeDeclined, Request: req}, nil
	}

	res, err := s.repo.Transition(ctx, requestID, models.Transition{
		From:               []models.Status{models.StatusBroadcasting},
		To:                 models.StatusAccepted,
		At:                 now,
		Deadline:           models.DeadlineOpen,
		AcceptedWorkshopID: workshopID,
		Response:           &response,
	})
	if err != nil {
		return nil, s.responseError(ctx, log, requestID, input.Kind, err)
	}
	s.invalidate(ctx, requestID)
	log.Info("Workshop won the request")

	accepted := res.Request
	notifications := []models.Notification{
		s.customerNotification(accepted, models.EventRequestAccepted, models.NotificationBody{
			AcceptedWorkshopID:      workshopID,
			EstimatedArrivalMinutes: input.EstimatedArrivalMinutes,
		}),
	}
	for _, candidate := range accepted.CandidateWorkshopIDs {
		if candidate == workshopID {
			continue
		}
		notifications = append(notifications, s.workshopNotification(accepted, candidate, models.EventBroadcastClosed,
			models.NotificationBody{Reason: string(models.StatusAccepted)}))
	}
	s.dispatch(ctx, notifications)

	return &ResponseOutcome{Outcome: OutcomeAccepted, Request: accepted}, nil
}

// CompleteService завершает обслуживание принятой заявки
func (s *emergencyService) CompleteService(ctx context.Context, requestID uuid.UUID, by string) (*models.EmergencyRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "emergency",
		"method":     "CompleteService",
		"request_id": requestID,
		"by":         by,
	})
	log.Info("Attempting to complete emergency request")

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, s.lookupError(log, requestID, err)
	}
	if req.Status != models.StatusAccepted {
		log.WithField("status", req.Status).Warn("Request cannot be completed from current status")
		return nil, models.NewError(models.KindInvalidTransition, "cannot complete request in status %s", req.Status)
	}
	if by == "" || (by != req.CustomerID && by != req.AcceptedBy()) {
		log.Warn("Completion attempted by a non-participant")
		return nil, models.NewError(models.KindInvalidRequest, "%q is not a participant of this request", by)
	}

	res, err := s.repo.Transition(ctx, requestID, models.Transition{
		From: []models.Status{models.StatusAccepted},
		To:   models.StatusCompleted,
		At:   s.now().UTC(),
		By:   by,
	})
	if err != nil {
		if errors.Is(err, models.ErrConditionFailed) {
			return nil, models.NewError(models.KindInvalidTransition, "request is no longer accepted")
		}
		log.WithError(err).Error("Failed to complete request in repository")
		return nil, fmt.Errorf("service: could not complete request: %w", err)
	}
	s.invalidate(ctx, requestID)

	log.Info("Emergency request completed")
	return res.Request, nil
}

// Cancel отменяет заявку по инициативе клиента
func (s *emergencyService) Cancel(ctx context.Context, requestID uuid.UUID, by, reason string) (*models.EmergencyRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "emergency",
		"method":     "Cancel",
		"request_id": requestID,
		"by":         by,
	})
	log.Info("Attempting to cancel emergency request")

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, s.lookupError(log, requestID, err)
	}
	if req.Status.IsTerminal() {
		log.WithField("status", req.Status).Warn("Request is already terminal")
		return nil, models.NewError(models.KindInvalidTransition, "cannot cancel request in status %s", req.Status)
	}
	if by == "" || by != req.CustomerID {
		log.Warn("Cancellation attempted by someone other than the customer")
		return nil, models.NewError(models.KindInvalidRequest, "only the customer can cancel the request")
	}
	if strings.TrimSpace(reason) == "" {
		reason = models.CancelReasonCustomer
	}

	res, err := s.repo.Transition(ctx, requestID, models.Transition{
		From:   models.SourcesOf(models.StatusCancelled),
		To:     models.StatusCancelled,
		At:     s.now().UTC(),
		Reason: reason,
		By:     by,
	})
	if err != nil {
		if errors.Is(err, models.ErrConditionFailed) {
			return nil, models.NewError(models.KindInvalidTransition, "request was resolved concurrently")
		}
		log.WithError(err).Error("Failed to cancel request in repository")
		return nil, fmt.Errorf("service: could not cancel request: %w", err)
	}
	s.invalidate(ctx, requestID)

	cancelled := res.Request
	var notifications []models.Notification
	switch res.From {
	case models.StatusAccepted:
		notifications = append(notifications, s.workshopNotification(cancelled, res.PreviousAcceptedWorkshopID,
			models.EventRequestCancelled, models.NotificationBody{Reason: reason}))
	case models.StatusBroadcasting:
		for _, workshopID := range outstandingCandidates(cancelled) {
			notifications = append(notifications, s.workshopNotification(cancelled, workshopID,
				models.EventBroadcastClosed, models.NotificationBody{Reason: reason}))
		}
	}
	s.dispatch(ctx, notifications)

	log.WithField("from", res.From).Info("Emergency request cancelled")
	return cancelled, nil
}

// SweepExpired переводит просроченные рассылки в expired. Повторный запуск с тем же now ничего не меняет.
func (s *emergencyService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "emergency",
		"method":  "SweepExpired",
	})
	now = now.UTC()
	batchSize := s.cfg.SweepBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	transitioned := 0
	for {
		due, err := s.repo.ListDueForExpiry(ctx, now, batchSize)
		if err != nil {
			log.WithError(err).Error("Failed to list expired requests")
			return transitioned, fmt.Errorf("service: could not list expired requests: %w", err)
		}

		progressed := 0
		for _, req := range due {
			res, err := s.repo.Transition(ctx, req.ID, models.Transition{
				From:     []models.Status{models.StatusBroadcasting},
				To:       models.StatusExpired,
				At:       now,
				Deadline: models.DeadlinePassed,
				By:       models.SystemActor,
			})
			if err != nil {
				if errors.Is(err, models.ErrConditionFailed) || errors.Is(err, models.ErrRecordNotFound) {
					// проиграли гонку принятию или отмене
					log.WithField("request_id", req.ID).Debug("Request resolved before expiry")
					continue
				}
				log.WithError(err).WithField("request_id", req.ID).Error("Failed to expire request")
				return transitioned, fmt.Errorf("service: could not expire request %s: %w", req.ID, err)
			}
			progressed++
			s.invalidate(ctx, req.ID)
			s.dispatch(ctx, s.expiryNotifications(res.Request))
		}
		transitioned += progressed

		// проигравшие гонку заявки уже не broadcasting и в следующую пачку не попадут
		if len(due) < batchSize {
			break
		}
	}

	if transitioned > 0 {
		log.WithField("count", transitioned).Info("Expired stale broadcasts")
	}
	return transitioned, nil
}

// GetEmergency получает заявку по ID, сначала из кеша
func (s *emergencyService) GetEmergency(ctx context.Context, id uuid.UUID) (*models.EmergencyRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "emergency",
		"method":     "GetEmergency",
		"request_id": id,
	})
	log.Info("Fetching emergency request by ID")

	cached, err := s.repo.GetFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read emergency request from cache")
	}
	if cached != nil {
		return cached, nil
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(log, id, err)
	}

	if err := s.repo.SetCache(ctx, req); err != nil {
		log.WithError(err).Warn("Failed to cache emergency request")
	}
	return req, nil
}

// ListCustomerEmergencies возвращает заявки клиента с пагинацией
func (s *emergencyService) ListCustomerEmergencies(ctx context.Context, customerID string, page, pageSize int) ([]*models.EmergencyRequest, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":     "emergency",
		"method":      "ListCustomerEmergencies",
		"customer_id": customerID,
		"page":        page,
		"page_size":   pageSize,
	})
	if customerID == "" {
		return nil, models.NewError(models.KindInvalidRequest, "customer id is required")
	}

	requests, err := s.repo.ListByCustomer(ctx, customerID, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list customer emergencies from repository")
		return nil, fmt.Errorf("service: could not list emergencies: %w", err)
	}

	log.WithField("count", len(requests)).Info("Customer emergencies listed successfully")
	return requests, nil
}

// ListOpenForWorkshop возвращает активные рассылки, на которые мастерская ещё не ответила
func (s *emergencyService) ListOpenForWorkshop(ctx context.Context, workshopID string) ([]*models.EmergencyRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "emergency",
		"method":      "ListOpenForWorkshop",
		"workshop_id": workshopID,
	})
	if workshopID == "" {
		return nil, models.NewError(models.KindInvalidRequest, "workshop id is required")
	}

	requests, err := s.repo.ListOpenForWorkshop(ctx, workshopID, s.now().UTC())
	if err != nil {
		log.WithError(err).Error("Failed to list open broadcasts from repository")
		return nil, fmt.Errorf("service: could not list open broadcasts: %w", err)
	}
	return requests, nil
}

// Archive архивирует завершённую заявку. Активные заявки не удаляются.
func (s *emergencyService) Archive(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "emergency",
		"method":     "Archive",
		"request_id": id,
	})
	log.Info("Attempting to archive emergency request")

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.lookupError(log, id, err)
	}
	if !req.Status.IsTerminal() {
		log.WithField("status", req.Status).Warn("Attempted to archive an active request")
		return models.NewError(models.KindInvalidTransition, "cannot archive request in status %s", req.Status)
	}

	if err := s.repo.Archive(ctx, id, s.now().UTC()); err != nil {
		if errors.Is(err, models.ErrConditionFailed) {
			return models.NewError(models.KindInvalidTransition, "request is already archived")
		}
		log.WithError(err).Error("Failed to archive request in repository")
		return fmt.Errorf("service: could not archive request: %w", err)
	}
	s.invalidate(ctx, id)

	log.Info("Emergency request archived")
	return nil
}

// GetStats возвращает количество заявок по статусам за окно статистики
func (s *emergencyService) GetStats(ctx context.Context) ([]models.StatusCount, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "emergency",
		"method":  "GetStats",
	})
	since := s.now().UTC().Add(-time.Duration(s.cfg.StatsTimeWindowMinutes) * time.Minute)

	counts, err := s.repo.CountByStatus(ctx, since)
	if err != nil {
		log.WithError(err).Error("Failed to count requests by status")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}
	return counts, nil
}

func (s *emergencyService) reload(ctx context.Context, id uuid.UUID) (*models.EmergencyRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not reload request: %w", err)
	}
	return req, nil
}

func (s *emergencyService) lookupError(log *logrus.Entry, id uuid.UUID, err error) error {
	if errors.Is(err, models.ErrRecordNotFound) {
		log.Warn("Emergency request not found")
		return models.NewError(models.KindNotFound, "emergency request %s not found", id)
	}
	log.WithError(err).Error("Failed to get emergency request from repository")
	return fmt.Errorf("service: could not get emergency request: %w", err)
}

// responseError переводит отказ хранилища в ошибку гонки
func (s *emergencyService) responseError(ctx context.Context, log *logrus.Entry, id uuid.UUID, kind models.ResponseKind, err error) error {
	switch {
	case errors.Is(err, models.ErrDuplicateResponse):
		log.Warn("Workshop already responded")
		return models.NewError(models.KindInvalidRequest, "workshop already responded to this request")
	case errors.Is(err, models.ErrRecordNotFound):
		return models.NewError(models.KindNotFound, "emergency request %s not found", id)
	case errors.Is(err, models.ErrConditionFailed):
		current, gerr := s.repo.GetByID(ctx, id)
		if gerr != nil {
			return s.lookupError(log, id, gerr)
		}
		log.WithField("status", current.Status).Info("Workshop lost the race")
		return rejection(current, kind)
	}
	log.WithError(err).Error("Failed to store workshop response")
	return fmt.Errorf("service: could not store workshop response: %w", err)
}

// rejection - ответ на попытку ответить на уже закрытую рассылку
func rejection(req *models.EmergencyRequest, kind models.ResponseKind) error {
	if kind == models.ResponseAccept && req.AcceptedWorkshopID != nil {
		return models.AlreadyAcceptedError(*req.AcceptedWorkshopID)
	}
	if req.Status == models.StatusBroadcasting {
		return models.NewError(models.KindAlreadyResolved, "broadcast window has closed")
	}
	return models.NewError(models.KindAlreadyResolved, "request is %s", req.Status)
}

// abandon закрывает заявку, рассылка которой не состоялась.
// Иначе она осталась бы в broadcasting без кандидатов до истечения срока.
func (s *emergencyService) abandon(ctx context.Context, log *logrus.Entry, id uuid.UUID, at time.Time, reason string) {
	_, err := s.repo.Transition(context.WithoutCancel(ctx), id, models.Transition{
		From:   []models.Status{models.StatusBroadcasting},
		To:     models.StatusCancelled,
		At:     at,
		Reason: reason,
		By:     models.SystemActor,
	})
	if err != nil {
		log.WithError(err).WithField("reason", reason).Error("Failed to close request after broadcast failure")
		return
	}
	s.invalidate(ctx, id)
}

func (s *emergencyService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.repo.InvalidateCache(ctx, id); err != nil {
		s.logger.WithError(err).WithField("request_id", id).Warn("Failed to invalidate emergency cache")
	}
}

func (s *emergencyService) expiryNotifications(req *models.EmergencyRequest) []models.Notification {
	notifications := []models.Notification{
		s.customerNotification(req, models.EventRequestExpired, models.NotificationBody{ExpiresAt: &req.ExpiresAt}),
	}
	for _, workshopID := range outstandingCandidates(req) {
		notifications = append(notifications, s.workshopNotification(req, workshopID, models.EventBroadcastClosed,
			models.NotificationBody{Reason: string(models.StatusExpired)}))
	}
	return notifications
}

func validateCreateInput(input CreateEmergencyInput) error {
	var missing []string
	if strings.TrimSpace(input.CustomerID) == "" {
		missing = append(missing, "customerId")
	}
	if strings.TrimSpace(input.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(input.VehicleDescription) == "" {
		missing = append(missing, "vehicleDescription")
	}
	if strings.TrimSpace(input.City) == "" {
		missing = append(missing, "city")
	}
	if input.PreciseLocation == nil {
		missing = append(missing, "preciseLocation")
	}
	if len(missing) > 0 {
		return models.NewError(models.KindInvalidRequest, "missing required fields: %s", strings.Join(missing, ", "))
	}
	if !input.EmergencyType.Valid() {
		return models.NewError(models.KindInvalidRequest, "unknown emergency type %q", input.EmergencyType)
	}
	if !input.PreciseLocation.Valid() {
		return models.NewError(models.KindInvalidRequest, "precise location is out of range")
	}
	return nil
}

func validateResponseInput(workshopID string, input ResponseInput) error {
	if strings.TrimSpace(workshopID) == "" {
		return models.NewError(models.KindInvalidRequest, "workshop id is required")
	}
	if !input.Kind.Valid() {
		return models.NewError(models.KindInvalidRequest, "unknown response kind %q", input.Kind)
	}
	if input.Kind == models.ResponseAccept && input.EstimatedArrivalMinutes <= 0 {
		return models.NewError(models.KindInvalidRequest, "estimatedArrivalMinutes is required when accepting")
	}
	return nil
}

// capCandidates убирает дубликаты и ограничивает рассылку
func capCandidates(ids []string, limit int) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// outstandingCandidates - кандидаты, которые ещё не ответили
func outstandingCandidates(req *models.EmergencyRequest) []string {
	var out []string
	for _, id := range req.CandidateWorkshopIDs {
		if !req.HasResponded(id) {
			out = append(out, id)
		}
	}
	return out
}
