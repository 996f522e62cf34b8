package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/roadside_dispatch/internal/models"
	"github.com/shenikar/roadside_dispatch/internal/service"
)

const emergencyColumns = `
	id,
	customer_id,
	emergency_type,
	description,
	phone,
	vehicle_description,
	city,
	ST_Y(location::geometry) as latitude,
	ST_X(location::geometry) as longitude,
	status,
	candidate_workshop_ids,
	accepted_workshop_id,
	cancel_reason,
	resolved_by,
	created_at,
	broadcast_at,
	accepted_at,
	resolved_at,
	expires_at,
	archived_at
`

// querier - общее у пула и транзакции
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

type EmergencyRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewEmergencyRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.EmergencyRepository {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &EmergencyRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create сохраняет новую заявку
func (r *EmergencyRepository) Create(ctx context.Context, req *models.EmergencyRequest) error {
	query := `
		INSERT INTO emergency_requests (
			id, customer_id, emergency_type, description, phone, vehicle_description, city,
			location, status, candidate_workshop_ids, created_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, ST_SetSRID(ST_MakePoint($8, $9), 4326), $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		req.ID,
		req.CustomerID,
		string(req.EmergencyType),
		req.Description,
		req.Phone,
		req.VehicleDescription,
		req.City,
		req.PreciseLocation.Lng,
		req.PreciseLocation.Lat,
		string(req.Status),
		req.CandidateWorkshopIDs,
		req.CreatedAt,
		req.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create emergency request: %w", err)
	}
	return nil
}

// GetByID возвращает заявку вместе с ответами мастерских
func (r *EmergencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.EmergencyRequest, error) {
	return r.load(ctx, r.db, id)
}

// SetCandidates фиксирует список рассылки. Срабатывает один раз и только для broadcasting.
func (r *EmergencyRepository) SetCandidates(ctx context.Context, id uuid.UUID, candidates []string, broadcastAt time.Time) error {
	query := `
		UPDATE emergency_requests SET
			candidate_workshop_ids = $2,
			broadcast_at = $3
		WHERE id = $1 AND status = 'broadcasting' AND broadcast_at IS NULL;
	`
	cmdTag, err := r.db.Exec(ctx, query, id, candidates, broadcastAt)
	if err != nil {
		return fmt.Errorf("failed to set broadcast candidates: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, id)
	}
	return nil
}

// Transition атомарно проверяет условие перехода и применяет его.
// Строка блокируется только на время транзакции, уведомления отправляются после коммита.
func (r *EmergencyRepository) Transition(ctx context.Context, id uuid.UUID, t models.Transition) (*models.TransitionResult, error) {
	var result *models.TransitionResult

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var (
			status    string
			accepted  *string
			expiresAt time.Time
		)
		err := tx.QueryRow(ctx, `
			SELECT status, accepted_workshop_id, expires_at
			FROM emergency_requests
			WHERE id = $1
			FOR UPDATE;
		`, id).Scan(&status, &accepted, &expiresAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrRecordNotFound
			}
			return err
		}

		from := models.Status(status)
		if !t.Allows(from, expiresAt) {
			return models.ErrConditionFailed
		}

		if err := applyTransition(ctx, tx, id, t); err != nil {
			return err
		}
		if t.Response != nil {
			if err := insertResponse(ctx, tx, id, *t.Response); err != nil {
				return err
			}
		}
		if err := insertEvent(ctx, tx, id, "status_changed", map[string]any{
			"old_status": from,
			"new_status": t.To,
			"by":         t.By,
			"reason":     t.Reason,
			"workshop":   t.AcceptedWorkshopID,
			"at":         t.At.UTC().Format(time.RFC3339Nano),
		}); err != nil {
			return err
		}

		req, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		result = &models.TransitionResult{Request: req, From: from}
		if accepted != nil {
			result.PreviousAcceptedWorkshopID = *accepted
		}
		return nil
	})
	if err != nil {
		if isSentinel(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to transition emergency request to %s: %w", t.To, err)
	}
	return result, nil
}

// AppendResponse добавляет отказ мастерской, пока рассылка открыта
func (r *EmergencyRepository) AppendResponse(ctx context.Context, id uuid.UUID, resp models.WorkshopResponse) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var (
			status    string
			expiresAt time.Time
		)
		err := tx.QueryRow(ctx, `
			SELECT status, expires_at
			FROM emergency_requests
			WHERE id = $1
			FOR UPDATE;
		`, id).Scan(&status, &expiresAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrRecordNotFound
			}
			return err
		}
		if models.Status(status) != models.StatusBroadcasting || !expiresAt.After(resp.RespondedAt) {
			return models.ErrConditionFailed
		}

		if err := insertResponse(ctx, tx, id, resp); err != nil {
			return err
		}
		return insertEvent(ctx, tx, id, "response_recorded", map[string]any{
			"workshop": resp.WorkshopID,
			"kind":     resp.Kind,
		})
	})
	if err != nil {
		if isSentinel(err) {
			return err
		}
		return fmt.Errorf("failed to append workshop response: %w", err)
	}
	return nil
}

// ListDueForExpiry возвращает рассылки с истёкшим сроком
func (r *EmergencyRepository) ListDueForExpiry(ctx context.Context, now time.Time, limit int) ([]*models.EmergencyRequest, error) {
	query := `SELECT` + emergencyColumns + `
		FROM emergency_requests
		WHERE status = 'broadcasting' AND expires_at <= $1
		ORDER BY expires_at
		LIMIT $2;
	`
	return r.list(ctx, "ListDueForExpiry", query, now, limit)
}

// ListByCustomer возвращает заявки клиента с пагинацией
func (r *EmergencyRepository) ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*models.EmergencyRequest, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := `SELECT` + emergencyColumns + `
		FROM emergency_requests
		WHERE customer_id = $1 AND archived_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	return r.list(ctx, "ListByCustomer", query, customerID, pageSize, offset)
}

// ListOpenForWorkshop находит открытые рассылки, где мастерская - кандидат без ответа
func (r *EmergencyRepository) ListOpenForWorkshop(ctx context.Context, workshopID string, now time.Time) ([]*models.EmergencyRequest, error) {
	query := `SELECT` + emergencyColumns + `
		FROM emergency_requests r
		WHERE
			r.status = 'broadcasting'
			AND r.expires_at > $2
			AND $1 = ANY(r.candidate_workshop_ids)
			AND NOT EXISTS (
				SELECT 1 FROM emergency_responses er
				WHERE er.request_id = r.id AND er.workshop_id = $1
			)
		ORDER BY r.created_at DESC;
	`
	return r.list(ctx, "ListOpenForWorkshop", query, workshopID, now)
}

// Archive мягко удаляет заявку в терминальном статусе
func (r *EmergencyRepository) Archive(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE emergency_requests SET
			archived_at = $2
		WHERE id = $1
			AND status IN ('completed', 'cancelled', 'expired')
			AND archived_at IS NULL;
	`
	cmdTag, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to archive emergency request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, id)
	}
	return nil
}

// CountByStatus считает заявки, созданные начиная с since, по статусам
func (r *EmergencyRepository) CountByStatus(ctx context.Context, since time.Time) ([]models.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM emergency_requests
		WHERE created_at >= $1
		GROUP BY status
		ORDER BY status;
	`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count emergency requests: %w", err)
	}
	defer rows.Close()

	counts := make([]models.StatusCount, 0)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts = append(counts, models.StatusCount{Status: models.Status(status), Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error status count iteration: %w", err)
	}
	return counts, nil
}

// GetFromCache пытается получить заявку из Redis
func (r *EmergencyRepository) GetFromCache(ctx context.Context, id uuid.UUID) (*models.EmergencyRequest, error) {
	val, err := r.redisClient.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get emergency request from cache: %w", err)
	}

	req := &models.EmergencyRequest{}
	if err := json.Unmarshal(val, req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal emergency request from cache: %w", err)
	}
	return req, nil
}

// SetCache сохраняет заявку в Redis
func (r *EmergencyRepository) SetCache(ctx context.Context, req *models.EmergencyRequest) error {
	val, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal emergency request for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, cacheKey(req.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set emergency request in cache: %w", err)
	}
	return nil
}

// InvalidateCache удаляет заявку из Redis кэша
func (r *EmergencyRepository) InvalidateCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, cacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate emergency request cache: %w", err)
	}
	return nil
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("emergency:%s", id.String())
}

func (r *EmergencyRepository) load(ctx context.Context, q querier, id uuid.UUID) (*models.EmergencyRequest, error) {
	query := `SELECT` + emergencyColumns + `
		FROM emergency_requests
		WHERE id = $1;
	`
	req, err := scanEmergency(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get emergency request by id: %w", err)
	}

	if err := attachResponses(ctx, q, []*models.EmergencyRequest{req}); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *EmergencyRepository) list(ctx context.Context, method, query string, args ...any) ([]*models.EmergencyRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query emergency requests in %s: %w", method, err)
	}
	defer rows.Close()

	requests := make([]*models.EmergencyRequest, 0)
	for rows.Next() {
		req, err := scanEmergency(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan emergency request row in %s: %w", method, err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in %s: %w", method, err)
	}

	if err := attachResponses(ctx, r.db, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// missOrConflict различает отсутствие записи и невыполненное условие
func (r *EmergencyRepository) missOrConflict(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM emergency_requests WHERE id = $1);`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check emergency request existence: %w", err)
	}
	if !exists {
		return models.ErrRecordNotFound
	}
	return models.ErrConditionFailed
}

func scanEmergency(row rowScanner) (*models.EmergencyRequest, error) {
	var (
		req           models.EmergencyRequest
		emergencyType string
		status        string
	)
	err := row.Scan(
		&req.ID,
		&req.CustomerID,
		&emergencyType,
		&req.Description,
		&req.Phone,
		&req.VehicleDescription,
		&req.City,
		&req.PreciseLocation.Lat,
		&req.PreciseLocation.Lng,
		&status,
		&req.CandidateWorkshopIDs,
		&req.AcceptedWorkshopID,
		&req.CancelReason,
		&req.ResolvedBy,
		&req.CreatedAt,
		&req.BroadcastAt,
		&req.AcceptedAt,
		&req.ResolvedAt,
		&req.ExpiresAt,
		&req.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}
	req.EmergencyType = models.EmergencyType(emergencyType)
	req.Status = models.Status(status)
	if req.CandidateWorkshopIDs == nil {
		req.CandidateWorkshopIDs = []string{}
	}
	req.Responses = []models.WorkshopResponse{}
	return &req, nil
}

// attachResponses загружает ответы мастерских одним запросом
func attachResponses(ctx context.Context, q querier, requests []*models.EmergencyRequest) error {
	if len(requests) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*models.EmergencyRequest, len(requests))
	ids := make([]string, 0, len(requests))
	for _, req := range requests {
		byID[req.ID] = req
		ids = append(ids, req.ID.String())
	}

	query := `
		SELECT request_id, workshop_id, kind, estimated_arrival_minutes, message, responded_at
		FROM emergency_responses
		WHERE request_id = ANY($1::uuid[])
		ORDER BY responded_at, id;
	`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load workshop responses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			requestID uuid.UUID
			kind      string
			resp      models.WorkshopResponse
		)
		if err := rows.Scan(&requestID, &resp.WorkshopID, &kind, &resp.EstimatedArrivalMinutes, &resp.Message, &resp.RespondedAt); err != nil {
			return fmt.Errorf("failed to scan workshop response: %w", err)
		}
		resp.Kind = models.ResponseKind(kind)
		if req, ok := byID[requestID]; ok {
			req.Responses = append(req.Responses, resp)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error response iteration: %w", err)
	}
	return nil
}

// applyTransition пишет статус и отметку времени, соответствующую новому статусу
func applyTransition(ctx context.Context, tx pgx.Tx, id uuid.UUID, t models.Transition) error {
	var err error
	switch t.To {
	case models.StatusAccepted:
		_, err = tx.Exec(ctx, `
			UPDATE emergency_requests SET
				status = $2,
				accepted_workshop_id = $3,
				accepted_at = $4
			WHERE id = $1;
		`, id, string(t.To), t.AcceptedWorkshopID, t.At)
	case models.StatusCancelled:
		_, err = tx.Exec(ctx, `
			UPDATE emergency_requests SET
				status = $2,
				accepted_workshop_id = NULL,
				resolved_at = $3,
				resolved_by = $4,
				cancel_reason = $5
			WHERE id = $1;
		`, id, string(t.To), t.At, t.By, t.Reason)
	case models.StatusCompleted, models.StatusExpired:
		_, err = tx.Exec(ctx, `
			UPDATE emergency_requests SET
				status = $2,
				resolved_at = $3,
				resolved_by = $4
			WHERE id = $1;
		`, id, string(t.To), t.At, t.By)
	default:
		return fmt.Errorf("unsupported target status %q", t.To)
	}
	if err != nil {
		return fmt.Errorf("failed to update emergency request status: %w", err)
	}
	return nil
}

func insertResponse(ctx context.Context, tx pgx.Tx, id uuid.UUID, resp models.WorkshopResponse) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO emergency_responses (request_id, workshop_id, kind, estimated_arrival_minutes, message, responded_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, id, resp.WorkshopID, string(resp.Kind), resp.EstimatedArrivalMinutes, resp.Message, resp.RespondedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return models.ErrDuplicateResponse
		}
		return fmt.Errorf("failed to insert workshop response: %w", err)
	}
	return nil
}

func insertEvent(ctx context.Context, tx pgx.Tx, id uuid.UUID, eventType string, data map[string]any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal emergency event: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO emergency_events (request_id, event_type, event_data)
		VALUES ($1, $2, $3::jsonb);
	`, id, eventType, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert emergency event: %w", err)
	}
	return nil
}

func isSentinel(err error) bool {
	return errors.Is(err, models.ErrRecordNotFound) ||
		errors.Is(err, models.ErrConditionFailed) ||
		errors.Is(err, models.ErrDuplicateResponse)
}
