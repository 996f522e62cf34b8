package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/roadside_dispatch/internal/models"
	"github.com/shenikar/roadside_dispatch/internal/service"
)

var (
	_ service.EmergencyRepository = (*MemoryStore)(nil)
	_ service.WorkshopDirectory   = (*MemoryStore)(nil)
)

// MemoryStore хранит заявки и справочник мастерских в памяти процесса.
// Условные переходы выполняются под общим мьютексом, поэтому гарантии те же, что у Postgres,
// но только в пределах одного экземпляра сервиса.
type MemoryStore struct {
	mu        sync.Mutex
	requests  map[uuid.UUID]*models.EmergencyRequest
	workshops []models.Workshop
}

func NewMemoryStore(workshops ...models.Workshop) *MemoryStore {
	return &MemoryStore{
		requests:  make(map[uuid.UUID]*models.EmergencyRequest),
		workshops: slices.Clone(workshops),
	}
}

// LoadWorkshopsSeed читает справочник мастерских из JSON-файла
func LoadWorkshopsSeed(path string) ([]models.Workshop, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workshops seed: %w", err)
	}
	var workshops []models.Workshop
	if err := json.Unmarshal(data, &workshops); err != nil {
		return nil, fmt.Errorf("failed to parse workshops seed: %w", err)
	}
	return workshops, nil
}

func (m *MemoryStore) AddWorkshop(w models.Workshop) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workshops = append(m.workshops, w)
}

func (m *MemoryStore) Create(_ context.Context, req *models.EmergencyRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[req.ID]; ok {
		return fmt.Errorf("emergency request %s already exists", req.ID)
	}
	m.requests[req.ID] = req.Clone()
	return nil
}

func (m *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.EmergencyRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return req.Clone(), nil
}

func (m *MemoryStore) SetCandidates(_ context.Context, id uuid.UUID, candidates []string, broadcastAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	if req.Status != models.StatusBroadcasting || req.BroadcastAt != nil {
		return models.ErrConditionFailed
	}
	req.CandidateWorkshopIDs = slices.Clone(candidates)
	req.BroadcastAt = &broadcastAt
	return nil
}

func (m *MemoryStore) Transition(_ context.Context, id uuid.UUID, t models.Transition) (*models.TransitionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	if !t.Allows(req.Status, req.ExpiresAt) {
		return nil, models.ErrConditionFailed
	}
	if t.Response != nil && req.HasResponded(t.Response.WorkshopID) {
		return nil, models.ErrDuplicateResponse
	}

	result := &models.TransitionResult{From: req.Status, PreviousAcceptedWorkshopID: req.AcceptedBy()}
	t.Apply(req)
	result.Request = req.Clone()
	return result, nil
}

func (m *MemoryStore) AppendResponse(_ context.Context, id uuid.UUID, resp models.WorkshopResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	if req.Status != models.StatusBroadcasting || !req.ExpiresAt.After(resp.RespondedAt) {
		return models.ErrConditionFailed
	}
	if req.HasResponded(resp.WorkshopID) {
		return models.ErrDuplicateResponse
	}
	req.Responses = append(req.Responses, resp)
	return nil
}

func (m *MemoryStore) ListDueForExpiry(_ context.Context, now time.Time, limit int) ([]*models.EmergencyRequest, error) {
	return m.filter(limit, 0, func(a, b *models.EmergencyRequest) bool {
		return a.ExpiresAt.Before(b.ExpiresAt)
	}, func(req *models.EmergencyRequest) bool {
		return req.Status == models.StatusBroadcasting && !req.ExpiresAt.After(now)
	}), nil
}

func (m *MemoryStore) ListByCustomer(_ context.Context, customerID string, page, pageSize int) ([]*models.EmergencyRequest, error) {
	return m.filter(pageSize, (page-1)*pageSize, newestFirst, func(req *models.EmergencyRequest) bool {
		return req.CustomerID == customerID && req.ArchivedAt == nil
	}), nil
}

func (m *MemoryStore) ListOpenForWorkshop(_ context.Context, workshopID string, now time.Time) ([]*models.EmergencyRequest, error) {
	return m.filter(0, 0, newestFirst, func(req *models.EmergencyRequest) bool {
		return req.Status == models.StatusBroadcasting &&
			req.ExpiresAt.After(now) &&
			req.IsCandidate(workshopID) &&
			!req.HasResponded(workshopID)
	}), nil
}

func (m *MemoryStore) Archive(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	if !req.Status.IsTerminal() || req.ArchivedAt != nil {
		return models.ErrConditionFailed
	}
	req.ArchivedAt = &at
	return nil
}

func (m *MemoryStore) CountByStatus(_ context.Context, since time.Time) ([]models.StatusCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byStatus := make(map[models.Status]int)
	for _, req := range m.requests {
		if !req.CreatedAt.Before(since) {
			byStatus[req.Status]++
		}
	}
	counts := make([]models.StatusCount, 0, len(byStatus))
	for status, count := range byStatus {
		counts = append(counts, models.StatusCount{Status: status, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Status < counts[j].Status })
	return counts, nil
}

// Кеш для хранилища в памяти не используется

func (m *MemoryStore) GetFromCache(context.Context, uuid.UUID) (*models.EmergencyRequest, error) {
	return nil, nil
}

func (m *MemoryStore) SetCache(context.Context, *models.EmergencyRequest) error { return nil }

func (m *MemoryStore) InvalidateCache(context.Context, uuid.UUID) error { return nil }

// FindEmergencyCapableWorkshops - справочник мастерских, отсортированный по расстоянию
func (m *MemoryStore) FindEmergencyCapableWorkshops(_ context.Context, city string, location models.Location, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type candidate struct {
		id       string
		distance float64
	}
	var found []candidate
	for _, w := range m.workshops {
		if !w.EmergencyCapable || !strings.EqualFold(w.City, city) {
			continue
		}
		found = append(found, candidate{id: w.ID, distance: haversineMeters(location, w.Location)})
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].distance == found[j].distance {
			return found[i].id < found[j].id
		}
		return found[i].distance < found[j].distance
	})

	ids := make([]string, 0, len(found))
	for _, c := range found {
		if limit > 0 && len(ids) == limit {
			break
		}
		ids = append(ids, c.id)
	}
	return ids, nil
}

func (m *MemoryStore) filter(limit, offset int, less func(a, b *models.EmergencyRequest) bool, keep func(*models.EmergencyRequest) bool) []*models.EmergencyRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]*models.EmergencyRequest, 0)
	for _, req := range m.requests {
		if keep(req) {
			matched = append(matched, req)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return less(matched[i], matched[j]) })

	if offset > 0 {
		if offset >= len(matched) {
			return []*models.EmergencyRequest{}
		}
		matched = matched[offset:]
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]*models.EmergencyRequest, len(matched))
	for i, req := range matched {
		out[i] = req.Clone()
	}
	return out
}

func newestFirst(a, b *models.EmergencyRequest) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

const earthRadiusMeters = 6371000.0

func haversineMeters(a, b models.Location) float64 {
	lat1, lat2 := a.Lat*math.Pi/180, b.Lat*math.Pi/180
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
