package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/roadside_dispatch/internal/config"
	"github.com/shenikar/roadside_dispatch/internal/models"
	"github.com/shenikar/roadside_dispatch/internal/service"
	"github.com/shenikar/roadside_dispatch/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var apiKeyHeader = map[string]string{"X-API-Key": "test-api-key"}

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockEmergencyService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockEmergencyService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:                []string{"test-api-key"},
		StatsTimeWindowMinutes: 60,
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleEmergency(status models.Status) *models.EmergencyRequest {
	now := time.Now().UTC()
	return &models.EmergencyRequest{
		ID:                   uuid.New(),
		CustomerID:           "cust-1",
		EmergencyType:        models.EmergencyTypeFlatTire,
		Phone:                "+966500000000",
		VehicleDescription:   "White Camry 2020",
		City:                 "Riyadh",
		PreciseLocation:      models.Location{Lat: 24.7136, Lng: 46.6753},
		Status:               status,
		CandidateWorkshopIDs: []string{"ws-1", "ws-2"},
		Responses:            []models.WorkshopResponse{},
		CreatedAt:            now,
		BroadcastAt:          &now,
		ExpiresAt:            now.Add(15 * time.Minute),
	}
}

func validCreateRequest() CreateEmergencyRequest {
	return CreateEmergencyRequest{
		CustomerID:         "cust-1",
		EmergencyType:      "flat_tire",
		Phone:              "+966500000000",
		VehicleDescription: "White Camry 2020",
		City:               "Riyadh",
		PreciseLocation:    &LocationDTO{Lat: 24.7136, Lng: 46.6753},
	}
}

func TestCreateEmergency_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expected := sampleEmergency(models.StatusBroadcasting)

	mockService.EXPECT().
		CreateAndBroadcast(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, input service.CreateEmergencyInput) (*models.EmergencyRequest, error) {
			assert.Equal(t, "Riyadh", input.City)
			assert.Equal(t, models.EmergencyTypeFlatTire, input.EmergencyType)
			require.NotNil(t, input.PreciseLocation)
			assert.InDelta(t, 24.7136, input.PreciseLocation.Lat, 1e-9)
			return expected, nil
		}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies", jsonBody(t, validCreateRequest()), apiKeyHeader)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp EmergencyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, expected.ID, resp.ID)
	assert.Equal(t, "broadcasting", resp.Status)
	assert.Equal(t, []string{"ws-1", "ws-2"}, resp.CandidateWorkshopIDs)
	assert.Nil(t, resp.AcceptedWorkshopID)
}

func TestCreateEmergency_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().CreateAndBroadcast(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/emergencies", bytes.NewBufferString(`{"customerId": "c"`), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateEmergency_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := validCreateRequest()
	reqBody.Phone = "" // Отсутствует телефон

	mockService.EXPECT().CreateAndBroadcast(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/emergencies", jsonBody(t, reqBody), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Phone' failed on the 'required' tag")
}

func TestCreateEmergency_UnknownType(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := validCreateRequest()
	reqBody.EmergencyType = "alien_abduction"

	mockService.EXPECT().CreateAndBroadcast(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/emergencies", jsonBody(t, reqBody), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decodeError(t, w).Kind)
}

func TestCreateEmergency_DirectoryUnavailable(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		CreateAndBroadcast(gomock.Any(), gomock.Any()).
		Return(nil, models.WrapError(models.KindDirectoryUnavailable, errors.New("dial tcp"), "workshop directory unavailable")).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies", jsonBody(t, validCreateRequest()), apiKeyHeader)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "DirectoryUnavailable", resp.Kind)
	assert.NotContains(t, w.Body.String(), "dial tcp")
}

func TestCreateEmergency_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		CreateAndBroadcast(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset")).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies", jsonBody(t, validCreateRequest()), apiKeyHeader)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestCreateEmergency_Unauthorized(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().CreateAndBroadcast(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/emergencies", jsonBody(t, validCreateRequest()))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetEmergency_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expected := sampleEmergency(models.StatusBroadcasting)

	mockService.EXPECT().GetEmergency(gomock.Any(), expected.ID).Return(expected, nil).Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/emergencies/%s", expected.ID), nil, apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp EmergencyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, expected.ID, resp.ID)
	assert.Equal(t, expected.Phone, resp.Phone)

	// незаполненные этапы приходят как null, а не пропадают из ответа
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	for _, key := range []string{"acceptedWorkshopId", "acceptedAt", "resolvedAt"} {
		value, ok := raw[key]
		require.True(t, ok, "missing key %s", key)
		assert.Equal(t, "null", string(value), key)
	}
	assert.NotEqual(t, "null", string(raw["broadcastAt"]))
}

func TestGetEmergency_InvalidID(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetEmergency(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "GET", "/api/v1/emergencies/invalid-uuid", nil, apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid emergency ID")
}

func TestGetEmergency_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().
		GetEmergency(gomock.Any(), id).
		Return(nil, models.NewError(models.KindNotFound, "emergency request %s not found", id)).
		Times(1)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/emergencies/%s", id), nil, apiKeyHeader)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NotFound", decodeError(t, w).Kind)
}

func TestListEmergencies_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expected := []*models.EmergencyRequest{
		sampleEmergency(models.StatusAccepted),
		sampleEmergency(models.StatusCompleted),
	}

	mockService.EXPECT().ListCustomerEmergencies(gomock.Any(), "cust-1", 2, 5).Return(expected, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies?customerId=cust-1&page=2&pageSize=5", nil, apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []EmergencyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
}

func TestListEmergencies_MissingCustomer(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListCustomerEmergencies(gomock.Any(), "", 1, 20).
		Return(nil, models.NewError(models.KindInvalidRequest, "customer id is required")).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies", nil, apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "customer id is required")
}

func TestSubmitResponse_Accepted(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	accepted := sampleEmergency(models.StatusAccepted)
	winner := "ws-1"
	accepted.AcceptedWorkshopID = &winner

	mockService.EXPECT().
		SubmitResponse(gomock.Any(), accepted.ID, "ws-1", service.ResponseInput{
			Kind:                    models.ResponseAccept,
			EstimatedArrivalMinutes: 12,
		}).
		Return(&service.ResponseOutcome{Outcome: service.OutcomeAccepted, Request: accepted}, nil).
		Times(1)

	body := SubmitResponseRequest{WorkshopID: "ws-1", Kind: "accept", EstimatedArrivalMinutes: 12}
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergencies/%s/responses", accepted.ID), jsonBody(t, body), apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ResponseOutcomeDTO
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "accepted", resp.Outcome)
	require.NotNil(t, resp.Request.AcceptedWorkshopID)
	assert.Equal(t, "ws-1", *resp.Request.AcceptedWorkshopID)
}

func TestSubmitResponse_AcceptWithoutETA(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().SubmitResponse(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	body := SubmitResponseRequest{WorkshopID: "ws-1", Kind: "accept"}
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergencies/%s/responses", uuid.New()), jsonBody(t, body), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EstimatedArrivalMinutes")
}

func TestSubmitResponse_DeclineWithoutETA(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	req := sampleEmergency(models.StatusBroadcasting)

	mockService.EXPECT().
		SubmitResponse(gomock.Any(), req.ID, "ws-2", gomock.Any()).
		Return(&service.ResponseOutcome{Outcome: service.OutcomeDeclined, Request: req}, nil).
		Times(1)

	body := SubmitResponseRequest{WorkshopID: "ws-2", Kind: "decline", Message: "no tow truck"}
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergencies/%s/responses", req.ID), jsonBody(t, body), apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"declined"`)
}

func TestSubmitResponse_AlreadyAccepted(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().
		SubmitResponse(gomock.Any(), id, "ws-2", gomock.Any()).
		Return(nil, models.AlreadyAcceptedError("ws-1")).
		Times(1)

	body := SubmitResponseRequest{WorkshopID: "ws-2", Kind: "accept", EstimatedArrivalMinutes: 20}
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergencies/%s/responses", id), jsonBody(t, body), apiKeyHeader)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "AlreadyAccepted", resp.Kind)
	assert.Equal(t, "ws-1", resp.AcceptedWorkshopID)
	assert.Equal(t, "request already accepted by another provider", resp.Message)
}

func TestSubmitResponse_NotACandidate(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().
		SubmitResponse(gomock.Any(), id, "ws-9", gomock.Any()).
		Return(nil, models.NewError(models.KindNotACandidate, "workshop ws-9 was not part of the broadcast")).
		Times(1)

	body := SubmitResponseRequest{WorkshopID: "ws-9", Kind: "decline"}
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergencies/%s/responses", id), jsonBody(t, body), apiKeyHeader)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NotACandidate", decodeError(t, w).Kind)
}

func TestCompleteEmergency_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	completed := sampleEmergency(models.StatusCompleted)

	mockService.EXPECT().CompleteService(gomock.Any(), completed.ID, "ws-1").Return(completed, nil).Times(1)

	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergencies/%s/complete", completed.ID), jsonBody(t, CompleteRequest{By: "ws-1"}), apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)
}

func TestCompleteEmergency_InvalidTransition(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().
		CompleteService(gomock.Any(), id, "cust-1").
		Return(nil, models.NewError(models.KindInvalidTransition, "cannot complete request in status broadcasting")).
		Times(1)

	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergencies/%s/complete", id), jsonBody(t, CompleteRequest{By: "cust-1"}), apiKeyHeader)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "InvalidTransition", decodeError(t, w).Kind)
}

func TestCancelEmergency_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	cancelled := sampleEmergency(models.StatusCancelled)
	cancelled.CancelReason = "found help"

	mockService.EXPECT().Cancel(gomock.Any(), cancelled.ID, "cust-1", "found help").Return(cancelled, nil).Times(1)

	body := CancelRequest{By: "cust-1", Reason: "found help"}
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergencies/%s/cancel", cancelled.ID), jsonBody(t, body), apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cancelReason":"found help"`)
}

func TestCancelEmergency_MissingActor(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergencies/%s/cancel", uuid.New()), jsonBody(t, CancelRequest{}), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArchiveEmergency_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().Archive(gomock.Any(), id).Return(nil).Times(1)

	w := makeRequest(router, "DELETE", fmt.Sprintf("/api/v1/emergencies/%s", id), nil, apiKeyHeader)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestArchiveEmergency_ActiveRequest(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().
		Archive(gomock.Any(), id).
		Return(models.NewError(models.KindInvalidTransition, "cannot archive request in status accepted")).
		Times(1)

	w := makeRequest(router, "DELETE", fmt.Sprintf("/api/v1/emergencies/%s", id), nil, apiKeyHeader)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListWorkshopEmergencies_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	open := []*models.EmergencyRequest{sampleEmergency(models.StatusBroadcasting)}

	mockService.EXPECT().ListOpenForWorkshop(gomock.Any(), "ws-2").Return(open, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/workshops/ws-2/emergencies", nil, apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []EmergencyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestSweepExpired_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().SweepExpired(gomock.Any(), gomock.Any()).Return(4, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies/sweep", nil, apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"transitioned":4}`, w.Body.String())
}

func TestGetStats_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	counts := []models.StatusCount{
		{Status: models.StatusAccepted, Count: 3},
		{Status: models.StatusExpired, Count: 1},
	}

	mockService.EXPECT().GetStats(gomock.Any()).Return(counts, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/stats", nil, apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StatsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 60, resp.WindowMinutes)
	assert.Equal(t, []StatusCountDTO{{Status: "accepted", Count: 3}, {Status: "expired", Count: 1}}, resp.ByStatus)
}

func TestGetStats_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetStats(gomock.Any()).Return(nil, errors.New("db error")).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/stats", nil, apiKeyHeader)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	// Health-check доступен без API ключа
	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	// Создаем Gin-роутер и добавляем middleware
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_BearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"Authorization": "Bearer valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil) // Нет API ключа
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}
