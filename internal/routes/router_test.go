package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"device-checkout/internal/config"
	"device-checkout/internal/infrastructure/database/postgres"
	"device-checkout/internal/infrastructure/database/postgres/models"
	"device-checkout/internal/logger"
	"device-checkout/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

const testPassword = "Sup3r-secret-pw"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestRouter(t *testing.T, opsHeroURL string) (*gin.Engine, *postgres.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.InitNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := postgres.NewWithDialector(sqlite.Open(dsn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Auth: config.AuthConfig{
			JWTSecret:           "test-secret",
			AdminSessionMinutes: 30,
			KioskSessionMinutes: 20160,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: config.RateLimitConfig{
			GeneralRPS:   1000,
			GeneralBurst: 1000,
			LoginRPS:     1000,
			LoginBurst:   1000,
		},
		OpsHero: config.OpsHeroConfig{
			BaseURL:   opsHeroURL,
			AccountID: "test-account",
			APIKey:    "test-key",
		},
	}

	return SetupRoutes(cfg, db), db
}

func seedSchool(t *testing.T, db *postgres.DB, id string, allowNew bool) {
	t.Helper()
	require.NoError(t, db.DB.Create(&models.SchoolModel{
		ID:              id,
		Name:            "Test School " + id,
		AllowNewDevices: allowNew,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}).Error)
}

func seedUser(t *testing.T, db *postgres.DB, username string, isAdmin bool) {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, db.DB.Create(&models.UserModel{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.org",
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}).Error)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && json.Valid(w.Body.Bytes()) {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func login(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	w, env := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "http://127.0.0.1:0")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAuthRequired(t *testing.T) {
	router, _ := newTestRouter(t, "http://127.0.0.1:0")

	w, _ := doJSON(t, router, http.MethodGet, "/api/schools", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/schools", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, db := newTestRouter(t, "http://127.0.0.1:0")
	seedUser(t, db, "kiosk", false)

	w, env := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "kiosk",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
}

func TestDeviceLifecycleOverHTTP(t *testing.T) {
	router, db := newTestRouter(t, "http://127.0.0.1:0")
	seedSchool(t, db, "kossman", false)
	seedUser(t, db, "kiosk", false)

	token := login(t, router, "kiosk")

	w, _ := doJSON(t, router, http.MethodPost, "/api/devices", token, gin.H{
		"assetTag": "CB-1001",
		"model":    "chromebook",
		"schoolId": "kossman",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := doJSON(t, router, http.MethodPost, "/api/devices/CB-1001/checkout", token, gin.H{
		"userName": "Jamie Rivera",
		"reason":   "left at home",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var device struct {
		Status         string `json:"status"`
		AssignedToName string `json:"assignedToName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &device))
	assert.Equal(t, "checked_out", device.Status)
	assert.Equal(t, "Jamie Rivera", device.AssignedToName)

	// Second checkout of the same tag is a conflict.
	w, env = doJSON(t, router, http.MethodPost, "/api/devices/CB-1001/checkout", token, gin.H{
		"userName": "Pat Morgan",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	w, _ = doJSON(t, router, http.MethodPost, "/api/devices/CB-1001/checkin", token, gin.H{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = doJSON(t, router, http.MethodPost, "/api/devices/CB-1001/checkin", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown tags 404 unless the school allows auto-registration.
	w, _ = doJSON(t, router, http.MethodPost, "/api/devices/CB-9999/checkout", token, gin.H{
		"userName": "Jamie Rivera",
		"schoolId": "kossman",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = doJSON(t, router, http.MethodGet, "/api/devices/kossman", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var devices []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &devices))
	assert.Len(t, devices, 1)
}

func TestAdminGating(t *testing.T) {
	router, db := newTestRouter(t, "http://127.0.0.1:0")
	seedSchool(t, db, "kossman", false)
	seedUser(t, db, "kiosk", false)
	seedUser(t, db, "admin", true)

	kioskToken := login(t, router, "kiosk")
	adminToken := login(t, router, "admin")

	w, _ := doJSON(t, router, http.MethodGet, "/api/logs", kioskToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/logs", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/api/devices/"+uuid.NewString(), kioskToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/api/devices/"+uuid.NewString(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/users", kioskToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogsExportHeaders(t *testing.T) {
	router, db := newTestRouter(t, "http://127.0.0.1:0")
	seedUser(t, db, "admin", true)

	adminToken := login(t, router, "admin")

	req := httptest.NewRequest(http.MethodGet, "/api/logs/export", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "device-logs.csv")
	assert.Contains(t, w.Body.String(), "timestamp,action,asset_tag")
}

func TestRepairTicketOverHTTP(t *testing.T) {
	var upstreamStatus = http.StatusCreated
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(upstreamStatus)
		_, _ = w.Write([]byte(`{"id":"oh-88"}`))
	}))
	t.Cleanup(srv.Close)

	router, db := newTestRouter(t, srv.URL)
	seedSchool(t, db, "kossman", false)
	seedUser(t, db, "kiosk", false)

	token := login(t, router, "kiosk")

	body := gin.H{
		"schoolId":      "kossman",
		"deviceType":    "chromebook",
		"fullName":      "Jamie Rivera",
		"issueType":     "cracked screen",
		"deviceBarcode": "CB-1001",
	}

	w, env := doJSON(t, router, http.MethodPost, "/api/repairs", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		OperationsHeroID string `json:"operationsHeroId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "oh-88", created.OperationsHeroID)

	// Upstream failure surfaces as a server error and leaves no mirror.
	upstreamStatus = http.StatusBadGateway
	w, _ = doJSON(t, router, http.MethodPost, "/api/repairs", token, body)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w, env = doJSON(t, router, http.MethodGet, "/api/repairs", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tickets []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &tickets))
	assert.Len(t, tickets, 1)
}

func TestLogoutRevokesToken(t *testing.T) {
	router, db := newTestRouter(t, "http://127.0.0.1:0")
	seedUser(t, db, "kiosk", false)

	token := login(t, router, "kiosk")

	w, _ := doJSON(t, router, http.MethodGet, "/api/schools", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/schools", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
