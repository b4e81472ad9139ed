//go:build integration

package router

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Eljyoussef/POINTAGE-APP/internal/config"
	"github.com/Eljyoussef/POINTAGE-APP/internal/dto"
	"github.com/Eljyoussef/POINTAGE-APP/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test suite setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("pointage_test"),
		tcPostgres.WithUsername("pointage"),
		tcPostgres.WithPassword("pointage"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		ExportStoragePath:  t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r := New(cfg, db, rdb, smtpCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, db: db}
}

func (env *testEnv) seedAdmin(t *testing.T, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	require.NoError(t, err)
	err = env.db.Exec(`INSERT INTO admins (username, email, password_hash)
		VALUES (?, ?, ?) ON CONFLICT DO NOTHING`, email, email, string(hash)).Error
	require.NoError(t, err)
}

func (env *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"email": email, "password": password}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func (env *testEnv) createAgent(t *testing.T, token, username string) dto.CreateUserResponse {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/users", jsonBody(t, map[string]string{"username": username}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.CreateUserResponse
	decodeJSON(t, resp, &created)
	return created
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_AgentLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	env.seedAdmin(t, "admin@e2e.test", "adminpass123")
	token := env.login(t, "admin@e2e.test", "adminpass123")

	// Provision agent: derived email, one-time password
	created := env.createAgent(t, token, "FieldAgent")
	assert.Equal(t, "fieldagent@gmail.com", created.Email)
	assert.Len(t, created.OneTimePassword, 12)

	// Agent can log in on the mobile API with the generated password
	loginResp := do(t, env.server, "POST", "/v1/agent/login",
		jsonBody(t, map[string]string{"username": "FieldAgent", "password": created.OneTimePassword}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var agentLogin dto.AgentLoginResponse
	decodeJSON(t, loginResp, &agentLogin)
	assert.Equal(t, created.ID, agentLogin.UserID)

	// Assign a geofence
	posResp := do(t, env.server, "POST", "/v1/maps/positions",
		jsonBody(t, map[string]any{"user_id": created.ID, "latitude": 36.8, "longitude": 10.18, "radius": 250}), token)
	require.Equal(t, http.StatusOK, posResp.StatusCode)
	var pos dto.PositionResponse
	decodeJSON(t, posResp, &pos)

	// Re-assign: same agent keeps a single position, same row id
	posResp2 := do(t, env.server, "POST", "/v1/maps/positions",
		jsonBody(t, map[string]any{"user_id": created.ID, "latitude": 37.0, "longitude": 11.0, "radius": 500}), token)
	require.Equal(t, http.StatusOK, posResp2.StatusCode)
	var pos2 dto.PositionResponse
	decodeJSON(t, posResp2, &pos2)
	assert.Equal(t, pos.ID, pos2.ID)
	assert.Equal(t, 500.0, pos2.Radius)

	// Snapshot reflects one agent, one position (second call hits cache)
	for i := 0; i < 2; i++ {
		snapResp := do(t, env.server, "GET", "/v1/maps", nil, token)
		require.Equal(t, http.StatusOK, snapResp.StatusCode)
		var snap dto.MapSnapshotResponse
		decodeJSON(t, snapResp, &snap)
		assert.Len(t, snap.Users, 1)
		assert.Len(t, snap.Positions, 1)
	}

	// Tighten the radius only
	radResp := do(t, env.server, "PATCH", "/v1/maps/positions/"+pos.ID+"/radius",
		jsonBody(t, map[string]any{"radius": 50}), token)
	require.Equal(t, http.StatusOK, radResp.StatusCode)

	// Delete the position; agent survives
	delResp := do(t, env.server, "DELETE", "/v1/maps/positions/"+pos.ID, nil, token)
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)

	snapResp := do(t, env.server, "GET", "/v1/maps", nil, token)
	require.Equal(t, http.StatusOK, snapResp.StatusCode)
	var snap dto.MapSnapshotResponse
	decodeJSON(t, snapResp, &snap)
	assert.Len(t, snap.Users, 1)
	assert.Empty(t, snap.Positions)
}

func TestE2E_TenantIsolation(t *testing.T) {
	env := setupTestEnv(t)
	env.seedAdmin(t, "a@e2e.test", "adminpass123")
	env.seedAdmin(t, "b@e2e.test", "adminpass123")
	tokenA := env.login(t, "a@e2e.test", "adminpass123")
	tokenB := env.login(t, "b@e2e.test", "adminpass123")

	agentA := env.createAgent(t, tokenA, "agent.of.a")

	// B cannot assign a position to A's agent — reads as not found
	resp := do(t, env.server, "POST", "/v1/maps/positions",
		jsonBody(t, map[string]any{"user_id": agentA.ID, "latitude": 1, "longitude": 1, "radius": 100}), tokenB)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// B cannot reset A's agent password — existing but foreign, so Forbidden
	resp = do(t, env.server, "PUT", "/v1/users/"+agentA.ID+"/password",
		jsonBody(t, map[string]string{"new_password": "longenough"}), tokenB)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// B's listings are empty
	listResp := do(t, env.server, "GET", "/v1/users", nil, tokenB)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list []dto.UserResponse
	decodeJSON(t, listResp, &list)
	assert.Empty(t, list)
}

func TestE2E_ValidationBeforeOwnership(t *testing.T) {
	env := setupTestEnv(t)
	env.seedAdmin(t, "admin@e2e.test", "adminpass123")
	token := env.login(t, "admin@e2e.test", "adminpass123")

	// Out-of-range radius on a nonexistent agent: validation wins, 422 not 404
	resp := do(t, env.server, "POST", "/v1/maps/positions",
		jsonBody(t, map[string]any{"user_id": "9f9335e8-5f70-4f10-8f2b-8e6f8e6f8e6f", "latitude": 0, "longitude": 0, "radius": 5001}), token)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_ReportsFlow(t *testing.T) {
	env := setupTestEnv(t)
	env.seedAdmin(t, "admin@e2e.test", "adminpass123")
	token := env.login(t, "admin@e2e.test", "adminpass123")
	agent := env.createAgent(t, token, "reporter")

	// Agent submits a daily report via the mobile API
	subResp := do(t, env.server, "POST", "/v1/agent/reports",
		jsonBody(t, map[string]any{"user_id": agent.ID, "report_text": "site visited", "image_paths": []string{}}), "")
	require.Equal(t, http.StatusCreated, subResp.StatusCode)
	subResp.Body.Close()

	// Admin lists reports of their tenancy
	listResp := do(t, env.server, "GET", "/v1/reports?user_id="+agent.ID, nil, token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var reports []dto.ReportResponse
	decodeJSON(t, listResp, &reports)
	require.Len(t, reports, 1)
	assert.Equal(t, "site visited", reports[0].ReportText)
}

func TestE2E_AuthRequired(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
