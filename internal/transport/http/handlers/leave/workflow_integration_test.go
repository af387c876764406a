package leavehandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"leavehub/internal/app/server"
	"leavehub/internal/domain/auth"
	"leavehub/internal/domain/directory"
	"leavehub/internal/domain/leave"
	"leavehub/internal/platform/config"
	"leavehub/internal/platform/db"
	"leavehub/internal/platform/logging"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestLeaveWorkflowEndToEnd(t *testing.T) {
	app, adminToken, employeeToken := newWorkflowHarness(t)

	typeID := createTestLeaveType(t, app, adminToken)

	// Employee submits a three-day application.
	status, env := doJSON(t, app, http.MethodPost, "/api/v1/leave/applications", employeeToken, map[string]any{
		"leaveTypeId": typeID,
		"startDate":   "2024-03-04",
		"endDate":     "2024-03-06",
		"reason":      "family matters out of town",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for submit, got %d (%+v)", status, env.Error)
	}
	var submitted struct {
		ID   string `json:"id"`
		Days int    `json:"days"`
	}
	if err := json.Unmarshal(env.Data, &submitted); err != nil {
		t.Fatalf("failed to decode submitted application: %v", err)
	}
	if submitted.Days != 3 {
		t.Fatalf("expected inclusive day count 3, got %d", submitted.Days)
	}

	// Admin approves; a second decision must lose.
	status, env = doJSON(t, app, http.MethodPost, "/api/v1/leave/applications/"+submitted.ID+"/approve", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for approve, got %d (%+v)", status, env.Error)
	}
	status, env = doJSON(t, app, http.MethodPost, "/api/v1/leave/applications/"+submitted.ID+"/reject", adminToken, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for decision on approved application, got %d", status)
	}
	if env.Error == nil || env.Error.Code != "invalid_state" {
		t.Fatalf("expected invalid_state, got %+v", env.Error)
	}

	// The approved days now show up in the employee's balances.
	status, env = doJSON(t, app, http.MethodGet, "/api/v1/leave/balances", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for balances, got %d", status)
	}
	var balances []leave.Balance
	if err := json.Unmarshal(env.Data, &balances); err != nil {
		t.Fatalf("failed to decode balances: %v", err)
	}
	found := false
	for _, b := range balances {
		if b.LeaveTypeID == typeID {
			found = true
			if b.TotalTaken != 3 {
				t.Fatalf("expected 3 days taken, got %d", b.TotalTaken)
			}
			if b.TotalRemaining != b.TotalAllowed-3 {
				t.Fatalf("expected remaining %d, got %d", b.TotalAllowed-3, b.TotalRemaining)
			}
		}
	}
	if !found {
		t.Fatalf("expected a balance entry for type %s", typeID)
	}

	// Non-admins cannot decide.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/leave/applications/"+submitted.ID+"/approve", employeeToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin approve, got %d", status)
	}
}

func newWorkflowHarness(t *testing.T) (*server.App, string, string) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if strings.TrimSpace(dbURL) == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		Addr:           ":0",
		DatabaseURL:    dbURL,
		JWTSecret:      "test-secret",
		FrontendDir:    "frontend/dist",
		Environment:    "test",
		LogLevel:       "error",
		AllowedOrigins: []string{"http://localhost"},
		RunMigrations:  false,
		RunSeed:        false,
		MaxBodyBytes:   1048576,
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := db.Migrate(ctx, pool, migrationsDir(t)); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	pool.Close()

	app, err := server.New(ctx, cfg, logging.New(cfg.LogLevel, cfg.Environment))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Pool.Close)

	store := directory.NewStore(app.Pool)
	adminID := createTestEmployee(t, store, true)
	employeeID := createTestEmployee(t, store, false)
	t.Cleanup(func() {
		_, _ = app.Pool.Exec(context.Background(), "DELETE FROM employees WHERE id = ANY($1)", []string{adminID, employeeID})
	})

	return app, mintToken(t, adminID, true), mintToken(t, employeeID, false)
}

func createTestEmployee(t *testing.T, store *directory.Store, isAdmin bool) string {
	t.Helper()
	hash, err := auth.HashPassword("Workflow123!")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	id, err := store.Create(context.Background(), directory.Employee{
		FirstName:  "Workflow",
		LastName:   fmt.Sprintf("Tester%d", time.Now().UnixNano()),
		Email:      fmt.Sprintf("workflow-%t-%d@example.com", isAdmin, time.Now().UnixNano()),
		Position:   "Engineer",
		Department: "Engineering",
		JoinDate:   time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
		IsAdmin:    isAdmin,
	}, hash)
	if err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return id
}

func createTestLeaveType(t *testing.T, app *server.App, adminToken string) string {
	t.Helper()
	status, env := doJSON(t, app, http.MethodPost, "/api/v1/leave/types", adminToken, map[string]any{
		"name":        fmt.Sprintf("Workflow Leave %d", time.Now().UnixNano()),
		"description": "integration workflow policy",
		"daysAllowed": 20,
		"carryOver":   false,
		"isActive":    true,
		"color":       "#3B82F6",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for type create, got %d (%+v)", status, env.Error)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode created type: %v", err)
	}
	return created.ID
}

func mintToken(t *testing.T, employeeID string, isAdmin bool) string {
	t.Helper()
	token, err := auth.GenerateToken("test-secret", auth.Identity{
		EmployeeID: employeeID,
		Email:      employeeID + "@example.com",
		IsAdmin:    isAdmin,
	}, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, app *server.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	app.Router.ServeHTTP(recorder, req)

	var env envelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response body %q: %v", recorder.Body.String(), err)
	}
	return recorder.Code, env
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to locate test file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "..", "migrations")
}
