package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"answersheet_backend/backend/internal/account"
	"answersheet_backend/backend/internal/result"
	"answersheet_backend/backend/internal/server"
	"answersheet_backend/backend/internal/shared"
	"answersheet_backend/backend/internal/store/memstore"
	"answersheet_backend/backend/internal/submission"
)

// TestEnv holds the running components for a test
type TestEnv struct {
	Router http.Handler
	Store  *memstore.Store
}

// setupServerTestEnv wires the full router against an in-memory store
func setupServerTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	st := memstore.New()
	subjects := []string{"Math", "Physics"}

	services := &server.Services{
		Accounts:    account.NewService(st, 4),
		Submissions: submission.NewService(st, subjects),
		Results:     result.NewService(st),
	}

	corsConfig := shared.CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}

	return &TestEnv{
		Router: server.SetupRoutes(services, corsConfig),
		Store:  st,
	}
}

// doJSON issues a request with an optional JSON body and returns the recorder
func doJSON(t *testing.T, router http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// decodeBody unmarshals a recorded JSON response
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", rr.Body.String(), err)
	}
	return resp
}
