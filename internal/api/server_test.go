package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cryptopia/skalegasminer/internal/config"
	"github.com/cryptopia/skalegasminer/internal/mining"
)

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			Enabled:    true,
			Bind:       "127.0.0.1:0",
			StatsCache: 0,
		},
	}
}

func TestHandleStatus(t *testing.T) {
	s := NewServer(testConfig(), &mining.Session{})

	req := httptest.NewRequest("GET", "/api/status", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.IsMining {
		t.Error("expected IsMining = false for a fresh session")
	}
}

func TestHandleStatusCaches(t *testing.T) {
	cfg := testConfig()
	cfg.API.StatsCache = time.Hour
	s := NewServer(cfg, &mining.Session{})

	req := httptest.NewRequest("GET", "/api/status", nil)
	w1 := httptest.NewRecorder()
	s.router.ServeHTTP(w1, req)

	w2 := httptest.NewRecorder()
	s.router.ServeHTTP(w2, req)

	if w1.Body.String() != w2.Body.String() {
		t.Error("second request within the cache window should return identical cached body")
	}
}

func TestHandleMineValidatesBody(t *testing.T) {
	s := NewServer(testConfig(), &mining.Session{})

	req := httptest.NewRequest("POST", "/api/mine", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Errorf("status = %d, want 400 for a missing required field", w.Code)
	}
}

func TestHandleMineImmediateWin(t *testing.T) {
	s := NewServer(testConfig(), &mining.Session{})

	body, _ := json.Marshal(MineRequest{
		Amount:      1,
		FromAddress: "0x000102030405060708090a0b0c0d0e0f10111213",
		Nonce:       1,
		Difficulty:  1,
		MaxThreads:  1,
	})

	req := httptest.NewRequest("POST", "/api/mine", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp MineResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
}

func TestHandleStopNoopWithoutSession(t *testing.T) {
	s := NewServer(testConfig(), &mining.Session{})

	req := httptest.NewRequest("POST", "/api/stop", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := NewServer(testConfig(), &mining.Session{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
