package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chrisdamba/menuprofit/internal/models"
)

type stubService struct {
	got    models.Filter
	result models.AnalyticsResult
	err    error
}

func (s *stubService) MenuAnalytics(_ context.Context, filter models.Filter) (models.AnalyticsResult, error) {
	s.got = filter
	if s.err != nil {
		return models.AnalyticsResult{}, s.err
	}
	if err := filter.Validate(); err != nil {
		return models.AnalyticsResult{}, err
	}
	return s.result, nil
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    models.AnalyticsResult `json:"data"`
	Error   string                 `json:"error"`
}

func doGet(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	h := NewRouter(&stubService{}, nil, RouterConfig{})
	rec, _ := doGet(t, h, "/health")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestMenuAnalytics(t *testing.T) {
	svc := &stubService{result: models.AnalyticsResult{
		Items:   []models.MenuItemAnalytics{{ItemID: 1, ItemName: "Burger"}},
		Summary: models.Summary{TotalOrders: 3},
	}}
	h := NewRouter(svc, nil, RouterConfig{})

	rec, body := doGet(t, h, "/api/analytics/menu?startDate=2024-01-01&endDate=2024-01-31&platform=all")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !body.Success || len(body.Data.Items) != 1 || body.Data.Summary.TotalOrders != 3 {
		t.Errorf("unexpected body: %+v", body)
	}
	want := models.Filter{StartDate: "2024-01-01", EndDate: "2024-01-31"}
	if svc.got != want {
		t.Errorf("filter = %+v, want %+v", svc.got, want)
	}
}

func TestMenuAnalyticsErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		code   string
	}{
		{"bad start date", "/api/analytics/menu?startDate=01-01-2024", nil, http.StatusBadRequest, CodeInvalidFilter},
		{"bad end date", "/api/analytics/menu?endDate=2024-13-01", nil, http.StatusBadRequest, CodeInvalidFilter},
		{"source failure", "/api/analytics/menu", errors.New("connection refused"), http.StatusInternalServerError, CodeInternal},
		{"wrapped invalid filter", "/api/analytics/menu", fmt.Errorf("wrap: %w", models.ErrInvalidFilter), http.StatusBadRequest, CodeInvalidFilter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRouter(&stubService{err: tt.err}, nil, RouterConfig{})
			rec, body := doGet(t, h, tt.target)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if body.Success || body.Error != tt.code {
				t.Errorf("body = %+v, want error %s", body, tt.code)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	rec, body := doGet(t, NewRouter(&stubService{}, nil, RouterConfig{}), "/api/nope")
	if rec.Code != http.StatusNotFound || body.Error != CodeNotFound {
		t.Errorf("got %d %+v", rec.Code, body)
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := NewRouter(&stubService{}, nil, RouterConfig{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Correlation-Id", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}

func TestCORS(t *testing.T) {
	h := NewRouter(&stubService{}, nil, RouterConfig{Env: "production", CorsAllowedOrigins: []string{"https://dash.example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.com" {
		t.Errorf("allowed origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allowed origin %q", got)
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := New(ln.Addr().String(), NewRouter(&stubService{}, nil, RouterConfig{}), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, ln) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + ln.Addr().String() + "/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server did not answer: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
