package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resort_booking/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are exported
	observability.ObserveHTTP("customer", "/chat", "POST", 200, 12*time.Millisecond)
	observability.ObserveReservation("created")
	observability.ObserveQuotes(3)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"resort_http_requests_total",
		`resort_reservations_total{outcome="created"}`,
		"resort_inquiry_quotes_count",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}

func TestNewLogger_FallsBackToInfo(t *testing.T) {
	l := observability.NewLogger("prod", "not-a-level")
	if got := l.GetLevel().String(); got != "info" {
		t.Fatalf("level = %s, want info", got)
	}
	if got := observability.NewLogger("dev", "debug").GetLevel().String(); got != "debug" {
		t.Fatalf("level = %s, want debug", got)
	}
}
