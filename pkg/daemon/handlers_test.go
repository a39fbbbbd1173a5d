package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ajmccaus/touch-timeout/pkg/config"
	"github.com/ajmccaus/touch-timeout/pkg/types"
)

func newTestServer() (*apiServer, chan struct{}, chan int) {
	cfg := config.Default()
	tr := newTracker(func() uint32 { return 42 }, cfg.Brightness, 255,
		timings{dimBrightness: 15, dimSeconds: 30, offSeconds: 300})

	wake := make(chan struct{}, 1)
	brightness := make(chan int, 1)
	return &apiServer{
		cfg:        cfg,
		tracker:    tr,
		wake:       wake,
		brightness: brightness,
	}, wake, brightness
}

func doRequest(t *testing.T, s *apiServer, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func TestGetStatus(t *testing.T) {
	s, _, _ := newTestServer()

	w := doRequest(t, s, http.MethodGet, "/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", w.Code)
	}

	var got types.Status
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	if got.State != "FULL" {
		t.Errorf("state = %q, want FULL", got.State)
	}
	if got.Brightness != config.DefaultBrightness {
		t.Errorf("brightness = %d, want %d", got.Brightness, config.DefaultBrightness)
	}
	if got.UptimeSeconds != 42 {
		t.Errorf("uptime = %d, want 42", got.UptimeSeconds)
	}
	if got.DimTimeoutSeconds != 30 || got.OffTimeoutSeconds != 300 {
		t.Errorf("timeouts = %d/%d, want 30/300", got.DimTimeoutSeconds, got.OffTimeoutSeconds)
	}
}

func TestGetConfig(t *testing.T) {
	s, _, _ := newTestServer()

	w := doRequest(t, s, http.MethodGet, "/config", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", w.Code)
	}

	var got config.RawFileConfig
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if got.Brightness == nil || *got.Brightness != config.DefaultBrightness {
		t.Errorf("brightness = %v, want %d", got.Brightness, config.DefaultBrightness)
	}
	if got.Backlight == nil || *got.Backlight != config.DefaultBacklight {
		t.Errorf("backlight = %v, want %q", got.Backlight, config.DefaultBacklight)
	}
}

func TestPostWake(t *testing.T) {
	s, wake, _ := newTestServer()

	w := doRequest(t, s, http.MethodPost, "/wake", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", w.Code)
	}
	select {
	case <-wake:
	default:
		t.Fatal("no wake delivered")
	}

	// With a wake already pending the handler must not block.
	wake <- struct{}{}
	w = doRequest(t, s, http.MethodPost, "/wake", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200 with pending wake", w.Code)
	}
}

func TestGetBrightness(t *testing.T) {
	s, _, _ := newTestServer()

	w := doRequest(t, s, http.MethodGet, "/brightness", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", w.Code)
	}
	var got int
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal brightness: %v", err)
	}
	if got != config.DefaultBrightness {
		t.Errorf("brightness = %d, want %d", got, config.DefaultBrightness)
	}
}

func TestPutBrightness(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"valid", "200", http.StatusCreated},
		{"below minimum", "5", http.StatusBadRequest},
		{"above hardware max", "300", http.StatusBadRequest},
		{"not a number", `"bright"`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, brightness := newTestServer()

			w := doRequest(t, s, http.MethodPut, "/brightness", tc.body)
			if w.Code != tc.wantCode {
				t.Fatalf("code = %d, want %d", w.Code, tc.wantCode)
			}

			if tc.wantCode == http.StatusCreated {
				select {
				case v := <-brightness:
					if v != 200 {
						t.Errorf("delivered %d, want 200", v)
					}
				default:
					t.Fatal("no brightness delivered")
				}
			} else if len(brightness) != 0 {
				t.Error("rejected request must not reach the loop")
			}
		})
	}
}

func TestPutBrightnessDoesNotBlockWithoutConsumer(t *testing.T) {
	s, _, brightness := newTestServer()

	// Occupy the one-slot buffer so the send cannot succeed, as during
	// shutdown when the loop no longer drains the channel.
	brightness <- 180

	w := doRequest(t, s, http.MethodPut, "/brightness", "200")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("code = %d, want 503", w.Code)
	}
	if v := <-brightness; v != 180 {
		t.Errorf("pending value = %d, want the original 180", v)
	}
}

func TestGetVersion(t *testing.T) {
	s, _, _ := newTestServer()

	w := doRequest(t, s, http.MethodGet, "/version", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "dev") {
		t.Errorf("body = %q, want the version string", w.Body.String())
	}
}
