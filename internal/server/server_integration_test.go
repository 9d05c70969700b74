package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

type wsGestureEvent struct {
	Type       string `json:"type"`
	Recognizer string `json:"recognizer"`
	Global     struct {
		Distance float64 `json:"distance"`
	} `json:"global"`
	Source struct {
		Type string  `json:"type"`
		ID   int     `json:"id"`
		T    int64   `json:"t"`
		X    float64 `json:"x"`
	} `json:"source"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	cfg := config.NewDefaultConfig()
	a := app.New(app.ConfigFrom(cfg, s, nil))
	if err := a.LoadProfiles(); err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}

	return httptest.NewServer(New(Config{Store: s, App: a}))
}

func dialSurface(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/surface"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%s) error = %v", url, err)
	}
	return conn
}

func sendPointer(t *testing.T, conn *websocket.Conn, msg string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("WriteMessage(%s) error = %v", msg, err)
	}
}

func readGesture(t *testing.T, conn *websocket.Conn) wsGestureEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	var e wsGestureEvent
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", data, err)
	}
	return e
}

// closeSurface closes the client side and waits for the server to close the
// connection after flushing.
func closeSurface(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	conn.Close()
}

func TestAPI_ProfileWorkflow(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	client := ts.Client()

	// 1. Create a profile
	createBody := `{"name": "swipe", "kind": "single"}`
	resp, err := client.Post(ts.URL+"/api/profiles", "application/json", bytes.NewBufferString(createBody))
	if err != nil {
		t.Fatalf("POST /api/profiles error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.Name != "swipe" {
		t.Errorf("created name = %s, want swipe", created.Name)
	}

	// 2. Replace its thresholds
	thresholdBody := `{"thresholds": [{"parameterSet": "initial", "timespan": "global", "key": "distance", "min": 50}]}`
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/profiles/"+created.ID+"/thresholds", bytes.NewBufferString(thresholdBody))
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("PUT thresholds error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT thresholds status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	// 3. Health reports the reloaded profile
	resp, _ = client.Get(ts.URL + "/api/health")
	var health struct {
		Profiles int `json:"profiles"`
	}
	json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if health.Profiles != 1 {
		t.Errorf("health profiles = %d, want 1", health.Profiles)
	}

	// 4. Delete profile
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/profiles/"+created.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 5. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/profiles/" + created.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}

func TestSurface_Tap(t *testing.T) {
	// Registered first so it runs after the store is closed.
	t.Cleanup(func() { goleak.VerifyNone(t) })

	ts := newTestServer(t)
	defer ts.Close()

	conn := dialSurface(t, ts)
	sendPointer(t, conn, `{"type":"down","id":1,"x":10,"y":10,"t":1000}`)
	sendPointer(t, conn, `{"type":"up","id":1,"x":13,"y":14,"t":1120}`)

	e := readGesture(t, conn)
	if e.Type != "tap" || e.Recognizer != "tap" {
		t.Errorf("event = %s/%s, want tap/tap", e.Type, e.Recognizer)
	}
	if e.Global.Distance != 5 {
		t.Errorf("global distance = %v, want 5", e.Global.Distance)
	}
	if e.Source.Type != "up" || e.Source.ID != 1 || e.Source.T != 1120 {
		t.Errorf("source = %+v, want the up event of pointer 1", e.Source)
	}

	closeSurface(t, conn)
}

func TestSurface_SkipsMalformedMessages(t *testing.T) {
	// Registered first so it runs after the store is closed.
	t.Cleanup(func() { goleak.VerifyNone(t) })

	ts := newTestServer(t)
	defer ts.Close()

	conn := dialSurface(t, ts)
	sendPointer(t, conn, `not json`)
	sendPointer(t, conn, `{"type":"hover","id":1,"x":0,"y":0,"t":0}`)
	sendPointer(t, conn, `{"type":"down","id":2,"x":0,"y":0,"t":0}`)
	sendPointer(t, conn, `{"type":"up","id":2,"x":0,"y":0,"t":50}`)

	if e := readGesture(t, conn); e.Type != "tap" || e.Source.ID != 2 {
		t.Errorf("event = %+v, want tap of pointer 2", e)
	}

	closeSurface(t, conn)
}

func TestSurface_StoredProfile(t *testing.T) {
	// Registered first so it runs after the store is closed.
	t.Cleanup(func() { goleak.VerifyNone(t) })

	ts := newTestServer(t)
	defer ts.Close()

	body := `{"name": "press", "kind": "tap", "thresholds": [
		{"parameterSet": "initial", "timespan": "global", "key": "duration", "min": 300, "max": 1000}
	]}`
	resp, err := ts.Client().Post(ts.URL+"/api/profiles", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST /api/profiles error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	conn := dialSurface(t, ts)
	// Too slow for the built-in tap, within the stored profile.
	sendPointer(t, conn, `{"type":"down","id":1,"x":0,"y":0,"t":0}`)
	sendPointer(t, conn, `{"type":"up","id":1,"x":1,"y":1,"t":500}`)

	if e := readGesture(t, conn); e.Type != "press" || e.Recognizer != "press" {
		t.Errorf("event = %s/%s, want press/press", e.Type, e.Recognizer)
	}

	closeSurface(t, conn)
}

func TestSurface_WriterLogsFailedCloseFrame(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewSurfaceHandler(nil, nil)

	result := make(chan error, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			result <- err
			return
		}
		conn.Close()

		outbox := make(chan gesture.Event)
		close(outbox)
		result <- h.write(conn, outbox, zap.New(core))
	}))
	defer ts.Close()

	conn := dialSurface(t, ts)
	defer conn.Close()

	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("write() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("writer did not return")
	}

	if n := logs.FilterMessage("close frame not sent").Len(); n != 1 {
		t.Errorf("expected 1 close frame log entry, got %d", n)
	}
}
