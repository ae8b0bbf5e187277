package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeviceStore struct {
	mu      sync.Mutex
	touched []string
	online  map[string]bool
}

func newFakeDeviceStore() *fakeDeviceStore {
	return &fakeDeviceStore{online: make(map[string]bool)}
}

func (f *fakeDeviceStore) TouchDevice(code string, ip *string, w, h *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = append(f.touched, code)
	return nil
}

func (f *fakeDeviceStore) SetDeviceOnline(code string, online bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.online[code] = online
	return nil
}

func (f *fakeDeviceStore) touchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.touched)
}

func (f *fakeDeviceStore) isOnline(code string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online[code]
}

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialHub stands up a websocket server that attaches every connection to the
// hub under the key from the path, then dials it once.
func dialHub(t *testing.T, h *Hub, key string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		h.Attach(strings.TrimPrefix(r.URL.Path, "/ws/"), ws)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + key
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestNotifyDeliversSignal(t *testing.T) {
	store := newFakeDeviceStore()
	h := New(store)
	client := dialHub(t, h, "111111")

	waitFor(t, func() bool { return h.Connected("111111") })
	h.Notify("content_updated", "111111")

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := client.ReadMessage()
	require.NoError(t, err)

	var sig Signal
	require.NoError(t, json.Unmarshal(raw, &sig))
	assert.Equal(t, "config_changed", sig.Type)
	assert.Equal(t, "content_updated", sig.Reason)
	assert.NotZero(t, sig.Timestamp)
}

func TestNotifyIgnoresUnknownKeys(t *testing.T) {
	h := New(newFakeDeviceStore())
	// no connections at all; must not panic or block
	h.Notify("content_updated", "999999")
	h.Broadcast("default_display_updated")
}

func TestHeartbeatTouchesStoreAndAcks(t *testing.T) {
	store := newFakeDeviceStore()
	var presenceKeys []string
	var presenceMu sync.Mutex
	h := New(store, WithPresence(func(key string) {
		presenceMu.Lock()
		presenceKeys = append(presenceKeys, key)
		presenceMu.Unlock()
	}))
	client := dialHub(t, h, "222222")
	waitFor(t, func() bool { return h.Connected("222222") })

	ip := "10.0.0.5"
	hb := map[string]any{"type": "heartbeat", "ip_address": ip, "screen_width": 1920, "screen_height": 1080}
	require.NoError(t, client.WriteJSON(hb))

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := client.ReadMessage()
	require.NoError(t, err)

	var ack map[string]string
	require.NoError(t, json.Unmarshal(raw, &ack))
	assert.Equal(t, "heartbeat_ack", ack["type"])

	waitFor(t, func() bool { return store.touchCount() > 0 })
	presenceMu.Lock()
	defer presenceMu.Unlock()
	assert.Contains(t, presenceKeys, "222222")
}

func TestAttachMarksOnlineDetachMarksOffline(t *testing.T) {
	store := newFakeDeviceStore()
	h := New(store)
	client := dialHub(t, h, "333333")

	waitFor(t, func() bool { return store.isOnline("333333") })

	_ = client.Close()
	waitFor(t, func() bool { return !h.Connected("333333") })
	waitFor(t, func() bool { return !store.isOnline("333333") })
}

func TestDisconnectClosesConnection(t *testing.T) {
	store := newFakeDeviceStore()
	h := New(store)
	client := dialHub(t, h, "444444")
	waitFor(t, func() bool { return h.Connected("444444") })

	h.Disconnect("444444")
	waitFor(t, func() bool { return !h.Connected("444444") })

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := client.ReadMessage(); err != nil {
			break
		}
	}
}

func TestSecondAttachReplacesFirst(t *testing.T) {
	store := newFakeDeviceStore()
	h := New(store)

	first := dialHub(t, h, "555555")
	waitFor(t, func() bool { return h.Connected("555555") })

	second := dialHub(t, h, "555555")
	waitFor(t, func() bool {
		keys := h.ConnectedKeys()
		return len(keys) == 1 && keys[0] == "555555"
	})

	// the first socket is closed by the replacement
	_ = first.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := first.ReadMessage(); err != nil {
			break
		}
	}

	// the replaced connection's detach must not mark the device offline
	// while the replacement is live
	time.Sleep(100 * time.Millisecond)
	assert.True(t, h.Connected("555555"))
	assert.True(t, store.isOnline("555555"))

	// the replacement still receives signals
	h.Notify("schedule_updated", "555555")
	_ = second.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := second.ReadMessage()
	require.NoError(t, err)
	var sig Signal
	require.NoError(t, json.Unmarshal(raw, &sig))
	assert.Equal(t, "schedule_updated", sig.Reason)
}
