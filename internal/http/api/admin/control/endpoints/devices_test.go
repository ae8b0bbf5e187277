package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightjar-labs/marquee/internal/db"
	"github.com/nightjar-labs/marquee/internal/http/api"
	playerEndpoints "github.com/nightjar-labs/marquee/internal/http/api/player/endpoints"
	"github.com/nightjar-labs/marquee/internal/hub"
	"github.com/nightjar-labs/marquee/internal/model"
	"github.com/nightjar-labs/marquee/internal/schedule"
)

// fakeStore covers the store surface the device endpoints and player pull
// touch; the embedded interface panics on anything else.
type fakeStore struct {
	db.Store
	mu      sync.Mutex
	devices map[string]model.Device // keyed by access code
}

func (f *fakeStore) byID(id int) (string, model.Device, bool) {
	for code, dev := range f.devices {
		if dev.ID == id {
			return code, dev, true
		}
	}
	return "", model.Device{}, false
}

func (f *fakeStore) GetDeviceByID(id int) (model.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dev, ok := f.byID(id); ok {
		return dev, nil
	}
	return model.Device{}, db.ErrNotFound
}

func (f *fakeStore) GetDeviceByAccessCode(code string) (model.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dev, ok := f.devices[code]
	if !ok {
		return model.Device{}, db.ErrNotFound
	}
	return dev, nil
}

func (f *fakeStore) RegenerateAccessCode(id int, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	oldCode, dev, ok := f.byID(id)
	if !ok {
		return db.ErrNotFound
	}
	delete(f.devices, oldCode)
	dev.AccessCode = code
	dev.IsRegistered = false
	f.devices[code] = dev
	return nil
}

func (f *fakeStore) GetDeviceConfig(code string) (schedule.DeviceConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dev, ok := f.devices[code]
	if !ok {
		return schedule.DeviceConfig{}, db.ErrNotFound
	}
	return schedule.DeviceConfig{Device: dev}, nil
}

func (f *fakeStore) TouchDevice(code string, ip *string, w, h *int) error { return nil }
func (f *fakeStore) SetDeviceOnline(code string, online bool) error      { return nil }

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialHub stands up a plain websocket server attaching connections to the hub
// under the path key, then dials it once.
func dialHub(t *testing.T, h *hub.Hub, key string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		h.Attach(strings.TrimPrefix(r.URL.Path, "/"), ws)
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/"+key, nil)
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

func asAdmin(c *gin.Context) {
	c.Set("currentUser", &model.User{ID: 1, Email: "admin@example.com"})
	c.Next()
}

func TestRegenerateCodeInvalidatesOldKeyEverywhere(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const oldCode = "123456"
	store := &fakeStore{devices: map[string]model.Device{
		oldCode: {ID: 1, Name: "lobby screen", AccessCode: oldCode, IsActive: true},
	}}
	h := hub.New(store)

	router := gin.New()
	api.MountGroup(router, api.GroupConfig{
		Prefix:     "/api/admin",
		Middleware: []gin.HandlerFunc{asAdmin},
	}, DeviceModule(store, h))
	api.MountGroup(router, api.GroupConfig{Prefix: "/api/player"},
		playerEndpoints.PlayerModule(store, h))

	// device is connected under the old code
	dialHub(t, h, oldCode)
	waitFor(t, func() bool { return h.Connected(oldCode) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/devices/1/regenerate-code", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AccessCode string `json:"access_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.AccessCode, 6)
	require.NotEqual(t, oldCode, body.AccessCode)

	// the old socket is terminated
	waitFor(t, func() bool { return !h.Connected(oldCode) })

	// the old code stops resolving on the pull path
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/player/"+oldCode+"/playlist", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the new code resolves, with registration reset
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/player/"+body.AccessCode+"/playlist", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	dev, err := store.GetDeviceByAccessCode(body.AccessCode)
	require.NoError(t, err)
	assert.False(t, dev.IsRegistered)
}
