package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightjar-labs/marquee/internal/db"
	"github.com/nightjar-labs/marquee/internal/http/api"
	"github.com/nightjar-labs/marquee/internal/hub"
	"github.com/nightjar-labs/marquee/internal/model"
	"github.com/nightjar-labs/marquee/internal/schedule"
)

// fakeStore implements the slice of db.Store the player surface touches;
// everything else panics through the embedded nil interface.
type fakeStore struct {
	db.Store
	devices map[string]model.Device
	configs map[string]schedule.DeviceConfig
}

func (f *fakeStore) GetDeviceByAccessCode(code string) (model.Device, error) {
	dev, ok := f.devices[code]
	if !ok {
		return model.Device{}, db.ErrNotFound
	}
	return dev, nil
}

func (f *fakeStore) RegisterDevice(code string) (model.Device, error) {
	dev, ok := f.devices[code]
	if !ok {
		return model.Device{}, db.ErrNotFound
	}
	dev.IsRegistered = true
	f.devices[code] = dev
	return dev, nil
}

func (f *fakeStore) GetDeviceConfig(code string) (schedule.DeviceConfig, error) {
	cfg, ok := f.configs[code]
	if !ok {
		return schedule.DeviceConfig{}, db.ErrNotFound
	}
	return cfg, nil
}

func (f *fakeStore) TouchDevice(code string, ip *string, w, h *int) error { return nil }
func (f *fakeStore) SetDeviceOnline(code string, online bool) error      { return nil }

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := hub.New(store)
	api.MountGroup(router, api.GroupConfig{Prefix: "/api/player"}, PlayerModule(store, h))
	return router
}

func fixtureStore() *fakeStore {
	dev := model.Device{
		ID:          1,
		Name:        "lobby screen",
		AccessCode:  "123456",
		IsActive:    true,
		Orientation: model.OrientationLandscape,
	}
	disabled := model.Device{ID: 2, Name: "storage room", AccessCode: "654321", IsActive: false}

	cfg := schedule.DeviceConfig{
		Device: dev,
		Fallbacks: []model.ContentGroup{{
			ID: 1,
			Items: []model.ContentItem{{
				ID:       1,
				Name:     "welcome",
				URL:      "/uploads/content/welcome.png",
				Kind:     model.ContentKindImage,
				IsActive: true,
			}},
		}},
		Display: model.DefaultDisplay{BackgroundMode: model.BackgroundModeSolid},
	}

	return &fakeStore{
		devices: map[string]model.Device{"123456": dev, "654321": disabled},
		configs: map[string]schedule.DeviceConfig{"123456": cfg, "654321": {Device: disabled}},
	}
}

func TestRegister(t *testing.T) {
	router := newTestRouter(fixtureStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/player/register", strings.NewReader(`{"access_code":"123456"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Device struct {
			Name        string `json:"name"`
			Orientation string `json:"orientation"`
		} `json:"device"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "lobby screen", body.Device.Name)
	assert.Equal(t, "landscape", body.Device.Orientation)
}

func TestRegisterInvalidCode(t *testing.T) {
	router := newTestRouter(fixtureStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/player/register", strings.NewReader(`{"access_code":"000000"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterDisabledDevice(t *testing.T) {
	router := newTestRouter(fixtureStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/player/register", strings.NewReader(`{"access_code":"654321"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterMalformedCode(t *testing.T) {
	router := newTestRouter(fixtureStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/player/register", strings.NewReader(`{"access_code":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaylist(t *testing.T) {
	router := newTestRouter(fixtureStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/player/123456/playlist", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		SourceKind string `json:"source_kind"`
		Entries    []struct {
			ContentID int    `json:"content_id"`
			URL       string `json:"url"`
		} `json:"entries"`
		ServerTime string `json:"server_time"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "fallback", body.SourceKind)
	require.Len(t, body.Entries, 1)
	assert.Equal(t, "/uploads/content/welcome.png", body.Entries[0].URL)
	assert.NotEmpty(t, body.ServerTime)
}

func TestPlaylistUnknownCode(t *testing.T) {
	router := newTestRouter(fixtureStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/player/000000/playlist", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfig(t *testing.T) {
	router := newTestRouter(fixtureStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/player/123456/config", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Device struct {
			FlipHorizontal bool `json:"flip_horizontal"`
		} `json:"device"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Device.FlipHorizontal)
}
