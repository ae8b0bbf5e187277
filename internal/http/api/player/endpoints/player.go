package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nightjar-labs/marquee/internal/db"
	"github.com/nightjar-labs/marquee/internal/http/api"
	"github.com/nightjar-labs/marquee/internal/http/api/player/packets"
	"github.com/nightjar-labs/marquee/internal/hub"
	"github.com/nightjar-labs/marquee/internal/model"
	"github.com/nightjar-labs/marquee/internal/schedule"
)

type PlayerController struct {
	store db.Store
	hub   *hub.Hub
}

func newPlayerController(store db.Store, h *hub.Hub) *PlayerController {
	return &PlayerController{store: store, hub: h}
}

// PlayerModule mounts the unauthenticated pull surface the player polls.
// Possession of a valid access code is the only credential.
func PlayerModule(store db.Store, h *hub.Hub) api.Module {
	ctl := newPlayerController(store, h)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/register", api.ResolveEndpoint(ctl.register))
		c.GET("/:access_code/config", api.ResolveEndpoint(ctl.config))
		c.GET("/:access_code/playlist", api.ResolveEndpoint(ctl.playlist))
	})
}

// POST /api/player/register
func (p *PlayerController) register(ctx *gin.Context) (any, *api.Error) {
	var req packets.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	dev, err := p.store.GetDeviceByAccessCode(req.AccessCode)
	if err != nil {
		return nil, playerLookupError(err)
	}
	if !dev.IsActive {
		return nil, &api.Error{Code: http.StatusForbidden, Message: "device is disabled"}
	}

	dev, err = p.store.RegisterDevice(req.AccessCode)
	if err != nil {
		return nil, playerLookupError(err)
	}
	return packets.ConfigResponse{Device: deviceSettings(dev), ServerTime: time.Now().UTC()}, nil
}

// GET /api/player/:access_code/config
func (p *PlayerController) config(ctx *gin.Context) (any, *api.Error) {
	dev, err := p.store.GetDeviceByAccessCode(ctx.Param("access_code"))
	if err != nil {
		return nil, playerLookupError(err)
	}
	if !dev.IsActive {
		return nil, &api.Error{Code: http.StatusForbidden, Message: "device is disabled"}
	}
	return packets.ConfigResponse{Device: deviceSettings(dev), ServerTime: time.Now().UTC()}, nil
}

// GET /api/player/:access_code/playlist
//
// The playlist is computed per request: resolution is cheap and statelessness
// means a player that missed every push still converges on the next poll.
func (p *PlayerController) playlist(ctx *gin.Context) (any, *api.Error) {
	cfg, err := p.store.GetDeviceConfig(ctx.Param("access_code"))
	if err != nil {
		return nil, playerLookupError(err)
	}
	if !cfg.Device.IsActive {
		return nil, &api.Error{Code: http.StatusForbidden, Message: "device is disabled"}
	}

	pl := schedule.BuildForDevice(cfg, time.Now())
	return packets.PlaylistResponse{
		Playlist:   pl,
		Device:     deviceSettings(cfg.Device),
		ServerTime: time.Now().UTC(),
	}, nil
}

func deviceSettings(dev model.Device) packets.DeviceSettings {
	return packets.DeviceSettings{
		Name:           dev.Name,
		Orientation:    dev.Orientation,
		FlipHorizontal: dev.FlipHorizontal,
		FlipVertical:   dev.FlipVertical,
	}
}

func playerLookupError(err error) *api.Error {
	if err == db.ErrNotFound {
		return &api.Error{Code: http.StatusNotFound, Message: "invalid access code"}
	}
	return &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
}
