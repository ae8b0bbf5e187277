package endpoints

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nightjar-labs/marquee/internal/db"
	"github.com/nightjar-labs/marquee/internal/http/api"
	"github.com/nightjar-labs/marquee/internal/http/api/admin/control/packets"
	"github.com/nightjar-labs/marquee/internal/hub"
	"github.com/nightjar-labs/marquee/internal/model"
	"github.com/nightjar-labs/marquee/internal/redis"
)

type DeviceController struct {
	store db.Store
	hub   *hub.Hub
}

func newDeviceController(store db.Store, h *hub.Hub) *DeviceController {
	return &DeviceController{store: store, hub: h}
}

func DeviceModule(store db.Store, h *hub.Hub) api.Module {
	ctl := newDeviceController(store, h)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/devices", api.ResolveEndpointWithAuth(ctl.listDevices))
		c.POST("/devices", api.ResolveEndpointWithAuth(ctl.createDevice))
		c.GET("/devices/:id", api.ResolveEndpointWithAuth(ctl.getDevice))
		c.PATCH("/devices/:id", api.ResolveEndpointWithAuth(ctl.updateDevice))
		c.DELETE("/devices/:id", api.ResolveEndpointWithAuth(ctl.deleteDevice))

		c.POST("/devices/:id/regenerate-code", api.ResolveEndpointWithAuth(ctl.regenerateCode))
		c.PUT("/devices/:id/fallback-groups", api.ResolveEndpointWithAuth(ctl.setFallbackGroups))
		c.GET("/devices/:id/fallback-groups", api.ResolveEndpointWithAuth(ctl.listFallbackGroups))

		c.GET("/stats", api.ResolveEndpointWithAuth(ctl.stats))
	})
}

// GET /api/admin/devices
func (d *DeviceController) listDevices(ctx *gin.Context, user *model.User) (any, *api.Error) {
	devices, err := d.store.ListDevices()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	out := make([]packets.DeviceResponse, 0, len(devices))
	for _, dev := range devices {
		out = append(out, packets.DeviceResponse{Device: dev, Live: redis.IsLive(ctx, dev.AccessCode)})
	}
	return out, nil
}

// POST /api/admin/devices
func (d *DeviceController) createDevice(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var req packets.CreateDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	code, err := d.freshAccessCode()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	dev, err := d.store.CreateDevice(req.Name, req.Description, req.Location, code)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return packets.DeviceResponse{Device: dev}, nil
}

// GET /api/admin/devices/:id
func (d *DeviceController) getDevice(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	dev, err := d.store.GetDeviceByID(id)
	if err != nil {
		return nil, deviceLookupError(err)
	}
	return packets.DeviceResponse{Device: dev, Live: redis.IsLive(ctx, dev.AccessCode)}, nil
}

// PATCH /api/admin/devices/:id
func (d *DeviceController) updateDevice(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var req packets.UpdateDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if req.ScheduleGroupID != nil {
		if _, err := d.store.GetScheduleGroup(*req.ScheduleGroupID); err != nil {
			return nil, groupLookupError(err)
		}
	}
	if err := d.store.UpdateDevice(id, req.Name, req.Description, req.Location, req.IsActive,
		req.Orientation, req.FlipHorizontal, req.FlipVertical, req.ScheduleGroupID, req.ClearScheduleGroup); err != nil {
		return nil, deviceLookupError(err)
	}

	dev, err := d.store.GetDeviceByID(id)
	if err != nil {
		return nil, deviceLookupError(err)
	}
	d.hub.Notify(reasonConfigUpdated, dev.AccessCode)
	return packets.DeviceResponse{Device: dev, Live: redis.IsLive(ctx, dev.AccessCode)}, nil
}

// DELETE /api/admin/devices/:id
func (d *DeviceController) deleteDevice(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	dev, err := d.store.GetDeviceByID(id)
	if err != nil {
		return nil, deviceLookupError(err)
	}
	if err := d.store.DeleteDevice(id); err != nil {
		return nil, deviceLookupError(err)
	}

	d.hub.Disconnect(dev.AccessCode)
	redis.ClearPresence(ctx, dev.AccessCode)
	return packets.StatusResponse{Status: "deleted"}, nil
}

// POST /api/admin/devices/:id/regenerate-code
//
// The old code stops working immediately: any live socket keyed by it is
// dropped and the device must re-register with the new code.
func (d *DeviceController) regenerateCode(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	dev, err := d.store.GetDeviceByID(id)
	if err != nil {
		return nil, deviceLookupError(err)
	}

	code, err := d.freshAccessCode()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	if err := d.store.RegenerateAccessCode(id, code); err != nil {
		return nil, deviceLookupError(err)
	}

	d.hub.Disconnect(dev.AccessCode)
	redis.ClearPresence(ctx, dev.AccessCode)
	return packets.AccessCodeResponse{AccessCode: code}, nil
}

// PUT /api/admin/devices/:id/fallback-groups
func (d *DeviceController) setFallbackGroups(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var req packets.SetFallbackGroupsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	dev, err := d.store.GetDeviceByID(id)
	if err != nil {
		return nil, deviceLookupError(err)
	}
	for _, gid := range req.GroupIDs {
		if _, err := d.store.GetContentGroup(gid); err != nil {
			return nil, groupLookupError(err)
		}
	}
	if err := d.store.SetDeviceFallbackGroups(id, req.GroupIDs); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	d.hub.Notify(reasonConfigUpdated, dev.AccessCode)
	return packets.StatusResponse{Status: "updated"}, nil
}

// GET /api/admin/devices/:id/fallback-groups
func (d *DeviceController) listFallbackGroups(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if _, err := d.store.GetDeviceByID(id); err != nil {
		return nil, deviceLookupError(err)
	}
	groups, err := d.store.ListFallbackGroupsForDevice(id)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return groups, nil
}

// GET /api/admin/stats
func (d *DeviceController) stats(ctx *gin.Context, user *model.User) (any, *api.Error) {
	stats, err := d.store.Stats()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	stats["connected_devices"] = len(d.hub.ConnectedKeys())
	return stats, nil
}

// freshAccessCode draws 6-digit codes until one is unused.
func (d *DeviceController) freshAccessCode() (string, error) {
	for i := 0; i < 10; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%06d", n.Int64())
		if _, err := d.store.GetDeviceByAccessCode(code); err == db.ErrNotFound {
			return code, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("could not allocate access code")
}

func deviceLookupError(err error) *api.Error {
	if err == db.ErrNotFound {
		return &api.Error{Code: http.StatusNotFound, Message: "device not found"}
	}
	return &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
}
