package endpoints

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nightjar-labs/marquee/internal/db"
	"github.com/nightjar-labs/marquee/internal/http/api"
	"github.com/nightjar-labs/marquee/internal/http/api/admin/control/packets"
	"github.com/nightjar-labs/marquee/internal/hub"
	"github.com/nightjar-labs/marquee/internal/model"
	"github.com/nightjar-labs/marquee/internal/storage"
)

type DisplayController struct {
	store         db.Store
	hub           *hub.Hub
	storageSystem storage.Storage
}

func newDisplayController(store db.Store, h *hub.Hub, storageSystem storage.Storage) *DisplayController {
	return &DisplayController{store: store, hub: h, storageSystem: storageSystem}
}

func DisplayModule(store db.Store, h *hub.Hub, storageSystem storage.Storage) api.Module {
	ctl := newDisplayController(store, h, storageSystem)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/default-display", api.ResolveEndpointWithAuth(ctl.getDisplay))
		c.PATCH("/default-display", api.ResolveEndpointWithAuth(ctl.updateDisplay))

		c.POST("/default-display/logo", api.ResolveEndpointWithAuth(ctl.uploadLogo))
		c.DELETE("/default-display/logo", api.ResolveEndpointWithAuth(ctl.deleteLogo))

		c.POST("/default-display/background-video", api.ResolveEndpointWithAuth(ctl.uploadBackgroundVideo))
		c.DELETE("/default-display/background-video", api.ResolveEndpointWithAuth(ctl.deleteBackgroundVideo))

		c.POST("/default-display/backgrounds", api.ResolveEndpointWithAuth(ctl.uploadBackground))
		c.DELETE("/default-display/backgrounds/:id", api.ResolveEndpointWithAuth(ctl.deleteBackground))
	})
}

// GET /api/admin/default-display
func (d *DisplayController) getDisplay(ctx *gin.Context, user *model.User) (any, *api.Error) {
	display, err := d.store.GetDefaultDisplay()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return display, nil
}

// PATCH /api/admin/default-display
func (d *DisplayController) updateDisplay(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var req packets.UpdateDefaultDisplayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := d.store.UpdateDefaultDisplay(req.LogoScale, req.LogoPosition, req.BackgroundMode,
		req.BackgroundColor, req.SlideshowDuration, req.SlideshowTransition); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	d.hub.Broadcast(reasonDisplayUpdated)
	return d.getDisplay(ctx, user)
}

// POST /api/admin/default-display/logo
func (d *DisplayController) uploadLogo(ctx *gin.Context, user *model.User) (any, *api.Error) {
	filename, apiErr := d.saveUpload(ctx, storage.DirLogos, "image/")
	if apiErr != nil {
		return nil, apiErr
	}

	old, err := d.store.SetDefaultDisplayLogo(&filename)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	if old != nil {
		_ = d.storageSystem.DeleteFile(storage.DirLogos, *old)
	}

	d.hub.Broadcast(reasonDisplayUpdated)
	return d.getDisplay(ctx, user)
}

// DELETE /api/admin/default-display/logo
func (d *DisplayController) deleteLogo(ctx *gin.Context, user *model.User) (any, *api.Error) {
	old, err := d.store.SetDefaultDisplayLogo(nil)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	if old != nil {
		_ = d.storageSystem.DeleteFile(storage.DirLogos, *old)
	}

	d.hub.Broadcast(reasonDisplayUpdated)
	return packets.StatusResponse{Status: "deleted"}, nil
}

// POST /api/admin/default-display/background-video
func (d *DisplayController) uploadBackgroundVideo(ctx *gin.Context, user *model.User) (any, *api.Error) {
	filename, apiErr := d.saveUpload(ctx, storage.DirBackgrounds, "video/")
	if apiErr != nil {
		return nil, apiErr
	}

	old, err := d.store.SetDefaultDisplayVideo(&filename)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	if old != nil {
		_ = d.storageSystem.DeleteFile(storage.DirBackgrounds, *old)
	}

	d.hub.Broadcast(reasonDisplayUpdated)
	return d.getDisplay(ctx, user)
}

// DELETE /api/admin/default-display/background-video
func (d *DisplayController) deleteBackgroundVideo(ctx *gin.Context, user *model.User) (any, *api.Error) {
	old, err := d.store.SetDefaultDisplayVideo(nil)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	if old != nil {
		_ = d.storageSystem.DeleteFile(storage.DirBackgrounds, *old)
	}

	d.hub.Broadcast(reasonDisplayUpdated)
	return packets.StatusResponse{Status: "deleted"}, nil
}

// POST /api/admin/default-display/backgrounds
func (d *DisplayController) uploadBackground(ctx *gin.Context, user *model.User) (any, *api.Error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "missing file"}
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "unsupported file type"}
	}

	filename, url, err := d.storageSystem.SaveFile(fileHeader, storage.DirBackgrounds)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not store file"}
	}
	img, err := d.store.AddBackgroundImage(filename, url)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	d.hub.Broadcast(reasonDisplayUpdated)
	return img, nil
}

// DELETE /api/admin/default-display/backgrounds/:id
func (d *DisplayController) deleteBackground(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	img, err := d.store.DeleteBackgroundImage(id)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, &api.Error{Code: http.StatusNotFound, Message: "background not found"}
		}
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	_ = d.storageSystem.DeleteFile(storage.DirBackgrounds, img.Filename)

	d.hub.Broadcast(reasonDisplayUpdated)
	return packets.StatusResponse{Status: "deleted"}, nil
}

// saveUpload stores a single-file form upload after checking its media class.
func (d *DisplayController) saveUpload(ctx *gin.Context, dir, mimePrefix string) (string, *api.Error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return "", &api.Error{Code: http.StatusBadRequest, Message: "missing file"}
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), mimePrefix) {
		return "", &api.Error{Code: http.StatusBadRequest, Message: "unsupported file type"}
	}
	filename, _, err := d.storageSystem.SaveFile(fileHeader, dir)
	if err != nil {
		return "", &api.Error{Code: http.StatusInternalServerError, Message: "could not store file"}
	}
	return filename, nil
}
