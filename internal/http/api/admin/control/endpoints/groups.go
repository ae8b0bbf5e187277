package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nightjar-labs/marquee/internal/db"
	"github.com/nightjar-labs/marquee/internal/http/api"
	"github.com/nightjar-labs/marquee/internal/http/api/admin/control/packets"
	"github.com/nightjar-labs/marquee/internal/hub"
	"github.com/nightjar-labs/marquee/internal/model"
	"github.com/nightjar-labs/marquee/internal/storage"
)

type ScheduleGroupController struct {
	store         db.Store
	hub           *hub.Hub
	storageSystem storage.Storage
}

func newScheduleGroupController(store db.Store, h *hub.Hub, storageSystem storage.Storage) *ScheduleGroupController {
	return &ScheduleGroupController{store: store, hub: h, storageSystem: storageSystem}
}

func ScheduleGroupModule(store db.Store, h *hub.Hub, storageSystem storage.Storage) api.Module {
	ctl := newScheduleGroupController(store, h, storageSystem)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedule-groups", api.ResolveEndpointWithAuth(ctl.listGroups))
		c.POST("/schedule-groups", api.ResolveEndpointWithAuth(ctl.createGroup))
		c.GET("/schedule-groups/:id", api.ResolveEndpointWithAuth(ctl.getGroup))
		c.PATCH("/schedule-groups/:id", api.ResolveEndpointWithAuth(ctl.updateGroup))
		c.DELETE("/schedule-groups/:id", api.ResolveEndpointWithAuth(ctl.deleteGroup))

		c.POST("/schedule-groups/:id/content", api.ResolveEndpointWithAuth(ctl.uploadContent))
		c.POST("/schedule-groups/:id/reorder", api.ResolveEndpointWithAuth(ctl.reorderContent))
	})
}

// GET /api/admin/schedule-groups
func (g *ScheduleGroupController) listGroups(ctx *gin.Context, user *model.User) (any, *api.Error) {
	groups, err := g.store.ListScheduleGroups()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	out := make([]packets.ScheduleGroupSummary, 0, len(groups))
	for _, gr := range groups {
		full, err := g.store.GetScheduleGroup(gr.ID)
		if err != nil {
			return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
		}
		keys, err := g.store.DeviceKeysForScheduleGroup(gr.ID)
		if err != nil {
			return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
		}
		out = append(out, packets.ScheduleGroupSummary{
			ScheduleGroup: gr,
			ScheduleCount: len(full.Schedules),
			ContentCount:  len(full.Items),
			DeviceCount:   len(keys),
		})
	}
	return out, nil
}

// POST /api/admin/schedule-groups
func (g *ScheduleGroupController) createGroup(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var req packets.CreateScheduleGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	color := req.Color
	if color == "" {
		color = "#10B981"
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	grp, err := g.store.CreateScheduleGroup(req.Name, req.Description, color, isActive)
	if err != nil {
		return nil, &api.Error{Code: http.StatusConflict, Message: err.Error()} // unique name
	}
	return grp, nil
}

// GET /api/admin/schedule-groups/:id
func (g *ScheduleGroupController) getGroup(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	grp, err := g.store.GetScheduleGroup(id)
	if err != nil {
		return nil, groupLookupError(err)
	}
	return grp, nil
}

// PATCH /api/admin/schedule-groups/:id
func (g *ScheduleGroupController) updateGroup(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var req packets.UpdateScheduleGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := g.store.UpdateScheduleGroup(id, req.Name, req.Description, req.Color, req.IsActive, req.TransitionType, req.TransitionDuration); err != nil {
		return nil, groupLookupError(err)
	}

	notifyScheduleGroup(g.store, g.hub, id, reasonScheduleUpdated)

	grp, err := g.store.GetScheduleGroup(id)
	if err != nil {
		return nil, groupLookupError(err)
	}
	return grp, nil
}

// DELETE /api/admin/schedule-groups/:id
func (g *ScheduleGroupController) deleteGroup(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	// collect backing files and affected devices before the cascade delete
	grp, err := g.store.GetScheduleGroup(id)
	if err != nil {
		return nil, groupLookupError(err)
	}
	keys, err := g.store.DeviceKeysForScheduleGroup(id)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	if err := g.store.DeleteScheduleGroup(id); err != nil {
		return nil, groupLookupError(err)
	}

	for _, item := range grp.Items {
		_ = g.storageSystem.DeleteFile(storage.DirContent, item.Filename)
	}
	if len(keys) > 0 {
		g.hub.Notify(reasonScheduleUpdated, keys...)
	}
	return packets.StatusResponse{Status: "deleted"}, nil
}

// POST /api/admin/schedule-groups/:id/content
func (g *ScheduleGroupController) uploadContent(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if _, err := g.store.GetScheduleGroup(id); err != nil {
		return nil, groupLookupError(err)
	}

	item, apiErr := saveContentUpload(ctx, g.storageSystem, model.ContentItem{ScheduleGroupID: &id})
	if apiErr != nil {
		return nil, apiErr
	}

	created, err := g.store.CreateContentItem(item)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create content item"}
	}

	notifyScheduleGroup(g.store, g.hub, id, reasonContentUpdated)
	return created, nil
}

// POST /api/admin/schedule-groups/:id/reorder
func (g *ScheduleGroupController) reorderContent(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var req packets.ReorderItemsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := g.store.ReorderScheduleGroupItems(id, req.ItemIDs); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	notifyScheduleGroup(g.store, g.hub, id, reasonContentUpdated)
	return packets.StatusResponse{Status: "reordered"}, nil
}

func groupLookupError(err error) *api.Error {
	if errors.Is(err, db.ErrNotFound) {
		return &api.Error{Code: http.StatusNotFound, Message: "group not found"}
	}
	return &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
}
