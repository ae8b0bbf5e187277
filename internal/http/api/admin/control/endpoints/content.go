package endpoints

import (
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

type ContentGroupController struct {
	store         db.Store
	hub           *hub.Hub
	storageSystem storage.Storage
}

func newContentGroupController(store db.Store, h *hub.Hub, storageSystem storage.Storage) *ContentGroupController {
	return &ContentGroupController{store: store, hub: h, storageSystem: storageSystem}
}

func ContentGroupModule(store db.Store, h *hub.Hub, storageSystem storage.Storage) api.Module {
	ctl := newContentGroupController(store, h, storageSystem)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/content-groups", api.ResolveEndpointWithAuth(ctl.listGroups))
		c.POST("/content-groups", api.ResolveEndpointWithAuth(ctl.createGroup))
		c.GET("/content-groups/:id", api.ResolveEndpointWithAuth(ctl.getGroup))
		c.PATCH("/content-groups/:id", api.ResolveEndpointWithAuth(ctl.updateGroup))
		c.DELETE("/content-groups/:id", api.ResolveEndpointWithAuth(ctl.deleteGroup))

		c.POST("/content-groups/:id/content", api.ResolveEndpointWithAuth(ctl.uploadContent))
		c.POST("/content-groups/:id/reorder", api.ResolveEndpointWithAuth(ctl.reorderContent))

		// items are addressable regardless of which kind of group owns them
		c.PATCH("/content/:id", api.ResolveEndpointWithAuth(ctl.updateItem))
		c.DELETE("/content/:id", api.ResolveEndpointWithAuth(ctl.deleteItem))
	})
}

// GET /api/admin/content-groups
func (g *ContentGroupController) listGroups(ctx *gin.Context, user *model.User) (any, *api.Error) {
	groups, err := g.store.ListContentGroups()
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return groups, nil
}

// POST /api/admin/content-groups
func (g *ContentGroupController) createGroup(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var req packets.CreateContentGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	color := req.Color
	if color == "" {
		color = "#3B82F6"
	}
	grp, err := g.store.CreateContentGroup(req.Name, req.Description, color)
	if err != nil {
		return nil, &api.Error{Code: http.StatusConflict, Message: err.Error()}
	}
	return grp, nil
}

// GET /api/admin/content-groups/:id
func (g *ContentGroupController) getGroup(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	grp, err := g.store.GetContentGroup(id)
	if err != nil {
		return nil, groupLookupError(err)
	}
	return grp, nil
}

// PATCH /api/admin/content-groups/:id
func (g *ContentGroupController) updateGroup(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var req packets.UpdateContentGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := g.store.UpdateContentGroup(id, req.Name, req.Description, req.Color, req.TransitionType, req.TransitionDuration); err != nil {
		return nil, groupLookupError(err)
	}

	notifyContentGroup(g.store, g.hub, id, reasonContentUpdated)

	grp, err := g.store.GetContentGroup(id)
	if err != nil {
		return nil, groupLookupError(err)
	}
	return grp, nil
}

// DELETE /api/admin/content-groups/:id
func (g *ContentGroupController) deleteGroup(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	grp, err := g.store.GetContentGroup(id)
	if err != nil {
		return nil, groupLookupError(err)
	}
	keys, err := g.store.DeviceKeysForContentGroup(id)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	if err := g.store.DeleteContentGroup(id); err != nil {
		return nil, groupLookupError(err)
	}

	for _, item := range grp.Items {
		_ = g.storageSystem.DeleteFile(storage.DirContent, item.Filename)
	}
	if len(keys) > 0 {
		g.hub.Notify(reasonContentUpdated, keys...)
	}
	return packets.StatusResponse{Status: "deleted"}, nil
}

// POST /api/admin/content-groups/:id/content
func (g *ContentGroupController) uploadContent(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if _, err := g.store.GetContentGroup(id); err != nil {
		return nil, groupLookupError(err)
	}

	item, apiErr := saveContentUpload(ctx, g.storageSystem, model.ContentItem{ContentGroupID: &id})
	if apiErr != nil {
		return nil, apiErr
	}

	created, err := g.store.CreateContentItem(item)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: "could not create content item"}
	}

	notifyContentGroup(g.store, g.hub, id, reasonContentUpdated)
	return created, nil
}

// POST /api/admin/content-groups/:id/reorder
func (g *ContentGroupController) reorderContent(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var req packets.ReorderItemsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := g.store.ReorderContentGroupItems(id, req.ItemIDs); err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	notifyContentGroup(g.store, g.hub, id, reasonContentUpdated)
	return packets.StatusResponse{Status: "reordered"}, nil
}

// PATCH /api/admin/content/:id
func (g *ContentGroupController) updateItem(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var req packets.UpdateContentItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := g.store.UpdateContentItem(id, req.Name, req.DisplayDuration, req.ScaleMode, req.IsActive); err != nil {
		return nil, itemLookupError(err)
	}

	item, err := g.store.GetContentItem(id)
	if err != nil {
		return nil, itemLookupError(err)
	}
	g.notifyItemOwner(item)
	return item, nil
}

// DELETE /api/admin/content/:id
func (g *ContentGroupController) deleteItem(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	item, err := g.store.DeleteContentItem(id)
	if err != nil {
		return nil, itemLookupError(err)
	}

	_ = g.storageSystem.DeleteFile(storage.DirContent, item.Filename)
	g.notifyItemOwner(item)
	return packets.StatusResponse{Status: "deleted"}, nil
}

// notifyItemOwner routes the signal through whichever group owns the item.
func (g *ContentGroupController) notifyItemOwner(item model.ContentItem) {
	switch {
	case item.ScheduleGroupID != nil:
		notifyScheduleGroup(g.store, g.hub, *item.ScheduleGroupID, reasonContentUpdated)
	case item.ContentGroupID != nil:
		notifyContentGroup(g.store, g.hub, *item.ContentGroupID, reasonContentUpdated)
	}
}

func itemLookupError(err error) *api.Error {
	if err == db.ErrNotFound {
		return &api.Error{Code: http.StatusNotFound, Message: "content item not found"}
	}
	return &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
}
