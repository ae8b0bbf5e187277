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
	"github.com/nightjar-labs/marquee/internal/schedule"
)

type ScheduleController struct {
	store db.Store
	hub   *hub.Hub
}

func newScheduleController(store db.Store, h *hub.Hub) *ScheduleController {
	return &ScheduleController{store: store, hub: h}
}

func ScheduleModule(store db.Store, h *hub.Hub) api.Module {
	ctl := newScheduleController(store, h)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/schedules", api.ResolveEndpointWithAuth(ctl.createSchedule))
		c.GET("/schedules/:id", api.ResolveEndpointWithAuth(ctl.getSchedule))
		c.PATCH("/schedules/:id", api.ResolveEndpointWithAuth(ctl.updateSchedule))
		c.DELETE("/schedules/:id", api.ResolveEndpointWithAuth(ctl.deleteSchedule))
	})
}

// POST /api/admin/schedules
func (s *ScheduleController) createSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var req packets.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	days := req.DaysOfWeek
	if days == "" {
		days = "0123456"
	}
	if err := schedule.ValidateWindow(req.StartTime, req.EndTime, days); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if _, err := s.store.GetScheduleGroup(req.ScheduleGroupID); err != nil {
		return nil, groupLookupError(err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	sch, err := s.store.CreateSchedule(req.ScheduleGroupID, req.Name, req.StartTime, req.EndTime, days, req.Priority, isActive)
	if err != nil {
		return nil, &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	notifyScheduleGroup(s.store, s.hub, req.ScheduleGroupID, reasonScheduleUpdated)
	return sch, nil
}

// GET /api/admin/schedules/:id
func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	sch, err := s.store.GetSchedule(id)
	if err != nil {
		return nil, scheduleLookupError(err)
	}
	return sch, nil
}

// PATCH /api/admin/schedules/:id
func (s *ScheduleController) updateSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	var req packets.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	current, err := s.store.GetSchedule(id)
	if err != nil {
		return nil, scheduleLookupError(err)
	}

	// validate the window as it will read after the patch
	start, end, days := current.StartTime, current.EndTime, current.DaysOfWeek
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if req.DaysOfWeek != nil {
		days = *req.DaysOfWeek
	}
	if err := schedule.ValidateWindow(start, end, days); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.store.UpdateSchedule(id, req.Name, req.StartTime, req.EndTime, req.DaysOfWeek, req.Priority, req.IsActive); err != nil {
		return nil, scheduleLookupError(err)
	}

	notifyScheduleGroup(s.store, s.hub, current.ScheduleGroupID, reasonScheduleUpdated)

	sch, err := s.store.GetSchedule(id)
	if err != nil {
		return nil, scheduleLookupError(err)
	}
	return sch, nil
}

// DELETE /api/admin/schedules/:id
func (s *ScheduleController) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	sch, err := s.store.GetSchedule(id)
	if err != nil {
		return nil, scheduleLookupError(err)
	}
	if err := s.store.DeleteSchedule(id); err != nil {
		return nil, scheduleLookupError(err)
	}

	notifyScheduleGroup(s.store, s.hub, sch.ScheduleGroupID, reasonScheduleUpdated)
	return packets.StatusResponse{Status: "deleted"}, nil
}

func scheduleLookupError(err error) *api.Error {
	if err == db.ErrNotFound {
		return &api.Error{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	return &api.Error{Code: http.StatusInternalServerError, Message: err.Error()}
}
