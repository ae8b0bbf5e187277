package packets

type CreateScheduleGroupRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateScheduleGroupRequest struct {
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	Color              *string  `json:"color"`
	IsActive           *bool    `json:"is_active"`
	TransitionType     *string  `json:"transition_type" binding:"omitempty,oneof=cut dissolve"`
	TransitionDuration *float64 `json:"transition_duration" binding:"omitempty,gte=0"`
}

type CreateScheduleRequest struct {
	Name            string `json:"name" binding:"required"`
	ScheduleGroupID int    `json:"schedule_group_id" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	DaysOfWeek      string `json:"days_of_week"`
	Priority        int    `json:"priority" binding:"gte=0"`
	IsActive        *bool  `json:"is_active"`
}

type UpdateScheduleRequest struct {
	Name       *string `json:"name"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	DaysOfWeek *string `json:"days_of_week"`
	Priority   *int    `json:"priority" binding:"omitempty,gte=0"`
	IsActive   *bool   `json:"is_active"`
}

type CreateContentGroupRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

type UpdateContentGroupRequest struct {
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	Color              *string  `json:"color"`
	TransitionType     *string  `json:"transition_type" binding:"omitempty,oneof=cut dissolve"`
	TransitionDuration *float64 `json:"transition_duration" binding:"omitempty,gte=0"`
}

type UpdateContentItemRequest struct {
	Name            *string  `json:"name"`
	DisplayDuration *float64 `json:"display_duration" binding:"omitempty,gt=0"`
	ScaleMode       *string  `json:"scale_mode" binding:"omitempty,oneof=fit fill stretch blur"`
	IsActive        *bool    `json:"is_active"`
}

type ReorderItemsRequest struct {
	ItemIDs []int `json:"item_ids" binding:"required"`
}

type CreateDeviceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

type UpdateDeviceRequest struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	Location           *string `json:"location"`
	IsActive           *bool   `json:"is_active"`
	Orientation        *string `json:"orientation" binding:"omitempty,oneof=landscape portrait"`
	FlipHorizontal     *bool   `json:"flip_horizontal"`
	FlipVertical       *bool   `json:"flip_vertical"`
	ScheduleGroupID    *int    `json:"schedule_group_id"`
	ClearScheduleGroup bool    `json:"clear_schedule_group"`
}

type SetFallbackGroupsRequest struct {
	GroupIDs []int `json:"group_ids" binding:"required"`
}

type UpdateDefaultDisplayRequest struct {
	LogoScale           *float64 `json:"logo_scale" binding:"omitempty,gte=0.1,lte=1.0"`
	LogoPosition        *string  `json:"logo_position" binding:"omitempty,oneof=center top bottom"`
	BackgroundMode      *string  `json:"background_mode" binding:"omitempty,oneof=solid image video slideshow"`
	BackgroundColor     *string  `json:"background_color"`
	SlideshowDuration   *float64 `json:"slideshow_duration" binding:"omitempty,gt=0"`
	SlideshowTransition *string  `json:"slideshow_transition" binding:"omitempty,oneof=fade slide none"`
}
