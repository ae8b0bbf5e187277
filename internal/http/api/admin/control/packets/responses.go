package packets

import "github.com/nightjar-labs/marquee/internal/model"

// DeviceResponse mirrors model.Device plus the live presence bit from redis,
// which is fresher than the is_online column between heartbeat writes.
type DeviceResponse struct {
	model.Device
	Live bool `json:"live"`
}

// ScheduleGroupSummary decorates a group with the counts the dashboard list
// view shows.
type ScheduleGroupSummary struct {
	model.ScheduleGroup
	ScheduleCount int `json:"schedule_count"`
	ContentCount  int `json:"content_count"`
	DeviceCount   int `json:"device_count"`
}

type AccessCodeResponse struct {
	AccessCode string `json:"access_code"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
