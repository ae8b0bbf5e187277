package packets

import (
	"time"

	"github.com/nightjar-labs/marquee/internal/schedule"
)

type RegisterRequest struct {
	AccessCode string `json:"access_code" binding:"required,len=6"`
}

// DeviceSettings carries the rendering knobs a player applies locally.
type DeviceSettings struct {
	Name           string `json:"name"`
	Orientation    string `json:"orientation"`
	FlipHorizontal bool   `json:"flip_horizontal"`
	FlipVertical   bool   `json:"flip_vertical"`
}

type ConfigResponse struct {
	Device     DeviceSettings `json:"device"`
	ServerTime time.Time      `json:"server_time"`
}

// PlaylistResponse is the full pull payload: the resolved playlist plus the
// device settings, so one request is enough after a config_changed signal.
type PlaylistResponse struct {
	schedule.Playlist
	Device     DeviceSettings `json:"device"`
	ServerTime time.Time      `json:"server_time"`
}

type DiscoverResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}
