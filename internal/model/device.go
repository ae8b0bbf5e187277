package model

import "time"

// Display orientations reported back to the player.
const (
	OrientationLandscape = "landscape"
	OrientationPortrait  = "portrait"
)

// Device is a player endpoint. AccessCode is its pairing secret; regenerating
// it invalidates the previous code immediately.
type Device struct {
	ID              int        `db:"id"                json:"id"`
	Name            string     `db:"name"              json:"name"`
	AccessCode      string     `db:"access_code"       json:"access_code"`
	Description     *string    `db:"description"       json:"description,omitempty"`
	Location        *string    `db:"location"          json:"location,omitempty"`
	IPAddress       *string    `db:"ip_address"        json:"ip_address,omitempty"`
	LastSeen        *time.Time `db:"last_seen"         json:"last_seen,omitempty"`
	IsOnline        bool       `db:"is_online"         json:"is_online"`
	IsActive        bool       `db:"is_active"         json:"is_active"`
	IsRegistered    bool       `db:"is_registered"     json:"is_registered"`
	ScreenWidth     *int       `db:"screen_width"      json:"screen_width,omitempty"`
	ScreenHeight    *int       `db:"screen_height"     json:"screen_height,omitempty"`
	Orientation     string     `db:"orientation"       json:"orientation"`
	FlipHorizontal  bool       `db:"flip_horizontal"   json:"flip_horizontal"`
	FlipVertical    bool       `db:"flip_vertical"     json:"flip_vertical"`
	ScheduleGroupID *int       `db:"schedule_group_id" json:"schedule_group_id,omitempty"`
	CreatedAt       time.Time  `db:"created_at"        json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"        json:"updated_at"`
}
