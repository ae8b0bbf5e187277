package model

import "time"

// Media kinds accepted by upload endpoints.
const (
	ContentKindImage = "image"
	ContentKindVideo = "video"
)

// Scale modes a player may apply to an item.
const (
	ScaleFit     = "fit"
	ScaleFill    = "fill"
	ScaleStretch = "stretch"
	ScaleBlur    = "blur"
)

// Transition types applied between consecutive playlist entries.
const (
	TransitionCut      = "cut"
	TransitionDissolve = "dissolve"
)

// ContentItem is a single uploaded media asset. It is owned by exactly one
// of a schedule group (scheduled content) or a content group (fallback
// content); the other owner column is NULL.
type ContentItem struct {
	ID              int       `db:"id"                json:"id"`
	Name            string    `db:"name"              json:"name"`
	Filename        string    `db:"filename"          json:"filename"`
	URL             string    `db:"url"               json:"url"`
	Kind            string    `db:"kind"              json:"kind"`
	MimeType        string    `db:"mime_type"         json:"mime_type"`
	FileSize        int64     `db:"file_size"         json:"file_size"`
	Duration        *float64  `db:"duration"          json:"duration,omitempty"`
	DisplayDuration float64   `db:"display_duration"  json:"display_duration"`
	ScaleMode       string    `db:"scale_mode"        json:"scale_mode"`
	Position        int       `db:"position"          json:"position"`
	IsActive        bool      `db:"is_active"         json:"is_active"`
	ScheduleGroupID *int      `db:"schedule_group_id" json:"schedule_group_id,omitempty"`
	ContentGroupID  *int      `db:"content_group_id"  json:"content_group_id,omitempty"`
	CreatedAt       time.Time `db:"created_at"        json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"        json:"updated_at"`
}

// ContentGroup is a reusable bucket of media, assignable to devices as
// fallback content for instants where no schedule resolves.
type ContentGroup struct {
	ID                 int       `db:"id"                  json:"id"`
	Name               string    `db:"name"                json:"name"`
	Description        *string   `db:"description"         json:"description,omitempty"`
	Color              string    `db:"color"               json:"color"`
	TransitionType     string    `db:"transition_type"     json:"transition_type"`
	TransitionDuration float64   `db:"transition_duration" json:"transition_duration"`
	CreatedAt          time.Time `db:"created_at"          json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"          json:"updated_at"`

	Items []ContentItem `db:"-" json:"items,omitempty"`
}
