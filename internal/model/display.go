package model

import "time"

// Background modes for the default display.
const (
	BackgroundModeSolid     = "solid"
	BackgroundModeImage     = "image"
	BackgroundModeVideo     = "video"
	BackgroundModeSlideshow = "slideshow"
)

// DefaultDisplay is the process-wide splash configuration shown when a device
// has no resolved schedule and no fallback content.
type DefaultDisplay struct {
	ID                  int       `db:"id"                        json:"id"`
	LogoFilename        *string   `db:"logo_filename"             json:"logo_filename,omitempty"`
	LogoScale           float64   `db:"logo_scale"                json:"logo_scale"`
	LogoPosition        string    `db:"logo_position"             json:"logo_position"`
	BackgroundMode      string    `db:"background_mode"           json:"background_mode"`
	BackgroundColor     string    `db:"background_color"          json:"background_color"`
	BackgroundVideoFile *string   `db:"background_video_filename" json:"background_video_filename,omitempty"`
	SlideshowDuration   float64   `db:"slideshow_duration"        json:"slideshow_duration"`
	SlideshowTransition string    `db:"slideshow_transition"      json:"slideshow_transition"`
	CreatedAt           time.Time `db:"created_at"                json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"                json:"updated_at"`

	Backgrounds []BackgroundImage `db:"-" json:"backgrounds,omitempty"`
}

// BackgroundImage is one slide of the default display's slideshow.
type BackgroundImage struct {
	ID               int       `db:"id"                 json:"id"`
	Filename         string    `db:"filename"           json:"filename"`
	URL              string    `db:"url"                json:"url"`
	Position         int       `db:"position"           json:"position"`
	IsActive         bool      `db:"is_active"          json:"is_active"`
	DefaultDisplayID int       `db:"default_display_id" json:"default_display_id"`
	CreatedAt        time.Time `db:"created_at"         json:"created_at"`
}
