package model

import "time"

// Schedule is a wall-clock activation window for its owning schedule group.
// Times are same-day "HH:MM" strings in the server's local timezone;
// DaysOfWeek is a digit string where 0=Monday .. 6=Sunday ("0123456").
type Schedule struct {
	ID              int       `db:"id"                json:"id"`
	ScheduleGroupID int       `db:"schedule_group_id" json:"schedule_group_id"`
	Name            string    `db:"name"              json:"name"`
	StartTime       string    `db:"start_time"        json:"start_time"`
	EndTime         string    `db:"end_time"          json:"end_time"`
	DaysOfWeek      string    `db:"days_of_week"      json:"days_of_week"`
	Priority        int       `db:"priority"          json:"priority"`
	IsActive        bool      `db:"is_active"         json:"is_active"`
	CreatedAt       time.Time `db:"created_at"        json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"        json:"updated_at"`
}

// ScheduleGroup bundles schedules with the content they gate. The group's
// own content items play whenever any of its schedules is active.
type ScheduleGroup struct {
	ID                 int       `db:"id"                  json:"id"`
	Name               string    `db:"name"                json:"name"`
	Description        *string   `db:"description"         json:"description,omitempty"`
	Color              string    `db:"color"               json:"color"`
	IsActive           bool      `db:"is_active"           json:"is_active"`
	TransitionType     string    `db:"transition_type"     json:"transition_type"`
	TransitionDuration float64   `db:"transition_duration" json:"transition_duration"`
	CreatedAt          time.Time `db:"created_at"          json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"          json:"updated_at"`

	Schedules []Schedule    `db:"-" json:"schedules,omitempty"`
	Items     []ContentItem `db:"-" json:"items,omitempty"`
}
