// exposes a Store interface that is passed to API controllers
package db

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/nightjar-labs/marquee/internal/model"
	"github.com/nightjar-labs/marquee/internal/schedule"
)

// ErrNotFound is returned when a lookup does not resolve to a row. The HTTP
// layer maps it to 404; nothing else is ever silently defaulted.
var ErrNotFound = errors.New("not found")

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// schedule group functions
	CreateScheduleGroup(name string, description *string, color string, isActive bool) (model.ScheduleGroup, error)
	GetScheduleGroup(id int) (model.ScheduleGroup, error)
	ListScheduleGroups() ([]model.ScheduleGroup, error)
	UpdateScheduleGroup(id int, name, description, color *string, isActive *bool, transitionType *string, transitionDuration *float64) error
	DeleteScheduleGroup(id int) error

	// schedule functions
	CreateSchedule(groupID int, name, startTime, endTime, daysOfWeek string, priority int, isActive bool) (model.Schedule, error)
	GetSchedule(id int) (model.Schedule, error)
	ListSchedulesForGroup(groupID int) ([]model.Schedule, error)
	UpdateSchedule(id int, name, startTime, endTime, daysOfWeek *string, priority *int, isActive *bool) error
	DeleteSchedule(id int) error

	// content group functions
	CreateContentGroup(name string, description *string, color string) (model.ContentGroup, error)
	GetContentGroup(id int) (model.ContentGroup, error)
	ListContentGroups() ([]model.ContentGroup, error)
	UpdateContentGroup(id int, name, description, color *string, transitionType *string, transitionDuration *float64) error
	DeleteContentGroup(id int) error

	// content item functions
	CreateContentItem(item model.ContentItem) (model.ContentItem, error)
	GetContentItem(id int) (model.ContentItem, error)
	UpdateContentItem(id int, name *string, displayDuration *float64, scaleMode *string, isActive *bool) error
	DeleteContentItem(id int) (model.ContentItem, error)
	ReorderScheduleGroupItems(groupID int, itemIDs []int) error
	ReorderContentGroupItems(groupID int, itemIDs []int) error

	// device functions
	CreateDevice(name string, description, location *string, accessCode string) (model.Device, error)
	GetDeviceByID(id int) (model.Device, error)
	GetDeviceByAccessCode(code string) (model.Device, error)
	ListDevices() ([]model.Device, error)
	UpdateDevice(id int, name, description, location *string, isActive *bool, orientation *string, flipHorizontal, flipVertical *bool, scheduleGroupID *int, clearScheduleGroup bool) error
	DeleteDevice(id int) error
	RegenerateAccessCode(id int, code string) error
	SetDeviceFallbackGroups(deviceID int, groupIDs []int) error
	ListFallbackGroupsForDevice(deviceID int) ([]model.ContentGroup, error)
	RegisterDevice(code string) (model.Device, error)
	TouchDevice(code string, ip *string, screenWidth, screenHeight *int) error
	SetDeviceOnline(code string, online bool) error
	DeviceKeysForScheduleGroup(groupID int) ([]string, error)
	DeviceKeysForContentGroup(groupID int) ([]string, error)

	// default display functions
	GetDefaultDisplay() (model.DefaultDisplay, error)
	UpdateDefaultDisplay(logoScale *float64, logoPosition, backgroundMode, backgroundColor *string, slideshowDuration *float64, slideshowTransition *string) error
	SetDefaultDisplayLogo(filename *string) (*string, error)
	SetDefaultDisplayVideo(filename *string) (*string, error)
	AddBackgroundImage(filename, url string) (model.BackgroundImage, error)
	DeleteBackgroundImage(id int) (model.BackgroundImage, error)

	// resolver snapshot
	GetDeviceConfig(accessCode string) (schedule.DeviceConfig, error)

	// dashboard stats
	Stats() (map[string]int, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}
