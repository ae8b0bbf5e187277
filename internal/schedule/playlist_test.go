package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightjar-labs/marquee/internal/model"
)

func TestBuildOrdersByPositionAndSkipsInactive(t *testing.T) {
	src := ResolvedSource{
		Kind: SourceFallback,
		Group: &model.ContentGroup{ID: 1},
		Items: []model.ContentItem{
			{ID: 3, Position: 2, IsActive: true, Kind: model.ContentKindImage},
			{ID: 1, Position: 0, IsActive: true, Kind: model.ContentKindImage},
			{ID: 4, Position: 3, IsActive: false, Kind: model.ContentKindImage},
			{ID: 2, Position: 1, IsActive: true, Kind: model.ContentKindImage},
		},
	}

	pl := Build(src)
	require.Len(t, pl.Entries, 3)
	assert.Equal(t, 1, pl.Entries[0].ContentID)
	assert.Equal(t, 2, pl.Entries[1].ContentID)
	assert.Equal(t, 3, pl.Entries[2].ContentID)
}

func TestBuildDurations(t *testing.T) {
	intrinsic := 42.5
	src := ResolvedSource{
		Kind: SourceFallback,
		Group: &model.ContentGroup{ID: 1},
		Items: []model.ContentItem{
			{ID: 1, Position: 0, IsActive: true, Kind: model.ContentKindImage, DisplayDuration: 7},
			{ID: 2, Position: 1, IsActive: true, Kind: model.ContentKindVideo, Duration: &intrinsic},
			{ID: 3, Position: 2, IsActive: true, Kind: model.ContentKindImage},
			{ID: 4, Position: 3, IsActive: true, Kind: model.ContentKindVideo, Duration: &intrinsic, DisplayDuration: 5},
		},
	}

	pl := Build(src)
	require.Len(t, pl.Entries, 4)
	assert.Equal(t, 7.0, pl.Entries[0].DurationSeconds, "explicit duration wins")
	assert.Equal(t, 42.5, pl.Entries[1].DurationSeconds, "video falls back to intrinsic length")
	assert.Equal(t, 10.0, pl.Entries[2].DurationSeconds, "image without duration gets the default")
	assert.Equal(t, 5.0, pl.Entries[3].DurationSeconds, "explicit duration trims the video")
}

func TestBuildCarriesTransition(t *testing.T) {
	src := ResolvedSource{
		Kind:               SourceFallback,
		Group:              &model.ContentGroup{ID: 1},
		Items:              []model.ContentItem{{ID: 1, IsActive: true, Kind: model.ContentKindImage}},
		TransitionType:     model.TransitionDissolve,
		TransitionDuration: 1.5,
	}

	pl := Build(src)
	assert.Equal(t, model.TransitionDissolve, pl.Transition.Type)
	assert.Equal(t, 1.5, pl.Transition.DurationSeconds)
}

func TestBuildSplash(t *testing.T) {
	logo := "logo.png"
	video := "bg.mp4"
	src := ResolvedSource{
		Kind: SourceDefault,
		Display: &model.DefaultDisplay{
			LogoFilename:        &logo,
			LogoScale:           0.5,
			LogoPosition:        "center",
			BackgroundMode:      model.BackgroundModeSlideshow,
			BackgroundColor:     "#000000",
			BackgroundVideoFile: &video,
			SlideshowDuration:   8,
			SlideshowTransition: "fade",
			Backgrounds: []model.BackgroundImage{
				{ID: 2, Position: 1, IsActive: true},
				{ID: 1, Position: 0, IsActive: true},
				{ID: 3, Position: 2, IsActive: false},
			},
		},
	}

	pl := Build(src)
	assert.Equal(t, SourceDefault, pl.Source)
	require.Len(t, pl.Entries, 1)
	assert.Equal(t, "splash", pl.Entries[0].Kind)
	assert.Equal(t, 8.0, pl.Entries[0].DurationSeconds)

	require.NotNil(t, pl.Splash)
	assert.Equal(t, "/uploads/logos/logo.png", pl.Splash.LogoURL)
	assert.Equal(t, "/uploads/backgrounds/bg.mp4", pl.Splash.BackgroundVideoURL)
	require.Len(t, pl.Splash.Backgrounds, 2, "inactive slides are dropped")
	assert.Equal(t, 1, pl.Splash.Backgrounds[0].ID)
	assert.Equal(t, 2, pl.Splash.Backgrounds[1].ID)
}

func TestBuildForDeviceRetriesWhenScheduledGroupIsEmpty(t *testing.T) {
	// the winning schedule's group holds only inactive items
	group := &model.ScheduleGroup{
		ID:       1,
		IsActive: true,
		Schedules: []model.Schedule{
			{ID: 1, StartTime: "00:00", EndTime: "23:59", DaysOfWeek: "0123456", IsActive: true},
		},
		Items: []model.ContentItem{{ID: 1, IsActive: false}},
	}
	fallback := model.ContentGroup{ID: 2, Items: []model.ContentItem{activeItem(5, 0)}}
	cfg := testConfig(group, fallback)

	pl := BuildForDevice(cfg, monday(12, 0))
	assert.Equal(t, SourceFallback, pl.Source)
	require.Len(t, pl.Entries, 1)
	assert.Equal(t, 5, pl.Entries[0].ContentID)
}

func TestBuildForDeviceFallsToSplashWhenEverythingIsEmpty(t *testing.T) {
	group := &model.ScheduleGroup{
		ID:       1,
		IsActive: true,
		Schedules: []model.Schedule{
			{ID: 1, StartTime: "00:00", EndTime: "23:59", DaysOfWeek: "0123456", IsActive: true},
		},
		Items: nil,
	}
	cfg := testConfig(group)

	pl := BuildForDevice(cfg, monday(12, 0))
	assert.Equal(t, SourceDefault, pl.Source)
	require.NotNil(t, pl.Splash)
}

func TestBuildForDeviceHappyPath(t *testing.T) {
	group := &model.ScheduleGroup{
		ID:       1,
		IsActive: true,
		Schedules: []model.Schedule{
			{ID: 1, Name: "business hours", StartTime: "09:00", EndTime: "17:00", DaysOfWeek: "01234", IsActive: true},
		},
		Items: []model.ContentItem{activeItem(1, 0), activeItem(2, 1)},
	}
	cfg := testConfig(group)

	pl := BuildForDevice(cfg, monday(10, 0))
	assert.Equal(t, SourceSchedule, pl.Source)
	require.NotNil(t, pl.Schedule)
	assert.Equal(t, "business hours", pl.Schedule.Name)
	assert.Len(t, pl.Entries, 2)
}
