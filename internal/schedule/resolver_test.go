package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightjar-labs/marquee/internal/model"
)

func activeItem(id, position int) model.ContentItem {
	return model.ContentItem{
		ID:       id,
		Name:     "item",
		URL:      "/uploads/content/x.png",
		Kind:     model.ContentKindImage,
		Position: position,
		IsActive: true,
	}
}

func testConfig(group *model.ScheduleGroup, fallbacks ...model.ContentGroup) DeviceConfig {
	return DeviceConfig{
		Device:    model.Device{ID: 1, AccessCode: "123456", IsActive: true},
		Group:     group,
		Fallbacks: fallbacks,
		Display:   model.DefaultDisplay{BackgroundMode: model.BackgroundModeSolid, BackgroundColor: "#000000"},
	}
}

func TestResolveHighestPriorityWins(t *testing.T) {
	group := &model.ScheduleGroup{
		ID:       1,
		IsActive: true,
		Schedules: []model.Schedule{
			{ID: 1, StartTime: "09:00", EndTime: "17:00", DaysOfWeek: "0123456", Priority: 0, IsActive: true},
			{ID: 2, StartTime: "12:00", EndTime: "13:00", DaysOfWeek: "0123456", Priority: 5, IsActive: true},
		},
		Items: []model.ContentItem{activeItem(1, 0)},
	}
	cfg := testConfig(group)

	// inside both windows the higher priority claims the slot
	src := Resolve(cfg, monday(12, 30))
	require.Equal(t, SourceSchedule, src.Kind)
	assert.Equal(t, 2, src.Schedule.ID)

	// outside the override only the all-day window is active
	src = Resolve(cfg, monday(10, 0))
	require.Equal(t, SourceSchedule, src.Kind)
	assert.Equal(t, 1, src.Schedule.ID)

	// before both windows nothing is scheduled
	src = Resolve(cfg, monday(8, 0))
	assert.Equal(t, SourceDefault, src.Kind)
}

func TestResolveEqualPriorityTieBreaksToSmallestID(t *testing.T) {
	group := &model.ScheduleGroup{
		ID:       1,
		IsActive: true,
		Schedules: []model.Schedule{
			{ID: 7, StartTime: "09:00", EndTime: "17:00", DaysOfWeek: "0123456", Priority: 3, IsActive: true},
			{ID: 4, StartTime: "09:00", EndTime: "17:00", DaysOfWeek: "0123456", Priority: 3, IsActive: true},
		},
		Items: []model.ContentItem{activeItem(1, 0)},
	}
	cfg := testConfig(group)

	src := Resolve(cfg, monday(12, 0))
	require.Equal(t, SourceSchedule, src.Kind)
	assert.Equal(t, 4, src.Schedule.ID)
}

func TestResolveIsDeterministic(t *testing.T) {
	group := &model.ScheduleGroup{
		ID:       1,
		IsActive: true,
		Schedules: []model.Schedule{
			{ID: 1, StartTime: "00:00", EndTime: "23:59", DaysOfWeek: "0123456", Priority: 1, IsActive: true},
			{ID: 2, StartTime: "00:00", EndTime: "23:59", DaysOfWeek: "0123456", Priority: 1, IsActive: true},
		},
		Items: []model.ContentItem{activeItem(1, 0)},
	}
	cfg := testConfig(group)

	at := monday(12, 0)
	first := Resolve(cfg, at)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Resolve(cfg, at))
	}
}

func TestResolveInactiveGroupIsSkipped(t *testing.T) {
	group := &model.ScheduleGroup{
		ID:       1,
		IsActive: false,
		Schedules: []model.Schedule{
			{ID: 1, StartTime: "00:00", EndTime: "23:59", DaysOfWeek: "0123456", IsActive: true},
		},
		Items: []model.ContentItem{activeItem(1, 0)},
	}
	fallback := model.ContentGroup{ID: 10, Items: []model.ContentItem{activeItem(2, 0)}}
	cfg := testConfig(group, fallback)

	src := Resolve(cfg, monday(12, 0))
	require.Equal(t, SourceFallback, src.Kind)
	assert.Equal(t, 10, src.Group.ID)
}

func TestResolveFallbackChainSkipsEmptyGroups(t *testing.T) {
	empty := model.ContentGroup{ID: 1, Items: nil}
	allInactive := model.ContentGroup{
		ID:    2,
		Items: []model.ContentItem{{ID: 5, IsActive: false}},
	}
	populated := model.ContentGroup{
		ID:    3,
		Items: []model.ContentItem{activeItem(6, 0), activeItem(7, 1), activeItem(8, 2)},
	}
	cfg := testConfig(nil, empty, allInactive, populated)

	src := Resolve(cfg, monday(12, 0))
	require.Equal(t, SourceFallback, src.Kind)
	assert.Equal(t, 3, src.Group.ID)
	assert.Len(t, src.Items, 3)
}

func TestResolveDefaultWhenNothingElse(t *testing.T) {
	cfg := testConfig(nil)

	src := Resolve(cfg, monday(12, 0))
	require.Equal(t, SourceDefault, src.Kind)
	require.NotNil(t, src.Display)
	assert.Equal(t, model.BackgroundModeSolid, src.Display.BackgroundMode)
}

func TestResolveCarriesGroupTransition(t *testing.T) {
	group := &model.ScheduleGroup{
		ID:                 1,
		IsActive:           true,
		TransitionType:     model.TransitionDissolve,
		TransitionDuration: 0.5,
		Schedules: []model.Schedule{
			{ID: 1, StartTime: "00:00", EndTime: "23:59", DaysOfWeek: "0123456", IsActive: true},
		},
		Items: []model.ContentItem{activeItem(1, 0)},
	}
	cfg := testConfig(group)

	src := Resolve(cfg, monday(12, 0))
	assert.Equal(t, model.TransitionDissolve, src.TransitionType)
	assert.Equal(t, 0.5, src.TransitionDuration)
}
