package schedule

import (
	"time"

	"github.com/nightjar-labs/marquee/internal/model"
)

// DeviceConfig is the read-only snapshot resolution runs over. The store
// loads it in a single transaction so a resolver pass never observes a
// half-applied dashboard edit.
type DeviceConfig struct {
	Device    model.Device
	Group     *model.ScheduleGroup // with Schedules and Items loaded
	Fallbacks []model.ContentGroup // device assignment order, with Items
	Display   model.DefaultDisplay
}

// SourceKind tags the three possible outcomes of resolution.
type SourceKind string

const (
	SourceSchedule SourceKind = "schedule"
	SourceFallback SourceKind = "fallback"
	SourceDefault  SourceKind = "default"
)

// ResolvedSource is the outcome of resolving a device at an instant.
// Exactly one variant is populated: Schedule+Items for SourceSchedule,
// Group+Items for SourceFallback, Display alone for SourceDefault.
type ResolvedSource struct {
	Kind SourceKind

	Schedule *model.Schedule
	Group    *model.ContentGroup

	Items              []model.ContentItem
	TransitionType     string
	TransitionDuration float64

	Display *model.DefaultDisplay
}

// Resolve picks the single content source for a device at an instant.
// Resolution is a pure function of the snapshot and the clock: highest
// priority active window wins, ties break to the smallest schedule id,
// then device fallback groups in assignment order, then the default display.
func Resolve(cfg DeviceConfig, at time.Time) ResolvedSource {
	return resolve(cfg, at, false)
}

func resolve(cfg DeviceConfig, at time.Time, skipSchedules bool) ResolvedSource {
	if !skipSchedules && cfg.Group != nil && cfg.Group.IsActive {
		if winner := winningSchedule(cfg.Group.Schedules, at); winner != nil {
			return ResolvedSource{
				Kind:               SourceSchedule,
				Schedule:           winner,
				Items:              cfg.Group.Items,
				TransitionType:     cfg.Group.TransitionType,
				TransitionDuration: cfg.Group.TransitionDuration,
			}
		}
	}

	for i := range cfg.Fallbacks {
		g := &cfg.Fallbacks[i]
		if hasActiveItem(g.Items) {
			return ResolvedSource{
				Kind:               SourceFallback,
				Group:              g,
				Items:              g.Items,
				TransitionType:     g.TransitionType,
				TransitionDuration: g.TransitionDuration,
			}
		}
	}

	display := cfg.Display
	return ResolvedSource{Kind: SourceDefault, Display: &display}
}

// winningSchedule returns the active window with the highest priority,
// breaking ties toward the smallest id so repeated calls are deterministic.
func winningSchedule(schedules []model.Schedule, at time.Time) *model.Schedule {
	var winner *model.Schedule
	for i := range schedules {
		s := &schedules[i]
		if !WindowActive(*s, at) {
			continue
		}
		if winner == nil || s.Priority > winner.Priority ||
			(s.Priority == winner.Priority && s.ID < winner.ID) {
			winner = s
		}
	}
	return winner
}

func hasActiveItem(items []model.ContentItem) bool {
	for _, it := range items {
		if it.IsActive {
			return true
		}
	}
	return false
}
