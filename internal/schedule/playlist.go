package schedule

import (
	"sort"
	"time"

	"github.com/nightjar-labs/marquee/internal/model"
)

// defaultImageDuration is used when an item carries no display duration and
// no intrinsic media duration.
const defaultImageDuration = 10.0

// PlaybackEntry is one step of a delivered playlist.
type PlaybackEntry struct {
	ContentID       int     `json:"content_id"`
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	Kind            string  `json:"kind"`
	DurationSeconds float64 `json:"duration_seconds"`
	ScaleMode       string  `json:"scale_mode"`
}

// Transition is applied uniformly between consecutive entries, wrapping from
// the last entry back to the first.
type Transition struct {
	Type            string  `json:"type"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Playlist is the ordered, annotated output delivered to a player. For a
// default-display source the playlist holds a single synthetic splash entry
// and Splash carries the logo/background composition.
type Playlist struct {
	Source     SourceKind      `json:"source_kind"`
	Schedule   *model.Schedule `json:"active_schedule,omitempty"`
	Entries    []PlaybackEntry `json:"entries"`
	Transition Transition      `json:"transition"`
	Splash     *Splash         `json:"splash,omitempty"`
}

// Splash describes the default display composition the player renders when
// nothing is scheduled.
type Splash struct {
	LogoURL             string            `json:"logo_url,omitempty"`
	LogoScale           float64           `json:"logo_scale"`
	LogoPosition        string            `json:"logo_position"`
	BackgroundMode      string            `json:"background_mode"`
	BackgroundColor     string            `json:"background_color"`
	BackgroundVideoURL  string            `json:"background_video_url,omitempty"`
	Backgrounds         []model.BackgroundImage `json:"backgrounds"`
	SlideshowDuration   float64           `json:"slideshow_duration"`
	SlideshowTransition string            `json:"slideshow_transition"`
}

// Build converts a resolved source into an ordered playlist. Only active
// items are included, in stored position order.
func Build(src ResolvedSource) Playlist {
	if src.Kind == SourceDefault {
		return buildSplash(src.Display)
	}

	items := make([]model.ContentItem, 0, len(src.Items))
	for _, it := range src.Items {
		if it.IsActive {
			items = append(items, it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })

	entries := make([]PlaybackEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, PlaybackEntry{
			ContentID:       it.ID,
			Name:            it.Name,
			URL:             it.URL,
			Kind:            it.Kind,
			DurationSeconds: entryDuration(it),
			ScaleMode:       it.ScaleMode,
		})
	}

	return Playlist{
		Source:   src.Kind,
		Schedule: src.Schedule,
		Entries:  entries,
		Transition: Transition{
			Type:            src.TransitionType,
			DurationSeconds: src.TransitionDuration,
		},
	}
}

// entryDuration resolves the display duration: the explicit value when set,
// otherwise the intrinsic media duration for video, otherwise the default.
func entryDuration(it model.ContentItem) float64 {
	if it.DisplayDuration > 0 {
		return it.DisplayDuration
	}
	if it.Kind == model.ContentKindVideo && it.Duration != nil && *it.Duration > 0 {
		return *it.Duration
	}
	return defaultImageDuration
}

func buildSplash(d *model.DefaultDisplay) Playlist {
	sp := &Splash{
		LogoScale:           d.LogoScale,
		LogoPosition:        d.LogoPosition,
		BackgroundMode:      d.BackgroundMode,
		BackgroundColor:     d.BackgroundColor,
		SlideshowDuration:   d.SlideshowDuration,
		SlideshowTransition: d.SlideshowTransition,
		Backgrounds:         make([]model.BackgroundImage, 0, len(d.Backgrounds)),
	}
	if d.LogoFilename != nil {
		sp.LogoURL = "/uploads/logos/" + *d.LogoFilename
	}
	if d.BackgroundVideoFile != nil {
		sp.BackgroundVideoURL = "/uploads/backgrounds/" + *d.BackgroundVideoFile
	}
	for _, bg := range d.Backgrounds {
		if bg.IsActive {
			sp.Backgrounds = append(sp.Backgrounds, bg)
		}
	}
	sort.SliceStable(sp.Backgrounds, func(i, j int) bool {
		return sp.Backgrounds[i].Position < sp.Backgrounds[j].Position
	})

	duration := d.SlideshowDuration
	if duration <= 0 {
		duration = defaultImageDuration
	}

	return Playlist{
		Source: SourceDefault,
		Entries: []PlaybackEntry{{
			Kind:            "splash",
			URL:             sp.LogoURL,
			DurationSeconds: duration,
			ScaleMode:       model.ScaleFit,
		}},
		Transition: Transition{Type: model.TransitionCut},
		Splash:     sp,
	}
}

// BuildForDevice resolves and builds in one step, retrying once with
// scheduling suppressed when the winning schedule's group has no visible
// content. A misconfigured schedule therefore falls through to fallback or
// splash content instead of blanking the screen.
func BuildForDevice(cfg DeviceConfig, at time.Time) Playlist {
	src := Resolve(cfg, at)
	pl := Build(src)
	if src.Kind == SourceSchedule && len(pl.Entries) == 0 {
		pl = Build(resolve(cfg, at, true))
	}
	return pl
}
