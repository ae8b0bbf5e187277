package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/model"
	"github.com/nightjar-labs/marquee/internal/schedule"
)

// GetDeviceConfig loads everything resolution needs for one device inside a
// single read transaction, so the resolver never sees a dashboard edit half
// applied across tables.
func (s *pgStore) GetDeviceConfig(accessCode string) (schedule.DeviceConfig, error) {
	var cfg schedule.DeviceConfig

	tx, err := s.db.Beginx()
	if err != nil {
		return cfg, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := tx.Get(&cfg.Device, `SELECT `+deviceCols+` FROM devices WHERE access_code = $1;`, accessCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cfg, ErrNotFound
		}
		log.Error().Err(err).Msg("GetDeviceConfig: device load failed")
		return cfg, err
	}

	if cfg.Device.ScheduleGroupID != nil {
		var g model.ScheduleGroup
		err := tx.Get(&g, `SELECT `+scheduleGroupCols+` FROM schedule_groups WHERE id = $1;`, *cfg.Device.ScheduleGroupID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// dangling assignment, resolve as if unassigned
		case err != nil:
			log.Error().Err(err).Msg("GetDeviceConfig: schedule group load failed")
			return cfg, err
		default:
			if err := tx.Select(&g.Schedules, `SELECT `+scheduleCols+` FROM schedules WHERE schedule_group_id = $1 ORDER BY id;`, g.ID); err != nil {
				return cfg, err
			}
			if err := tx.Select(&g.Items, `SELECT `+contentItemCols+` FROM content_items WHERE schedule_group_id = $1 ORDER BY position;`, g.ID); err != nil {
				return cfg, err
			}
			cfg.Group = &g
		}
	}

	if err := tx.Select(&cfg.Fallbacks, `
		SELECT g.id, g.name, g.description, g.color, g.transition_type, g.transition_duration, g.created_at, g.updated_at
		  FROM content_groups g
		  JOIN device_content_groups dcg ON dcg.content_group_id = g.id
		 WHERE dcg.device_id = $1
		 ORDER BY dcg.position;`, cfg.Device.ID); err != nil {
		log.Error().Err(err).Msg("GetDeviceConfig: fallback groups load failed")
		return cfg, err
	}
	for i := range cfg.Fallbacks {
		if err := tx.Select(&cfg.Fallbacks[i].Items, `SELECT `+contentItemCols+` FROM content_items WHERE content_group_id = $1 ORDER BY position;`, cfg.Fallbacks[i].ID); err != nil {
			return cfg, err
		}
	}

	if err := tx.Get(&cfg.Display, `SELECT `+displayCols+` FROM default_display ORDER BY id LIMIT 1;`); err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Msg("GetDeviceConfig: default display load failed")
		return cfg, err
	}
	if cfg.Display.ID != 0 {
		if err := tx.Select(&cfg.Display.Backgrounds, `
			SELECT id, filename, url, position, is_active, default_display_id, created_at
			  FROM background_images
			 WHERE default_display_id = $1
			 ORDER BY position;`, cfg.Display.ID); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}
