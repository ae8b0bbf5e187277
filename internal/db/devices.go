package db

import (
	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/model"
)

const deviceCols = `id, name, access_code, description, location, ip_address, last_seen, is_online, is_active, is_registered, screen_width, screen_height, orientation, flip_horizontal, flip_vertical, schedule_group_id, created_at, updated_at`

func (s *pgStore) CreateDevice(name string, description, location *string, accessCode string) (model.Device, error) {
	var d model.Device
	const q = `
	INSERT INTO devices (name, description, location, access_code, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING ` + deviceCols + `;`
	if err := s.db.Get(&d, q, name, description, location, accessCode); err != nil {
		log.Error().Err(err).Msg("CreateDevice failed")
		return model.Device{}, err
	}
	return d, nil
}

func (s *pgStore) GetDeviceByID(id int) (model.Device, error) {
	var d model.Device
	err := s.db.Get(&d, `SELECT `+deviceCols+` FROM devices WHERE id = $1;`, id)
	if err != nil {
		return model.Device{}, notFound(err)
	}
	return d, nil
}

func (s *pgStore) GetDeviceByAccessCode(code string) (model.Device, error) {
	var d model.Device
	err := s.db.Get(&d, `SELECT `+deviceCols+` FROM devices WHERE access_code = $1;`, code)
	if err != nil {
		return model.Device{}, notFound(err)
	}
	return d, nil
}

func (s *pgStore) ListDevices() ([]model.Device, error) {
	var out []model.Device
	if err := s.db.Select(&out, `SELECT `+deviceCols+` FROM devices ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListDevices failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) UpdateDevice(id int, name, description, location *string, isActive *bool, orientation *string, flipHorizontal, flipVertical *bool, scheduleGroupID *int, clearScheduleGroup bool) error {
	q := `
		UPDATE devices
		SET name = COALESCE($2, name),
		description = COALESCE($3, description),
		location = COALESCE($4, location),
		is_active = COALESCE($5, is_active),
		orientation = COALESCE($6, orientation),
		flip_horizontal = COALESCE($7, flip_horizontal),
		flip_vertical = COALESCE($8, flip_vertical),
		schedule_group_id = CASE WHEN $10 THEN NULL ELSE COALESCE($9, schedule_group_id) END,
		updated_at = now()
		WHERE id = $1;`
	res, err := s.db.Exec(q, id, name, description, location, isActive, orientation, flipHorizontal, flipVertical, scheduleGroupID, clearScheduleGroup)
	if err != nil {
		log.Error().Err(err).Int("device_id", id).Msg("UpdateDevice failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteDevice(id int) error {
	res, err := s.db.Exec(`DELETE FROM devices WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("device_id", id).Msg("DeleteDevice failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RegenerateAccessCode swaps the pairing secret and forces re-registration.
// The old code stops resolving the moment this commits.
func (s *pgStore) RegenerateAccessCode(id int, code string) error {
	res, err := s.db.Exec(`
		UPDATE devices
		SET access_code = $2,
		is_registered = false,
		updated_at = now()
		WHERE id = $1;`, id, code)
	if err != nil {
		log.Error().Err(err).Int("device_id", id).Msg("RegenerateAccessCode failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDeviceFallbackGroups replaces the device's ordered fallback assignment.
func (s *pgStore) SetDeviceFallbackGroups(deviceID int, groupIDs []int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM device_content_groups WHERE device_id = $1;`, deviceID); err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Msg("SetDeviceFallbackGroups failed")
		return err
	}
	for idx, gid := range groupIDs {
		if _, err = tx.Exec(`
			INSERT INTO device_content_groups (device_id, content_group_id, position)
			VALUES ($1, $2, $3);`, deviceID, gid, idx); err != nil {
			return err
		}
	}
	return nil
}

func (s *pgStore) ListFallbackGroupsForDevice(deviceID int) ([]model.ContentGroup, error) {
	var out []model.ContentGroup
	const q = `
	SELECT g.id, g.name, g.description, g.color, g.transition_type, g.transition_duration, g.created_at, g.updated_at
	  FROM content_groups g
	  JOIN device_content_groups dcg ON dcg.content_group_id = g.id
	 WHERE dcg.device_id = $1
	 ORDER BY dcg.position;`
	if err := s.db.Select(&out, q, deviceID); err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Msg("ListFallbackGroupsForDevice failed")
		return nil, err
	}
	for i := range out {
		items, err := s.listItemsForOwner("content_group_id", out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (s *pgStore) RegisterDevice(code string) (model.Device, error) {
	var d model.Device
	err := s.db.Get(&d, `
		UPDATE devices
		SET is_registered = true,
		is_online = true,
		last_seen = now(),
		updated_at = now()
		WHERE access_code = $1
		RETURNING `+deviceCols+`;`, code)
	if err != nil {
		return model.Device{}, notFound(err)
	}
	return d, nil
}

// TouchDevice records a heartbeat: last-seen plus whatever the player
// reported about itself.
func (s *pgStore) TouchDevice(code string, ip *string, screenWidth, screenHeight *int) error {
	_, err := s.db.Exec(`
		UPDATE devices
		SET last_seen = now(),
		is_online = true,
		ip_address = COALESCE($2, ip_address),
		screen_width = COALESCE($3, screen_width),
		screen_height = COALESCE($4, screen_height)
		WHERE access_code = $1;`, code, ip, screenWidth, screenHeight)
	if err != nil {
		log.Error().Err(err).Msg("TouchDevice failed")
	}
	return err
}

func (s *pgStore) SetDeviceOnline(code string, online bool) error {
	_, err := s.db.Exec(`
		UPDATE devices
		SET is_online = $2,
		last_seen = CASE WHEN $2 THEN now() ELSE last_seen END
		WHERE access_code = $1;`, code, online)
	if err != nil {
		log.Error().Err(err).Msg("SetDeviceOnline failed")
	}
	return err
}

func (s *pgStore) DeviceKeysForScheduleGroup(groupID int) ([]string, error) {
	var keys []string
	err := s.db.Select(&keys, `SELECT access_code FROM devices WHERE schedule_group_id = $1;`, groupID)
	if err != nil {
		log.Error().Err(err).Int("group_id", groupID).Msg("DeviceKeysForScheduleGroup failed")
		return nil, err
	}
	return keys, nil
}

func (s *pgStore) DeviceKeysForContentGroup(groupID int) ([]string, error) {
	var keys []string
	const q = `
	SELECT d.access_code
	  FROM devices d
	  JOIN device_content_groups dcg ON dcg.device_id = d.id
	 WHERE dcg.content_group_id = $1;`
	if err := s.db.Select(&keys, q, groupID); err != nil {
		log.Error().Err(err).Int("group_id", groupID).Msg("DeviceKeysForContentGroup failed")
		return nil, err
	}
	return keys, nil
}

func (s *pgStore) Stats() (map[string]int, error) {
	var row struct {
		Devices       int `db:"devices"`
		OnlineDevices int `db:"online_devices"`
		Groups        int `db:"groups"`
		Content       int `db:"content"`
	}
	const q = `
	SELECT
	  (SELECT COUNT(*) FROM devices) AS devices,
	  (SELECT COUNT(*) FROM devices WHERE is_online) AS online_devices,
	  (SELECT COUNT(*) FROM schedule_groups) AS groups,
	  (SELECT COUNT(*) FROM content_items) AS content;`
	if err := s.db.Get(&row, q); err != nil {
		log.Error().Err(err).Msg("Stats failed")
		return nil, err
	}
	return map[string]int{
		"total_devices":   row.Devices,
		"online_devices":  row.OnlineDevices,
		"schedule_groups": row.Groups,
		"total_content":   row.Content,
	}, nil
}
