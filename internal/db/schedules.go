package db

import (
	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/model"
)

const scheduleCols = `id, schedule_group_id, name, start_time, end_time, days_of_week, priority, is_active, created_at, updated_at`

func (s *pgStore) CreateSchedule(groupID int, name, startTime, endTime, daysOfWeek string, priority int, isActive bool) (model.Schedule, error) {
	var sc model.Schedule
	const q = `
	INSERT INTO schedules (schedule_group_id, name, start_time, end_time, days_of_week, priority, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
	RETURNING ` + scheduleCols + `;`
	if err := s.db.Get(&sc, q, groupID, name, startTime, endTime, daysOfWeek, priority, isActive); err != nil {
		log.Error().Err(err).Int("group_id", groupID).Msg("CreateSchedule failed")
		return model.Schedule{}, err
	}
	return sc, nil
}

func (s *pgStore) GetSchedule(id int) (model.Schedule, error) {
	var sc model.Schedule
	err := s.db.Get(&sc, `SELECT `+scheduleCols+` FROM schedules WHERE id = $1;`, id)
	if err != nil {
		return model.Schedule{}, notFound(err)
	}
	return sc, nil
}

func (s *pgStore) ListSchedulesForGroup(groupID int) ([]model.Schedule, error) {
	var out []model.Schedule
	const q = `SELECT ` + scheduleCols + ` FROM schedules WHERE schedule_group_id = $1 ORDER BY id;`
	if err := s.db.Select(&out, q, groupID); err != nil {
		log.Error().Err(err).Int("group_id", groupID).Msg("ListSchedulesForGroup failed")
		return nil, err
	}
	return out, nil
}

// UpdateSchedule applies the provided fields in a single statement so a
// concurrent resolver read sees either the old row or the new one, never a
// mix of both.
func (s *pgStore) UpdateSchedule(id int, name, startTime, endTime, daysOfWeek *string, priority *int, isActive *bool) error {
	res, err := s.db.Exec(`
		UPDATE schedules
		SET name = COALESCE($2, name),
		start_time = COALESCE($3, start_time),
		end_time = COALESCE($4, end_time),
		days_of_week = COALESCE($5, days_of_week),
		priority = COALESCE($6, priority),
		is_active = COALESCE($7, is_active),
		updated_at = now()
		WHERE id = $1;`, id, name, startTime, endTime, daysOfWeek, priority, isActive)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("UpdateSchedule failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteSchedule(id int) error {
	res, err := s.db.Exec(`DELETE FROM schedules WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("DeleteSchedule failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
