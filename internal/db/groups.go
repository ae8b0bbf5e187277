package db

import (
	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/model"
)

// @ SCHEDULE GROUPS

const scheduleGroupCols = `id, name, description, color, is_active, transition_type, transition_duration, created_at, updated_at`

func (s *pgStore) CreateScheduleGroup(name string, description *string, color string, isActive bool) (model.ScheduleGroup, error) {
	var g model.ScheduleGroup
	const q = `
	INSERT INTO schedule_groups (name, description, color, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING ` + scheduleGroupCols + `;`
	if err := s.db.Get(&g, q, name, description, color, isActive); err != nil {
		log.Error().Err(err).Msg("CreateScheduleGroup failed")
		return model.ScheduleGroup{}, err
	}
	return g, nil
}

func (s *pgStore) GetScheduleGroup(id int) (model.ScheduleGroup, error) {
	var g model.ScheduleGroup
	err := s.db.Get(&g, `SELECT `+scheduleGroupCols+` FROM schedule_groups WHERE id = $1;`, id)
	if err != nil {
		return model.ScheduleGroup{}, notFound(err)
	}
	if g.Schedules, err = s.ListSchedulesForGroup(id); err != nil {
		return model.ScheduleGroup{}, err
	}
	if g.Items, err = s.listItemsForOwner("schedule_group_id", id); err != nil {
		return model.ScheduleGroup{}, err
	}
	return g, nil
}

func (s *pgStore) ListScheduleGroups() ([]model.ScheduleGroup, error) {
	var out []model.ScheduleGroup
	if err := s.db.Select(&out, `SELECT `+scheduleGroupCols+` FROM schedule_groups ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListScheduleGroups failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) UpdateScheduleGroup(id int, name, description, color *string, isActive *bool, transitionType *string, transitionDuration *float64) error {
	res, err := s.db.Exec(`
		UPDATE schedule_groups
		SET name = COALESCE($2, name),
		description = COALESCE($3, description),
		color = COALESCE($4, color),
		is_active = COALESCE($5, is_active),
		transition_type = COALESCE($6, transition_type),
		transition_duration = COALESCE($7, transition_duration),
		updated_at = now()
		WHERE id = $1;`, id, name, description, color, isActive, transitionType, transitionDuration)
	if err != nil {
		log.Error().Err(err).Int("group_id", id).Msg("UpdateScheduleGroup failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteScheduleGroup cascades to the group's schedules and content items
// via the schema's ON DELETE CASCADE constraints.
func (s *pgStore) DeleteScheduleGroup(id int) error {
	res, err := s.db.Exec(`DELETE FROM schedule_groups WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("group_id", id).Msg("DeleteScheduleGroup failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// @ CONTENT GROUPS

const contentGroupCols = `id, name, description, color, transition_type, transition_duration, created_at, updated_at`

func (s *pgStore) CreateContentGroup(name string, description *string, color string) (model.ContentGroup, error) {
	var g model.ContentGroup
	const q = `
	INSERT INTO content_groups (name, description, color, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING ` + contentGroupCols + `;`
	if err := s.db.Get(&g, q, name, description, color); err != nil {
		log.Error().Err(err).Msg("CreateContentGroup failed")
		return model.ContentGroup{}, err
	}
	return g, nil
}

func (s *pgStore) GetContentGroup(id int) (model.ContentGroup, error) {
	var g model.ContentGroup
	err := s.db.Get(&g, `SELECT `+contentGroupCols+` FROM content_groups WHERE id = $1;`, id)
	if err != nil {
		return model.ContentGroup{}, notFound(err)
	}
	if g.Items, err = s.listItemsForOwner("content_group_id", id); err != nil {
		return model.ContentGroup{}, err
	}
	return g, nil
}

func (s *pgStore) ListContentGroups() ([]model.ContentGroup, error) {
	var out []model.ContentGroup
	if err := s.db.Select(&out, `SELECT `+contentGroupCols+` FROM content_groups ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListContentGroups failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) UpdateContentGroup(id int, name, description, color *string, transitionType *string, transitionDuration *float64) error {
	res, err := s.db.Exec(`
		UPDATE content_groups
		SET name = COALESCE($2, name),
		description = COALESCE($3, description),
		color = COALESCE($4, color),
		transition_type = COALESCE($5, transition_type),
		transition_duration = COALESCE($6, transition_duration),
		updated_at = now()
		WHERE id = $1;`, id, name, description, color, transitionType, transitionDuration)
	if err != nil {
		log.Error().Err(err).Int("group_id", id).Msg("UpdateContentGroup failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) DeleteContentGroup(id int) error {
	res, err := s.db.Exec(`DELETE FROM content_groups WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("group_id", id).Msg("DeleteContentGroup failed")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
