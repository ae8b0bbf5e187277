package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/model"
)

const displayCols = `id, logo_filename, logo_scale, logo_position, background_mode, background_color, background_video_filename, slideshow_duration, slideshow_transition, created_at, updated_at`

// GetDefaultDisplay returns the singleton splash configuration, creating the
// row with defaults on first access.
func (s *pgStore) GetDefaultDisplay() (model.DefaultDisplay, error) {
	var d model.DefaultDisplay
	err := s.db.Get(&d, `SELECT `+displayCols+` FROM default_display ORDER BY id LIMIT 1;`)
	if errors.Is(err, sql.ErrNoRows) {
		err = s.db.Get(&d, `
			INSERT INTO default_display (created_at, updated_at)
			VALUES (now(), now())
			RETURNING `+displayCols+`;`)
	}
	if err != nil {
		log.Error().Err(err).Msg("GetDefaultDisplay failed")
		return model.DefaultDisplay{}, err
	}

	if err := s.db.Select(&d.Backgrounds, `
		SELECT id, filename, url, position, is_active, default_display_id, created_at
		  FROM background_images
		 WHERE default_display_id = $1
		 ORDER BY position;`, d.ID); err != nil {
		log.Error().Err(err).Msg("failed to list background images")
		return model.DefaultDisplay{}, err
	}
	return d, nil
}

func (s *pgStore) UpdateDefaultDisplay(logoScale *float64, logoPosition, backgroundMode, backgroundColor *string, slideshowDuration *float64, slideshowTransition *string) error {
	if _, err := s.GetDefaultDisplay(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		UPDATE default_display
		SET logo_scale = COALESCE($1, logo_scale),
		logo_position = COALESCE($2, logo_position),
		background_mode = COALESCE($3, background_mode),
		background_color = COALESCE($4, background_color),
		slideshow_duration = COALESCE($5, slideshow_duration),
		slideshow_transition = COALESCE($6, slideshow_transition),
		updated_at = now();`,
		logoScale, logoPosition, backgroundMode, backgroundColor, slideshowDuration, slideshowTransition)
	if err != nil {
		log.Error().Err(err).Msg("UpdateDefaultDisplay failed")
	}
	return err
}

// SetDefaultDisplayLogo swaps the logo and returns the previous filename so
// the caller can delete the orphaned file.
func (s *pgStore) SetDefaultDisplayLogo(filename *string) (*string, error) {
	d, err := s.GetDefaultDisplay()
	if err != nil {
		return nil, err
	}
	old := d.LogoFilename
	if _, err := s.db.Exec(`UPDATE default_display SET logo_filename = $1, updated_at = now() WHERE id = $2;`, filename, d.ID); err != nil {
		log.Error().Err(err).Msg("SetDefaultDisplayLogo failed")
		return nil, err
	}
	return old, nil
}

func (s *pgStore) SetDefaultDisplayVideo(filename *string) (*string, error) {
	d, err := s.GetDefaultDisplay()
	if err != nil {
		return nil, err
	}
	old := d.BackgroundVideoFile
	if _, err := s.db.Exec(`UPDATE default_display SET background_video_filename = $1, updated_at = now() WHERE id = $2;`, filename, d.ID); err != nil {
		log.Error().Err(err).Msg("SetDefaultDisplayVideo failed")
		return nil, err
	}
	return old, nil
}

func (s *pgStore) AddBackgroundImage(filename, url string) (model.BackgroundImage, error) {
	d, err := s.GetDefaultDisplay()
	if err != nil {
		return model.BackgroundImage{}, err
	}
	var bg model.BackgroundImage
	const q = `
	INSERT INTO background_images (filename, url, position, is_active, default_display_id, created_at)
	VALUES ($1, $2,
	  (SELECT COUNT(*) FROM background_images WHERE default_display_id = $3),
	  true, $3, now())
	RETURNING id, filename, url, position, is_active, default_display_id, created_at;`
	if err := s.db.Get(&bg, q, filename, url, d.ID); err != nil {
		log.Error().Err(err).Msg("AddBackgroundImage failed")
		return model.BackgroundImage{}, err
	}
	return bg, nil
}

func (s *pgStore) DeleteBackgroundImage(id int) (model.BackgroundImage, error) {
	var bg model.BackgroundImage
	err := s.db.Get(&bg, `
		DELETE FROM background_images
		WHERE id = $1
		RETURNING id, filename, url, position, is_active, default_display_id, created_at;`, id)
	if err != nil {
		return model.BackgroundImage{}, notFound(err)
	}
	if _, err := s.db.Exec(`
		UPDATE background_images
		   SET position = position - 1
		 WHERE default_display_id = $1 AND position > $2;`, bg.DefaultDisplayID, bg.Position); err != nil {
		log.Error().Err(err).Msg("failed to compact background positions")
	}
	return bg, nil
}
