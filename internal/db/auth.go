package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/model"
)

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	var id int
	const q = `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;`
	if err := s.db.Get(&id, q, email, hashedPassword, name); err != nil {
		log.Error().Err(err).Msg("CreateUser failed")
		return 0, err
	}
	return id, nil
}

func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `SELECT id, email, hashed_password, name, created_at, updated_at FROM users WHERE email = $1;`, email)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `SELECT id, email, hashed_password, name, created_at, updated_at FROM users WHERE id = $1;`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	_, err := s.db.Exec(`
		UPDATE users
		SET email = $2,
		name = COALESCE($3, name),
		updated_at = now()
		WHERE id = $1;`, id, email, name)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("UpdateUserProfile failed")
	}
	return err
}
