package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/ikurilov/canvaskeeper/internal/logger"
	"github.com/ikurilov/canvaskeeper/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser inserts a new user record and returns the persisted user.
// Returns [ErrLoginAlreadyExists] when the login is already taken.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var created models.User
	err := r.DB.QueryRowContext(ctx, createUser,
		user.UserID,
		user.Login,
		user.PasswordHash,
		user.Name,
	).Scan(
		&created.UserID,
		&created.Login,
		&created.PasswordHash,
		&created.Name,
		&created.CreatedAt,
	)
	if err != nil {
		if postgresErrorCode(err) == pgerrcode.UniqueViolation {
			log.Warn().
				Str("func", "userRepository.CreateUser").
				Str("login", user.Login).
				Msg("attempt to register an already existing login")
			return models.User{}, ErrLoginAlreadyExists
		}

		log.Err(err).
			Str("func", "userRepository.CreateUser").
			Str("login", user.Login).
			Msg("failed to insert user")
		return models.User{}, r.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return created, nil
}

// FindUserByLogin retrieves a user by login. Returns [ErrNoUserWasFound] when
// no such user exists.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	err := r.DB.QueryRowContext(ctx, findUserByLogin, login).Scan(
		&found.UserID,
		&found.Login,
		&found.PasswordHash,
		&found.Name,
		&found.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).
			Str("func", "userRepository.FindUserByLogin").
			Str("login", login).
			Msg("failed to query user by login")
		return models.User{}, r.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}

	return found, nil
}
