package repository

import (
	"context"
	"database/sql"
	"errors"

	"watchlist-server/config"
	"watchlist-server/internal/model"
	"watchlist-server/internal/util"
)

var ErrUserNotFound = errors.New("пользователь не найден")

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, username, email, password_hash, roles)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING uuid, username, email, password_hash, roles, created_at, updated_at
	`

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query,
		user.UUID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Roles,
	).StructScan(createdUser)

	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	query := `SELECT uuid, username, email, password_hash, roles, created_at, updated_at FROM users WHERE uuid = $1`

	var user model.User
	err := r.DB.GetContext(ctx, &user, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по uuid", err)
	}

	return &user, nil
}

// FindByUsername : ищет пользователя по имени
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT uuid, username, email, password_hash, roles, created_at, updated_at FROM users WHERE username = $1`

	var user model.User
	err := r.DB.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по username", err)
	}

	return &user, nil
}

// ListUsers : возвращает всех пользователей
func (r *UserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query := `SELECT uuid, username, email, password_hash, roles, created_at, updated_at FROM users ORDER BY created_at`

	users := []*model.User{}
	if err := r.DB.SelectContext(ctx, &users, query); err != nil {
		return nil, util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}

	return users, nil
}

// UpdateUser : обновляет username, email и роли пользователя
func (r *UserRepository) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	UPDATE users
	SET username = $2, email = $3, roles = $4, updated_at = now()
	WHERE uuid = $1
	RETURNING uuid, username, email, password_hash, roles, created_at, updated_at
	`

	updatedUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query,
		user.UUID,
		user.Username,
		user.Email,
		user.Roles,
	).StructScan(updatedUser)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось обновить пользователя", err)
	}

	return updatedUser, nil
}

// DeleteUser : удаляет пользователя по UUID, возвращает признак удаления
func (r *UserRepository) DeleteUser(ctx context.Context, uuid string) (bool, error) {
	query := `DELETE FROM users WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, uuid)
	if err != nil {
		return false, util.LogError("[UserRepo] не удалось удалить пользователя", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[UserRepo] не удалось проверить, удален ли пользователь", err)
	}

	return rowsAffected == 1, nil
}
