package service

import (
	"context"
	"fmt"
	"unicode"

	"watchlist-server/internal/model"
	"watchlist-server/internal/ports"
	"watchlist-server/internal/security"

	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepository
}

func NewUserService(userRepository ports.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

// CreateUser регистрирует пользователя: валидирует входные данные,
// хэширует пароль и сохраняет запись
func (s *UserService) CreateUser(ctx context.Context, username, email, password, roles string) (*model.User, error) {
	if len(username) < 3 {
		return nil, fmt.Errorf("[UserService] имя пользователя должно быть не меньше 3 символов: %w", ErrValidation)
	}
	for _, c := range username {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return nil, fmt.Errorf("[UserService] имя пользователя должно содержать только буквы и цифры: %w", ErrValidation)
		}
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка хэширования пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Roles:        roles,
	}

	createdUser, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать пользователя: %w", err)
	}

	return createdUser, nil
}

func (s *UserService) GetUser(ctx context.Context, uuid string) (*model.User, error) {
	return s.userRepository.FindByUUID(ctx, uuid)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepository.ListUsers(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *UserService) DeleteUser(ctx context.Context, uuid string) (bool, error) {
	return s.userRepository.DeleteUser(ctx, uuid)
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("пароль должен быть не меньше 8 символов: %w", ErrValidation)
	}

	var hasUpper, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}

	if !hasUpper || !hasDigit {
		return fmt.Errorf("пароль должен содержать заглавную букву и цифру: %w", ErrValidation)
	}

	return nil
}
