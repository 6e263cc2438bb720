package service_test

import (
	"context"
	"testing"

	"watchlist-server/internal/model"
	"watchlist-server/internal/security"
	"watchlist-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Ошибки валидации помечены ErrValidation и до репозитория не доходят
func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "short username", username: "ab", password: "GoodPass1"},
		{name: "username with symbols", username: "user!", password: "GoodPass1"},
		{name: "short password", username: "user1", password: "Ab1"},
		{name: "password without digit", username: "user1", password: "Passwords"},
		{name: "password without upper", username: "user1", password: "password1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			svc := service.NewUserService(mockUserRepo)

			_, err := svc.CreateUser(context.Background(), tt.username, "user@example.com", tt.password, "customer")

			assert.ErrorIs(t, err, service.ErrValidation)
			mockUserRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
		})
	}
}

// Пароль сохраняется только в виде bcrypt хэша, uuid присваивается сервисом
func TestCreateUser_HashesPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := service.NewUserService(mockUserRepo)
	ctx := context.Background()

	mockUserRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.UUID != "" &&
			u.Username == "user1" &&
			u.PasswordHash != "GoodPass1" &&
			security.CheckPassword("GoodPass1", u.PasswordHash)
	})).Return(&model.User{UUID: "generated", Username: "user1"}, nil)

	created, err := svc.CreateUser(ctx, "user1", "user@example.com", "GoodPass1", "customer")

	require.NoError(t, err)
	assert.Equal(t, "user1", created.Username)
	mockUserRepo.AssertExpectations(t)
}
