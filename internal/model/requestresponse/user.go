package requestresponse

import "watchlist-server/internal/model"

// CreateUserRequest : тело запроса на создание пользователя
type CreateUserRequest struct {
	Username string `json:"username" example:"newuser123"`
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"P@ssw0rd!"`
	Roles    string `json:"roles" example:"customer"`
}

// UpdateUserRequest : тело запроса на обновление пользователя
type UpdateUserRequest struct {
	Username string `json:"username" example:"newlogin123"`
	Email    string `json:"email" example:"user@example.com"`
	Roles    string `json:"roles" example:"customer,admin"`
}

// UserResponse : успешный ответ с данными пользователя
type UserResponse struct {
	Data *model.User `json:"data"`
}

// ListUsersResponse : успешный ответ со списком пользователей
type ListUsersResponse struct {
	Data []*model.User `json:"data"`
}
