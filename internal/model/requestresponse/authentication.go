package requestresponse

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Username string `json:"username" example:"user1"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// TokensResponse : ответ на успешную аутентификацию или обновление пары
type TokensResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string `json:"token_type" example:"Bearer"`
}

// CleanupResponse : результат очистки списка отозванных токенов
type CleanupResponse struct {
	DeletedTokens int `json:"deleted_tokens" example:"3"`
}

// RevokeUserRequest : запрос на отзыв всех токенов пользователя
type RevokeUserRequest struct {
	UserUUID string `json:"user_uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"for example: invalid login or password"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
