package security

import "errors"

// Ошибки аутентификации и авторизации.
// ErrWrongCredentials намеренно не различает причину отказа
// (неверный пароль, просроченный, отозванный или битый токен),
// чтобы не давать подсказок перебирающему клиенту
var (
	ErrWrongCredentials      = errors.New("неверные учетные данные")
	ErrMissingCredentials    = errors.New("учетные данные не переданы")
	ErrTokenCreation         = errors.New("ошибка создания токена")
	ErrInvalidToken          = errors.New("невалидный тип токена")
	ErrRevokedTokensInactive = errors.New("учет отозванных токенов выключен")
	ErrForbidden             = errors.New("доступ запрещён")
)
