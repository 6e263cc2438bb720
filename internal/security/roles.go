package security

import "strings"

// UserRoleAdmin : каноническое имя административной роли
const UserRoleAdmin = "admin"

// ContainsRole проверяет наличие роли в строке ролей вида "admin,customer".
// Каждый элемент очищается от пробелов, сравнение строгое
func ContainsRole(roles string, required string) bool {
	if roles == "" {
		return false
	}

	for _, role := range strings.Split(roles, ",") {
		if strings.TrimSpace(role) == required {
			return true
		}
	}

	return false
}

// ValidateRoleAdmin возвращает ErrForbidden, если среди ролей нет admin
func ValidateRoleAdmin(roles string) error {
	if !ContainsRole(roles, UserRoleAdmin) {
		return ErrForbidden
	}
	return nil
}
