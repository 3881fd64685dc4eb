package authservice

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Identity пользователь, которому принадлежит токен
type Identity struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// IsAdmin returns true for back office users
func (i *Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

// ErrorResponse модель ошибки от сервиса авторизации
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
