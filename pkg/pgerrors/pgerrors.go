// Package pgerrors распознает коды ошибок PostgreSQL, которые сервис обрабатывает как ожидаемые исходы
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation      = "23505"
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// Constraint возвращает имя нарушенного ограничения (если есть)
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return code(err) == codeUniqueViolation
}

// IsExclusionViolation нарушение EXCLUDE ограничения (пересечение диапазонов)
func IsExclusionViolation(err error) bool {
	return code(err) == codeExclusionViolation
}

// IsSerializationFailure конфликт сериализуемой транзакции или deadlock
func IsSerializationFailure(err error) bool {
	c := code(err)
	return c == codeSerializationFailure || c == codeDeadlockDetected
}
