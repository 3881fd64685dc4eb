package save_recurring_availability

import "errors"

var (
	// ErrNothingToSave возвращается, когда в шаблоне нет ни одного рабочего дня
	ErrNothingToSave = errors.New("save_recurring_availability: no enabled weekdays")

	// ErrTeamMemberNotFound возвращается, когда мастер не найден или не работает в салоне
	ErrTeamMemberNotFound = errors.New("save_recurring_availability: team member not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("save_recurring_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("save_recurring_availability: internal error")
)
