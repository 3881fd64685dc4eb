package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrWindowNotFound возвращается, когда окно не найдено
	ErrWindowNotFound = errors.New("availability: window not found")

	// ErrTeamMemberNotFound возвращается, когда мастер не найден в салоне
	ErrTeamMemberNotFound = errors.New("availability: team member not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
