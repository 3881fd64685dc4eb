package reservations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("reservations: service not found")

	// ErrTeamMemberNotFound возвращается, когда мастер не найден или не работает в салоне
	ErrTeamMemberNotFound = errors.New("reservations: team member not found")

	// ErrServiceNotOffered возвращается, когда мастер не оказывает услугу
	ErrServiceNotOffered = errors.New("reservations: team member does not offer the service")

	// ErrOutsideAvailability возвращается, когда слот вне рабочего окна мастера
	ErrOutsideAvailability = errors.New("reservations: slot is outside team member availability")

	// ErrSlotNotAvailable возвращается, когда слот занят бронированием или чужим удержанием
	ErrSlotNotAvailable = errors.New("reservations: slot is not available")

	// ErrReservationNotFound возвращается, когда у сессии нет живого удержания
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
