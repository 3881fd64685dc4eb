package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда перенос выполняет не администратор
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule возвращается для отмененных, завершенных и no-show бронирований
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrTeamMemberNotFound возвращается, когда новый мастер не найден или не работает в салоне
	ErrTeamMemberNotFound = errors.New("reschedule_booking: team member not found")

	// ErrServiceNotOffered возвращается, когда новый мастер не оказывает услугу бронирования
	ErrServiceNotOffered = errors.New("reschedule_booking: team member does not offer this service")

	// ErrOutsideAvailability возвращается, когда новое время вне рабочего окна мастера
	ErrOutsideAvailability = errors.New("reschedule_booking: time is outside team member availability")

	// ErrSlotNotAvailable возвращается, когда новое время занято
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
