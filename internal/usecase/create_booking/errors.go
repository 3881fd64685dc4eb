package create_booking

import "errors"

var (
	// ErrShopNotFound возвращается, когда салон не найден
	ErrShopNotFound = errors.New("create_booking: shop not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrTeamMemberNotFound возвращается, когда мастер не найден или не работает в салоне
	ErrTeamMemberNotFound = errors.New("create_booking: team member not found")

	// ErrServiceNotOffered возвращается, когда мастер не оказывает услугу
	ErrServiceNotOffered = errors.New("create_booking: team member does not offer this service")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrAccessDenied возвращается, когда клиент пытается записать другого клиента
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrBookingInPast возвращается, когда начало бронирования уже прошло
	ErrBookingInPast = errors.New("create_booking: booking start is in the past")

	// ErrOutsideAvailability возвращается, когда время не попадает в рабочее окно мастера
	ErrOutsideAvailability = errors.New("create_booking: time is outside team member availability")

	// ErrSlotNotAvailable возвращается, когда слот занят другим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
