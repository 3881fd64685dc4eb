package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

// IdempotencyKeyHeader заголовок с ключом идемпотентности клиента
const IdempotencyKeyHeader = "Idempotency-Key"

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgMissingUser        = "требуется авторизация"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgShopNotFound       = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgMemberNotFound     = "мастер не найден"
	msgServiceNotOffered  = "мастер не оказывает эту услугу"
	msgClientNotFound     = "клиент не найден"
	msgForbidden          = "доступ запрещен"
	msgBookingInPast      = "нельзя записаться на прошедшее время"
	msgOutsideSchedule    = "мастер не работает в выбранное время"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(caller, middleware.GetSessionID(r.Context()), r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user=%s, member=%d: %v", caller.UserID, req.TeamMemberID, err)
			handlers.RespondConflict(w, slotMessage(err))

		case errors.Is(err, createBooking.ErrShopNotFound):
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrTeamMemberNotFound):
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, createBooking.ErrClientNotFound):
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrServiceNotOffered):
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Access denied: user=%s", caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrOutsideAvailability):
			h.logger.Warn("POST /bookings - Outside availability: user=%s, member=%d", caller.UserID, req.TeamMemberID)
			handlers.RespondBadRequest(w, msgOutsideSchedule)

		case errors.Is(err, createBooking.ErrBookingInPast):
			handlers.RespondBadRequest(w, msgBookingInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user=%s, shop=%d, error=%v",
				caller.UserID, req.ShopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, number=%s, user=%s, replayed=%t",
		result.Booking.ID, result.Booking.BookingNumber, caller.UserID, result.Replayed)
	handlers.RespondJSON(w, status, models.FromDomainBooking(result.Booking))
}

// slotMessage добавляет номера пересекающихся бронирований, если они известны
func slotMessage(err error) string {
	var conflict *availability.ConflictError
	if errors.As(err, &conflict) && len(conflict.BookingNumbers) > 0 {
		return msgSlotNotAvailable + ": " + strings.Join(conflict.BookingNumbers, ", ")
	}
	return msgSlotNotAvailable
}
