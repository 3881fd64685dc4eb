package reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reservations"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные удержания"
	msgMissingSession      = "не удалось определить сессию"
	msgSlotNotAvailable    = "выбранное время уже занято"
	msgServiceNotFound     = "услуга не найдена"
	msgMemberNotFound      = "мастер не найден"
	msgServiceNotOffered   = "мастер не оказывает эту услугу"
	msgReservationNotFound = "удержание не найдено или истекло"
	msgOutsideSchedule     = "мастер не работает в выбранное время"
)

// Handler удержание слота на время оформления записи, привязано к сессии
type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Reserve POST /api/v1/reservations
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	if sessionID == "" {
		handlers.RespondBadRequest(w, msgMissingSession)
		return
	}

	var req ReserveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Reserve(r.Context(), req.ToServiceRequest(sessionID))
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: session=%s, member=%d, %s %s",
				sessionID, req.TeamMemberID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, reservations.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, reservations.ErrTeamMemberNotFound):
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, reservations.ErrServiceNotOffered):
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, reservations.ErrOutsideAvailability):
			handlers.RespondBadRequest(w, msgOutsideSchedule)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to reserve: session=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Slot reserved: session=%s, member=%d, %s %s-%s",
		sessionID, result.TeamMemberID, result.Date, result.StartTime, result.EndTime)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/reservations
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	if sessionID == "" {
		handlers.RespondBadRequest(w, msgMissingSession)
		return
	}

	result, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			handlers.RespondNotFound(w, msgReservationNotFound)
			return
		}
		h.logger.Error("GET /reservations - Failed to get reservation: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Release DELETE /api/v1/reservations
func (h *Handler) Release(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	if sessionID == "" {
		handlers.RespondBadRequest(w, msgMissingSession)
		return
	}

	if err := h.service.Release(r.Context(), sessionID); err != nil {
		h.logger.Error("DELETE /reservations - Failed to release: session=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /reservations - Reservation released: session=%s", sessionID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
