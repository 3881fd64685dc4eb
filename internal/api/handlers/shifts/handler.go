package shifts

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/shifts"
	"github.com/m04kA/SMC-SalonBooking/internal/service/shifts/models"
)

const (
	msgInvalidMemberID    = "некорректный ID мастера"
	msgInvalidShiftID     = "некорректный ID смены"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные смены"
	msgShiftNotFound      = "смена не найдена"
	msgNoActiveShift      = "у мастера нет открытой смены"
	msgShiftAlreadyActive = "у мастера уже есть открытая смена"
	msgBreakAlreadyOpen   = "перерыв уже начат"
	msgNoOpenBreak        = "нет начатого перерыва"
	msgMemberNotFound     = "мастер не найден"
	msgShopNotFound       = "салон не найден"
)

// Handler учет смен мастеров (только администратор)
type Handler struct {
	service ShiftService
	logger  Logger
}

func NewHandler(service ShiftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ClockIn POST /api/v1/team-members/{teamMemberId}/shift/clock-in
func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	memberID, err := handlers.PathID(r, "teamMemberId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	var req ClockInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shift/clock-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ClockIn(r.Context(), &models.ClockInRequest{TeamMemberID: memberID, ShopID: req.ShopID})
	if err != nil {
		h.respondError(w, "POST /shift/clock-in", err)
		return
	}

	h.logger.Info("POST /shift/clock-in - Shift opened: id=%d, member=%d", result.ID, memberID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// StartBreak POST /api/v1/team-members/{teamMemberId}/shift/break-start
func (h *Handler) StartBreak(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "POST /shift/break-start", h.service.StartBreak)
}

// EndBreak POST /api/v1/team-members/{teamMemberId}/shift/break-end
func (h *Handler) EndBreak(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "POST /shift/break-end", h.service.EndBreak)
}

// ClockOut POST /api/v1/team-members/{teamMemberId}/shift/clock-out
func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "POST /shift/clock-out", h.service.ClockOut)
}

// GetActive GET /api/v1/team-members/{teamMemberId}/shift
func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "GET /shift", h.service.GetActive)
}

// GetShift GET /api/v1/shifts/{shiftId}
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shiftID, err := handlers.PathID(r, "shiftId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidShiftID)
		return
	}

	result, err := h.service.GetShift(r.Context(), shiftID)
	if err != nil {
		h.respondError(w, "GET /shifts/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// MarkPaid POST /api/v1/shifts/mark-paid
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req MarkPaidRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shifts/mark-paid - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.MarkPaid(r.Context(), &models.MarkPaidRequest{ShiftIDs: req.ShiftIDs})
	if err != nil {
		h.respondError(w, "POST /shifts/mark-paid", err)
		return
	}

	h.logger.Info("POST /shifts/mark-paid - Shifts paid: requested=%d, paid=%d", result.Requested, result.Paid)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	fn func(ctx context.Context, teamMemberID int64) (*models.ShiftResponse, error),
) {
	memberID, err := handlers.PathID(r, "teamMemberId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	result, err := fn(r.Context(), memberID)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - OK: shift=%d, member=%d, status=%s", route, result.ID, memberID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, shifts.ErrShiftNotFound):
		handlers.RespondNotFound(w, msgShiftNotFound)

	case errors.Is(err, shifts.ErrNoActiveShift):
		handlers.RespondNotFound(w, msgNoActiveShift)

	case errors.Is(err, shifts.ErrTeamMemberNotFound):
		handlers.RespondNotFound(w, msgMemberNotFound)

	case errors.Is(err, shifts.ErrShopNotFound):
		handlers.RespondNotFound(w, msgShopNotFound)

	case errors.Is(err, shifts.ErrShiftAlreadyActive):
		handlers.RespondConflict(w, msgShiftAlreadyActive)

	case errors.Is(err, shifts.ErrBreakAlreadyOpen):
		handlers.RespondConflict(w, msgBreakAlreadyOpen)

	case errors.Is(err, shifts.ErrNoOpenBreak):
		handlers.RespondConflict(w, msgNoOpenBreak)

	case errors.Is(err, shifts.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
