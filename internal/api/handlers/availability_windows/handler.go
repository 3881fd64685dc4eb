package availability_windows

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability/models"
	saveRecurring "github.com/m04kA/SMC-SalonBooking/internal/usecase/save_recurring_availability"
)

const (
	msgInvalidShopID      = "некорректный ID салона"
	msgInvalidMemberID    = "некорректный ID мастера"
	msgInvalidWindowID    = "некорректный ID окна"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgInvalidInput       = "некорректные данные графика"
	msgMemberNotFound     = "мастер не найден"
	msgWindowNotFound     = "окно доступности не найдено"
	msgNothingToSave      = "в графике нет ни одного рабочего дня"
)

// Handler окна доступности мастеров салона (только администратор)
type Handler struct {
	service   AvailabilityService
	recurring SaveRecurringUseCase
	logger    Logger
}

func NewHandler(service AvailabilityService, recurring SaveRecurringUseCase, logger Logger) *Handler {
	return &Handler{
		service:   service,
		recurring: recurring,
		logger:    logger,
	}
}

// Create POST /api/v1/shops/{shopId}/availability
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.PathID(r, "shopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	var req CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateWindow(r.Context(), req.ToServiceRequest(shopID))
	if err != nil {
		h.respondServiceError(w, "POST /shops/{id}/availability", err)
		return
	}

	h.logger.Info("POST /shops/{id}/availability - Window created: id=%d, member=%d, %s %s-%s",
		result.ID, result.TeamMemberID, result.Date, result.StartTime, result.EndTime)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/shops/{shopId}/availability?startDate&endDate&teamMemberId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.PathID(r, "shopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	memberID, err := handlers.QueryID(r, "teamMemberId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListWindows(r.Context(), &models.ListWindowsRequest{
		ShopID:       shopID,
		TeamMemberID: memberID,
		StartDate:    startDate,
		EndDate:      endDate,
	})
	if err != nil {
		h.respondServiceError(w, "GET /shops/{id}/availability", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/shops/{shopId}/availability/{windowId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.PathID(r, "shopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}
	windowID, err := handlers.PathID(r, "windowId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	if err := h.service.DeleteWindow(r.Context(), shopID, windowID); err != nil {
		h.respondServiceError(w, "DELETE /shops/{id}/availability/{id}", err)
		return
	}

	h.logger.Info("DELETE /shops/{id}/availability/{id} - Window deleted: shop=%d, window=%d", shopID, windowID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// SaveRecurring PUT /api/v1/shops/{shopId}/team-members/{teamMemberId}/recurring-availability
func (h *Handler) SaveRecurring(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.PathID(r, "shopId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}
	memberID, err := handlers.PathID(r, "teamMemberId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	var req RecurringRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /recurring-availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(shopID, memberID)
	if err != nil {
		h.logger.Warn("PUT /recurring-availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.recurring.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, saveRecurring.ErrNothingToSave):
			handlers.RespondBadRequest(w, msgNothingToSave)

		case errors.Is(err, saveRecurring.ErrTeamMemberNotFound):
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, saveRecurring.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /recurring-availability - Failed to save: shop=%d, member=%d, error=%v", shopID, memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /recurring-availability - Saved: member=%d, deleted=%d, created=%d",
		memberID, result.Deleted, result.Created)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, availability.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, availability.ErrTeamMemberNotFound):
		handlers.RespondNotFound(w, msgMemberNotFound)

	case errors.Is(err, availability.ErrWindowNotFound):
		handlers.RespondNotFound(w, msgWindowNotFound)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
