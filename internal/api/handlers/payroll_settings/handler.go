package payroll_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/payroll_settings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/payroll_settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHolidayID   = "некорректный ID праздника"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidInput       = "некорректные данные"
	msgHolidayNotFound    = "праздник не найден"
	msgHolidayExists      = "праздник на эту дату уже есть"
)

// Handler ставки по типам дней и календарь праздников (только администратор)
type Handler struct {
	service PayrollSettingsService
	logger  Logger
}

func NewHandler(service PayrollSettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListRates GET /api/v1/payroll/rates
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListRates(r.Context())
	if err != nil {
		h.respondError(w, "GET /payroll/rates", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpsertRate PUT /api/v1/payroll/rates/{dayType}
func (h *Handler) UpsertRate(w http.ResponseWriter, r *http.Request) {
	dayType := mux.Vars(r)["dayType"]

	var req UpsertRateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /payroll/rates/{dayType} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertRate(r.Context(), req.ToServiceRequest(dayType))
	if err != nil {
		h.respondError(w, "PUT /payroll/rates/{dayType}", err)
		return
	}

	h.logger.Info("PUT /payroll/rates/{dayType} - Rate saved: day_type=%s, rate=%.2f", result.DayType, result.Rate)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListHolidays GET /api/v1/payroll/holidays?year&onlyActive
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := toListHolidaysRequest(query.Get("year"), query.Get("onlyActive"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListHolidays(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /payroll/holidays", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateHoliday POST /api/v1/payroll/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payroll/holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateHoliday(r.Context(), &models.CreateHolidayRequest{Date: req.Date, Name: req.Name})
	if err != nil {
		h.respondError(w, "POST /payroll/holidays", err)
		return
	}

	h.logger.Info("POST /payroll/holidays - Holiday created: id=%d, date=%s", result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// SetHolidayActive PATCH /api/v1/payroll/holidays/{holidayId}
func (h *Handler) SetHolidayActive(w http.ResponseWriter, r *http.Request) {
	holidayID, err := handlers.PathID(r, "holidayId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	var req SetHolidayActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.IsActive == nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetHolidayActive(r.Context(), holidayID, *req.IsActive); err != nil {
		h.respondError(w, "PATCH /payroll/holidays/{id}", err)
		return
	}

	h.logger.Info("PATCH /payroll/holidays/{id} - Holiday updated: id=%d, active=%t", holidayID, *req.IsActive)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, payroll_settings.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, payroll_settings.ErrHolidayNotFound):
		handlers.RespondNotFound(w, msgHolidayNotFound)

	case errors.Is(err, payroll_settings.ErrHolidayExists):
		handlers.RespondConflict(w, msgHolidayExists)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
