package timesheet

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/shifts"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	msgInvalidQuery = "некорректные параметры табеля"
)

type Handler struct {
	service TimesheetService
	logger  Logger
}

func NewHandler(service TimesheetService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/timesheet
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.logger.Warn("GET /timesheet - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.Timesheet(r.Context(), req)
	if err != nil {
		if errors.Is(err, shifts.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /timesheet - Failed to build timesheet: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /timesheet - Timesheet built: %s to %s, rows=%d", req.StartDate, req.EndDate, len(result.Rows))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Export GET /api/v1/timesheet/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.logger.Warn("GET /timesheet/export - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	// Буферизуем файл, чтобы ошибка не пришла после заголовков
	var buf bytes.Buffer
	if err := h.service.ExportTimesheet(r.Context(), req, &buf); err != nil {
		if errors.Is(err, shifts.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /timesheet/export - Failed to export: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	filename := fmt.Sprintf("timesheet_%s_%s.xlsx", req.StartDate, req.EndDate)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("GET /timesheet/export - Failed to write response: %v", err)
	}
}
