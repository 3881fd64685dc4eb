package timesheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/shifts"
	"github.com/m04kA/SMC-SalonBooking/internal/service/shifts/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubService struct {
	got *models.TimesheetRequest
	err error
}

func (s *stubService) Timesheet(_ context.Context, req *models.TimesheetRequest) (*models.TimesheetResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.TimesheetResponse{StartDate: req.StartDate, EndDate: req.EndDate}, nil
}

func (s *stubService) ExportTimesheet(_ context.Context, req *models.TimesheetRequest, w io.Writer) error {
	s.got = req
	if s.err != nil {
		return s.err
	}
	_, err := w.Write([]byte("xlsx"))
	return err
}

func TestExport(t *testing.T) {
	svc := &stubService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/timesheet/export?startDate=2024-01-01&endDate=2024-01-31&teamMemberIds=3,4", nil)

	NewHandler(svc, logger.Nop()).Export(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "timesheet_2024-01-01_2024-01-31.xlsx")
	assert.Equal(t, "xlsx", rec.Body.String())
	assert.Equal(t, []int64{3, 4}, svc.got.TeamMemberIDs)
}

func TestExport_ErrorsBeforeHeaders(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("%w: end date before start date", shifts.ErrInvalidInput)}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/timesheet/export?startDate=2024-02-01&endDate=2024-01-01", nil)

	NewHandler(svc, logger.Nop()).Export(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEqual(t, xlsxContentType, rec.Header().Get("Content-Type"))
}

func TestHandle_InvalidQuery(t *testing.T) {
	for _, query := range []string{
		"endDate=2024-01-31",
		"startDate=2024-01-01&endDate=2024-01-31&shopId=x",
		"startDate=2024-01-01&endDate=2024-01-31&teamMemberIds=1,,2",
	} {
		rec := httptest.NewRecorder()
		NewHandler(&stubService{}, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/timesheet?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}
