package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

const validBody = `{"shopId":1,"serviceId":2,"teamMemberId":3,"bookingDate":"2024-01-15","startTime":"10:00"}`

func newRequest(body string, withCaller bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if withCaller {
		req = req.WithContext(middleware.WithCaller(req.Context(), domain.Caller{UserID: "u-1", Role: domain.RoleClient}))
	}
	return req
}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:              42,
		BookingNumber:   "BK-1A2B3C4D",
		ShopID:          1,
		TeamMemberID:    3,
		ServiceID:       2,
		BookingDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString("10:00"),
		EndTime:         types.MustTimeString("11:00"),
		StartsAt:        time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		EndsAt:          time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{Booking: sampleBooking()}}
	h := NewHandler(uc, logger.Nop())

	req := newRequest(validBody, true)
	req.Header.Set(IdempotencyKeyHeader, "  key-1  ")
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BK-1A2B3C4D", body.BookingNumber)
	assert.Equal(t, "2024-01-15T10:00:00Z", body.StartsAt)

	require.NotNil(t, uc.got)
	assert.Equal(t, "u-1", uc.got.Caller.UserID)
	assert.Equal(t, types.TimeString("10:00"), uc.got.StartTime)
	require.NotNil(t, uc.got.IdempotencyKey)
	assert.Equal(t, "key-1", *uc.got.IdempotencyKey)
}

func TestHandle_ReplayReturnsOK(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{Booking: sampleBooking(), Replayed: true}}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, newRequest(validBody, true))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	conflict := fmt.Errorf("%w: %w", createBooking.ErrSlotNotAvailable,
		&availability.ConflictError{BookingNumbers: []string{"BK-00000001"}})

	tests := []struct {
		name       string
		body       string
		withCaller bool
		err        error
		wantStatus int
		wantInMsg  string
	}{
		{name: "no caller", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "broken json", body: `{"shopId":`, withCaller: true, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"shopId":1,"extra":true}`, withCaller: true, wantStatus: http.StatusBadRequest},
		{
			name:       "bad date",
			body:       `{"shopId":1,"serviceId":2,"teamMemberId":3,"bookingDate":"15.01.2024","startTime":"10:00"}`,
			withCaller: true,
			wantStatus: http.StatusBadRequest,
			wantInMsg:  msgInvalidDate,
		},
		{
			name:       "bad time",
			body:       `{"shopId":1,"serviceId":2,"teamMemberId":3,"bookingDate":"2024-01-15","startTime":"25:00"}`,
			withCaller: true,
			wantStatus: http.StatusBadRequest,
			wantInMsg:  msgInvalidTime,
		},
		{name: "conflict", body: validBody, withCaller: true, err: conflict, wantStatus: http.StatusConflict, wantInMsg: "BK-00000001"},
		{name: "shop", body: validBody, withCaller: true, err: createBooking.ErrShopNotFound, wantStatus: http.StatusNotFound},
		{name: "member", body: validBody, withCaller: true, err: createBooking.ErrTeamMemberNotFound, wantStatus: http.StatusNotFound},
		{name: "not offered", body: validBody, withCaller: true, err: createBooking.ErrServiceNotOffered, wantStatus: http.StatusBadRequest},
		{name: "past", body: validBody, withCaller: true, err: createBooking.ErrBookingInPast, wantStatus: http.StatusBadRequest},
		{name: "outside schedule", body: validBody, withCaller: true, err: createBooking.ErrOutsideAvailability, wantStatus: http.StatusBadRequest, wantInMsg: "не работает"},
		{name: "forbidden", body: validBody, withCaller: true, err: createBooking.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", body: validBody, withCaller: true, err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err}
			rec := httptest.NewRecorder()
			NewHandler(uc, logger.Nop()).Handle(rec, newRequest(tt.body, tt.withCaller))

			require.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Code)
			if tt.wantInMsg != "" {
				assert.Contains(t, body.Message, tt.wantInMsg)
			}
		})
	}
}
