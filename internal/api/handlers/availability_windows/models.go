package availability_windows

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/recurrence"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability/models"
	saveRecurring "github.com/m04kA/SMC-SalonBooking/internal/usecase/save_recurring_availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	errInvalidDate    = errors.New("invalid date")
	errInvalidWeekday = errors.New("invalid weekday")
	errInvalidSlot    = errors.New("invalid slot time")
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// CreateWindowRequest HTTP request model
type CreateWindowRequest struct {
	TeamMemberID int64  `json:"teamMemberId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	IsAvailable  *bool  `json:"isAvailable,omitempty"`
}

func (r *CreateWindowRequest) ToServiceRequest(shopID int64) *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		ShopID:       shopID,
		TeamMemberID: r.TeamMemberID,
		Date:         r.Date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		IsAvailable:  r.IsAvailable,
	}
}

// SlotRequest интервал рабочего дня
type SlotRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DayRequest шаблон дня недели. День без слотов - выходной.
type DayRequest struct {
	Weekday string        `json:"weekday"` // monday..sunday
	Slots   []SlotRequest `json:"slots"`
}

// RecurringRequest HTTP request model регулярного графика
type RecurringRequest struct {
	StartDate string       `json:"startDate"`
	EndDate   *string      `json:"endDate,omitempty"`
	Cadence   string       `json:"cadence"` // everyWeek, everyTwoWeeks, everyMonth
	Days      []DayRequest `json:"days"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RecurringRequest) ToUseCaseRequest(shopID, memberID int64) (*saveRecurring.Request, error) {
	start, err := types.ParseDate(r.StartDate)
	if err != nil {
		return nil, errInvalidDate
	}

	req := &saveRecurring.Request{
		ShopID:       shopID,
		TeamMemberID: memberID,
		StartDate:    start,
		Cadence:      r.Cadence,
	}

	if r.EndDate != nil && *r.EndDate != "" {
		end, err := types.ParseDate(*r.EndDate)
		if err != nil {
			return nil, errInvalidDate
		}
		req.EndDate = &end
	}

	for _, day := range r.Days {
		weekday, ok := weekdays[strings.ToLower(strings.TrimSpace(day.Weekday))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", errInvalidWeekday, day.Weekday)
		}
		for _, slot := range day.Slots {
			s, err := types.NewTimeStringFromString(slot.StartTime)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", errInvalidSlot, slot.StartTime)
			}
			e, err := types.NewTimeStringFromString(slot.EndTime)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", errInvalidSlot, slot.EndTime)
			}
			req.Week[weekday] = append(req.Week[weekday], recurrence.SlotTemplate{Start: s, End: e})
		}
	}

	return req, nil
}

// RecurringResponse итог сохранения графика
type RecurringResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Deleted   int64  `json:"deleted"`
	Created   int64  `json:"created"`
}

func FromUseCaseResponse(resp *saveRecurring.Response) *RecurringResponse {
	return &RecurringResponse{
		StartDate: resp.StartDate.Format(types.DateLayout),
		EndDate:   resp.EndDate.Format(types.DateLayout),
		Deleted:   resp.Deleted,
		Created:   resp.Created,
	}
}
