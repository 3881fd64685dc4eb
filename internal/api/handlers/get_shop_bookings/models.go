package get_shop_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// QueryParams query параметры календаря салона
type QueryParams struct {
	TeamMemberID    string
	Status          string
	Date            string // один день, перекрывает from/to
	From            string
	To              string
	IncludeInactive string
}

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(caller domain.Caller, shopID int64, q QueryParams) (*models.GetShopBookingsRequest, error) {
	req := &models.GetShopBookingsRequest{
		Caller:          caller,
		ShopID:          shopID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if q.TeamMemberID != "" {
		memberID, err := strconv.ParseInt(q.TeamMemberID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid teamMemberId: %w", err)
		}
		req.TeamMemberID = &memberID
	}

	if q.Status != "" {
		req.Status = &q.Status
	}

	if q.Date != "" {
		date, err := types.ParseDate(q.Date)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		var err error
		if req.StartDate, err = parseOptionalDate(q.From); err != nil {
			return nil, err
		}
		if req.EndDate, err = parseOptionalDate(q.To); err != nil {
			return nil, err
		}
	}

	if q.IncludeInactive != "" {
		includeInactive, err := strconv.ParseBool(q.IncludeInactive)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := types.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
