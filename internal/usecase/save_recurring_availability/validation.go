package save_recurring_availability

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/recurrence"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// buildPattern валидирует запрос и собирает шаблон повторения
func buildPattern(req *Request) (recurrence.Pattern, error) {
	if req.ShopID <= 0 {
		return recurrence.Pattern{}, fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.TeamMemberID <= 0 {
		return recurrence.Pattern{}, fmt.Errorf("%w: teamMemberID must be positive", ErrInvalidInput)
	}

	if req.Week.EnabledDays() == 0 {
		return recurrence.Pattern{}, ErrNothingToSave
	}

	cadence, err := recurrence.ParseCadence(req.Cadence)
	if err != nil {
		return recurrence.Pattern{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	pattern := recurrence.Pattern{
		StartDate: types.DateOnly(req.StartDate),
		EndDate:   req.EndDate,
		Cadence:   cadence,
		Week:      req.Week,
	}

	if err := pattern.Validate(); err != nil {
		return recurrence.Pattern{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	span := int(pattern.ResolvedEnd().Sub(pattern.StartDate).Hours()/24) + 1
	if span > domain.MaxRecurrenceDays {
		return recurrence.Pattern{}, fmt.Errorf("%w: period must be at most %d days", ErrInvalidInput, domain.MaxRecurrenceDays)
	}

	return pattern, nil
}
