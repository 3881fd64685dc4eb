package payroll

import (
	"math"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Calculation hours and pay of one shift
type Calculation struct {
	GrossHours         float64
	NetHours           float64
	TotalBreakMinutes  int
	PaidBreakMinutes   int
	UnpaidBreakMinutes int
	DayType            domain.DayType
	HourlyRate         float64
	TotalPay           float64
	// Live смена ещё идёт, вместо конца взято now
	Live bool
}

// CalculateShift derives hours and pay. Only closed breaks count. For an active shift
// now is used in place of the shift end.
func CalculateShift(shift *domain.Shift, dayType DayTypeResolver, rate RateResolver, now time.Time) Calculation {
	calc := Calculation{TotalBreakMinutes: shift.ClosedBreakMinutes()}

	calc.PaidBreakMinutes = min(calc.TotalBreakMinutes, domain.PaidBreakAllowanceMinutes)
	calc.UnpaidBreakMinutes = max(calc.TotalBreakMinutes-domain.PaidBreakAllowanceMinutes, 0)

	end := now
	if shift.ShiftEnd != nil {
		end = *shift.ShiftEnd
	} else {
		calc.Live = true
	}

	if end.After(shift.ShiftStart) {
		calc.GrossHours = end.Sub(shift.ShiftStart).Hours()
	}
	calc.NetHours = math.Max(calc.GrossHours-float64(calc.UnpaidBreakMinutes)/60, 0)

	calc.DayType = domain.DayTypeWeekday
	if dayType != nil {
		calc.DayType = dayType(shift.Date)
	}
	if rate != nil {
		calc.HourlyRate = rate(calc.DayType)
	}
	calc.TotalPay = calc.NetHours * calc.HourlyRate

	return calc
}

// TimesheetRow totals of one team member
type TimesheetRow struct {
	TeamMemberID      int64
	NetHours          float64
	TotalPay          float64
	DaysWorked        int
	TotalBreakMinutes int
}

// AggregateTimesheet sums finished shifts per member. Shifts without an end are skipped.
// Rows are ordered by team member id.
func AggregateTimesheet(shifts []*domain.Shift, dayType DayTypeResolver, rate RateResolver) []TimesheetRow {
	byMember := make(map[int64]*TimesheetRow)

	for _, s := range shifts {
		if s.ShiftEnd == nil {
			continue
		}

		calc := CalculateShift(s, dayType, rate, *s.ShiftEnd)

		row, ok := byMember[s.TeamMemberID]
		if !ok {
			row = &TimesheetRow{TeamMemberID: s.TeamMemberID}
			byMember[s.TeamMemberID] = row
		}
		row.NetHours += calc.NetHours
		row.TotalPay += calc.TotalPay
		row.DaysWorked++
		row.TotalBreakMinutes += calc.TotalBreakMinutes
	}

	rows := make([]TimesheetRow, 0, len(byMember))
	for _, row := range byMember {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TeamMemberID < rows[j].TeamMemberID
	})

	return rows
}

// Round2 округляет сумму до копеек
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
