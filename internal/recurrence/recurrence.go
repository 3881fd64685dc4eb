// Package recurrence expands a weekly working pattern into dated availability rows.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	// ErrInvalidRange конец периода раньше начала
	ErrInvalidRange = errors.New("recurrence: end date is before start date")

	// ErrInvalidCadence неизвестный шаг повторения
	ErrInvalidCadence = errors.New("recurrence: unknown cadence")

	// ErrInvalidTemplate некорректный интервал в шаблоне дня
	ErrInvalidTemplate = errors.New("recurrence: invalid slot template")
)

// Cadence recurrence step
type Cadence string

const (
	EveryWeek     Cadence = "everyWeek"
	EveryTwoWeeks Cadence = "everyTwoWeeks"
	// EveryMonth месяц считается ровно за 28 дней
	EveryMonth Cadence = "everyMonth"
)

// ParseCadence parses a cadence name
func ParseCadence(s string) (Cadence, error) {
	c := Cadence(s)
	if _, err := c.step(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Cadence) step() (int, error) {
	switch c {
	case EveryWeek:
		return 7, nil
	case EveryTwoWeeks:
		return 14, nil
	case EveryMonth:
		return 28, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCadence, string(c))
	}
}

// SlotTemplate wall-clock interval worked on an enabled weekday
type SlotTemplate struct {
	Start types.TimeString
	End   types.TimeString
}

// WeekTemplate slot templates indexed by time.Weekday. A day with no templates is a day off.
type WeekTemplate [7][]SlotTemplate

// EnabledDays number of weekdays with at least one template
func (w WeekTemplate) EnabledDays() int {
	n := 0
	for _, slots := range w {
		if len(slots) > 0 {
			n++
		}
	}
	return n
}

// Pattern recurring availability rule
type Pattern struct {
	StartDate time.Time
	EndDate   *time.Time // nil - StartDate + 12 недель
	Cadence   Cadence
	Week      WeekTemplate
}

// ResolvedEnd returns the inclusive last date of the pattern
func (p Pattern) ResolvedEnd() time.Time {
	if p.EndDate != nil {
		return types.DateOnly(*p.EndDate)
	}
	return types.DateOnly(p.StartDate).AddDate(0, 0, domain.DefaultRecurrenceWeeks*7)
}

// Occurrence one concrete availability row
type Occurrence struct {
	Date  time.Time
	Start types.TimeString
	End   types.TimeString
}

// Validate checks the range, cadence and templates
func (p Pattern) Validate() error {
	if p.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidRange)
	}
	if p.ResolvedEnd().Before(types.DateOnly(p.StartDate)) {
		return ErrInvalidRange
	}
	if _, err := p.Cadence.step(); err != nil {
		return err
	}
	for day, slots := range p.Week {
		for _, s := range slots {
			if err := s.Start.Validate(); err != nil {
				return fmt.Errorf("%w: %s start %q", ErrInvalidTemplate, time.Weekday(day), s.Start)
			}
			if err := s.End.Validate(); err != nil {
				return fmt.Errorf("%w: %s end %q", ErrInvalidTemplate, time.Weekday(day), s.End)
			}
			if !s.Start.IsBefore(s.End) {
				return fmt.Errorf("%w: %s %s-%s", ErrInvalidTemplate, time.Weekday(day), s.Start, s.End)
			}
		}
	}
	return nil
}

// Expand produces one occurrence per template for every matching date in [start, end].
// For each enabled weekday the first date is the first such weekday on or after start,
// then the date advances by the cadence step. Order of the result is not significant.
func Expand(p Pattern) ([]Occurrence, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	step, _ := p.Cadence.step()
	start := types.DateOnly(p.StartDate)
	end := p.ResolvedEnd()

	var out []Occurrence
	for day, slots := range p.Week {
		if len(slots) == 0 {
			continue
		}

		offset := (day - int(start.Weekday()) + 7) % 7
		for date := start.AddDate(0, 0, offset); !date.After(end); date = date.AddDate(0, 0, step) {
			for _, s := range slots {
				out = append(out, Occurrence{Date: date, Start: s.Start, End: s.End})
			}
		}
	}

	return out, nil
}
