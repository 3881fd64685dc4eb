// Package zoned converts shop-local wall-clock date and time into UTC instants.
package zoned

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	// ErrUnknownZone возвращается, если IANA зона не найдена
	ErrUnknownZone = errors.New("zoned: unknown time zone")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("zoned: invalid date")
)

// LocalToUTC переводит локальные дату "YYYY-MM-DD" и время "HH:mm[:ss]" зоны ianaZone в UTC
func LocalToUTC(date, clock, ianaZone string) (time.Time, error) {
	day, err := types.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	ts, err := types.NewTimeStringFromString(clock)
	if err != nil {
		return time.Time{}, err
	}

	loc, err := time.LoadLocation(ianaZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnknownZone, ianaZone)
	}

	return LocalToUTCIn(day, ts, loc), nil
}

// LocalToUTCIn то же, что LocalToUTC, для уже разобранных значений.
//
// Локальное время сначала трактуется как UTC, затем вычитается смещение зоны в этот момент.
// Если после вычитания смещение зоны другое (переход на летнее/зимнее время), вычитается новое.
func LocalToUTCIn(date time.Time, clock types.TimeString, loc *time.Location) time.Time {
	naive := clock.OnDate(types.DateOnly(date))

	offset := offsetAt(naive, loc)
	utc := naive.Add(-offset)

	if corrected := offsetAt(utc, loc); corrected != offset {
		utc = naive.Add(-corrected)
	}

	return utc
}

// UTCToLocal возвращает календарную дату и время суток instant в зоне loc
func UTCToLocal(instant time.Time, loc *time.Location) (time.Time, types.TimeString) {
	local := instant.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), types.NewTimeString(local)
}

func offsetAt(instant time.Time, loc *time.Location) time.Duration {
	_, seconds := instant.In(loc).Zone()
	return time.Duration(seconds) * time.Second
}
