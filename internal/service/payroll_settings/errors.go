package payroll_settings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("payroll_settings: invalid input data")

	// ErrHolidayNotFound возвращается, когда праздник не найден
	ErrHolidayNotFound = errors.New("payroll_settings: public holiday not found")

	// ErrHolidayExists возвращается, когда праздник на дату уже есть
	ErrHolidayExists = errors.New("payroll_settings: public holiday already exists")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payroll_settings: internal error")
)
