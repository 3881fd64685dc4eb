package payroll

import "errors"

var (
	// ErrHolidayNotFound возвращается, когда праздник не найден
	ErrHolidayNotFound = errors.New("payroll.repository: public holiday not found")

	// ErrDuplicateHoliday возвращается при попытке создать второй праздник на ту же дату
	ErrDuplicateHoliday = errors.New("payroll.repository: public holiday for date already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payroll.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payroll.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payroll.repository: failed to scan row")
)
