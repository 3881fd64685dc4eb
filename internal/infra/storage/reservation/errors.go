package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда у сессии нет удержания
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("reservation.redis: command failed")

	// ErrCodec возвращается при ошибке кодирования удержания
	ErrCodec = errors.New("reservation.redis: failed to encode reservation")
)
