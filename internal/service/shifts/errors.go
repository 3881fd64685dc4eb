package shifts

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("shifts: invalid input data")

	// ErrShiftNotFound возвращается, когда смена не найдена
	ErrShiftNotFound = errors.New("shifts: shift not found")

	// ErrNoActiveShift возвращается, когда у мастера нет открытой смены
	ErrNoActiveShift = errors.New("shifts: team member has no active shift")

	// ErrShiftAlreadyActive возвращается при повторном открытии смены
	ErrShiftAlreadyActive = errors.New("shifts: team member already has an active shift")

	// ErrBreakAlreadyOpen возвращается, когда перерыв уже начат
	ErrBreakAlreadyOpen = errors.New("shifts: break is already open")

	// ErrNoOpenBreak возвращается, когда нет начатого перерыва
	ErrNoOpenBreak = errors.New("shifts: no open break")

	// ErrTeamMemberNotFound возвращается, когда мастер не найден в салоне
	ErrTeamMemberNotFound = errors.New("shifts: team member not found")

	// ErrShopNotFound возвращается, когда салон не найден
	ErrShopNotFound = errors.New("shifts: shop not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("shifts: internal error")
)
