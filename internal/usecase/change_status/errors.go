package change_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("change_status: invalid input data")

	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("change_status: reservation not found")

	// ErrForbidden возвращается, когда инициатору не разрешен запрошенный переход
	ErrForbidden = errors.New("change_status: operation not allowed for this actor")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("change_status: status transition not allowed")

	// ErrFutureCompletion возвращается при попытке завершить или отметить
	// неявку по записи с датой в будущем
	ErrFutureCompletion = errors.New("change_status: cannot complete or mark no-show for a future reservation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_status: internal error")
)
