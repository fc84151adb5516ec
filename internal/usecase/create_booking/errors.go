package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStaffNotFound возвращается, когда мастер не найден или неактивен
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrInvalidServiceDuration возвращается, когда тариф длительности
	// не принадлежит услуге или неактивен
	ErrInvalidServiceDuration = errors.New("create_booking: invalid service duration")

	// ErrServiceNotOffered возвращается, когда мастер не оказывает услугу
	ErrServiceNotOffered = errors.New("create_booking: service not offered by staff")

	// ErrSlotNotAvailable возвращается, когда к моменту коммита запрошенный
	// интервал уже занят другой записью
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
