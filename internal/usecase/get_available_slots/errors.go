package get_available_slots

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден или неактивен
	ErrStaffNotFound = errors.New("get_available_slots: staff not found")

	// ErrInvalidServiceDuration возвращается, когда тариф длительности
	// не принадлежит услуге или неактивен
	ErrInvalidServiceDuration = errors.New("get_available_slots: invalid service duration")

	// ErrServiceNotOffered возвращается, когда мастер не оказывает услугу
	ErrServiceNotOffered = errors.New("get_available_slots: service not offered by staff")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
