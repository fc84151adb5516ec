package catalog

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("catalog.repository: staff not found")

	// ErrDurationTierNotFound возвращается, когда тариф длительности не найден
	ErrDurationTierNotFound = errors.New("catalog.repository: duration tier not found")

	// ErrOfferingNotFound возвращается, когда мастер не оказывает услугу
	ErrOfferingNotFound = errors.New("catalog.repository: staff does not offer this service")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
