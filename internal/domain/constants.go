package domain

// Default configuration values
const (
	// SlotStepMinutes фиксированный шаг генерации слотов
	// Шаг не зависит от длительности услуги: длинная услуга всё равно
	// может начинаться каждые 15 минут
	SlotStepMinutes = 15

	DefaultBufferMinutes   = 15
	DefaultStampsPerReward = 10
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxBufferMinutes            = 120
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
