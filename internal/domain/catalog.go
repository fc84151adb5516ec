package domain

import "time"

// Staff мастер салона
type Staff struct {
	ID        int64
	Name      LocalizedText
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service услуга из каталога
// Каталог управляется внешней админкой; движок бронирования читает его
type Service struct {
	ID        int64
	Name      LocalizedText
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceDurationTier вариант (длительность, базовая цена) для услуги
// Например, "60 минут за 900"
type ServiceDurationTier struct {
	ID              int64
	ServiceID       int64
	DurationMinutes int
	BasePrice       float64
	IsActive        bool
}

// BelongsTo returns true if the tier belongs to the given service and is bookable
func (t *ServiceDurationTier) BelongsTo(serviceID int64) bool {
	return t.ServiceID == serviceID
}

// StaffServiceOffering связка (мастер, услуга) с аддитивным модификатором цены
// Определяет и то, какие услуги мастер вообще оказывает, и итоговую цену строки.
// Модификатор может быть отрицательным; итоговая цена строки не ограничивается нулём.
type StaffServiceOffering struct {
	StaffID       int64
	ServiceID     int64
	PriceModifier float64
}

// LinePrice returns the price of a line booked with this offering
func (o *StaffServiceOffering) LinePrice(tier *ServiceDurationTier) float64 {
	return tier.BasePrice + o.PriceModifier
}
