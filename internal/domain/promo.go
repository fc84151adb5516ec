package domain

import "time"

// PromoDiscountType тип скидки промокода
type PromoDiscountType string

const (
	DiscountPercentage PromoDiscountType = "percentage"
	DiscountFixed      PromoDiscountType = "fixed"
)

// PromoCode промокод
// Счетчик CurrentUses увеличивается только в той же транзакции,
// что создает бронирование с этим кодом
type PromoCode struct {
	ID             int64
	Code           string
	DiscountType   PromoDiscountType
	DiscountValue  float64
	ValidFrom      time.Time
	ValidUntil     time.Time
	MinOrderAmount *float64
	MaxUses        *int
	CurrentUses    int
	IsActive       bool
}

// IsApplicable returns true if the code may be applied to an order of the
// given total at the given moment. A failed check does NOT fail the booking:
// the commit proceeds with zero discount (observed legacy behavior,
// kept intentionally).
func (p *PromoCode) IsApplicable(total float64, now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if now.Before(p.ValidFrom) || now.After(p.ValidUntil) {
		return false
	}
	if p.MaxUses != nil && p.CurrentUses >= *p.MaxUses {
		return false
	}
	if p.MinOrderAmount != nil && total < *p.MinOrderAmount {
		return false
	}
	return true
}

// Discount returns the discount amount for the given total.
// Never exceeds the total: a fixed-amount code cannot push the price
// below zero.
func (p *PromoCode) Discount(total float64) float64 {
	var discount float64
	switch p.DiscountType {
	case DiscountPercentage:
		discount = total * p.DiscountValue / 100
	case DiscountFixed:
		discount = p.DiscountValue
	default:
		return 0
	}
	if discount > total {
		discount = total
	}
	if discount < 0 {
		return 0
	}
	return discount
}
