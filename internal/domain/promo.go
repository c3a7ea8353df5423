package domain

import "time"

// PromoCode represents a promotional discount code scoped to a salon
type PromoCode struct {
	ID              int64
	SalonID         int64
	Code            string
	DiscountPercent float64
	ValidFrom       time.Time
	ValidUntil      *time.Time // NULL = бессрочный
	MaxUses         *int       // NULL = без ограничения
	UsedCount       int
	IsActive        bool
	CreatedAt       time.Time
}

// IsWithinWindow returns true if the promo code is valid at the given moment
func (p *PromoCode) IsWithinWindow(now time.Time) bool {
	if now.Before(p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && !now.Before(*p.ValidUntil) {
		return false
	}
	return true
}

// HasUsesLeft returns true if the usage cap has not been reached
func (p *PromoCode) HasUsesLeft() bool {
	return p.MaxUses == nil || p.UsedCount < *p.MaxUses
}
