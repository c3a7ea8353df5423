// Package pricing computes final reservation prices and validates promo codes.
// All money values are integer cents, rounding is half up to the nearest cent.
package pricing

import (
	"math"
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
)

// Quote итоговая цена бронирования
type Quote struct {
	BasePriceCents  int64
	DiscountPercent float64
	FinalPriceCents int64
}

// Finalize рассчитывает итоговую цену с учётом скидки
// Округление половины вверх до цента: 33% от 9999 центов -> 6699, не 6700
func Finalize(basePriceCents int64, discountPercent float64) (Quote, error) {
	if discountPercent < 0 || discountPercent > domain.MaxDiscountPercent {
		return Quote{}, ErrInvalidDiscount
	}

	final := roundHalfUp(float64(basePriceCents) * (100 - discountPercent) / 100)

	return Quote{
		BasePriceCents:  basePriceCents,
		DiscountPercent: discountPercent,
		FinalPriceCents: final,
	}, nil
}

// ValidatePromo проверяет применимость промокода к салону на момент времени now
// Порядок проверок фиксирован: активность, салон, окно действия, лимит использований
func ValidatePromo(promo *domain.PromoCode, salonID int64, now time.Time) error {
	if !promo.IsActive {
		return ErrPromoInactive
	}
	if promo.SalonID != salonID {
		return ErrPromoWrongSalon
	}
	if now.Before(promo.ValidFrom) {
		return ErrPromoNotStarted
	}
	if promo.ValidUntil != nil && !now.Before(*promo.ValidUntil) {
		return ErrPromoExpired
	}
	if !promo.HasUsesLeft() {
		return ErrPromoExhausted
	}
	return nil
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
