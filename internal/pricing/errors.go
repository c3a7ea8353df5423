package pricing

import "errors"

var (
	// ErrPromoInactive возвращается для деактивированного промокода
	ErrPromoInactive = errors.New("pricing: promo code is inactive")

	// ErrPromoWrongSalon возвращается, когда промокод принадлежит другому салону
	ErrPromoWrongSalon = errors.New("pricing: promo code belongs to another salon")

	// ErrPromoNotStarted возвращается до начала действия промокода
	ErrPromoNotStarted = errors.New("pricing: promo code is not yet valid")

	// ErrPromoExpired возвращается после окончания действия промокода
	ErrPromoExpired = errors.New("pricing: promo code has expired")

	// ErrPromoExhausted возвращается при исчерпанном лимите использований
	ErrPromoExhausted = errors.New("pricing: promo code usage limit reached")

	// ErrInvalidDiscount возвращается для скидки вне диапазона 0-100
	ErrInvalidDiscount = errors.New("pricing: discount percent out of range")
)
