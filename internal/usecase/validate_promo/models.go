package validate_promo

// Request модель запроса на проверку промокода
type Request struct {
	UserID  int64  // ID пользователя (для логирования, не влияет на результат)
	SalonID int64  // ID салона
	Code    string // Проверяемый промокод

	// Услуга для предварительного расчёта цены (опционально)
	ServiceID *int64
}

// Response модель ответа с применимым промокодом
// Проверка ни к чему не обязывает: промокод валидируется заново при создании
// бронирования, и счётчик использований здесь не меняется
type Response struct {
	Code            string  // Нормализованный промокод
	DiscountPercent float64 // Скидка в процентах

	// Предварительный расчёт цены, если указана услуга
	BasePriceCents  *int64 // Базовая цена услуги в центах
	FinalPriceCents *int64 // Итоговая цена со скидкой в центах
}
