package list_eligible_staff

// Request модель запроса списка мастеров, выполняющих услугу
type Request struct {
	SalonID   int64 // ID салона
	ServiceID int64 // ID услуги
}

// StaffEntry мастер, допущенный к услуге
type StaffEntry struct {
	ID   int64  // ID мастера
	Name string // Имя мастера
}

// Response модель ответа со списком допущенных мастеров
type Response struct {
	SalonID     int64        // ID салона
	ServiceID   int64        // ID услуги
	ServiceName string       // Название услуги
	Staff       []StaffEntry // Активные мастера, выполняющие услугу

	// ID мастеров в том же порядке, что и Staff
	// Используются как варианты выбора мастера при проведении клиента по шагам бронирования
	StaffIDs []int64
}
