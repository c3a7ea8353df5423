package get_eligible_staff

import (
	"context"

	listEligibleStaff "github.com/salonmarket/booking-engine/internal/usecase/list_eligible_staff"
)

// ListEligibleStaffUseCase интерфейс use case списка мастеров, выполняющих услугу
type ListEligibleStaffUseCase interface {
	Execute(ctx context.Context, req *listEligibleStaff.Request) (*listEligibleStaff.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
