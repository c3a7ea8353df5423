package list_eligible_staff

import (
	"context"

	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
)

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, salonID, serviceID int64) (*catalogservice.Service, error)
	ListStaffForService(ctx context.Context, salonID, serviceID int64) ([]*catalogservice.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
