package list_eligible_staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/internal/session"
)

type fakeCatalogClient struct {
	service    *catalogservice.Service
	serviceErr error
	staff      []*catalogservice.Staff
	staffErr   error
}

func (f *fakeCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

func (f *fakeCatalogClient) ListStaffForService(_ context.Context, _, _ int64) ([]*catalogservice.Staff, error) {
	if f.staffErr != nil {
		return nil, f.staffErr
	}
	return f.staff, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func haircutService() *catalogservice.Service {
	return &catalogservice.Service{
		ID:              1,
		SalonID:         10,
		Name:            "Haircut",
		PriceCents:      5000,
		DurationMinutes: 60,
		IsActive:        true,
	}
}

func TestExecute_ListsActiveEligibleStaff(t *testing.T) {
	uc := NewUseCase(&fakeCatalogClient{
		service: haircutService(),
		staff: []*catalogservice.Staff{
			{ID: 100, SalonID: 10, Name: "Anna", ServiceIDs: []int64{1}, IsActive: true},
			{ID: 101, SalonID: 10, Name: "Boris", ServiceIDs: []int64{1, 2}, IsActive: true},
			{ID: 102, SalonID: 10, Name: "Vera", ServiceIDs: []int64{1}, IsActive: false},
			{ID: 103, SalonID: 10, Name: "Gleb", ServiceIDs: []int64{2}, IsActive: true},
		},
	}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 10, ServiceID: 1})
	require.NoError(t, err)

	assert.Equal(t, "Haircut", resp.ServiceName)
	require.Len(t, resp.Staff, 2)
	assert.Equal(t, int64(100), resp.Staff[0].ID)
	assert.Equal(t, "Anna", resp.Staff[0].Name)
	assert.Equal(t, int64(101), resp.Staff[1].ID)
	assert.Equal(t, []int64{100, 101}, resp.StaffIDs)
}

func TestExecute_StaffIDsFeedSessionStaffOptions(t *testing.T) {
	// Результат подается в сессию бронирования как варианты выбора мастера
	uc := NewUseCase(&fakeCatalogClient{
		service: haircutService(),
		staff: []*catalogservice.Staff{
			{ID: 100, SalonID: 10, Name: "Anna", ServiceIDs: []int64{1}, IsActive: true},
		},
	}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 10, ServiceID: 1})
	require.NoError(t, err)

	s := session.New(10)
	s, err = s.SelectService(resp.ServiceID, resp.SalonID, resp.StaffIDs)
	require.NoError(t, err)

	s, err = s.SelectStaff(100)
	require.NoError(t, err)
	assert.Equal(t, session.StepSelectDateTime, s.Step)

	// Мастер вне списка отклоняется
	_, err = s.SelectStaff(999)
	assert.ErrorIs(t, err, session.ErrStaffNotEligible)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := NewUseCase(&fakeCatalogClient{
		serviceErr: catalogservice.ErrServiceNotFound,
	}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SalonID: 10, ServiceID: 42})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	service := haircutService()
	service.IsActive = false

	uc := NewUseCase(&fakeCatalogClient{service: service}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SalonID: 10, ServiceID: 1})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_NoEligibleStaff(t *testing.T) {
	uc := NewUseCase(&fakeCatalogClient{
		service: haircutService(),
		staff:   []*catalogservice.Staff{},
	}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 10, ServiceID: 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Staff)
	assert.Empty(t, resp.StaffIDs)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeCatalogClient{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SalonID: 0, ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SalonID: 10, ServiceID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
