package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-engine/pkg/types"
)

func mustTime(t *testing.T, v string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(v)
	require.NoError(t, err)
	return ts
}

func availableSlot(t *testing.T, start, end string) Slot {
	t.Helper()
	return Slot{
		Start:     mustTime(t, start),
		End:       mustTime(t, end),
		Available: true,
	}
}

// Проходит все шаги до завершения
func advanceToConfirm(t *testing.T) Session {
	t.Helper()

	s := New(10)

	s, err := s.SelectService(1, 10, []int64{100, 101})
	require.NoError(t, err)

	s, err = s.SelectStaff(100)
	require.NoError(t, err)

	date := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	s, err = s.SelectSlot(date, availableSlot(t, "10:00", "11:00"))
	require.NoError(t, err)

	return s
}

func TestSession_HappyPath(t *testing.T) {
	s := advanceToConfirm(t)
	assert.Equal(t, StepConfirm, s.Step)
	assert.True(t, s.ReadyToConfirm())

	s, err := s.Finalize(555)
	require.NoError(t, err)

	assert.Equal(t, StepFinalized, s.Step)
	require.NotNil(t, s.ReservationID)
	assert.Equal(t, int64(555), *s.ReservationID)
}

func TestSession_SelectService(t *testing.T) {
	t.Run("wrong salon rejected", func(t *testing.T) {
		s := New(10)
		_, err := s.SelectService(1, 99, []int64{100})
		assert.ErrorIs(t, err, ErrServiceFromAnotherSalon)
	})

	t.Run("changing service clears staff and slot", func(t *testing.T) {
		s := advanceToConfirm(t)

		s, err := s.SelectService(2, 10, []int64{200})
		require.NoError(t, err)

		assert.Equal(t, StepSelectStaff, s.Step)
		assert.Nil(t, s.StaffID)
		assert.Nil(t, s.Date)
		assert.Nil(t, s.SlotStart)
		assert.Nil(t, s.SlotEnd)
		assert.Equal(t, []int64{200}, s.StaffOptions)
	})

	t.Run("reselecting same service keeps staff", func(t *testing.T) {
		s := advanceToConfirm(t)

		s, err := s.SelectService(1, 10, []int64{100, 101})
		require.NoError(t, err)

		require.NotNil(t, s.StaffID)
		assert.Equal(t, int64(100), *s.StaffID)
	})
}

func TestSession_SelectStaff(t *testing.T) {
	t.Run("staff outside filtered set rejected", func(t *testing.T) {
		s := New(10)
		s, err := s.SelectService(1, 10, []int64{100, 101})
		require.NoError(t, err)

		_, err = s.SelectStaff(999)
		assert.ErrorIs(t, err, ErrStaffNotEligible)
	})

	t.Run("staff before service rejected", func(t *testing.T) {
		s := New(10)
		_, err := s.SelectStaff(100)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("changing staff clears slot", func(t *testing.T) {
		s := advanceToConfirm(t)

		s, err := s.SelectStaff(101)
		require.NoError(t, err)

		assert.Equal(t, StepSelectDateTime, s.Step)
		assert.Nil(t, s.Date)
		assert.Nil(t, s.SlotStart)
	})
}

func TestSession_SelectSlot(t *testing.T) {
	t.Run("unavailable slot rejected", func(t *testing.T) {
		s := New(10)
		s, err := s.SelectService(1, 10, []int64{100})
		require.NoError(t, err)
		s, err = s.SelectStaff(100)
		require.NoError(t, err)

		slot := availableSlot(t, "10:00", "11:00")
		slot.Available = false

		date := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
		_, err = s.SelectSlot(date, slot)
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("slot before staff rejected", func(t *testing.T) {
		s := New(10)
		s, err := s.SelectService(1, 10, []int64{100})
		require.NoError(t, err)

		date := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
		_, err = s.SelectSlot(date, availableSlot(t, "10:00", "11:00"))
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestSession_SlotConflict(t *testing.T) {
	s := advanceToConfirm(t)

	s, err := s.SlotConflict()
	require.NoError(t, err)

	assert.Equal(t, StepSelectDateTime, s.Step)
	assert.Nil(t, s.SlotStart)
	assert.Nil(t, s.SlotEnd)
	// Услуга и мастер сохраняются
	require.NotNil(t, s.ServiceID)
	require.NotNil(t, s.StaffID)

	// После конфликта требуется заново выбрать слот
	_, err = s.Finalize(1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSession_Back(t *testing.T) {
	t.Run("back preserves values", func(t *testing.T) {
		s := advanceToConfirm(t)

		s, err := s.Back()
		require.NoError(t, err)
		assert.Equal(t, StepSelectDateTime, s.Step)
		require.NotNil(t, s.SlotStart)

		s, err = s.Back()
		require.NoError(t, err)
		assert.Equal(t, StepSelectStaff, s.Step)
		require.NotNil(t, s.StaffID)
	})

	t.Run("back from first step rejected", func(t *testing.T) {
		s := New(10)
		_, err := s.Back()
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("back from finalized rejected", func(t *testing.T) {
		s := advanceToConfirm(t)
		s, err := s.Finalize(1)
		require.NoError(t, err)

		_, err = s.Back()
		assert.ErrorIs(t, err, ErrSessionFinalized)
	})
}

func TestSession_ApplyPromo(t *testing.T) {
	s := New(10)

	s, err := s.ApplyPromo("SUMMER20")
	require.NoError(t, err)
	require.NotNil(t, s.PromoCode)
	assert.Equal(t, "SUMMER20", *s.PromoCode)

	// Промокод переживает смену услуги
	s, err = s.SelectService(1, 10, []int64{100})
	require.NoError(t, err)
	require.NotNil(t, s.PromoCode)

	s, err = s.ClearPromo()
	require.NoError(t, err)
	assert.Nil(t, s.PromoCode)
}

func TestSession_FinalizedIsTerminal(t *testing.T) {
	s := advanceToConfirm(t)
	s, err := s.Finalize(1)
	require.NoError(t, err)

	_, err = s.SelectService(2, 10, []int64{200})
	assert.ErrorIs(t, err, ErrSessionFinalized)

	_, err = s.ApplyPromo("CODE")
	assert.ErrorIs(t, err, ErrSessionFinalized)

	_, err = s.Finalize(2)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
