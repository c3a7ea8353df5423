package get_salon_reservations

import (
	"strconv"
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
	"github.com/salonmarket/booking-engine/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
func ToServiceRequest(salonID, userID int64, staffIDStr, statusStr, startDateStr, endDateStr, includeInactiveStr string) (*models.GetSalonReservationsRequest, error) {
	req := &models.GetSalonReservationsRequest{
		UserID:  userID,
		SalonID: salonID,
	}

	if staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
