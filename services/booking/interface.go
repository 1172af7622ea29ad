package booking

import (
	"context"
	"time"

	"atstay/models"
)

// CreateBookingRequest is the inbound payload for creating a booking. Dates
// arrive as "YYYY-MM-DD" strings and are normalized to day granularity.
type CreateBookingRequest struct {
	RoomID        string `json:"room"`
	CheckInDate   string `json:"checkInDate"`
	CheckOutDate  string `json:"checkOutDate"`
	Guests        int    `json:"guests"`
	PaymentMethod string `json:"paymentMethod"`
}

// DashboardData aggregates a hotel owner's bookings and revenue.
type DashboardData struct {
	TotalBookings int              `json:"totalBookings"`
	TotalRevenue  float64          `json:"totalRevenue"`
	Bookings      []models.Booking `json:"bookings"`
}

// BookingService covers room availability and the booking lifecycle up to the
// point where payment takes over.
type BookingService interface {
	// IsAvailable reports whether the room is free of conflicting non-cancelled
	// bookings for the given interval. Callers must pass checkOut > checkIn.
	IsAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)

	// CreateBooking validates the request, re-checks availability and persists
	// a pending, unpaid booking.
	CreateBooking(ctx context.Context, userID string, req CreateBookingRequest) (*models.Booking, error)

	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)

	// HotelDashboard returns bookings and paid revenue for the owner's hotel.
	HotelDashboard(ctx context.Context, ownerID string) (*DashboardData, error)
}
