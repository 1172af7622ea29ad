package booking

import (
	"context"
	"time"

	bookingRepo "atstay/database/repository/booking"
	hotelRepo "atstay/database/repository/hotel"
	roomRepo "atstay/database/repository/room"
	"atstay/models"
	"atstay/services/notification"
	"atstay/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultPaymentMethod = "Pay At Hotel"

// DefaultBookingService is the production BookingService implementation.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Rooms    roomRepo.RoomRepository
	Hotels   hotelRepo.HotelRepository
	Notifier notification.Dispatcher
	Currency string
}

// IsAvailable reports whether the room has no conflicting non-cancelled
// booking for the interval. Storage failures are propagated, never folded
// into an availability verdict.
func (s *DefaultBookingService) IsAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	count, err := s.Bookings.CountOverlapping(ctx, roomID, NormalizeDay(checkIn), NormalizeDay(checkOut))
	if err != nil {
		return false, utils.InternalError("Failed to check availability", err)
	}
	return count == 0, nil
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID string, req CreateBookingRequest) (*models.Booking, error) {
	if userID == "" {
		return nil, utils.ForbiddenError("Authentication required")
	}
	if req.RoomID == "" || req.CheckInDate == "" || req.CheckOutDate == "" || req.Guests == 0 {
		return nil, utils.ValidationError("Missing required fields: room, checkInDate, checkOutDate, guests")
	}
	if req.Guests < 1 || req.Guests > 10 {
		return nil, utils.ValidationError("Guests must be between 1 and 10")
	}

	checkIn, checkOut, err := ParseStayDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	available, err := s.IsAvailable(ctx, req.RoomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, utils.ConflictError("Room is not available for the selected dates")
	}

	room, err := s.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, utils.InternalError("Failed to load room", err)
	}
	if room == nil {
		return nil, utils.NotFoundError("Room not found")
	}
	if !room.IsAvailable {
		return nil, utils.ConflictError("Room is currently unavailable")
	}

	hotel, err := s.Hotels.GetByID(ctx, room.HotelID)
	if err != nil {
		return nil, utils.InternalError("Failed to load hotel", err)
	}
	if hotel == nil {
		return nil, utils.NotFoundError("Hotel not found")
	}

	nights := models.NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return nil, utils.ValidationError("Invalid date range")
	}
	totalPrice := room.PricePerNight * float64(nights)

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		RoomID:        room.ID,
		HotelID:       hotel.ID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Guests:        req.Guests,
		TotalPrice:    totalPrice,
		PaymentMethod: paymentMethod,
		Status:        models.BookingStatusPending,
		IsPaid:        false,
		PaymentStatus: models.PaymentStatusPending,
	}

	if err := s.Bookings.CreateIfAvailable(ctx, booking); err != nil {
		if err == bookingRepo.ErrRoomUnavailable {
			return nil, utils.ConflictError("Room is not available for the selected dates")
		}
		return nil, utils.InternalError("Failed to create booking", err)
	}

	s.dispatchConfirmation(ctx, booking, room, hotel, nights)

	return booking, nil
}

// dispatchConfirmation hands the confirmation off to the notification queue.
// Any failure is logged and swallowed; the booking stands regardless.
func (s *DefaultBookingService) dispatchConfirmation(ctx context.Context, b *models.Booking, room *models.Room, hotel *models.Hotel, nights int) {
	if s.Notifier == nil {
		return
	}
	payload := notification.BookingConfirmation{
		BookingID:    b.ID,
		UserID:       b.UserID,
		HotelName:    hotel.Name,
		HotelAddress: hotel.Address,
		RoomType:     room.RoomType,
		CheckInDate:  b.CheckInDate.Format(dayFormat),
		CheckOutDate: b.CheckOutDate.Format(dayFormat),
		Nights:       nights,
		Guests:       b.Guests,
		TotalPrice:   b.TotalPrice,
		Currency:     s.Currency,
	}
	if err := s.Notifier.EnqueueBookingConfirmation(ctx, payload); err != nil {
		utils.GetLogger().Warn("booking confirmation dispatch failed",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch bookings", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) HotelDashboard(ctx context.Context, ownerID string) (*DashboardData, error) {
	hotel, err := s.Hotels.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.InternalError("Failed to load hotel", err)
	}
	if hotel == nil {
		return nil, utils.NotFoundError("No hotel found for this user")
	}

	bookings, err := s.Bookings.ListByHotel(ctx, hotel.ID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch bookings", err)
	}

	data := &DashboardData{
		TotalBookings: len(bookings),
		Bookings:      bookings,
	}
	for _, b := range bookings {
		if b.IsPaid {
			data.TotalRevenue += b.TotalPrice
		}
	}
	return data, nil
}
