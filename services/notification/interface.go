package notification

import "context"

// BookingConfirmation carries everything the confirmation message needs, so
// the worker never has to re-read booking state.
type BookingConfirmation struct {
	BookingID    string  `json:"bookingId"`
	UserID       string  `json:"userId"`
	HotelName    string  `json:"hotelName"`
	HotelAddress string  `json:"hotelAddress"`
	RoomType     string  `json:"roomType"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	Nights       int     `json:"nights"`
	Guests       int     `json:"guests"`
	TotalPrice   float64 `json:"totalPrice"`
	Currency     string  `json:"currency"`
}

// Dispatcher hands a confirmation off for asynchronous delivery. Callers treat
// dispatch as best-effort; a dispatch failure never fails the booking.
type Dispatcher interface {
	EnqueueBookingConfirmation(ctx context.Context, payload BookingConfirmation) error
}

// NotificationService delivers notifications to users.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, payload BookingConfirmation) error
}
