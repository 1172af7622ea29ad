package handlers

import (
	userRepo "atstay/database/repository/user"
)

// HandlerBundle gathers the handlers and shared dependencies route
// registration needs.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Users    *UserHandler
	Hotels   *HotelHandler
	Rooms    *RoomHandler
	Bookings *BookingHandler
	Payments *PaymentHandler
}
