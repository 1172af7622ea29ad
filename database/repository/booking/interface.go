package bookingRepo

import (
	"context"
	"errors"
	"time"

	"atstay/models"
)

// ErrRoomUnavailable is returned by CreateIfAvailable when a conflicting
// booking exists for the requested interval at insert time.
var ErrRoomUnavailable = errors.New("room is not available for the selected dates")

// ErrBookingPaid is returned by AttachPaymentOrder when the booking reached
// the paid state before the new order id could be stored.
var ErrBookingPaid = errors.New("booking is already paid")

// BookingRepository defines data access for booking documents.
type BookingRepository interface {
	// CountOverlapping counts non-cancelled bookings on the room whose
	// [checkIn, checkOut] interval overlaps the requested one.
	CountOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) (int64, error)

	// CreateIfAvailable re-runs the overlap check and inserts the booking in a
	// single transaction, returning ErrRoomUnavailable on conflict.
	CreateIfAvailable(ctx context.Context, booking *models.Booking) error

	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// GetByPaymentID looks a booking up by its currently-stored gateway order id.
	GetByPaymentID(ctx context.Context, orderID string) (*models.Booking, error)

	// AttachPaymentOrder stores a freshly created gateway order id on the
	// booking and resets its payment status to pending. It refuses to touch a
	// booking that has already been paid, returning ErrBookingPaid. Callers
	// must have verified the booking exists.
	AttachPaymentOrder(ctx context.Context, bookingID, orderID string) error

	// ApplyPaymentSuccess marks the booking paid and confirmed. Idempotent.
	ApplyPaymentSuccess(ctx context.Context, bookingID string) error

	// ApplyPaymentFailure marks the payment failed unless the booking has
	// already reached the success state (one-way latch).
	ApplyPaymentFailure(ctx context.Context, bookingID string) error

	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListByHotel(ctx context.Context, hotelID string) ([]models.Booking, error)
}
