package models

import "time"

// Booking status values. A booking is honored only once payment succeeds.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Payment status values as reconciled from the gateway.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Booking represents a guest's reservation of one room for a date range.
// Booking status and payment status are independent axes: status reflects
// whether the stay is honored, payment status reflects the gateway's verdict.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"user_id" json:"userId"`
	RoomID        string    `bson:"room_id" json:"roomId"`
	HotelID       string    `bson:"hotel_id" json:"hotelId"`
	CheckInDate   time.Time `bson:"check_in_date" json:"checkInDate"`
	CheckOutDate  time.Time `bson:"check_out_date" json:"checkOutDate"`
	Guests        int       `bson:"guests" json:"guests"`
	TotalPrice    float64   `bson:"total_price" json:"totalPrice"`
	PaymentMethod string    `bson:"payment_method" json:"paymentMethod"`
	Status        string    `bson:"status" json:"status"`
	IsPaid        bool      `bson:"is_paid" json:"isPaid"`
	PaymentID     string    `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	PaymentStatus string    `bson:"payment_status" json:"paymentStatus"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// Nights returns the number of nights covered by the booking, rounding any
// partial day up to a full night.
func (b Booking) Nights() int {
	return NightsBetween(b.CheckInDate, b.CheckOutDate)
}

// NightsBetween computes ceil((checkOut - checkIn) / 24h) on day-normalized dates.
func NightsBetween(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	nights := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}
