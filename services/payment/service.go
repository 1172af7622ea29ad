package payment

import (
	"context"
	"fmt"
	"time"

	bookingRepo "atstay/database/repository/booking"
	userRepo "atstay/database/repository/user"
	"atstay/models"
	"atstay/utils"
)

// Placeholder used when the account has no phone on file; the gateway
// requires a 10-digit customer phone.
const fallbackCustomerPhone = "9999999999"

// DefaultPaymentService is the production PaymentService implementation.
type DefaultPaymentService struct {
	Bookings    bookingRepo.BookingRepository
	Users       userRepo.UserRepository
	Gateway     Gateway
	Currency    string
	FrontendURL string
	BackendURL  string

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewDefaultPaymentService(
	bookings bookingRepo.BookingRepository,
	users userRepo.UserRepository,
	gateway Gateway,
	currency, frontendURL, backendURL string,
) *DefaultPaymentService {
	return &DefaultPaymentService{
		Bookings:    bookings,
		Users:       users,
		Gateway:     gateway,
		Currency:    currency,
		FrontendURL: frontendURL,
		BackendURL:  backendURL,
		now:         time.Now,
	}
}

// newOrderID derives a per-attempt unique gateway order id. A booking may
// accumulate several order ids across retries; only the most recently stored
// one is authoritative for reconciliation lookups.
func (s *DefaultPaymentService) newOrderID(bookingID string) string {
	return fmt.Sprintf("ORDER_%s_%d", bookingID, s.now().UnixMilli())
}

func (s *DefaultPaymentService) CreateOrder(ctx context.Context, bookingID, userID string) (*models.PaymentOrder, error) {
	if bookingID == "" {
		return nil, utils.ValidationError("Booking ID is required")
	}

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.InternalError("Failed to load booking", err)
	}
	if booking == nil {
		return nil, utils.NotFoundError("Booking not found")
	}
	if booking.UserID != userID {
		return nil, utils.ForbiddenError("This booking doesn't belong to you")
	}
	if booking.IsPaid {
		return nil, utils.ConflictError("Booking is already paid")
	}

	customer := CustomerDetails{
		CustomerID:    truncate(booking.UserID, 50),
		CustomerName:  "Guest",
		CustomerPhone: fallbackCustomerPhone,
	}
	user, err := s.Users.GetByID(ctx, booking.UserID)
	if err == nil && user != nil {
		if user.Username != "" {
			customer.CustomerName = truncate(user.Username, 50)
		}
		customer.CustomerEmail = user.Email
		if user.Phone != "" {
			customer.CustomerPhone = user.Phone
		}
	}

	orderID := s.newOrderID(booking.ID)
	req := OrderRequest{
		OrderID:         orderID,
		OrderAmount:     booking.TotalPrice,
		OrderCurrency:   s.Currency,
		OrderNote:       truncate(fmt.Sprintf("Booking %s", booking.ID), 200),
		CustomerDetails: customer,
		OrderMeta: OrderMeta{
			ReturnURL:      fmt.Sprintf("%s/payment/callback?bookingId=%s", s.FrontendURL, booking.ID),
			NotifyURL:      fmt.Sprintf("%s/api/payments/webhook", s.BackendURL),
			PaymentMethods: "cc,dc,upi,nb",
		},
	}

	resp, err := s.Gateway.CreateOrder(ctx, req)
	if err != nil {
		// No booking state has been touched yet; the booking stays payable.
		return nil, err
	}

	if err := s.Bookings.AttachPaymentOrder(ctx, booking.ID, orderID); err != nil {
		if err == bookingRepo.ErrBookingPaid {
			// Payment for an earlier order landed while this order was being
			// created; the success state stands and the new order id is dropped.
			return nil, utils.ConflictError("Booking is already paid")
		}
		return nil, utils.InternalError("Failed to store payment order on booking", err)
	}

	return &models.PaymentOrder{
		OrderID:          orderID,
		PaymentSessionID: resp.PaymentSessionID,
		CfOrderID:        resp.CfOrderID,
		OrderAmount:      booking.TotalPrice,
		Currency:         s.Currency,
		PaymentLink:      resp.PaymentLink,
	}, nil
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
