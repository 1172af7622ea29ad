package notification

import (
	"context"
	"fmt"

	userRepo "atstay/database/repository/user"
	"atstay/utils"

	"firebase.google.com/go/v4/messaging"
)

// DefaultNotificationService delivers booking confirmations as FCM pushes.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
}

func NewDefaultNotificationService(users userRepo.UserRepository) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &DefaultNotificationService{Users: users}, nil
}

// SendBookingConfirmation looks up the user's FCM token and sends a push with
// the booking details.
func (s *DefaultNotificationService) SendBookingConfirmation(ctx context.Context, payload BookingConfirmation) error {
	u, err := s.Users.GetByID(ctx, payload.UserID)
	if err != nil {
		return fmt.Errorf("SendBookingConfirmation: could not find user %s: %w", payload.UserID, err)
	}
	if u == nil || u.FCMToken == "" {
		return fmt.Errorf("SendBookingConfirmation: user %s has no FCM token", payload.UserID)
	}

	body := fmt.Sprintf("%s, %s  |  %s to %s  |  %d guest(s)  |  %s %.2f",
		payload.HotelName, payload.HotelAddress,
		payload.CheckInDate, payload.CheckOutDate,
		payload.Guests, payload.Currency, payload.TotalPrice)

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: "Your AtStay booking is in!",
			Body:  body,
		},
		Data: map[string]string{
			"type":      "booking_confirmation",
			"bookingId": payload.BookingID,
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendBookingConfirmation: failed to send FCM message: %w", err)
	}
	return nil
}
