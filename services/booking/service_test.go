package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "atstay/database/repository/booking"
	"atstay/models"
	"atstay/services/notification"
	"atstay/utils"
)

// fakeBookingRepo keeps bookings in memory and applies the same overlap rule
// as the Mongo repository: inclusive interval comparison, cancelled excluded.
type fakeBookingRepo struct {
	bookings  []models.Booking
	countErr  error
	createErr error
	created   []*models.Booking
}

func (f *fakeBookingRepo) CountOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for _, b := range f.bookings {
		if b.RoomID != roomID || b.Status == models.BookingStatusCancelled {
			continue
		}
		if !b.CheckInDate.After(checkOut) && !b.CheckOutDate.Before(checkIn) {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) CreateIfAvailable(ctx context.Context, booking *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	n, err := f.CountOverlapping(ctx, booking.RoomID, booking.CheckInDate, booking.CheckOutDate)
	if err != nil {
		return err
	}
	if n > 0 {
		return bookingRepo.ErrRoomUnavailable
	}
	f.bookings = append(f.bookings, *booking)
	f.created = append(f.created, booking)
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetByPaymentID(ctx context.Context, orderID string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].PaymentID == orderID {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) AttachPaymentOrder(ctx context.Context, bookingID, orderID string) error {
	return nil
}

func (f *fakeBookingRepo) ApplyPaymentSuccess(ctx context.Context, bookingID string) error {
	return nil
}

func (f *fakeBookingRepo) ApplyPaymentFailure(ctx context.Context, bookingID string) error {
	return nil
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByHotel(ctx context.Context, hotelID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.HotelID == hotelID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeRoomRepo struct {
	rooms map[string]*models.Room
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *models.Room) error { return nil }

func (f *fakeRoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	return f.rooms[id], nil
}

func (f *fakeRoomRepo) ListAvailable(ctx context.Context) ([]models.Room, error) { return nil, nil }

func (f *fakeRoomRepo) ListByHotel(ctx context.Context, hotelID string) ([]models.Room, error) {
	return nil, nil
}

func (f *fakeRoomRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	return nil
}

type fakeHotelRepo struct {
	hotels map[string]*models.Hotel
}

func (f *fakeHotelRepo) Create(ctx context.Context, hotel *models.Hotel) error { return nil }

func (f *fakeHotelRepo) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	return f.hotels[id], nil
}

func (f *fakeHotelRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Hotel, error) {
	for _, h := range f.hotels {
		if h.OwnerID == ownerID {
			return h, nil
		}
	}
	return nil, nil
}

type fakeDispatcher struct {
	payloads []notification.BookingConfirmation
	err      error
}

func (f *fakeDispatcher) EnqueueBookingConfirmation(ctx context.Context, payload notification.BookingConfirmation) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

// futureDay returns the date offset days from today as a request string.
func futureDay(offset int) string {
	return NormalizeDay(time.Now().UTC()).AddDate(0, 0, offset).Format(dayFormat)
}

func futureDayTime(offset int) time.Time {
	return NormalizeDay(time.Now().UTC()).AddDate(0, 0, offset)
}

func newTestService(bookings *fakeBookingRepo) (*DefaultBookingService, *fakeDispatcher) {
	dispatcher := &fakeDispatcher{}
	svc := &DefaultBookingService{
		Bookings: bookings,
		Rooms: &fakeRoomRepo{rooms: map[string]*models.Room{
			"room-1": {ID: "room-1", HotelID: "hotel-1", RoomType: "Deluxe", PricePerNight: 2500, IsAvailable: true},
		}},
		Hotels: &fakeHotelRepo{hotels: map[string]*models.Hotel{
			"hotel-1": {ID: "hotel-1", Name: "Seaside Inn", Address: "12 Harbour Road", OwnerID: "owner-1"},
		}},
		Notifier: dispatcher,
		Currency: "INR",
	}
	return svc, dispatcher
}

func TestIsAvailableOverlapRules(t *testing.T) {
	// Existing stay occupies days +10 through +13.
	existing := models.Booking{
		ID:           "b-existing",
		RoomID:       "room-1",
		CheckInDate:  futureDayTime(10),
		CheckOutDate: futureDayTime(13),
		Status:       models.BookingStatusPending,
	}

	tests := []struct {
		name      string
		checkIn   int
		checkOut  int
		available bool
	}{
		{"fully before", 5, 8, true},
		{"fully after", 15, 18, true},
		{"identical interval", 10, 13, false},
		{"contained within", 11, 12, false},
		{"spanning whole stay", 8, 16, false},
		{"check-in on existing check-out day", 13, 15, false},
		{"check-out on existing check-in day", 8, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(&fakeBookingRepo{bookings: []models.Booking{existing}})
			available, err := svc.IsAvailable(context.Background(), "room-1", futureDayTime(tt.checkIn), futureDayTime(tt.checkOut))
			require.NoError(t, err)
			assert.Equal(t, tt.available, available)
		})
	}
}

func TestIsAvailableIgnoresCancelled(t *testing.T) {
	cancelled := models.Booking{
		ID:           "b-cancelled",
		RoomID:       "room-1",
		CheckInDate:  futureDayTime(10),
		CheckOutDate: futureDayTime(13),
		Status:       models.BookingStatusCancelled,
	}
	svc, _ := newTestService(&fakeBookingRepo{bookings: []models.Booking{cancelled}})

	available, err := svc.IsAvailable(context.Background(), "room-1", futureDayTime(10), futureDayTime(13))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsAvailablePropagatesStorageError(t *testing.T) {
	svc, _ := newTestService(&fakeBookingRepo{countErr: fmt.Errorf("connection reset")})

	available, err := svc.IsAvailable(context.Background(), "room-1", futureDayTime(10), futureDayTime(13))
	require.Error(t, err)
	assert.False(t, available)
	assert.Equal(t, utils.ErrCodeInternal, utils.ErrorCode(err))
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc, dispatcher := newTestService(repo)

	booking, err := svc.CreateBooking(context.Background(), "user-1", CreateBookingRequest{
		RoomID:       "room-1",
		CheckInDate:  futureDay(10),
		CheckOutDate: futureDay(13),
		Guests:       2,
	})
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "hotel-1", booking.HotelID)
	assert.Equal(t, 7500.0, booking.TotalPrice) // 3 nights at 2500
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
	assert.False(t, booking.IsPaid)
	assert.Equal(t, "Pay At Hotel", booking.PaymentMethod)

	require.Len(t, repo.created, 1)
	require.Len(t, dispatcher.payloads, 1)
	assert.Equal(t, booking.ID, dispatcher.payloads[0].BookingID)
	assert.Equal(t, 3, dispatcher.payloads[0].Nights)
	assert.Equal(t, "Seaside Inn", dispatcher.payloads[0].HotelName)
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateBookingRequest
	}{
		{"missing room", CreateBookingRequest{CheckInDate: futureDay(10), CheckOutDate: futureDay(12), Guests: 2}},
		{"missing dates", CreateBookingRequest{RoomID: "room-1", Guests: 2}},
		{"zero guests", CreateBookingRequest{RoomID: "room-1", CheckInDate: futureDay(10), CheckOutDate: futureDay(12)}},
		{"too many guests", CreateBookingRequest{RoomID: "room-1", CheckInDate: futureDay(10), CheckOutDate: futureDay(12), Guests: 11}},
		{"unparseable date", CreateBookingRequest{RoomID: "room-1", CheckInDate: "12/10/2026", CheckOutDate: futureDay(12), Guests: 2}},
		{"check-in in the past", CreateBookingRequest{RoomID: "room-1", CheckInDate: futureDay(-2), CheckOutDate: futureDay(2), Guests: 2}},
		{"check-out equals check-in", CreateBookingRequest{RoomID: "room-1", CheckInDate: futureDay(10), CheckOutDate: futureDay(10), Guests: 2}},
		{"check-out before check-in", CreateBookingRequest{RoomID: "room-1", CheckInDate: futureDay(12), CheckOutDate: futureDay(10), Guests: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(&fakeBookingRepo{})
			booking, err := svc.CreateBooking(context.Background(), "user-1", tt.req)
			require.Error(t, err)
			assert.Nil(t, booking)
			assert.Equal(t, utils.ErrCodeValidation, utils.ErrorCode(err))
		})
	}
}

func TestCreateBookingRequiresPrincipal(t *testing.T) {
	svc, _ := newTestService(&fakeBookingRepo{})

	_, err := svc.CreateBooking(context.Background(), "", CreateBookingRequest{
		RoomID: "room-1", CheckInDate: futureDay(10), CheckOutDate: futureDay(12), Guests: 2,
	})
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeForbidden, utils.ErrorCode(err))
}

func TestCreateBookingRoomNotFound(t *testing.T) {
	svc, _ := newTestService(&fakeBookingRepo{})

	_, err := svc.CreateBooking(context.Background(), "user-1", CreateBookingRequest{
		RoomID: "no-such-room", CheckInDate: futureDay(10), CheckOutDate: futureDay(12), Guests: 2,
	})
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeNotFound, utils.ErrorCode(err))
}

func TestCreateBookingRoomMarkedUnavailable(t *testing.T) {
	svc, _ := newTestService(&fakeBookingRepo{})
	svc.Rooms = &fakeRoomRepo{rooms: map[string]*models.Room{
		"room-1": {ID: "room-1", HotelID: "hotel-1", PricePerNight: 2500, IsAvailable: false},
	}}

	_, err := svc.CreateBooking(context.Background(), "user-1", CreateBookingRequest{
		RoomID: "room-1", CheckInDate: futureDay(10), CheckOutDate: futureDay(12), Guests: 2,
	})
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeConflict, utils.ErrorCode(err))
}

func TestCreateBookingDateConflict(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []models.Booking{{
		ID:           "b-existing",
		RoomID:       "room-1",
		CheckInDate:  futureDayTime(10),
		CheckOutDate: futureDayTime(13),
		Status:       models.BookingStatusConfirmed,
	}}}
	svc, dispatcher := newTestService(repo)

	_, err := svc.CreateBooking(context.Background(), "user-1", CreateBookingRequest{
		RoomID: "room-1", CheckInDate: futureDay(12), CheckOutDate: futureDay(14), Guests: 2,
	})
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeConflict, utils.ErrorCode(err))
	assert.Empty(t, dispatcher.payloads)
}

func TestCreateBookingInsertTimeConflict(t *testing.T) {
	// The first availability check passes but a competing booking lands
	// before the insert. The transactional create reports the conflict.
	repo := &fakeBookingRepo{createErr: bookingRepo.ErrRoomUnavailable}
	svc, dispatcher := newTestService(repo)

	_, err := svc.CreateBooking(context.Background(), "user-1", CreateBookingRequest{
		RoomID: "room-1", CheckInDate: futureDay(10), CheckOutDate: futureDay(12), Guests: 2,
	})
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeConflict, utils.ErrorCode(err))
	assert.Empty(t, dispatcher.payloads)
}

func TestCreateBookingSurvivesDispatchFailure(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc, dispatcher := newTestService(repo)
	dispatcher.err = fmt.Errorf("queue unavailable")

	booking, err := svc.CreateBooking(context.Background(), "user-1", CreateBookingRequest{
		RoomID: "room-1", CheckInDate: futureDay(10), CheckOutDate: futureDay(12), Guests: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, booking)
	require.Len(t, repo.created, 1)
}

func TestHotelDashboardRevenueCountsOnlyPaid(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []models.Booking{
		{ID: "b1", HotelID: "hotel-1", TotalPrice: 5000, IsPaid: true, Status: models.BookingStatusConfirmed},
		{ID: "b2", HotelID: "hotel-1", TotalPrice: 3000, IsPaid: false, Status: models.BookingStatusPending},
		{ID: "b3", HotelID: "hotel-1", TotalPrice: 2000, IsPaid: true, Status: models.BookingStatusConfirmed},
	}}
	svc, _ := newTestService(repo)

	data, err := svc.HotelDashboard(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 3, data.TotalBookings)
	assert.Equal(t, 7000.0, data.TotalRevenue)
}

func TestHotelDashboardNoHotel(t *testing.T) {
	svc, _ := newTestService(&fakeBookingRepo{})

	_, err := svc.HotelDashboard(context.Background(), "owner-without-hotel")
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeNotFound, utils.ErrorCode(err))
}
