package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"atstay/database"
	"atstay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.DB().Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "hotel_id", Value: 1}}},
		{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "check_in_date", Value: 1}, {Key: "check_out_date", Value: 1}}},
		{Keys: bson.D{{Key: "payment_id", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// overlapFilter matches non-cancelled bookings on the room whose interval
// overlaps [checkIn, checkOut]. Inclusive on both ends: a check-in on the same
// calendar day as an existing check-out conflicts.
func overlapFilter(roomID string, checkIn, checkOut time.Time) bson.M {
	return bson.M{
		"room_id":        roomID,
		"status":         bson.M{"$ne": models.BookingStatusCancelled},
		"check_in_date":  bson.M{"$lte": checkOut},
		"check_out_date": bson.M{"$gte": checkIn},
	}
}

func (r *MongoBookingRepo) CountOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, overlapFilter(roomID, checkIn, checkOut))
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings for room %s: %w", roomID, err)
	}
	return count, nil
}

// CreateIfAvailable re-checks availability and inserts within one session
// transaction so two concurrent overlapping requests cannot both commit.
func (r *MongoBookingRepo) CreateIfAvailable(ctx context.Context, booking *models.Booking) error {
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		count, err := r.coll.CountDocuments(sc, overlapFilter(booking.RoomID, booking.CheckInDate, booking.CheckOutDate))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return ErrRoomUnavailable
		}
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrRoomUnavailable {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) GetByPaymentID(ctx context.Context, orderID string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"payment_id": orderID}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with payment id %s: %w", orderID, err)
	}
	return &booking, nil
}

// AttachPaymentOrder only matches bookings that have not been paid, so a
// success landing between the caller's read and this write can never be
// dragged back to pending by the order-attach.
func (r *MongoBookingRepo) AttachPaymentOrder(ctx context.Context, bookingID, orderID string) error {
	filter := bson.M{
		"id":             bookingID,
		"is_paid":        false,
		"payment_status": bson.M{"$ne": models.PaymentStatusSuccess},
	}
	update := bson.M{"$set": bson.M{
		"payment_id":     orderID,
		"payment_status": models.PaymentStatusPending,
		"updated_at":     time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to attach payment order to booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		// The caller verified the booking exists, so an unmatched filter
		// means payment succeeded mid-flight.
		return ErrBookingPaid
	}
	return nil
}

func (r *MongoBookingRepo) ApplyPaymentSuccess(ctx context.Context, bookingID string) error {
	update := bson.M{"$set": bson.M{
		"is_paid":        true,
		"payment_status": models.PaymentStatusSuccess,
		"status":         models.BookingStatusConfirmed,
		"updated_at":     time.Now(),
	}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update); err != nil {
		return fmt.Errorf("failed to mark booking %s paid: %w", bookingID, err)
	}
	return nil
}

// ApplyPaymentFailure only matches bookings that have not reached the success
// state, so a stale FAILED event never overwrites a landed success.
func (r *MongoBookingRepo) ApplyPaymentFailure(ctx context.Context, bookingID string) error {
	filter := bson.M{
		"id":             bookingID,
		"payment_status": bson.M{"$ne": models.PaymentStatusSuccess},
	}
	update := bson.M{"$set": bson.M{
		"payment_status": models.PaymentStatusFailed,
		"updated_at":     time.Now(),
	}}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark booking %s payment failed: %w", bookingID, err)
	}
	return nil
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoBookingRepo) ListByHotel(ctx context.Context, hotelID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"hotel_id": hotelID})
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
