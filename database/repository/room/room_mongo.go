package roomRepo

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

// MongoRoomRepo implements RoomRepository using MongoDB.
type MongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo creates a new instance of RoomRepository using MongoDB.
func NewMongoRoomRepo() RoomRepository {
	coll := database.DB().Collection("rooms")
	repo := &MongoRoomRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create room indexes: %v\n", err)
	}
	return repo
}

func (r *MongoRoomRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "hotel_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_available", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoRoomRepo) Create(ctx context.Context, room *models.Room) error {
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, room); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (r *MongoRoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&room); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch room with id %s: %w", id, err)
	}
	return &room, nil
}

func (r *MongoRoomRepo) ListAvailable(ctx context.Context) ([]models.Room, error) {
	return r.list(ctx, bson.M{"is_available": true})
}

func (r *MongoRoomRepo) ListByHotel(ctx context.Context, hotelID string) ([]models.Room, error) {
	return r.list(ctx, bson.M{"hotel_id": hotelID})
}

func (r *MongoRoomRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	update := bson.M{"$set": bson.M{"is_available": available, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update room %s availability: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no room found with id %s", id)
	}
	return nil
}

func (r *MongoRoomRepo) list(ctx context.Context, filter bson.M) ([]models.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []models.Room
	for cursor.Next(ctx) {
		var room models.Room
		if err := cursor.Decode(&room); err != nil {
			return nil, fmt.Errorf("failed to decode room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}
