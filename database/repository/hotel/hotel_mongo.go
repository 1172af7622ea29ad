package hotelRepo

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

// MongoHotelRepo implements HotelRepository using MongoDB.
type MongoHotelRepo struct {
	coll *mongo.Collection
}

// NewMongoHotelRepo creates a new instance of HotelRepository using MongoDB.
func NewMongoHotelRepo() HotelRepository {
	coll := database.DB().Collection("hotels")
	repo := &MongoHotelRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create hotel indexes: %v\n", err)
	}
	return repo
}

func (r *MongoHotelRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoHotelRepo) Create(ctx context.Context, hotel *models.Hotel) error {
	now := time.Now()
	hotel.CreatedAt = now
	hotel.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, hotel); err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (r *MongoHotelRepo) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoHotelRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Hotel, error) {
	return r.findOne(ctx, bson.M{"owner_id": ownerID})
}

func (r *MongoHotelRepo) findOne(ctx context.Context, filter bson.M) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := r.coll.FindOne(ctx, filter).Decode(&hotel); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch hotel: %w", err)
	}
	return &hotel, nil
}
