package roomRepo

import (
	"context"

	"atstay/models"
)

// RoomRepository defines data access for room documents.
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id string) (*models.Room, error)
	ListAvailable(ctx context.Context) ([]models.Room, error)
	ListByHotel(ctx context.Context, hotelID string) ([]models.Room, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}
