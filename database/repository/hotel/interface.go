package hotelRepo

import (
	"context"

	"atstay/models"
)

// HotelRepository defines data access for hotel documents.
type HotelRepository interface {
	Create(ctx context.Context, hotel *models.Hotel) error
	GetByID(ctx context.Context, id string) (*models.Hotel, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.Hotel, error)
}
