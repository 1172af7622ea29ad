package hotel

import (
	"context"

	"atstay/models"
)

// RegisterHotelRequest is the inbound payload for registering a hotel.
type RegisterHotelRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	City    string `json:"city"`
}

// CreateRoomRequest describes a new room; image paths point at uploaded
// temporary files which the service pushes to media storage.
type CreateRoomRequest struct {
	RoomType      string
	PricePerNight float64
	Amenities     []string
	ImagePaths    []string
}

// HotelService manages hotels and their rooms on behalf of owners.
type HotelService interface {
	RegisterHotel(ctx context.Context, ownerID string, req RegisterHotelRequest) (*models.Hotel, error)
	CreateRoom(ctx context.Context, ownerID string, req CreateRoomRequest) (*models.Room, error)
	ListAvailableRooms(ctx context.Context) ([]models.Room, error)
	ListOwnerRooms(ctx context.Context, ownerID string) ([]models.Room, error)
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)
	ToggleRoomAvailability(ctx context.Context, ownerID, roomID string) error
}
