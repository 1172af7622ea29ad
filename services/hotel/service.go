package hotel

import (
	"context"
	"strings"

	hotelRepo "atstay/database/repository/hotel"
	roomRepo "atstay/database/repository/room"
	"atstay/models"
	"atstay/services/storage"
	"atstay/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const roomImageFolder = "atstay/rooms"

// DefaultHotelService is the production HotelService implementation.
type DefaultHotelService struct {
	Hotels  hotelRepo.HotelRepository
	Rooms   roomRepo.RoomRepository
	Storage storage.StorageService
}

func (s *DefaultHotelService) RegisterHotel(ctx context.Context, ownerID string, req RegisterHotelRequest) (*models.Hotel, error) {
	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)
	contact := strings.TrimSpace(req.Contact)
	city := strings.TrimSpace(req.City)

	if name == "" || address == "" || contact == "" || city == "" {
		return nil, utils.ValidationError("All fields (name, address, contact, city) are required")
	}
	if len(name) < 2 {
		return nil, utils.ValidationError("Hotel name must be at least 2 characters")
	}
	if len(address) < 5 {
		return nil, utils.ValidationError("Address must be at least 5 characters")
	}

	existing, err := s.Hotels.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.InternalError("Failed to check existing hotel", err)
	}
	if existing != nil {
		return nil, utils.ConflictError("Hotel already registered for this user")
	}

	h := &models.Hotel{
		ID:      uuid.New().String(),
		Name:    name,
		Address: address,
		Contact: contact,
		City:    city,
		OwnerID: ownerID,
	}
	if err := s.Hotels.Create(ctx, h); err != nil {
		return nil, utils.InternalError("Failed to register hotel", err)
	}
	return h, nil
}

func (s *DefaultHotelService) CreateRoom(ctx context.Context, ownerID string, req CreateRoomRequest) (*models.Room, error) {
	if req.RoomType == "" || req.PricePerNight <= 0 {
		return nil, utils.ValidationError("roomType and a positive pricePerNight are required")
	}
	if len(req.ImagePaths) == 0 {
		return nil, utils.ValidationError("Please upload at least one image")
	}

	h, err := s.Hotels.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.InternalError("Failed to load hotel", err)
	}
	if h == nil {
		return nil, utils.NotFoundError("No hotel found for this owner")
	}

	images := make([]string, 0, len(req.ImagePaths))
	uploaded := make([]string, 0, len(req.ImagePaths))
	for _, path := range req.ImagePaths {
		res, err := s.Storage.UploadFile(ctx, path, roomImageFolder)
		if err != nil {
			utils.GetLogger().Error("room image upload failed", zap.String("path", path), zap.Error(err))
			// Best-effort removal of the images that did land, so a failed
			// room creation leaves no orphaned assets behind.
			for _, publicID := range uploaded {
				if delErr := s.Storage.DeleteFile(ctx, publicID); delErr != nil {
					utils.GetLogger().Warn("orphaned room image cleanup failed",
						zap.String("publicID", publicID), zap.Error(delErr))
				}
			}
			return nil, utils.UpstreamError("Failed to upload room image", err)
		}
		images = append(images, res.URL)
		uploaded = append(uploaded, res.PublicID)
	}

	room := &models.Room{
		ID:            uuid.New().String(),
		HotelID:       h.ID,
		RoomType:      req.RoomType,
		PricePerNight: req.PricePerNight,
		Amenities:     req.Amenities,
		Images:        images,
		IsAvailable:   true,
	}
	if err := s.Rooms.Create(ctx, room); err != nil {
		return nil, utils.InternalError("Failed to create room", err)
	}
	return room, nil
}

func (s *DefaultHotelService) ListAvailableRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.Rooms.ListAvailable(ctx)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch rooms", err)
	}
	return rooms, nil
}

func (s *DefaultHotelService) ListOwnerRooms(ctx context.Context, ownerID string) ([]models.Room, error) {
	h, err := s.Hotels.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.InternalError("Failed to load hotel", err)
	}
	if h == nil {
		return []models.Room{}, nil
	}
	rooms, err := s.Rooms.ListByHotel(ctx, h.ID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch rooms", err)
	}
	return rooms, nil
}

func (s *DefaultHotelService) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := s.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch room", err)
	}
	if room == nil {
		return nil, utils.NotFoundError("Room not found")
	}
	return room, nil
}

// ToggleRoomAvailability flips the administrative availability flag. Only the
// owning hotel's user may toggle.
func (s *DefaultHotelService) ToggleRoomAvailability(ctx context.Context, ownerID, roomID string) error {
	room, err := s.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return utils.InternalError("Failed to fetch room", err)
	}
	if room == nil {
		return utils.NotFoundError("Room not found")
	}

	h, err := s.Hotels.GetByOwner(ctx, ownerID)
	if err != nil {
		return utils.InternalError("Failed to load hotel", err)
	}
	if h == nil || h.ID != room.HotelID {
		return utils.ForbiddenError("This room doesn't belong to your hotel")
	}

	if err := s.Rooms.SetAvailability(ctx, roomID, !room.IsAvailable); err != nil {
		return utils.InternalError("Failed to update room availability", err)
	}
	return nil
}
