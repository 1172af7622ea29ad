package hotel

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atstay/models"
	"atstay/services/storage"
	"atstay/utils"
)

type fakeHotelStore struct {
	hotels map[string]*models.Hotel
}

func (f *fakeHotelStore) Create(ctx context.Context, h *models.Hotel) error {
	f.hotels[h.ID] = h
	return nil
}

func (f *fakeHotelStore) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	return f.hotels[id], nil
}

func (f *fakeHotelStore) GetByOwner(ctx context.Context, ownerID string) (*models.Hotel, error) {
	for _, h := range f.hotels {
		if h.OwnerID == ownerID {
			return h, nil
		}
	}
	return nil, nil
}

type fakeRoomStore struct {
	rooms map[string]*models.Room
}

func (f *fakeRoomStore) Create(ctx context.Context, room *models.Room) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomStore) GetByID(ctx context.Context, id string) (*models.Room, error) {
	return f.rooms[id], nil
}

func (f *fakeRoomStore) ListAvailable(ctx context.Context) ([]models.Room, error) {
	var out []models.Room
	for _, r := range f.rooms {
		if r.IsAvailable {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoomStore) ListByHotel(ctx context.Context, hotelID string) ([]models.Room, error) {
	var out []models.Room
	for _, r := range f.rooms {
		if r.HotelID == hotelID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoomStore) SetAvailability(ctx context.Context, id string, available bool) error {
	if r, ok := f.rooms[id]; ok {
		r.IsAvailable = available
	}
	return nil
}

// fakeStorage uploads successfully until failAfter uploads have landed.
type fakeStorage struct {
	failAfter int

	uploads int
	deleted []string
}

func (f *fakeStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (*storage.UploadResult, error) {
	if f.failAfter > 0 && f.uploads >= f.failAfter {
		return nil, fmt.Errorf("upstream rejected upload")
	}
	f.uploads++
	id := fmt.Sprintf("%s/img-%d", destFolder, f.uploads)
	return &storage.UploadResult{URL: "https://cdn.example.com/" + id, PublicID: id}, nil
}

func (f *fakeStorage) DeleteFile(ctx context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func newTestHotelService(st storage.StorageService) *DefaultHotelService {
	return &DefaultHotelService{
		Hotels: &fakeHotelStore{hotels: map[string]*models.Hotel{
			"hotel-1": {ID: "hotel-1", Name: "Seaside Inn", Address: "12 Harbour Road", OwnerID: "owner-1"},
		}},
		Rooms:   &fakeRoomStore{rooms: map[string]*models.Room{}},
		Storage: st,
	}
}

func TestRegisterHotelValidation(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterHotelRequest
	}{
		{"missing fields", RegisterHotelRequest{Name: "Inn"}},
		{"short name", RegisterHotelRequest{Name: "A", Address: "12 Harbour Road", Contact: "555", City: "Goa"}},
		{"short address", RegisterHotelRequest{Name: "Inn", Address: "12", Contact: "555", City: "Goa"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestHotelService(&fakeStorage{})
			_, err := svc.RegisterHotel(context.Background(), "owner-2", tt.req)
			require.Error(t, err)
			assert.Equal(t, utils.ErrCodeValidation, utils.ErrorCode(err))
		})
	}
}

func TestRegisterHotelOnePerOwner(t *testing.T) {
	svc := newTestHotelService(&fakeStorage{})

	_, err := svc.RegisterHotel(context.Background(), "owner-1", RegisterHotelRequest{
		Name: "Second Inn", Address: "99 Hill Street", Contact: "555", City: "Goa",
	})
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeConflict, utils.ErrorCode(err))
}

func TestCreateRoomUploadsImages(t *testing.T) {
	st := &fakeStorage{}
	svc := newTestHotelService(st)

	room, err := svc.CreateRoom(context.Background(), "owner-1", CreateRoomRequest{
		RoomType:      "Deluxe",
		PricePerNight: 2500,
		ImagePaths:    []string{"/tmp/a.jpg", "/tmp/b.jpg"},
	})
	require.NoError(t, err)
	require.NotNil(t, room)

	assert.Equal(t, "hotel-1", room.HotelID)
	assert.True(t, room.IsAvailable)
	require.Len(t, room.Images, 2)
	assert.Contains(t, room.Images[0], "https://cdn.example.com/")
	assert.Empty(t, st.deleted)
}

func TestCreateRoomCleansUpAfterFailedUpload(t *testing.T) {
	// The third upload fails; the two that landed get removed again.
	st := &fakeStorage{failAfter: 2}
	svc := newTestHotelService(st)

	_, err := svc.CreateRoom(context.Background(), "owner-1", CreateRoomRequest{
		RoomType:      "Deluxe",
		PricePerNight: 2500,
		ImagePaths:    []string{"/tmp/a.jpg", "/tmp/b.jpg", "/tmp/c.jpg"},
	})
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeUpstream, utils.ErrorCode(err))
	assert.Len(t, st.deleted, 2)
}

func TestCreateRoomRequiresHotel(t *testing.T) {
	svc := newTestHotelService(&fakeStorage{})

	_, err := svc.CreateRoom(context.Background(), "owner-without-hotel", CreateRoomRequest{
		RoomType:      "Deluxe",
		PricePerNight: 2500,
		ImagePaths:    []string{"/tmp/a.jpg"},
	})
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeNotFound, utils.ErrorCode(err))
}

func TestToggleRoomAvailabilityOwnership(t *testing.T) {
	svc := newTestHotelService(&fakeStorage{})
	rooms := svc.Rooms.(*fakeRoomStore)
	rooms.rooms["room-1"] = &models.Room{ID: "room-1", HotelID: "hotel-1", IsAvailable: true}

	err := svc.ToggleRoomAvailability(context.Background(), "someone-else", "room-1")
	require.Error(t, err)
	assert.Equal(t, utils.ErrCodeForbidden, utils.ErrorCode(err))

	require.NoError(t, svc.ToggleRoomAvailability(context.Background(), "owner-1", "room-1"))
	assert.False(t, rooms.rooms["room-1"].IsAvailable)
}
