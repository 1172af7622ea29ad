package models

import "time"

// Room is a bookable unit owned by a hotel.
type Room struct {
	ID            string    `bson:"id" json:"id"`
	HotelID       string    `bson:"hotel_id" json:"hotelId"`
	RoomType      string    `bson:"room_type" json:"roomType"`
	PricePerNight float64   `bson:"price_per_night" json:"pricePerNight"`
	Amenities     []string  `bson:"amenities" json:"amenities"`
	Images        []string  `bson:"images" json:"images"`
	IsAvailable   bool      `bson:"is_available" json:"isAvailable"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}
