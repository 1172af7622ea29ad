package models

import "time"

// Hotel groups rooms under a single owner.
type Hotel struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Address   string    `bson:"address" json:"address"`
	Contact   string    `bson:"contact" json:"contact"`
	City      string    `bson:"city" json:"city"`
	OwnerID   string    `bson:"owner_id" json:"ownerId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
