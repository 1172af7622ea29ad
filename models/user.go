package models

import "time"

// User is an authenticated account. Guests and hotel owners share the same
// account type; ownership is established by the hotel's owner reference.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
