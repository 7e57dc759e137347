package model

import "time"

// RoomType is a category of rooms (e.g. "Deluxe Suite").
// bson tags name the MongoDB document fields; json tags the API payload.
type RoomType struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
