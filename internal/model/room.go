package model

import "time"

// Room is a bookable room belonging to a RoomType.
type Room struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	RoomType    string    `json:"room_type" bson:"room_type"`
	Price       float64   `json:"price" bson:"price"`
	Capacity    int       `json:"capacity" bson:"capacity"`
	Description string    `json:"description" bson:"description"`
	Amenities   []string  `json:"amenities" bson:"amenities"`
	Images      []string  `json:"images" bson:"images"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// HasImage reports whether key is one of the room's image keys.
func (r *Room) HasImage(key string) bool {
	for _, k := range r.Images {
		if k == key {
			return true
		}
	}
	return false
}
