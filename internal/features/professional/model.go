package professional

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Professional is the public profile of a user with the professional role.
// UserID is the account the profile belongs to; bookings and reviews
// reference the professional by that user id.
type Professional struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	DisplayName string             `bson:"display_name" json:"display_name"`
	Profession  string             `bson:"profession" json:"profession"`
	Bio         string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	HourlyRate  float64            `bson:"hourly_rate,omitempty" json:"hourly_rate,omitempty"`
	Rating      float64            `bson:"rating" json:"rating"`
	ReviewCount int64              `bson:"review_count" json:"review_count"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
