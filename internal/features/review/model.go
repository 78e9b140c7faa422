package review

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CommentMaxLen = 1000

type Review struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingID      primitive.ObjectID `bson:"booking_id" json:"booking_id"`
	CustomerID     primitive.ObjectID `bson:"customer_id" json:"customer_id"`
	ProfessionalID primitive.ObjectID `bson:"professional_id" json:"professional_id"`
	Rating         int                `bson:"rating" json:"rating"`
	Comment        string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
