package notes

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is a dream note as stored in the collection
type Note struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Mood        string             `bson:"mood" json:"mood"` // free text, no enumerated set
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateNoteInput is the payload for creating a note
type CreateNoteInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Mood        string `json:"mood" validate:"required"`
}

// CreateNoteResult is returned after a successful insert
type CreateNoteResult struct {
	ID      primitive.ObjectID `json:"id"`
	Message string             `json:"message"`
}
