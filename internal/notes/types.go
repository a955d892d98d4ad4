package notes

import (
	"errors"
	"time"
)

var (
	ErrNoteNotFound = errors.New("note not found")
)

// Note is a note owned by a user of the users service. The owner is not
// checked against that service.
type Note struct {
	ID        int64      `bson:"_id" json:"id"`
	UserID    int64      `bson:"user_id" json:"user_id"`
	Title     string     `bson:"title" json:"title"`
	Content   string     `bson:"content" json:"content"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at"`
}

// CreateNoteInput is the input for creating a note
type CreateNoteInput struct {
	UserID  int64  `json:"user_id" validate:"gt=0"`
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required,min=1"`
}

// UpdateNoteInput carries the fields to change; nil fields keep their value.
type UpdateNoteInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// noteFields is what a note looks like after an update is applied, checked
// with the same rules as creation.
type noteFields struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required,min=1"`
}

// ListQuery represents list parameters. UserID 0 lists every owner.
type ListQuery struct {
	UserID int64
	Skip   int
	Limit  int
}
