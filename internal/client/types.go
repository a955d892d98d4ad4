package client

import "time"

// User is a registered user as returned by the users service.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Note is a note as returned by the notes service.
// UpdatedAt stays nil until the note has been edited once.
type Note struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CreateUserInput is the full payload for registering a user
type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateNoteInput is the payload for creating a note
type CreateNoteInput struct {
	UserID  int64  `json:"user_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteInput carries the only fields an edit may change
type UpdateNoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
