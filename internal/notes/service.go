package notes

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"notesboard/internal/httpapi"
)

type Service struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store:    store,
		validate: httpapi.NewValidator(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create validates and stores a new note
func (s *Service) Create(ctx context.Context, input CreateNoteInput) (*Note, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	note := &Note{
		UserID:  input.UserID,
		Title:   input.Title,
		Content: input.Content,
	}
	if err := s.store.Insert(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetByID retrieves a note by ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Note, error) {
	return s.store.FindByID(ctx, id)
}

// List retrieves notes, optionally for one owner
func (s *Service) List(ctx context.Context, q ListQuery) ([]*Note, error) {
	return s.store.List(ctx, q)
}

// Update applies a partial update of title and content. The owner and id
// of a note never change; updated_at is stamped only when a field is set.
func (s *Service) Update(ctx context.Context, id int64, input UpdateNoteInput) (*Note, error) {
	note, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title == nil && input.Content == nil {
		return note, nil
	}

	fields := noteFields{Title: note.Title, Content: note.Content}
	if input.Title != nil {
		fields.Title = *input.Title
	}
	if input.Content != nil {
		fields.Content = *input.Content
	}
	if err := s.validate.Struct(fields); err != nil {
		return nil, err
	}

	now := s.now()
	note.Title = fields.Title
	note.Content = fields.Content
	note.UpdatedAt = &now

	if err := s.store.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes a note by ID
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
