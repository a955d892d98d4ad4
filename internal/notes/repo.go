package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists notes.
type Store interface {
	Insert(ctx context.Context, n *Note) error
	FindByID(ctx context.Context, id int64) (*Note, error)
	List(ctx context.Context, q ListQuery) ([]*Note, error)
	// Update writes the title, content and updated_at of n.
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, id int64) error
}

// Repo stores notes in MongoDB. Ids are integers drawn from a counter
// document so they stay stable in URLs.
type Repo struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{
		coll:     db.Collection("notes"),
		counters: db.Collection("counters"),
	}
}

// EnsureIndexes creates necessary indexes for the notes collection
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "title", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "_id", Value: 1},
			},
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func (r *Repo) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "notes"},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next note id: %w", err)
	}
	return counter.Seq, nil
}

// Insert creates a new note
func (r *Repo) Insert(ctx context.Context, n *Note) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	n.ID = id
	n.CreatedAt = time.Now().UTC()
	n.UpdatedAt = nil

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// FindByID retrieves a note by its ID
func (r *Repo) FindByID(ctx context.Context, id int64) (*Note, error) {
	var note Note
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find note %d: %w", id, err)
	}
	return &note, nil
}

// List retrieves notes with an optional owner filter, oldest first
func (r *Repo) List(ctx context.Context, q ListQuery) ([]*Note, error) {
	filter := bson.M{}
	if q.UserID > 0 {
		filter["user_id"] = q.UserID
	}

	opts := options.Find().
		SetSkip(int64(q.Skip)).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := []*Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

// Update saves the editable fields of a note
func (r *Repo) Update(ctx context.Context, n *Note) error {
	set := bson.M{
		"title":      n.Title,
		"content":    n.Content,
		"updated_at": n.UpdatedAt,
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": n.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update note %d: %w", n.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// Delete removes a note by ID
func (r *Repo) Delete(ctx context.Context, id int64) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}
