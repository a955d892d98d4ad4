package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(50) NOT NULL,
	email VARCHAR(255) NOT NULL,
	created_at DATETIME(6) NOT NULL,
	UNIQUE KEY uq_users_username (username),
	UNIQUE KEY uq_users_email (email)
)`

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// MySQLStore persists users in a MySQL table.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore creates a store on an open connection pool.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// EnsureSchema creates the users table when it does not exist
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, usersSchema); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// Insert registers a user, rejecting taken usernames and emails
func (s *MySQLStore) Insert(ctx context.Context, u *User) error {
	taken, err := s.exists(ctx, "username", u.Username)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	taken, err = s.exists(ctx, "email", u.Email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	createdAt := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, created_at) VALUES (?, ?, ?)`,
		u.Username, u.Email, createdAt,
	)
	if err != nil {
		// A concurrent insert can still win the race after the checks above.
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			if strings.Contains(myErr.Message, "email") {
				return ErrEmailTaken
			}
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user: last insert id: %w", err)
	}
	u.ID = id
	u.CreatedAt = createdAt
	return nil
}

func (s *MySQLStore) exists(ctx context.Context, column, value string) (bool, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM users WHERE %s = ?", column)
	if err := s.db.QueryRowContext(ctx, query, value).Scan(&count); err != nil {
		return false, fmt.Errorf("check %s: %w", column, err)
	}
	return count > 0, nil
}

// FindByID retrieves a user by id
func (s *MySQLStore) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return &u, nil
}

// List retrieves users ordered by id
func (s *MySQLStore) List(ctx context.Context, q ListQuery) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, email, created_at FROM users ORDER BY id LIMIT ? OFFSET ?`,
		q.Limit, q.Skip,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	result := []*User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return result, nil
}
