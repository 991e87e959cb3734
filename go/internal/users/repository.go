package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/airwavehq/airwave/go/internal/models"
	"github.com/airwavehq/airwave/go/internal/users/db"
)

// ErrUserNotFound is returned when a user id or username is unknown.
var ErrUserNotFound = errors.New("user not found")

// Querier defines what the repository needs from the database layer
type Querier interface {
	EnsureUser(ctx context.Context, arg db.EnsureUserParams) (db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (db.User, error)
	GetUserByUsername(ctx context.Context, username string) (db.User, error)
}

// Repository implements user data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new users repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// EnsureUser creates the user if the username is unknown and returns the
// stored record either way.
func (r *Repository) EnsureUser(ctx context.Context, username, email string) (*models.User, error) {
	user, err := r.queries.EnsureUser(ctx, db.EnsureUserParams{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}
	return r.dbUserToModel(user), nil
}

// GetUser retrieves a user by ID
func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := r.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.dbUserToModel(user), nil
}

// GetUserByUsername retrieves a user by username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := r.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return r.dbUserToModel(user), nil
}

// dbUserToModel converts a database user to domain model
func (r *Repository) dbUserToModel(dbUser db.User) *models.User {
	return &models.User{
		ID:        dbUser.ID,
		Username:  dbUser.Username,
		Email:     dbUser.Email,
		CreatedAt: dbUser.CreatedAt,
	}
}
