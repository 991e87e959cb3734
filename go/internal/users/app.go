package users

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/airwavehq/airwave/go/internal/models"
)

// The account every session belongs to until real authentication is wired
// in front of this service.
const (
	defaultUsername = "demo"
	defaultEmail    = "demo@airwave.local"
)

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	EnsureUser(ctx context.Context, username, email string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// App handles user business logic. Its main job here is resolving the owner
// account for new playback sessions; authentication itself is an external
// collaborator.
type App struct {
	repo UsersRepository

	mu           sync.Mutex
	defaultOwner uuid.UUID
}

// NewApp creates a new users App
func NewApp(repo UsersRepository) *App {
	return &App{repo: repo}
}

// GetUser retrieves a user by ID
func (a *App) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// DefaultOwner returns the id of the fallback account, creating it on first
// use. The id is cached; the ensure round-trip only happens once per
// process.
func (a *App) DefaultOwner(ctx context.Context) (uuid.UUID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.defaultOwner != uuid.Nil {
		return a.defaultOwner, nil
	}

	user, err := a.repo.EnsureUser(ctx, defaultUsername, defaultEmail)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to ensure default owner: %w", err)
	}
	a.defaultOwner = user.ID
	return user.ID, nil
}
