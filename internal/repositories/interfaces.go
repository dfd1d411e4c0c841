package repositories

import (
	"context"
	"errors"

	"github.com/ayanna-kiyanna/institute-service/internal/models"
)

var ErrNotFound = errors.New("record not found")

// ===== SHARED FILTER STRUCTS =====

// UserFilters defines filters for user queries
type UserFilters struct {
	Query  string           // Search query for name or email
	Role   *models.UserRole // Filter by role
	Limit  int              // Page size
	Offset int              // Offset for pagination
}

// NoticeFilters defines filters for notice queries
type NoticeFilters struct {
	Audience  *models.NoticeAudience
	Pinned    *bool
	Limit     int
	Offset    int
	SortBy    string // "created_at", "title"
	SortOrder string // "asc", "desc"
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error

	// List and search operations
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	Search(ctx context.Context, query string, filters UserFilters) ([]*models.User, int64, error)

	// Validation and checks
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	HasRole(ctx context.Context, id string, role models.UserRole) (bool, error)
}

type NoticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	GetByID(ctx context.Context, id uint) (*models.Notice, error)
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters NoticeFilters) ([]*models.Notice, int64, error)
}

// Repository aggregates all repository interfaces
type Repository interface {
	User() UserRepository
	Notice() NoticeRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
