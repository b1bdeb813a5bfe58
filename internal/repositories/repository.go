package repositories

import "context"

// Repository aggregates the per-domain repository interfaces.
type Repository interface {
	Category() CategoryRepository
	Genre() GenreRepository
	Title() TitleRepository
	Review() ReviewRepository
	Comment() CommentRepository
	User() UserRepository

	// WithTransaction runs fn against a Repository bound to a single
	// database transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
