package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/critiq-labs/review-service/internal/cache"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/utils"
)

// RepositoryConfig carries the external dependencies of the postgres
// repository. RedisClient may be nil, in which case caching is skipped.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
	Logger      utils.Logger
}

// PostgresRepository implements repositories.Repository on top of GORM.
type PostgresRepository struct {
	db     *gorm.DB
	caches *cache.CacheManager
	logger utils.Logger

	category *categoryRepository
	genre    *genreRepository
	title    *titleRepository
	review   *reviewRepository
	comment  *commentRepository
	user     *userRepository
}

func NewPostgresRepository(cfg RepositoryConfig) *PostgresRepository {
	caches := cache.NewCacheManager(cfg.RedisClient)
	return newPostgresRepository(cfg.DB, caches, cfg.Logger)
}

func newPostgresRepository(db *gorm.DB, caches *cache.CacheManager, logger utils.Logger) *PostgresRepository {
	r := &PostgresRepository{db: db, caches: caches, logger: logger}
	r.category = &categoryRepository{repo: r}
	r.genre = &genreRepository{repo: r}
	r.title = &titleRepository{repo: r}
	r.review = &reviewRepository{repo: r}
	r.comment = &commentRepository{repo: r}
	r.user = &userRepository{repo: r}
	return r
}

func (r *PostgresRepository) Category() repositories.CategoryRepository { return r.category }
func (r *PostgresRepository) Genre() repositories.GenreRepository       { return r.genre }
func (r *PostgresRepository) Title() repositories.TitleRepository     { return r.title }
func (r *PostgresRepository) Review() repositories.ReviewRepository   { return r.review }
func (r *PostgresRepository) Comment() repositories.CommentRepository { return r.comment }
func (r *PostgresRepository) User() repositories.UserRepository       { return r.user }

func (r *PostgresRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newPostgresRepository(tx, r.caches, r.logger))
	})
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgresRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// Manager wires the repository into the service lifecycle.
type Manager struct {
	config RepositoryConfig
	repo   *PostgresRepository
}

func NewManager(cfg RepositoryConfig) *Manager {
	return &Manager{config: cfg}
}

func (m *Manager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}
	m.repo = NewPostgresRepository(m.config)
	return nil
}

func (m *Manager) GetRepository() repositories.Repository { return m.repo }

func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *Manager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
