package services

import (
	"context"
	"fmt"

	"github.com/critiq-labs/review-service/internal/auth"
	"github.com/critiq-labs/review-service/internal/config"
	"github.com/critiq-labs/review-service/internal/events"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/internal/validator"
)

// ServiceManager wires the services together and owns their lifecycle.
type ServiceManager struct {
	cfg       *config.Config
	repoMgr   repositories.RepositoryManager
	publisher events.Publisher
	logger    utils.Logger

	Catalog CatalogService
	Titles  TitleService
	Reviews ReviewService
	Comment CommentService
	Users   UserService
	Auth    AuthService
}

func NewServiceManager(
	cfg *config.Config,
	repoMgr repositories.RepositoryManager,
	publisher events.Publisher,
	logger utils.Logger,
) *ServiceManager {
	return &ServiceManager{
		cfg:       cfg,
		repoMgr:   repoMgr,
		publisher: publisher,
		logger:    logger,
	}
}

func (m *ServiceManager) Initialize() error {
	if err := m.repoMgr.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}
	repo := m.repoMgr.GetRepository()

	v, err := validator.New()
	if err != nil {
		return fmt.Errorf("failed to build validator: %w", err)
	}

	tokens := auth.NewTokenManager(m.cfg.JWT.Secret, m.cfg.JWT.TTL)
	codes := auth.NewConfirmationCodes(m.cfg.Confirmation.Secret)

	m.Catalog = NewCatalogService(repo, v, m.logger)
	m.Titles = NewTitleService(repo, v, m.logger)
	m.Reviews = NewReviewService(repo, v, m.logger)
	m.Comment = NewCommentService(repo, v, m.logger)
	m.Users = NewUserService(repo, v, m.logger)
	m.Auth = NewAuthService(repo, v, tokens, codes, m.publisher, m.logger)

	return nil
}

func (m *ServiceManager) HealthCheck(ctx context.Context) error {
	return m.repoMgr.HealthCheck(ctx)
}

func (m *ServiceManager) Shutdown(ctx context.Context) error {
	if err := m.publisher.Close(); err != nil {
		m.logger.Error("failed to close event publisher", "error", err)
	}
	return m.repoMgr.Shutdown(ctx)
}
