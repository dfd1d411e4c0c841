package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/ayanna-kiyanna/institute-service/internal/cache"
	"github.com/ayanna-kiyanna/institute-service/internal/config"
	"github.com/ayanna-kiyanna/institute-service/internal/events"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
	"github.com/ayanna-kiyanna/institute-service/internal/validator"
)

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db             *gorm.DB
	repo           repositories.Repository
	resetStore     *cache.ResetStore
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	jwt            config.JWTConfig

	// Service instances
	authService         AuthService
	recoveryService     RecoveryService
	noticeService       NoticeService
	studentService      StudentService
	notificationService NotificationEventService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, resetStore *cache.ResetStore, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, jwt config.JWTConfig) ServiceManager {
	return &serviceManager{
		db:             db,
		repo:           repo,
		resetStore:     resetStore,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
		jwt:            jwt,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.notificationService = NewNotificationEventService(sm.repo, sm.eventPublisher, sm.logger, sm.validator)
	sm.authService = NewAuthService(sm.repo, sm.db, sm.logger, sm.validator, sm.jwt)
	sm.recoveryService = NewRecoveryService(sm.repo, sm.resetStore, sm.notificationService, sm.logger, sm.validator)
	sm.noticeService = NewNoticeService(sm.repo, sm.db, sm.notificationService, sm.logger, sm.validator)
	sm.studentService = NewStudentService(sm.repo, sm.db, sm.logger)

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) Recovery() RecoveryService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.recoveryService
}

func (sm *serviceManager) Notice() NoticeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.noticeService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.studentService
}

func (sm *serviceManager) Notification() NotificationEventService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.notificationService
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.eventPublisher.Close(); err != nil {
		sm.logger.Error("Failed to close event publisher", "error", err)
	}

	if err := sm.repo.Close(); err != nil {
		sm.logger.Error("Failed to close repository connections", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
