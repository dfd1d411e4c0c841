package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
	"github.com/ayanna-kiyanna/institute-service/internal/validator"
)

type noticeService struct {
	repo      repositories.Repository
	db        *gorm.DB
	notifier  NotificationEventService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewNoticeService(repo repositories.Repository, db *gorm.DB, notifier NotificationEventService, logger *slog.Logger, validator *validator.Validator) NoticeService {
	return &noticeService{
		repo:      repo,
		db:        db,
		notifier:  notifier,
		logger:    logger,
		validator: validator,
	}
}

func (s *noticeService) Create(ctx context.Context, req *NoticeCreateRequest, creatorID string) (*models.Notice, error) {
	s.logger.Info("creating notice", "creator_id", creatorID, "title", req.Title)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("validation failed: %w", errs)
	}

	audience := models.NoticeAudience(req.Audience)
	if audience == "" {
		audience = models.AudienceAll
	}

	notice := &models.Notice{
		Title:       req.Title,
		Body:        req.Body,
		Audience:    audience,
		Pinned:      req.Pinned,
		CreatedByID: creatorID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if len(req.Attachments) > 0 {
		raw, err := json.Marshal(req.Attachments)
		if err != nil {
			return nil, fmt.Errorf("failed to encode attachments: %w", err)
		}
		notice.Attachments = datatypes.JSON(raw)
	}

	if err := s.repo.Notice().Create(ctx, notice); err != nil {
		return nil, fmt.Errorf("failed to create notice: %w", err)
	}

	if err := s.notifier.SendNotification(ctx, &NotificationRequest{
		Type:     models.NotificationNoticePublished,
		Title:    notice.Title,
		Message:  notice.Body,
		Priority: models.PriorityNormal,
	}); err != nil {
		// Notice is created; event dispatch failure is logged, not returned.
		s.logger.Error("failed to publish notice event", "error", err, "notice_id", notice.ID)
	}

	return notice, nil
}

func (s *noticeService) GetByID(ctx context.Context, id uint) (*models.Notice, error) {
	notice, err := s.repo.Notice().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return notice, nil
}

func (s *noticeService) Update(ctx context.Context, id uint, req *NoticeUpdateRequest, userID string, userRole models.UserRole) (*models.Notice, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("validation failed: %w", errs)
	}

	notice, err := s.repo.Notice().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canManageNotice(notice, userID, userRole) {
		return nil, NewPermissionError(userID, "notice", "update", "not creator or admin")
	}

	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Body != nil {
		notice.Body = *req.Body
	}
	if req.Audience != nil {
		notice.Audience = models.NoticeAudience(*req.Audience)
	}
	if req.Pinned != nil {
		notice.Pinned = *req.Pinned
	}
	notice.UpdatedAt = time.Now()

	if err := s.repo.Notice().Update(ctx, notice); err != nil {
		return nil, fmt.Errorf("failed to update notice: %w", err)
	}

	return notice, nil
}

func (s *noticeService) Delete(ctx context.Context, id uint, userID string, userRole models.UserRole) error {
	notice, err := s.repo.Notice().GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !canManageNotice(notice, userID, userRole) {
		return NewPermissionError(userID, "notice", "delete", "not creator or admin")
	}

	return s.repo.Notice().Delete(ctx, id)
}

func (s *noticeService) List(ctx context.Context, filters repositories.NoticeFilters) (*NoticeListResponse, error) {
	if filters.Limit <= 0 {
		filters.Limit = 10
	}

	notices, total, err := s.repo.Notice().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}

	page := (filters.Offset / filters.Limit) + 1

	return &NoticeListResponse{
		Notices: notices,
		Total:   total,
		Page:    page,
		Size:    filters.Limit,
	}, nil
}

// canManageNotice: admins manage everything, moderators manage their own.
func canManageNotice(notice *models.Notice, userID string, role models.UserRole) bool {
	if role == models.RoleAdmin {
		return true
	}
	return role == models.RoleModerator && notice.CreatedByID == userID
}
