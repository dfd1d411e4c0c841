package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ayanna-kiyanna/institute-service/internal/events"
	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
	"github.com/ayanna-kiyanna/institute-service/internal/validator"
)

// NotificationEvent is the payload published on the notification topic.
type NotificationEvent struct {
	Type     models.NotificationType     `json:"type"`
	Title    string                      `json:"title"`
	Message  string                      `json:"message"`
	Priority models.NotificationPriority `json:"priority"`
	Email    string                      `json:"email,omitempty"`
}

type notificationEventService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewNotificationEventService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) NotificationEventService {
	return &notificationEventService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
	}
}

// SendNotification publishes one notification event. Delivery (mail, push)
// happens in the external workers consuming the topic.
func (s *notificationEventService) SendNotification(ctx context.Context, req *NotificationRequest) error {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return fmt.Errorf("validation failed: %w", errs)
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	event := events.NewEvent(string(req.Type), NotificationEvent{
		Type:     req.Type,
		Title:    req.Title,
		Message:  req.Message,
		Priority: priority,
		Email:    req.Email,
	})

	if err := s.eventPublisher.Publish(ctx, events.NotificationTopic, event); err != nil {
		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	s.logger.Debug("notification event published", "type", req.Type, "event_id", event.ID)
	return nil
}
