package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
)

type studentService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewStudentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) StudentService {
	return &studentService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

func (s *studentService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	role := models.RoleStudent
	filters.Role = &role
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 10
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return &UserListResponse{
		Users: users,
		Total: total,
		Page:  (filters.Offset / filters.Limit) + 1,
		Size:  filters.Limit,
	}, nil
}

func (s *studentService) Search(ctx context.Context, query string, filters repositories.UserFilters) (*UserListResponse, error) {
	role := models.RoleStudent
	filters.Role = &role
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 10
	}

	users, total, err := s.repo.User().Search(ctx, query, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search students: %w", err)
	}

	return &UserListResponse{
		Users: users,
		Total: total,
		Page:  (filters.Offset / filters.Limit) + 1,
		Size:  filters.Limit,
	}, nil
}

// ExportRoster renders the full student directory as an xlsx workbook.
func (s *studentService) ExportRoster(ctx context.Context) ([]byte, error) {
	s.logger.Info("exporting student roster")

	role := models.RoleStudent
	users, _, err := s.repo.User().List(ctx, repositories.UserFilters{
		Role:  &role,
		Limit: 10000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Error("failed to close workbook", "error", err)
		}
	}()

	const sheet = "Students"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"ID", "Full Name", "Email", "Email Verified", "Registered At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, user := range users {
		values := []interface{}{
			user.ID,
			user.FullName,
			user.Email,
			user.EmailVerified,
			user.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("student roster exported", "students", len(users))
	return buf.Bytes(), nil
}
