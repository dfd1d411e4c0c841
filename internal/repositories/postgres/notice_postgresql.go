package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
)

// NoticePostgreSQL implements repositories.NoticeRepository on gorm.
type NoticePostgreSQL struct {
	db *gorm.DB
}

func NewNoticePostgreSQL(db *gorm.DB) *NoticePostgreSQL {
	return &NoticePostgreSQL{db: db}
}

func (r *NoticePostgreSQL) Create(ctx context.Context, notice *models.Notice) error {
	if err := r.db.WithContext(ctx).Create(notice).Error; err != nil {
		return fmt.Errorf("create notice: %w", err)
	}
	return nil
}

func (r *NoticePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Notice, error) {
	var notice models.Notice
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		First(&notice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get notice: %w", err)
	}
	return &notice, nil
}

func (r *NoticePostgreSQL) Update(ctx context.Context, notice *models.Notice) error {
	if err := r.db.WithContext(ctx).Save(notice).Error; err != nil {
		return fmt.Errorf("update notice: %w", err)
	}
	return nil
}

func (r *NoticePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Notice{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete notice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *NoticePostgreSQL) List(ctx context.Context, filters repositories.NoticeFilters) ([]*models.Notice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Notice{})

	if filters.Audience != nil {
		query = query.Where("audience IN ?", []models.NoticeAudience{*filters.Audience, models.AudienceAll})
	}
	if filters.Pinned != nil {
		query = query.Where("pinned = ?", *filters.Pinned)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count notices: %w", err)
	}

	var notices []*models.Notice
	err := query.
		Order("pinned DESC").
		Order(noticeSortClause(filters.SortBy, filters.SortOrder)).
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&notices).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list notices: %w", err)
	}

	return notices, total, nil
}

// noticeSortClause builds the ORDER BY clause with SQL injection protection.
// Only whitelisted columns are accepted; anything else sorts by created_at.
func noticeSortClause(sortBy, sortOrder string) string {
	allowedSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"title":      true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	return sortBy + " " + sortOrder
}
