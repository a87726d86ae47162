package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"linktracker/models"
)

// GormLinkStore persists links through GORM.
type GormLinkStore struct {
	db *gorm.DB
}

func NewGormLinkStore(db *gorm.DB) *GormLinkStore {
	return &GormLinkStore{db: db}
}

func (s *GormLinkStore) Create(ctx context.Context, link *models.Link) error {
	result := s.db.WithContext(ctx).Create(link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return result.Error
	}
	return nil
}

func (s *GormLinkStore) FindByCode(ctx context.Context, shortCode string) (*models.Link, error) {
	var link models.Link
	result := s.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &link, nil
}

func (s *GormLinkStore) FindByURL(ctx context.Context, originalURL string) (*models.Link, error) {
	var link models.Link
	result := s.db.WithContext(ctx).Where("original_url = ?", originalURL).First(&link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &link, nil
}

func (s *GormLinkStore) List(ctx context.Context, offset, limit int) ([]models.Link, int64, error) {
	var links []models.Link
	var total int64

	if err := s.db.WithContext(ctx).Model(&models.Link{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := s.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&links)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return links, total, nil
}

// GormClickStore persists clicks through GORM.
type GormClickStore struct {
	db *gorm.DB
}

func NewGormClickStore(db *gorm.DB) *GormClickStore {
	return &GormClickStore{db: db}
}

func (s *GormClickStore) Create(ctx context.Context, click *models.Click) error {
	return s.db.WithContext(ctx).Create(click).Error
}

func (s *GormClickStore) CountByLink(ctx context.Context, linkID uint) (int64, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Click{}).
		Where("link_id = ?", linkID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var valid int64
	if err := s.db.WithContext(ctx).Model(&models.Click{}).
		Where("link_id = ? AND is_valid = ?", linkID, true).
		Count(&valid).Error; err != nil {
		return 0, 0, err
	}

	return total, valid, nil
}

func (s *GormClickStore) MonthlyValidCounts(ctx context.Context, linkID uint) ([]MonthCount, error) {
	var buckets []MonthCount
	err := s.db.WithContext(ctx).Model(&models.Click{}).
		Select("to_char(clicked_at, 'YYYY-MM') AS month, count(*) AS valid_clicks").
		Where("link_id = ? AND is_valid = ?", linkID, true).
		Group("month").
		Order("month asc").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	return buckets, nil
}
