package data

import (
	"github.com/verity-app/verity-backend/src/api/types"
	"gorm.io/gorm"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Create(item *types.NewsItem) error {
	return r.db.Create(item).Error
}

// Verified returns all verified news items, newest first.
func (r *NewsRepository) Verified() ([]types.NewsItem, error) {
	var items []types.NewsItem
	err := r.db.Where("status = ?", types.StatusVerified).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
