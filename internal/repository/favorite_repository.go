package repository

import (
	"github.com/yukikurage/daybook-api/internal/models"
	"gorm.io/gorm"
)

// GormFavoriteRepository is a GORM implementation of FavoriteRepository
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func (r *GormFavoriteRepository) Create(fav *models.Favorite) error {
	return r.db.Create(fav).Error
}

func (r *GormFavoriteRepository) Find(userID, songID uint64) (*models.Favorite, error) {
	var fav models.Favorite
	if err := r.db.Where("user_id = ? AND song_id = ?", userID, songID).First(&fav).Error; err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *GormFavoriteRepository) Delete(userID, songID uint64) (bool, error) {
	result := r.db.Where("user_id = ? AND song_id = ?", userID, songID).Delete(&models.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormFavoriteRepository) ListByUser(userID uint64) ([]models.Favorite, error) {
	var favs []models.Favorite
	err := r.db.Preload("Song").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error
	if err != nil {
		return nil, err
	}
	return favs, nil
}
