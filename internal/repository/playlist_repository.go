package repository

import (
	"github.com/yukikurage/daybook-api/internal/models"
	"gorm.io/gorm"
)

// GormPlaylistRepository is a GORM implementation of PlaylistRepository
type GormPlaylistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository creates a new PlaylistRepository
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &GormPlaylistRepository{db: db}
}

func (r *GormPlaylistRepository) Create(playlist *models.Playlist) error {
	return r.db.Create(playlist).Error
}

// FindByID finds a playlist with its songs
func (r *GormPlaylistRepository) FindByID(id uint64) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.Preload("Songs").First(&playlist, id).Error; err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *GormPlaylistRepository) ListByUser(userID uint64) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := r.db.Preload("Songs").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	return playlists, nil
}

// Delete removes a playlist and its song links in a transaction
func (r *GormPlaylistRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		playlist := models.Playlist{ID: id}
		if err := tx.Model(&playlist).Association("Songs").Clear(); err != nil {
			return err
		}
		return tx.Delete(&playlist).Error
	})
}

func (r *GormPlaylistRepository) AddSong(playlist *models.Playlist, song *models.Song) error {
	return r.db.Model(playlist).Association("Songs").Append(song)
}

func (r *GormPlaylistRepository) RemoveSong(playlist *models.Playlist, song *models.Song) error {
	return r.db.Model(playlist).Association("Songs").Delete(song)
}
