package repository

import (
	"github.com/yukikurage/daybook-api/internal/database"
	"github.com/yukikurage/daybook-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *GormTagRepository) FindByID(id uint64) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *GormTagRepository) FindByUserAndTag(userID uint64, tag string) (*models.Tag, error) {
	var t models.Tag
	if err := r.db.Where("user_id = ? AND tag = ?", userID, tag).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormTagRepository) ListByUser(userID uint64, query string, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	q := r.db.Where("user_id = ?", userID)
	if query != "" {
		q = q.Scopes(database.MatchAny(query, "tag"))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Order("tag ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormTagRepository) EnsureTags(userID uint64, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	rows := make([]models.Tag, len(tags))
	for i, t := range tags {
		rows[i] = models.Tag{Tag: t, UserID: userID}
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tag"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

func (r *GormTagRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Tag{}, id).Error
}
