package repository

import (
	"strings"

	"github.com/yukikurage/daybook-api/internal/database"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/utils"
	"gorm.io/gorm"
)

// GormStudentRepository is a GORM implementation of StudentRepository
type GormStudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &GormStudentRepository{db: db}
}

func (r *GormStudentRepository) Create(student *models.Student) error {
	return r.db.Create(student).Error
}

func (r *GormStudentRepository) FindByID(id uint64) (*models.Student, error) {
	var student models.Student
	if err := r.db.First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *GormStudentRepository) FindByName(name string) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *GormStudentRepository) FindDeletedByName(name string) (*models.Student, error) {
	var student models.Student
	err := r.db.Unscoped().
		Where("LOWER(name) = ? AND deleted_at IS NOT NULL", strings.ToLower(name)).
		Order("deleted_at DESC").
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *GormStudentRepository) FindDeletedByID(id uint64) (*models.Student, error) {
	var student models.Student
	if err := r.db.Unscoped().Where("deleted_at IS NOT NULL").First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// List retrieves students with filtering and pagination
func (r *GormStudentRepository) List(filter StudentFilter) ([]models.Student, int64, error) {
	var students []models.Student

	query := r.db.Model(&models.Student{})
	if filter.Batch != nil {
		query = query.Where("batch = ?", *filter.Batch)
	}
	if filter.Query != "" {
		query = query.Scopes(database.MatchAny(filter.Query, "name", "class"))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.SortBy == "name" {
		listQuery = listQuery.Order("name ASC")
	} else {
		listQuery = listQuery.Order("created_at DESC")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.NewPaginationParams(filter.Page, filter.PageSize)))
	}

	if err := listQuery.Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (r *GormStudentRepository) Update(student *models.Student) error {
	return r.db.Save(student).Error
}

// Delete soft deletes a student
func (r *GormStudentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Student{}, id).Error
}

func (r *GormStudentRepository) Restore(id uint64) error {
	return r.db.Unscoped().Model(&models.Student{}).Where("id = ?", id).Update("deleted_at", nil).Error
}
