package repository

import (
	"github.com/yukikurage/daybook-api/internal/database"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/utils"
	"gorm.io/gorm"
)

// GormFeeRepository is a GORM implementation of FeeRepository
type GormFeeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a new FeeRepository
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &GormFeeRepository{db: db}
}

func (r *GormFeeRepository) Create(fee *models.Fee) error {
	return r.db.Create(fee).Error
}

func (r *GormFeeRepository) FindByID(id uint64) (*models.Fee, error) {
	var fee models.Fee
	if err := r.db.First(&fee, id).Error; err != nil {
		return nil, err
	}
	return &fee, nil
}

func (r *GormFeeRepository) List(filter FeeFilter) ([]models.Fee, int64, error) {
	var fees []models.Fee

	query := r.db.Model(&models.Fee{})
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("payment_date DESC").Order("id DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.NewPaginationParams(filter.Page, filter.PageSize)))
	}

	if err := listQuery.Find(&fees).Error; err != nil {
		return nil, 0, err
	}
	return fees, total, nil
}

func (r *GormFeeRepository) ListByStudent(studentID uint64) ([]models.Fee, error) {
	var fees []models.Fee
	err := r.db.Where("student_id = ?", studentID).
		Order("payment_date DESC").
		Order("id DESC").
		Find(&fees).Error
	if err != nil {
		return nil, err
	}
	return fees, nil
}

func (r *GormFeeRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Fee{}, id).Error
}
